package worker

// alerta_worker.go
// Processes alert-scan jobs from QueueAlertas: classifies the full inventory
// and appends one log entry per active condition not yet recorded today.

import (
	"context"
	"encoding/json"

	"caruma/internal/dto"

	"github.com/rs/zerolog/log"
)

// EscanerAlertas runs one inventory scan and records the findings.
type EscanerAlertas interface {
	EscanearYRegistrar(ctx context.Context) (dto.EscaneoResponse, error)
}

// AlertaWorker processes scan jobs from QueueAlertas.
type AlertaWorker struct {
	escaner EscanerAlertas
}

func NewAlertaWorker(escaner EscanerAlertas) *AlertaWorker {
	return &AlertaWorker{escaner: escaner}
}

// Process runs one scan. The payload carries no data; the job itself is the
// trigger.
func (w *AlertaWorker) Process(ctx context.Context, _ json.RawMessage) {
	resumen, err := w.escaner.EscanearYRegistrar(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alerta_worker: scan failed")
		return
	}
	log.Info().
		Int("registradas", resumen.Registradas).
		Int("omitidas", resumen.Omitidas).
		Msg("alerta_worker: scan completed")
}
