package worker

// escaneo_cron.go
// Background goroutine that enqueues one alert-scan job per tick so the log
// keeps filling in even when nobody opens the alert center. Per-day dedup in
// the scan itself makes extra tick runs harmless.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const escaneoTickInterval = 6 * time.Hour

// StartEscaneoCron launches the periodic scan trigger. It enqueues once at
// startup, then on every tick, and respects the context for graceful shutdown.
func StartEscaneoCron(ctx context.Context, dispatcher *Dispatcher) {
	go func() {
		ticker := time.NewTicker(escaneoTickInterval)
		defer ticker.Stop()

		log.Info().Msg("escaneo_cron: started")
		if err := dispatcher.EnqueueEscaneo(ctx); err != nil {
			log.Error().Err(err).Msg("escaneo_cron: initial enqueue failed")
		}

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("escaneo_cron: shutting down")
				return
			case <-ticker.C:
				if err := dispatcher.EnqueueEscaneo(ctx); err != nil {
					log.Error().Err(err).Msg("escaneo_cron: enqueue failed")
				}
			}
		}
	}()
}
