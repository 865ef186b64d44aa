package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caruma/internal/apierror"
	"caruma/internal/clasificador"
	"caruma/internal/dto"
	"caruma/internal/model"
	"caruma/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistorialLimiteDefault caps how many log entries the history view returns.
const HistorialLimiteDefault = 50

// AlertaService records and reads the append-only alert log. Recording is an
// explicit call; listing alert conditions never writes anything.
type AlertaService interface {
	Registrar(ctx context.Context, req dto.RegistrarAlertaRequest) (dto.AlertaHistorialResponse, error)
	Historial(ctx context.Context) ([]dto.AlertaHistorialResponse, error)
	LimpiarHistorial(ctx context.Context) error
	// EscanearYRegistrar classifies the whole inventory and logs one entry per
	// active condition, skipping item+condition pairs already logged today.
	EscanearYRegistrar(ctx context.Context) (dto.EscaneoResponse, error)
}

type alertaService struct {
	repo        repository.AlertaRepository
	insumos     repository.InsumoRepository
	limite      int
	ventanaDias int
	ahora       func() time.Time
}

func NewAlertaService(repo repository.AlertaRepository, insumos repository.InsumoRepository, limite, ventanaDias int) AlertaService {
	return NewAlertaServiceConReloj(repo, insumos, limite, ventanaDias, time.Now)
}

func NewAlertaServiceConReloj(repo repository.AlertaRepository, insumos repository.InsumoRepository, limite, ventanaDias int, ahora func() time.Time) AlertaService {
	if limite <= 0 {
		limite = HistorialLimiteDefault
	}
	if ventanaDias <= 0 {
		ventanaDias = clasificador.VentanaCaducidadDefault
	}
	return &alertaService{repo: repo, insumos: insumos, limite: limite, ventanaDias: ventanaDias, ahora: ahora}
}

// Registrar appends one entry dated today. It is not idempotent: calling it
// twice writes two entries.
func (s *alertaService) Registrar(ctx context.Context, req dto.RegistrarAlertaRequest) (dto.AlertaHistorialResponse, error) {
	ins, err := s.insumos.ObtenerPorID(ctx, req.InsumoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AlertaHistorialResponse{}, apierror.NewValidacion("el insumo indicado no existe")
		}
		return dto.AlertaHistorialResponse{}, err
	}

	hoy := s.ahora()
	a := &model.Alerta{
		InsumoID:    req.InsumoID,
		Tipo:        req.Tipo,
		Mensaje:     req.Mensaje,
		FechaAlerta: time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.repo.Crear(ctx, a); err != nil {
		return dto.AlertaHistorialResponse{}, err
	}
	return dto.AlertaHistorialResponse{
		ID:          a.ID,
		FechaAlerta: a.FechaAlerta.Format("2006-01-02"),
		Insumo:      ins.Nombre,
		Tipo:        clasificador.Estado(a.Tipo),
		Mensaje:     a.Mensaje,
	}, nil
}

func (s *alertaService) Historial(ctx context.Context) ([]dto.AlertaHistorialResponse, error) {
	filas, err := s.repo.Historial(ctx, s.limite)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AlertaHistorialResponse, 0, len(filas))
	for _, f := range filas {
		result = append(result, dto.AlertaHistorialResponse{
			ID:          f.ID,
			FechaAlerta: f.FechaAlerta.Format("2006-01-02"),
			Insumo:      f.Insumo,
			Tipo:        clasificador.Estado(f.Tipo),
			Mensaje:     f.Mensaje,
		})
	}
	return result, nil
}

func (s *alertaService) LimpiarHistorial(ctx context.Context) error {
	return s.repo.LimpiarTodo(ctx)
}

func (s *alertaService) EscanearYRegistrar(ctx context.Context) (dto.EscaneoResponse, error) {
	filas, err := s.insumos.ListarConCategoria(ctx)
	if err != nil {
		return dto.EscaneoResponse{}, err
	}

	hoy := s.ahora()
	var resumen dto.EscaneoResponse
	for _, f := range filas {
		ins := clasificador.Insumo{Piezas: f.Piezas, AlertaPiezas: f.AlertaPiezas, FechaCaducidad: f.FechaCaducidad}

		if clasificador.EsStockBajo(ins) {
			mensaje := fmt.Sprintf("Stock bajo: %d piezas (mínimo %d)", f.Piezas, f.AlertaPiezas)
			if err := s.registrarCondicion(ctx, &resumen, f.ID, clasificador.EstadoStockBajo, mensaje, hoy); err != nil {
				return dto.EscaneoResponse{}, err
			}
		}
		if clasificador.EsCaducado(ins, hoy) {
			mensaje := fmt.Sprintf("Caducado desde el %s (%d días)", f.FechaCaducidad.Format("02/01/2006"), clasificador.DiasCaducado(ins, hoy))
			if err := s.registrarCondicion(ctx, &resumen, f.ID, clasificador.EstadoCaducado, mensaje, hoy); err != nil {
				return dto.EscaneoResponse{}, err
			}
		} else if clasificador.EsPorCaducar(ins, hoy, s.ventanaDias) {
			mensaje := fmt.Sprintf("Caduca el %s (%d días restantes)", f.FechaCaducidad.Format("02/01/2006"), clasificador.DiasRestantes(ins, hoy))
			if err := s.registrarCondicion(ctx, &resumen, f.ID, clasificador.EstadoPorCaducar, mensaje, hoy); err != nil {
				return dto.EscaneoResponse{}, err
			}
		}
	}
	return resumen, nil
}

// registrarCondicion writes one log entry unless the same item+condition was
// already logged today, so repeated scans within a day stay quiet.
func (s *alertaService) registrarCondicion(ctx context.Context, resumen *dto.EscaneoResponse, insumoID uuid.UUID, tipo clasificador.Estado, mensaje string, hoy time.Time) error {
	existe, err := s.repo.ExisteEnFecha(ctx, insumoID, string(tipo), hoy)
	if err != nil {
		return err
	}
	if existe {
		resumen.Omitidas++
		return nil
	}
	a := &model.Alerta{
		InsumoID:    insumoID,
		Tipo:        string(tipo),
		Mensaje:     mensaje,
		FechaAlerta: time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.repo.Crear(ctx, a); err != nil {
		return err
	}
	resumen.Registradas++
	return nil
}
