package service

import (
	"context"
	"fmt"
	"time"

	"caruma/internal/apierror"
	"caruma/internal/dto"
	"caruma/internal/infra"
	"caruma/internal/reporte"
	"caruma/internal/worker"
)

// ReporteService renders the shopping list and the alert report, generates
// their PDF versions, and enqueues email delivery.
type ReporteService interface {
	ListaCompras(ctx context.Context) (dto.ReporteResponse, error)
	ReporteAlertas(ctx context.Context) (dto.ReporteResponse, error)
	ListaComprasPDF(ctx context.Context) (dto.ReportePDFResponse, error)
	ReporteAlertasPDF(ctx context.Context) (dto.ReportePDFResponse, error)
	EnviarReporteAlertas(ctx context.Context, req dto.EnviarReporteRequest) (dto.EnvioReporteResponse, error)
}

type reporteService struct {
	inventario  InventarioService
	dispatcher  *worker.Dispatcher
	ventanaDias int
	storagePath string
	destino     string
	ahora       func() time.Time
}

func NewReporteService(inventario InventarioService, dispatcher *worker.Dispatcher, ventanaDias int, storagePath, destino string) ReporteService {
	return NewReporteServiceConReloj(inventario, dispatcher, ventanaDias, storagePath, destino, time.Now)
}

func NewReporteServiceConReloj(inventario InventarioService, dispatcher *worker.Dispatcher, ventanaDias int, storagePath, destino string, ahora func() time.Time) ReporteService {
	return &reporteService{
		inventario:  inventario,
		dispatcher:  dispatcher,
		ventanaDias: ventanaDias,
		storagePath: storagePath,
		destino:     destino,
		ahora:       ahora,
	}
}

func (s *reporteService) ListaCompras(ctx context.Context) (dto.ReporteResponse, error) {
	items, err := s.inventario.StockBajo(ctx)
	if err != nil {
		return dto.ReporteResponse{}, err
	}
	fecha := s.ahora()
	return dto.ReporteResponse{
		Contenido: reporte.ListaCompras(items, fecha),
		Fecha:     fecha.Format("2006-01-02"),
	}, nil
}

// datosAlertas gathers the three alert lists for the report.
func (s *reporteService) datosAlertas(ctx context.Context) (reporte.DatosReporteAlertas, error) {
	stockBajo, err := s.inventario.StockBajo(ctx)
	if err != nil {
		return reporte.DatosReporteAlertas{}, err
	}
	porCaducar, err := s.inventario.PorCaducar(ctx)
	if err != nil {
		return reporte.DatosReporteAlertas{}, err
	}
	caducados, err := s.inventario.Caducados(ctx)
	if err != nil {
		return reporte.DatosReporteAlertas{}, err
	}
	return reporte.DatosReporteAlertas{
		StockBajo:   stockBajo,
		PorCaducar:  porCaducar,
		Caducados:   caducados,
		VentanaDias: s.ventanaDias,
		Fecha:       s.ahora(),
	}, nil
}

func (s *reporteService) ReporteAlertas(ctx context.Context) (dto.ReporteResponse, error) {
	datos, err := s.datosAlertas(ctx)
	if err != nil {
		return dto.ReporteResponse{}, err
	}
	return dto.ReporteResponse{
		Contenido: reporte.ReporteAlertas(datos),
		Fecha:     datos.Fecha.Format("2006-01-02"),
	}, nil
}

func (s *reporteService) ListaComprasPDF(ctx context.Context) (dto.ReportePDFResponse, error) {
	items, err := s.inventario.StockBajo(ctx)
	if err != nil {
		return dto.ReportePDFResponse{}, err
	}
	fecha := s.ahora()
	ruta, err := infra.GenerarListaComprasPDF(items, fecha, s.storagePath)
	if err != nil {
		return dto.ReportePDFResponse{}, err
	}
	return dto.ReportePDFResponse{Ruta: ruta, Fecha: fecha.Format("2006-01-02")}, nil
}

func (s *reporteService) ReporteAlertasPDF(ctx context.Context) (dto.ReportePDFResponse, error) {
	datos, err := s.datosAlertas(ctx)
	if err != nil {
		return dto.ReportePDFResponse{}, err
	}
	ruta, err := infra.GenerarReporteAlertasPDF(datos, s.storagePath)
	if err != nil {
		return dto.ReportePDFResponse{}, err
	}
	return dto.ReportePDFResponse{Ruta: ruta, Fecha: datos.Fecha.Format("2006-01-02")}, nil
}

// EnviarReporteAlertas renders the report, generates the PDF and enqueues the
// email. Delivery itself happens in the email worker.
func (s *reporteService) EnviarReporteAlertas(ctx context.Context, req dto.EnviarReporteRequest) (dto.EnvioReporteResponse, error) {
	destino := req.Destino
	if destino == "" {
		destino = s.destino
	}
	if destino == "" {
		return dto.EnvioReporteResponse{}, apierror.NewValidacion("no hay destinatario configurado para el reporte")
	}

	datos, err := s.datosAlertas(ctx)
	if err != nil {
		return dto.EnvioReporteResponse{}, err
	}
	texto := reporte.ReporteAlertas(datos)
	ruta, err := infra.GenerarReporteAlertasPDF(datos, s.storagePath)
	if err != nil {
		return dto.EnvioReporteResponse{}, err
	}

	payload := worker.EmailJobPayload{
		ToEmail: destino,
		Subject: fmt.Sprintf("Reporte de alertas CARUMA - %s", datos.Fecha.Format("02/01/2006")),
		Body:    texto,
		PDFPath: ruta,
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		return dto.EnvioReporteResponse{}, err
	}
	return dto.EnvioReporteResponse{Destino: destino, Encolado: true}, nil
}
