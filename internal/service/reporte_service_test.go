package service

import (
	"context"
	"os"
	"testing"

	"caruma/internal/apierror"
	"caruma/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoReportes(t *testing.T) ReporteService {
	t.Helper()
	inventario := NewInventarioServiceConReloj(inventarioDePrueba(), 7, relojFijo)
	return NewReporteServiceConReloj(inventario, nil, 7, t.TempDir(), "gerencia@caruma.mx", relojFijo)
}

func TestListaComprasTexto(t *testing.T) {
	svc := nuevoReportes(t)

	resp, err := svc.ListaCompras(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", resp.Fecha)
	assert.Contains(t, resp.Contenido, "Agua")
	assert.Contains(t, resp.Contenido, "Queso")
}

func TestReporteAlertasTexto(t *testing.T) {
	svc := nuevoReportes(t)

	resp, err := svc.ReporteAlertas(context.Background())
	require.NoError(t, err)
	assert.Contains(t, resp.Contenido, "RESUMEN")
	assert.Contains(t, resp.Contenido, "Leche")
}

func TestListaComprasPDFSeGenera(t *testing.T) {
	svc := nuevoReportes(t)

	resp, err := svc.ListaComprasPDF(context.Background())
	require.NoError(t, err)
	assert.Contains(t, resp.Ruta, "lista_compras_2025-06-15.pdf")

	info, err := os.Stat(resp.Ruta)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestReporteAlertasPDFSeGenera(t *testing.T) {
	svc := nuevoReportes(t)

	resp, err := svc.ReporteAlertasPDF(context.Background())
	require.NoError(t, err)
	assert.Contains(t, resp.Ruta, "reporte_alertas_2025-06-15.pdf")

	_, err = os.Stat(resp.Ruta)
	assert.NoError(t, err)
}

func TestEnviarReporteSinDestino(t *testing.T) {
	inventario := NewInventarioServiceConReloj(inventarioDePrueba(), 7, relojFijo)
	// no configured recipient and none in the request
	svc := NewReporteServiceConReloj(inventario, nil, 7, t.TempDir(), "", relojFijo)

	_, err := svc.EnviarReporteAlertas(context.Background(), dto.EnviarReporteRequest{})
	assert.True(t, apierror.EsValidacion(err))
}
