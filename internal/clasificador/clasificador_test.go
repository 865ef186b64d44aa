package clasificador

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var hoy = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func fecha(dias int) *time.Time {
	t := hoy.AddDate(0, 0, dias)
	return &t
}

func TestEsStockBajo(t *testing.T) {
	cases := []struct {
		nombre   string
		piezas   int
		alerta   int
		esperado bool
	}{
		{"por debajo del umbral", 2, 5, true},
		{"igual al umbral", 5, 5, true},
		{"por encima del umbral", 6, 5, false},
		{"umbral cero desactiva la regla", 0, 0, false},
		{"stock cero con umbral activo", 0, 3, true},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			assert.Equal(t, tc.esperado, EsStockBajo(Insumo{Piezas: tc.piezas, AlertaPiezas: tc.alerta}))
		})
	}
}

func TestEsCaducado(t *testing.T) {
	assert.True(t, EsCaducado(Insumo{FechaCaducidad: fecha(-1)}, hoy))
	// expiring today is not expired yet
	assert.False(t, EsCaducado(Insumo{FechaCaducidad: fecha(0)}, hoy))
	assert.False(t, EsCaducado(Insumo{FechaCaducidad: fecha(1)}, hoy))
	assert.False(t, EsCaducado(Insumo{}, hoy))
}

func TestEsPorCaducar(t *testing.T) {
	ventana := 7

	assert.True(t, EsPorCaducar(Insumo{FechaCaducidad: fecha(0)}, hoy, ventana))
	assert.True(t, EsPorCaducar(Insumo{FechaCaducidad: fecha(3)}, hoy, ventana))
	// boundary: exactly ventana days out is inside the window
	assert.True(t, EsPorCaducar(Insumo{FechaCaducidad: fecha(7)}, hoy, ventana))
	assert.False(t, EsPorCaducar(Insumo{FechaCaducidad: fecha(8)}, hoy, ventana))
	// already expired never counts as por caducar
	assert.False(t, EsPorCaducar(Insumo{FechaCaducidad: fecha(-1)}, hoy, ventana))
	assert.False(t, EsPorCaducar(Insumo{}, hoy, ventana))
}

func TestEsPorCaducarIgnoraHora(t *testing.T) {
	// A date-only expiry earlier in the day than "now" still counts as today.
	cad := time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)
	assert.True(t, EsPorCaducar(Insumo{FechaCaducidad: &cad}, hoy, 7))
}

func TestClasificarPrecedencia(t *testing.T) {
	cases := []struct {
		nombre   string
		ins      Insumo
		esperado Estado
	}{
		{"sin condiciones", Insumo{Piezas: 10}, EstadoOK},
		{"solo stock bajo", Insumo{Piezas: 1, AlertaPiezas: 5}, EstadoStockBajo},
		{"solo por caducar", Insumo{Piezas: 10, FechaCaducidad: fecha(3)}, EstadoPorCaducar},
		{"solo caducado", Insumo{Piezas: 10, FechaCaducidad: fecha(-2)}, EstadoCaducado},
		{"caducado gana a stock bajo", Insumo{Piezas: 1, AlertaPiezas: 5, FechaCaducidad: fecha(-2)}, EstadoCaducado},
		{"stock bajo gana a por caducar", Insumo{Piezas: 1, AlertaPiezas: 5, FechaCaducidad: fecha(3)}, EstadoStockBajo},
		{"sin fecha nunca caduca", Insumo{Piezas: 0, AlertaPiezas: 0}, EstadoOK},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			assert.Equal(t, tc.esperado, Clasificar(tc.ins, hoy, VentanaCaducidadDefault))
		})
	}
}

func TestDiasRestantesYCaducado(t *testing.T) {
	assert.Equal(t, 0, DiasRestantes(Insumo{FechaCaducidad: fecha(0)}, hoy))
	assert.Equal(t, 5, DiasRestantes(Insumo{FechaCaducidad: fecha(5)}, hoy))
	assert.Equal(t, 1, DiasCaducado(Insumo{FechaCaducidad: fecha(-1)}, hoy))
	assert.Equal(t, 10, DiasCaducado(Insumo{FechaCaducidad: fecha(-10)}, hoy))
}

func TestClasificarDeterminista(t *testing.T) {
	ins := Insumo{Piezas: 2, AlertaPiezas: 5, FechaCaducidad: fecha(3)}
	primero := Clasificar(ins, hoy, 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, primero, Clasificar(ins, hoy, 7))
	}
}
