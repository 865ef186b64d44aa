// Package clasificador computes the derived status of an insumo for a given
// as-of date. It is pure: no storage access, no clock reads — callers pass
// "today" explicitly so the same snapshot always classifies the same way.
package clasificador

import "time"

// Estado is the consolidated status label of an insumo.
type Estado string

const (
	EstadoOK         Estado = "OK"
	EstadoStockBajo  Estado = "STOCK_BAJO"
	EstadoPorCaducar Estado = "POR_CADUCAR"
	EstadoCaducado   Estado = "CADUCADO"
)

// VentanaCaducidadDefault is the default expiry-warning window in days.
const VentanaCaducidadDefault = 7

// Insumo carries the fields the classifier needs. Kept as a tiny value type so
// the aggregation layer can build one from any row shape.
type Insumo struct {
	Piezas         int
	AlertaPiezas   int
	FechaCaducidad *time.Time
}

// Clasificar returns exactly one label using the report precedence
// CADUCADO > STOCK_BAJO > POR_CADUCAR > OK. An item that is both low-stock
// and expiring soon is labelled STOCK_BAJO; use the Es* predicates when the
// conditions must be counted independently.
func Clasificar(ins Insumo, hoy time.Time, ventanaDias int) Estado {
	switch {
	case EsCaducado(ins, hoy):
		return EstadoCaducado
	case EsStockBajo(ins):
		return EstadoStockBajo
	case EsPorCaducar(ins, hoy, ventanaDias):
		return EstadoPorCaducar
	default:
		return EstadoOK
	}
}

// EsStockBajo reports whether the low-stock condition holds. A threshold of 0
// disables the rule entirely, so piezas == alerta == 0 never triggers.
func EsStockBajo(ins Insumo) bool {
	return ins.AlertaPiezas > 0 && ins.Piezas <= ins.AlertaPiezas
}

// EsCaducado reports whether the expiry date is strictly before hoy.
func EsCaducado(ins Insumo, hoy time.Time) bool {
	if ins.FechaCaducidad == nil {
		return false
	}
	return soloFecha(*ins.FechaCaducidad).Before(soloFecha(hoy))
}

// EsPorCaducar reports whether the expiry date falls within the warning
// window: today or later, and at most ventanaDias days out (inclusive).
func EsPorCaducar(ins Insumo, hoy time.Time, ventanaDias int) bool {
	if ins.FechaCaducidad == nil {
		return false
	}
	cad := soloFecha(*ins.FechaCaducidad)
	dia := soloFecha(hoy)
	limite := dia.AddDate(0, 0, ventanaDias)
	return !cad.Before(dia) && !cad.After(limite)
}

// DiasRestantes returns whole days until expiry (0 = expires today).
// Callers must ensure FechaCaducidad is set.
func DiasRestantes(ins Insumo, hoy time.Time) int {
	return int(soloFecha(*ins.FechaCaducidad).Sub(soloFecha(hoy)).Hours() / 24)
}

// DiasCaducado returns whole days since expiry (1 = expired yesterday).
func DiasCaducado(ins Insumo, hoy time.Time) int {
	return -DiasRestantes(ins, hoy)
}

// soloFecha rebuilds a timestamp as its calendar date at midnight UTC, so
// date-only comparisons ignore both time-of-day and zone offset.
func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
