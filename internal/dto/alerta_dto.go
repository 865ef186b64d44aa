package dto

import (
	"github.com/google/uuid"

	"caruma/internal/clasificador"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type RegistrarAlertaRequest struct {
	InsumoID uuid.UUID `json:"insumo_id" validate:"required"`
	Tipo     string    `json:"tipo"      validate:"required,oneof=STOCK_BAJO POR_CADUCAR CADUCADO"`
	Mensaje  string    `json:"mensaje"   validate:"required"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// AlertaStockBajoResponse is one row of the low-stock tab: how many pieces
// are missing to reach the threshold, never negative.
type AlertaStockBajoResponse struct {
	InsumoID     uuid.UUID `json:"insumo_id"`
	Nombre       string    `json:"nombre"`
	Categoria    string    `json:"categoria"`
	Piezas       int       `json:"piezas"`
	AlertaPiezas int       `json:"alerta_piezas"`
	Faltante     int       `json:"faltante"`
}

type AlertaPorCaducarResponse struct {
	InsumoID       uuid.UUID `json:"insumo_id"`
	Nombre         string    `json:"nombre"`
	Categoria      string    `json:"categoria"`
	Piezas         int       `json:"piezas"`
	FechaCaducidad string    `json:"fecha_caducidad"`
	DiasRestantes  int       `json:"dias_restantes"`
}

type AlertaCaducadoResponse struct {
	InsumoID       uuid.UUID `json:"insumo_id"`
	Nombre         string    `json:"nombre"`
	Categoria      string    `json:"categoria"`
	Piezas         int       `json:"piezas"`
	FechaCaducidad string    `json:"fecha_caducidad"`
	DiasCaducado   int       `json:"dias_caducado"`
}

// ResumenAlertasResponse mirrors the alert-center summary cards.
type ResumenAlertasResponse struct {
	StockBajo  int `json:"stock_bajo"`
	PorCaducar int `json:"por_caducar"`
	Caducados  int `json:"caducados"`
	Total      int `json:"total"`
}

type AlertaHistorialResponse struct {
	ID          uuid.UUID           `json:"id"`
	FechaAlerta string              `json:"fecha_alerta"`
	Insumo      string              `json:"insumo"`
	Tipo        clasificador.Estado `json:"tipo"`
	Mensaje     string              `json:"mensaje"`
}

// EscaneoResponse summarizes one explicit alert scan run.
type EscaneoResponse struct {
	Registradas int `json:"registradas"`
	Omitidas    int `json:"omitidas"` // already logged today for the same item+condition
}
