package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearInsumoRequest struct {
	Nombre            string           `json:"nombre"              validate:"required"`
	CategoriaID       *uuid.UUID       `json:"categoria_id"`
	Piezas            int              `json:"piezas"              validate:"min=0"`
	ContenidoPorPieza *decimal.Decimal `json:"contenido_por_pieza" validate:"omitempty,gt=0"`
	UnidadContenido   *string          `json:"unidad_contenido"`
	// FechaCaducidad in YYYY-MM-DD; empty means no expiry tracking.
	FechaCaducidad string `json:"fecha_caducidad"`
	AlertaPiezas   int    `json:"alerta_piezas" validate:"min=0"`
}

type ActualizarInsumoRequest struct {
	Nombre            string           `json:"nombre"              validate:"required"`
	CategoriaID       *uuid.UUID       `json:"categoria_id"`
	Piezas            int              `json:"piezas"              validate:"min=0"`
	ContenidoPorPieza *decimal.Decimal `json:"contenido_por_pieza" validate:"omitempty,gt=0"`
	UnidadContenido   *string          `json:"unidad_contenido"`
	FechaCaducidad    string           `json:"fecha_caducidad"`
	AlertaPiezas      int              `json:"alerta_piezas" validate:"min=0"`
}

// AjustarStockRequest adjusts pieces: set replaces, add increments,
// subtract decrements clamping at zero.
type AjustarStockRequest struct {
	Operacion string `json:"operacion" validate:"required,oneof=set add subtract"`
	Cantidad  int    `json:"cantidad"  validate:"min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type InsumoResponse struct {
	ID                uuid.UUID        `json:"id"`
	Nombre            string           `json:"nombre"`
	CategoriaID       *uuid.UUID       `json:"categoria_id,omitempty"`
	Categoria         string           `json:"categoria"`
	Piezas            int              `json:"piezas"`
	ContenidoPorPieza *decimal.Decimal `json:"contenido_por_pieza,omitempty"`
	UnidadContenido   *string          `json:"unidad_contenido,omitempty"`
	FechaCaducidad    string           `json:"fecha_caducidad,omitempty"`
	AlertaPiezas      int              `json:"alerta_piezas"`
}
