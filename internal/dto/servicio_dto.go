package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearServicioRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

type ActualizarServicioRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

type AgregarInsumoServicioRequest struct {
	InsumoID             uuid.UUID        `json:"insumo_id"              validate:"required"`
	PiezasPorServicio    *decimal.Decimal `json:"piezas_por_servicio"    validate:"omitempty,gt=0"`
	ContenidoPorServicio *decimal.Decimal `json:"contenido_por_servicio" validate:"omitempty,gt=0"`
	UnidadContenido      *string          `json:"unidad_contenido"`
}

type ActualizarInsumoServicioRequest struct {
	PiezasPorServicio    *decimal.Decimal `json:"piezas_por_servicio"    validate:"omitempty,gt=0"`
	ContenidoPorServicio *decimal.Decimal `json:"contenido_por_servicio" validate:"omitempty,gt=0"`
	UnidadContenido      *string          `json:"unidad_contenido"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// ServicioResponse includes how many insumos the service consumes.
type ServicioResponse struct {
	ID         uuid.UUID `json:"id"`
	Nombre     string    `json:"nombre"`
	NumInsumos int       `json:"num_insumos"`
}

// InsumoServicioResponse is one link row as shown in the service detail panel.
type InsumoServicioResponse struct {
	ID                   uuid.UUID        `json:"id"`
	InsumoID             uuid.UUID        `json:"insumo_id"`
	InsumoNombre         string           `json:"insumo_nombre"`
	PiezasPorServicio    *decimal.Decimal `json:"piezas_por_servicio,omitempty"`
	ContenidoPorServicio *decimal.Decimal `json:"contenido_por_servicio,omitempty"`
	UnidadContenido      *string          `json:"unidad_contenido,omitempty"`
}
