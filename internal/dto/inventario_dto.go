package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"caruma/internal/clasificador"
)

// FiltroInventario selects a sub-view of the full listing.
// Exactly one filter is active at a time.
type FiltroInventario string

const (
	FiltroTodos      FiltroInventario = ""
	FiltroStockBajo  FiltroInventario = "stock_bajo"
	FiltroPorCaducar FiltroInventario = "por_caducar"
	FiltroCaducados  FiltroInventario = "caducados"
	FiltroSinStock   FiltroInventario = "sin_stock"
)

// OrdenInventario selects the sort order of the full listing.
type OrdenInventario string

const (
	OrdenNombre     OrdenInventario = "nombre"
	OrdenCategoria  OrdenInventario = "categoria"
	OrdenPiezasAsc  OrdenInventario = "piezas_asc"
	OrdenPiezasDesc OrdenInventario = "piezas_desc"
	OrdenCaducidad  OrdenInventario = "caducidad"
)

// ResumenInventarioResponse carries the dashboard totals. The three condition
// counts are computed independently — one item can appear in more than one.
type ResumenInventarioResponse struct {
	TotalInsumos int `json:"total_insumos"`
	TotalPiezas  int `json:"total_piezas"`
	StockBajo    int `json:"stock_bajo"`
	PorCaducar   int `json:"por_caducar"`
	Caducados    int `json:"caducados"`
}

// CategoriaRollupResponse is one per-category row, including the
// "Sin categoría" pseudo-category for uncategorized insumos.
type CategoriaRollupResponse struct {
	Categoria   string `json:"categoria"`
	NumInsumos  int    `json:"num_insumos"`
	TotalPiezas int    `json:"total_piezas"`
	StockBajo   int    `json:"stock_bajo"`
}

// InventarioItemResponse is one row of the consolidated listing: the insumo
// joined with its category name and a single classified status.
type InventarioItemResponse struct {
	ID                uuid.UUID           `json:"id"`
	Nombre            string              `json:"nombre"`
	Categoria         string              `json:"categoria"`
	Piezas            int                 `json:"piezas"`
	ContenidoPorPieza *decimal.Decimal    `json:"contenido_por_pieza,omitempty"`
	UnidadContenido   *string             `json:"unidad_contenido,omitempty"`
	FechaCaducidad    string              `json:"fecha_caducidad,omitempty"`
	AlertaPiezas      int                 `json:"alerta_piezas"`
	Estado            clasificador.Estado `json:"estado"`
}

// MasUsadoResponse ranks an insumo by how many services consume it.
type MasUsadoResponse struct {
	InsumoID     uuid.UUID `json:"insumo_id"`
	Nombre       string    `json:"nombre"`
	NumServicios int       `json:"num_servicios"`
	Piezas       int       `json:"piezas"`
}

// TotalContenidoResponse sums piezas×contenido per content unit.
type TotalContenidoResponse struct {
	UnidadContenido string          `json:"unidad_contenido"`
	Total           decimal.Decimal `json:"total"`
}
