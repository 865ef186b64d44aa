package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServicioInsumo links a servicio with an insumo and records how much of it
// one execution of the service consumes. At most one link per
// (servicio, insumo) pair — duplicate inserts are rejected, never merged.
type ServicioInsumo struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ServicioID           uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_servicio_insumo_par"`
	InsumoID             uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_servicio_insumo_par"`
	PiezasPorServicio    *decimal.Decimal `gorm:"type:decimal(10,3)"`
	ContenidoPorServicio *decimal.Decimal `gorm:"type:decimal(10,3)"`
	UnidadContenido      *string
	CreatedAt            time.Time

	Servicio *Servicio `gorm:"foreignKey:ServicioID"`
	Insumo   *Insumo   `gorm:"foreignKey:InsumoID"`
}

// TableName overrides GORM's pluralization (servicio_insumos → servicio_insumo).
func (ServicioInsumo) TableName() string { return "servicio_insumo" }

func (v *ServicioInsumo) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
