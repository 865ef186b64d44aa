package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Insumo is a trackable consumable: stock in whole pieces, optional content
// per piece (e.g. 1.5 L per bottle), optional expiry date, and a low-stock
// threshold. AlertaPiezas = 0 means low-stock alerting is disabled for the item.
type Insumo struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Nombre            string           `gorm:"uniqueIndex;not null"`
	CategoriaID       *uuid.UUID       `gorm:"type:uuid;index"`
	Piezas            int              `gorm:"not null;default:0"`
	ContenidoPorPieza *decimal.Decimal `gorm:"type:decimal(10,3)"`
	UnidadContenido   *string
	FechaCaducidad    *time.Time `gorm:"type:date"`
	AlertaPiezas      int        `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Insumo) TableName() string { return "insumos" }

func (i *Insumo) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// UnidadesSugeridas is the suggestion set offered for UnidadContenido.
// Not enforced at the storage level.
var UnidadesSugeridas = []string{"kg", "g", "L", "ml", "pza", "paq", "caja", "bolsa", "lata", "botella"}
