package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alerta is one recorded occurrence of a stock or expiry condition.
// The log is append-only; the only mutation allowed is a full-history clear.
type Alerta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InsumoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo        string    `gorm:"not null"` // clasificador.EstadoStockBajo | EstadoPorCaducar | EstadoCaducado
	Mensaje     string    `gorm:"not null"`
	FechaAlerta time.Time `gorm:"type:date;not null;index"`

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (Alerta) TableName() string { return "alertas" }

func (a *Alerta) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
