package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Servicio is an offering that consumes a defined set of insumos.
// Deleting a servicio cascades to its ServicioInsumo links.
type Servicio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Servicio) TableName() string { return "servicios" }

func (s *Servicio) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
