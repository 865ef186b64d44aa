package repository

import (
	"context"
	"time"

	"caruma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FilaHistorial is one alert-log entry joined with the insumo name.
type FilaHistorial struct {
	ID          uuid.UUID
	FechaAlerta time.Time
	Insumo      string
	Tipo        string
	Mensaje     string
}

// AlertaRepository persists the append-only alert log.
type AlertaRepository interface {
	Crear(ctx context.Context, a *model.Alerta) error
	Historial(ctx context.Context, limite int) ([]FilaHistorial, error)
	// ExisteEnFecha reports whether an entry for the same insumo and condition
	// was already recorded on the given calendar date.
	ExisteEnFecha(ctx context.Context, insumoID uuid.UUID, tipo string, fecha time.Time) (bool, error)
	LimpiarTodo(ctx context.Context) error
}

type alertaRepository struct{ db *gorm.DB }

func NewAlertaRepository(db *gorm.DB) AlertaRepository {
	return &alertaRepository{db: db}
}

func (r *alertaRepository) Crear(ctx context.Context, a *model.Alerta) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// Historial returns the most recent entries first: date descending, then id
// descending as the intra-day tie break.
func (r *alertaRepository) Historial(ctx context.Context, limite int) ([]FilaHistorial, error) {
	var filas []FilaHistorial
	err := r.db.WithContext(ctx).
		Table("alertas AS a").
		Select("a.id, a.fecha_alerta, i.nombre AS insumo, a.tipo, a.mensaje").
		Joins("JOIN insumos i ON a.insumo_id = i.id").
		Order("a.fecha_alerta DESC, a.id DESC").
		Limit(limite).
		Scan(&filas).Error
	return filas, err
}

func (r *alertaRepository) ExisteEnFecha(ctx context.Context, insumoID uuid.UUID, tipo string, fecha time.Time) (bool, error) {
	dia := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, time.UTC)
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Alerta{}).
		Where("insumo_id = ? AND tipo = ? AND fecha_alerta = ?", insumoID, tipo, dia).
		Count(&n).Error
	return n > 0, err
}

// LimpiarTodo deletes the whole history. Irreversible; no soft delete.
func (r *alertaRepository) LimpiarTodo(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Alerta{}).Error
}
