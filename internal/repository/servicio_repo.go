package repository

import (
	"context"
	"errors"

	"caruma/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrVinculoDuplicado is returned when a (servicio, insumo) link already exists.
var ErrVinculoDuplicado = errors.New("el insumo ya está agregado al servicio")

// FilaServicio is a servicio row with its link count.
type FilaServicio struct {
	ID         uuid.UUID
	Nombre     string
	NumInsumos int
}

// FilaVinculo is one servicio_insumo link joined with the insumo name.
type FilaVinculo struct {
	ID                   uuid.UUID
	InsumoID             uuid.UUID
	InsumoNombre         string
	PiezasPorServicio    *decimal.Decimal
	ContenidoPorServicio *decimal.Decimal
	UnidadContenido      *string
}

// ServicioRepository defines persistence for servicios and their insumo links.
type ServicioRepository interface {
	Crear(ctx context.Context, s *model.Servicio) error
	Listar(ctx context.Context) ([]FilaServicio, error)
	Buscar(ctx context.Context, termino string) ([]FilaServicio, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Servicio, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Servicio, error)
	Actualizar(ctx context.Context, s *model.Servicio) error
	Eliminar(ctx context.Context, id uuid.UUID) error

	AgregarVinculo(ctx context.Context, v *model.ServicioInsumo) error
	ObtenerVinculo(ctx context.Context, id uuid.UUID) (*model.ServicioInsumo, error)
	ActualizarVinculo(ctx context.Context, v *model.ServicioInsumo) error
	EliminarVinculo(ctx context.Context, id uuid.UUID) error
	ListarVinculos(ctx context.Context, servicioID uuid.UUID) ([]FilaVinculo, error)
}

type servicioRepository struct{ db *gorm.DB }

func NewServicioRepository(db *gorm.DB) ServicioRepository {
	return &servicioRepository{db: db}
}

func (r *servicioRepository) Crear(ctx context.Context, s *model.Servicio) error {
	return r.db.WithContext(ctx).Create(s).Error
}

const selectFilaServicio = `s.id, s.nombre,
(SELECT COUNT(*) FROM servicio_insumo si WHERE si.servicio_id = s.id) AS num_insumos`

func (r *servicioRepository) Listar(ctx context.Context) ([]FilaServicio, error) {
	var filas []FilaServicio
	err := r.db.WithContext(ctx).
		Table("servicios AS s").
		Select(selectFilaServicio).
		Order("s.nombre asc").
		Scan(&filas).Error
	return filas, err
}

func (r *servicioRepository) Buscar(ctx context.Context, termino string) ([]FilaServicio, error) {
	var filas []FilaServicio
	err := r.db.WithContext(ctx).
		Table("servicios AS s").
		Select(selectFilaServicio).
		Where("lower(s.nombre) LIKE lower(?)", "%"+termino+"%").
		Order("s.nombre asc").
		Scan(&filas).Error
	return filas, err
}

func (r *servicioRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Servicio, error) {
	var s model.Servicio
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *servicioRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Servicio, error) {
	var s model.Servicio
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *servicioRepository) Actualizar(ctx context.Context, s *model.Servicio) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Eliminar removes a servicio and cascades to its links in one transaction.
func (r *servicioRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ServicioInsumo{}, "servicio_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Servicio{}, "id = ?", id).Error
	})
}

// AgregarVinculo inserts a link, rejecting duplicates for the same
// (servicio, insumo) pair. The existence check and the insert share one
// transaction; the unique index backs the check against races.
func (r *servicioRepository) AgregarVinculo(ctx context.Context, v *model.ServicioInsumo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existentes int64
		err := tx.Model(&model.ServicioInsumo{}).
			Where("servicio_id = ? AND insumo_id = ?", v.ServicioID, v.InsumoID).
			Count(&existentes).Error
		if err != nil {
			return err
		}
		if existentes > 0 {
			return ErrVinculoDuplicado
		}
		return tx.Create(v).Error
	})
}

func (r *servicioRepository) ObtenerVinculo(ctx context.Context, id uuid.UUID) (*model.ServicioInsumo, error) {
	var v model.ServicioInsumo
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *servicioRepository) ActualizarVinculo(ctx context.Context, v *model.ServicioInsumo) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *servicioRepository) EliminarVinculo(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ServicioInsumo{}, "id = ?", id).Error
}

func (r *servicioRepository) ListarVinculos(ctx context.Context, servicioID uuid.UUID) ([]FilaVinculo, error) {
	var filas []FilaVinculo
	err := r.db.WithContext(ctx).
		Table("servicio_insumo AS si").
		Select(`si.id, i.id AS insumo_id, i.nombre AS insumo_nombre,
si.piezas_por_servicio, si.contenido_por_servicio, si.unidad_contenido`).
		Joins("JOIN insumos i ON si.insumo_id = i.id").
		Where("si.servicio_id = ?", servicioID).
		Order("i.nombre asc").
		Scan(&filas).Error
	return filas, err
}
