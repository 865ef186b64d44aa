package repository

import (
	"context"
	"errors"

	"caruma/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTieneInsumos is returned when a categoría cannot be deleted because
// insumos still reference it.
var ErrTieneInsumos = errors.New("la categoría tiene insumos asociados")

// CategoriaRepository defines persistence operations for Categoria.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	Listar(ctx context.Context) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	Actualizar(ctx context.Context, c *model.Categoria) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	Buscar(ctx context.Context, termino string) ([]model.Categoria, error)
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepository) Listar(ctx context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) Actualizar(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Eliminar removes a categoría only if no insumo references it. Check and
// delete run inside one transaction so a concurrent insert cannot slip
// between them.
func (r *categoriaRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dependientes int64
		if err := tx.Model(&model.Insumo{}).Where("categoria_id = ?", id).Count(&dependientes).Error; err != nil {
			return err
		}
		if dependientes > 0 {
			return ErrTieneInsumos
		}
		return tx.Delete(&model.Categoria{}, "id = ?", id).Error
	})
}

func (r *categoriaRepository) Buscar(ctx context.Context, termino string) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).
		Where("lower(nombre) LIKE lower(?)", "%"+termino+"%").
		Order("nombre asc").
		Find(&list).Error
	return list, err
}
