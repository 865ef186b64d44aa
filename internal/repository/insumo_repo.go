package repository

import (
	"context"
	"errors"
	"time"

	"caruma/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrAsociadoAServicios is returned when an insumo cannot be deleted because
// servicio_insumo links still reference it.
var ErrAsociadoAServicios = errors.New("el insumo está asociado a servicios")

// SinCategoria is the display name for insumos without a categoría.
const SinCategoria = "Sin categoría"

// FilaInventario is one joined row of the inventory snapshot the aggregation
// engine works on: insumo fields plus the resolved category name.
type FilaInventario struct {
	ID                uuid.UUID
	Nombre            string
	Categoria         string
	Piezas            int
	ContenidoPorPieza *decimal.Decimal
	UnidadContenido   *string
	FechaCaducidad    *time.Time
	AlertaPiezas      int
}

// FilaMasUsado ranks one insumo by the number of services consuming it.
type FilaMasUsado struct {
	InsumoID     uuid.UUID
	Nombre       string
	NumServicios int
	Piezas       int
}

// FilaTotalContenido sums piezas×contenido for one content unit.
type FilaTotalContenido struct {
	UnidadContenido string
	Total           decimal.Decimal
}

// InsumoRepository defines persistence operations for Insumo, including the
// joined snapshot queries the aggregation engine consumes.
type InsumoRepository interface {
	Crear(ctx context.Context, i *model.Insumo) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Insumo, error)
	Actualizar(ctx context.Context, i *model.Insumo) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	AjustarPiezas(ctx context.Context, id uuid.UUID, cantidad int, op string) (int, error)

	// ListarConCategoria returns the full joined snapshot, name ascending.
	// Search/category filters are optional refinements of the same query.
	ListarConCategoria(ctx context.Context) ([]FilaInventario, error)
	Buscar(ctx context.Context, termino string) ([]FilaInventario, error)
	ListarPorCategoria(ctx context.Context, categoriaID uuid.UUID) ([]FilaInventario, error)

	MasUsados(ctx context.Context, limite int) ([]FilaMasUsado, error)
	TotalesContenido(ctx context.Context) ([]FilaTotalContenido, error)
}

type insumoRepository struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository {
	return &insumoRepository{db: db}
}

func (r *insumoRepository) Crear(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *insumoRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *insumoRepository) Actualizar(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

// Eliminar removes an insumo and its alert-log entries in one transaction.
// Blocked while any servicio_insumo link references the insumo.
func (r *insumoRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vinculos int64
		if err := tx.Model(&model.ServicioInsumo{}).Where("insumo_id = ?", id).Count(&vinculos).Error; err != nil {
			return err
		}
		if vinculos > 0 {
			return ErrAsociadoAServicios
		}
		if err := tx.Delete(&model.Alerta{}, "insumo_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Insumo{}, "id = ?", id).Error
	})
}

// AjustarPiezas applies a stock adjustment inside a transaction and returns
// the resulting count. "subtract" clamps at zero instead of erroring.
func (r *insumoRepository) AjustarPiezas(ctx context.Context, id uuid.UUID, cantidad int, op string) (int, error) {
	var resultado int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var i model.Insumo
		if err := tx.First(&i, "id = ?", id).Error; err != nil {
			return err
		}
		switch op {
		case "add":
			i.Piezas += cantidad
		case "subtract":
			i.Piezas -= cantidad
			if i.Piezas < 0 {
				i.Piezas = 0
			}
		default: // set
			i.Piezas = cantidad
		}
		resultado = i.Piezas
		return tx.Model(&model.Insumo{}).Where("id = ?", id).Update("piezas", i.Piezas).Error
	})
	return resultado, err
}

const selectFilaInventario = `i.id, i.nombre, COALESCE(c.nombre, 'Sin categoría') AS categoria,
i.piezas, i.contenido_por_pieza, i.unidad_contenido, i.fecha_caducidad, i.alerta_piezas`

func (r *insumoRepository) filaQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("insumos AS i").
		Select(selectFilaInventario).
		Joins("LEFT JOIN categorias c ON i.categoria_id = c.id")
}

func (r *insumoRepository) ListarConCategoria(ctx context.Context) ([]FilaInventario, error) {
	var filas []FilaInventario
	err := r.filaQuery(ctx).Order("i.nombre asc").Scan(&filas).Error
	return filas, err
}

func (r *insumoRepository) Buscar(ctx context.Context, termino string) ([]FilaInventario, error) {
	var filas []FilaInventario
	patron := "%" + termino + "%"
	err := r.filaQuery(ctx).
		Where("lower(i.nombre) LIKE lower(?) OR lower(c.nombre) LIKE lower(?)", patron, patron).
		Order("i.nombre asc").
		Scan(&filas).Error
	return filas, err
}

func (r *insumoRepository) ListarPorCategoria(ctx context.Context, categoriaID uuid.UUID) ([]FilaInventario, error) {
	var filas []FilaInventario
	err := r.filaQuery(ctx).
		Where("i.categoria_id = ?", categoriaID).
		Order("i.nombre asc").
		Scan(&filas).Error
	return filas, err
}

// MasUsados ranks insumos by the number of distinct services referencing
// them. Link rows are unique per (servicio, insumo) so counting rows counts
// services. Ties break by id ascending for reproducible output.
func (r *insumoRepository) MasUsados(ctx context.Context, limite int) ([]FilaMasUsado, error) {
	var filas []FilaMasUsado
	err := r.db.WithContext(ctx).
		Table("insumos AS i").
		Select("i.id AS insumo_id, i.nombre, COUNT(si.id) AS num_servicios, i.piezas").
		Joins("JOIN servicio_insumo si ON si.insumo_id = i.id").
		Group("i.id, i.nombre, i.piezas").
		Order("num_servicios DESC, i.id ASC").
		Limit(limite).
		Scan(&filas).Error
	return filas, err
}

func (r *insumoRepository) TotalesContenido(ctx context.Context) ([]FilaTotalContenido, error) {
	var filas []FilaTotalContenido
	err := r.db.WithContext(ctx).
		Table("insumos").
		Select("unidad_contenido, SUM(piezas * COALESCE(contenido_por_pieza, 1)) AS total").
		Where("unidad_contenido IS NOT NULL").
		Group("unidad_contenido").
		Order("unidad_contenido asc").
		Scan(&filas).Error
	return filas, err
}
