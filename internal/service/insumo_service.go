package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"caruma/internal/apierror"
	"caruma/internal/dto"
	"caruma/internal/model"
	"caruma/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsumoService defines business operations for supply items.
type InsumoService interface {
	Crear(ctx context.Context, req dto.CrearInsumoRequest) (dto.InsumoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.InsumoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (dto.InsumoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (dto.InsumoResponse, error)
	Buscar(ctx context.Context, termino string) ([]dto.InsumoResponse, error)
	ListarPorCategoria(ctx context.Context, categoriaID uuid.UUID) ([]dto.InsumoResponse, error)
	UnidadesSugeridas() []string
}

type insumoService struct {
	repo       repository.InsumoRepository
	categorias repository.CategoriaRepository
}

func NewInsumoService(repo repository.InsumoRepository, categorias repository.CategoriaRepository) InsumoService {
	return &insumoService{repo: repo, categorias: categorias}
}

// parseFechaCaducidad accepts YYYY-MM-DD or empty (no expiry tracking).
func parseFechaCaducidad(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, apierror.NewValidacion("fecha de caducidad inválida, use el formato AAAA-MM-DD")
	}
	return &t, nil
}

func mapInsumo(i model.Insumo, categoria string) dto.InsumoResponse {
	r := dto.InsumoResponse{
		ID:                i.ID,
		Nombre:            i.Nombre,
		CategoriaID:       i.CategoriaID,
		Categoria:         categoria,
		Piezas:            i.Piezas,
		ContenidoPorPieza: i.ContenidoPorPieza,
		UnidadContenido:   i.UnidadContenido,
		AlertaPiezas:      i.AlertaPiezas,
	}
	if i.FechaCaducidad != nil {
		r.FechaCaducidad = i.FechaCaducidad.Format("2006-01-02")
	}
	return r
}

func mapFilaInsumo(f repository.FilaInventario) dto.InsumoResponse {
	r := dto.InsumoResponse{
		ID:                f.ID,
		Nombre:            f.Nombre,
		Categoria:         f.Categoria,
		Piezas:            f.Piezas,
		ContenidoPorPieza: f.ContenidoPorPieza,
		UnidadContenido:   f.UnidadContenido,
		AlertaPiezas:      f.AlertaPiezas,
	}
	if f.FechaCaducidad != nil {
		r.FechaCaducidad = f.FechaCaducidad.Format("2006-01-02")
	}
	return r
}

// resolverCategoria validates an optional categoría reference and returns its
// display name.
func (s *insumoService) resolverCategoria(ctx context.Context, id *uuid.UUID) (string, error) {
	if id == nil {
		return repository.SinCategoria, nil
	}
	c, err := s.categorias.ObtenerPorID(ctx, *id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierror.NewValidacion("la categoría indicada no existe")
		}
		return "", err
	}
	return c.Nombre, nil
}

func (s *insumoService) Crear(ctx context.Context, req dto.CrearInsumoRequest) (dto.InsumoResponse, error) {
	nombre, err := validarNombre(req.Nombre)
	if err != nil {
		return dto.InsumoResponse{}, err
	}
	fecha, err := parseFechaCaducidad(req.FechaCaducidad)
	if err != nil {
		return dto.InsumoResponse{}, err
	}
	categoria, err := s.resolverCategoria(ctx, req.CategoriaID)
	if err != nil {
		return dto.InsumoResponse{}, err
	}

	existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.InsumoResponse{}, err
	}
	if existente != nil {
		return dto.InsumoResponse{}, apierror.NewValidacion("ya existe un insumo con ese nombre")
	}

	i := &model.Insumo{
		Nombre:            nombre,
		CategoriaID:       req.CategoriaID,
		Piezas:            req.Piezas,
		ContenidoPorPieza: req.ContenidoPorPieza,
		UnidadContenido:   req.UnidadContenido,
		FechaCaducidad:    fecha,
		AlertaPiezas:      req.AlertaPiezas,
	}
	if err := s.repo.Crear(ctx, i); err != nil {
		return dto.InsumoResponse{}, err
	}
	return mapInsumo(*i, categoria), nil
}

func (s *insumoService) Obtener(ctx context.Context, id uuid.UUID) (dto.InsumoResponse, error) {
	i, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InsumoResponse{}, apierror.ErrNoEncontrado
		}
		return dto.InsumoResponse{}, err
	}
	categoria, err := s.resolverCategoria(ctx, i.CategoriaID)
	if err != nil {
		return dto.InsumoResponse{}, err
	}
	return mapInsumo(*i, categoria), nil
}

func (s *insumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (dto.InsumoResponse, error) {
	nombre, err := validarNombre(req.Nombre)
	if err != nil {
		return dto.InsumoResponse{}, err
	}
	fecha, err := parseFechaCaducidad(req.FechaCaducidad)
	if err != nil {
		return dto.InsumoResponse{}, err
	}
	categoria, err := s.resolverCategoria(ctx, req.CategoriaID)
	if err != nil {
		return dto.InsumoResponse{}, err
	}

	i, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InsumoResponse{}, apierror.ErrNoEncontrado
		}
		return dto.InsumoResponse{}, err
	}

	if !strings.EqualFold(nombre, i.Nombre) {
		existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InsumoResponse{}, err
		}
		if existente != nil && existente.ID != id {
			return dto.InsumoResponse{}, apierror.NewValidacion("ya existe un insumo con ese nombre")
		}
	}

	i.Nombre = nombre
	i.CategoriaID = req.CategoriaID
	i.Piezas = req.Piezas
	i.ContenidoPorPieza = req.ContenidoPorPieza
	i.UnidadContenido = req.UnidadContenido
	i.FechaCaducidad = fecha
	i.AlertaPiezas = req.AlertaPiezas

	if err := s.repo.Actualizar(ctx, i); err != nil {
		return dto.InsumoResponse{}, err
	}
	return mapInsumo(*i, categoria), nil
}

// Eliminar rejects the delete while servicios still reference the insumo.
// Alert-log entries of the insumo are removed with it.
func (s *insumoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNoEncontrado
		}
		return err
	}
	err := s.repo.Eliminar(ctx, id)
	if errors.Is(err, repository.ErrAsociadoAServicios) {
		return apierror.NewConflicto("no se puede eliminar: el insumo está asociado a servicios")
	}
	return err
}

// AjustarStock applies a set/add/subtract adjustment. Subtract clamps at zero.
func (s *insumoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (dto.InsumoResponse, error) {
	if _, err := s.repo.AjustarPiezas(ctx, id, req.Cantidad, req.Operacion); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InsumoResponse{}, apierror.ErrNoEncontrado
		}
		return dto.InsumoResponse{}, err
	}
	return s.Obtener(ctx, id)
}

func (s *insumoService) Buscar(ctx context.Context, termino string) ([]dto.InsumoResponse, error) {
	filas, err := s.repo.Buscar(ctx, strings.TrimSpace(termino))
	if err != nil {
		return nil, err
	}
	result := make([]dto.InsumoResponse, 0, len(filas))
	for _, f := range filas {
		result = append(result, mapFilaInsumo(f))
	}
	return result, nil
}

func (s *insumoService) ListarPorCategoria(ctx context.Context, categoriaID uuid.UUID) ([]dto.InsumoResponse, error) {
	filas, err := s.repo.ListarPorCategoria(ctx, categoriaID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InsumoResponse, 0, len(filas))
	for _, f := range filas {
		result = append(result, mapFilaInsumo(f))
	}
	return result, nil
}

// UnidadesSugeridas returns the content units offered by the capture form.
func (s *insumoService) UnidadesSugeridas() []string {
	return model.UnidadesSugeridas
}
