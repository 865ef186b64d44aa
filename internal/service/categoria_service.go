package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"caruma/internal/apierror"
	"caruma/internal/dto"
	"caruma/internal/model"
	"caruma/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	nombreMin = 2
	nombreMax = 50
)

// validarNombre trims and length-checks an entity name shared by categorías,
// insumos and servicios. Returns the cleaned name.
func validarNombre(nombre string) (string, error) {
	limpio := strings.TrimSpace(nombre)
	if n := utf8.RuneCountInString(limpio); n < nombreMin || n > nombreMax {
		return "", apierror.NewValidacion(fmt.Sprintf("el nombre debe tener entre %d y %d caracteres", nombreMin, nombreMax))
	}
	return limpio, nil
}

// CategoriaService defines business operations for supply categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Buscar(ctx context.Context, termino string) ([]dto.CategoriaResponse, error)
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	nombre, err := validarNombre(req.Nombre)
	if err != nil {
		return dto.CategoriaResponse{}, err
	}

	// Names are unique case-insensitively.
	existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoriaResponse{}, err
	}
	if existente != nil {
		return dto.CategoriaResponse{}, apierror.NewValidacion("ya existe una categoría con ese nombre")
	}

	c := &model.Categoria{Nombre: nombre}
	if err := s.repo.Crear(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) Obtener(ctx context.Context, id uuid.UUID) (dto.CategoriaResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoriaResponse{}, apierror.ErrNoEncontrado
		}
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	nombre, err := validarNombre(req.Nombre)
	if err != nil {
		return dto.CategoriaResponse{}, err
	}

	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoriaResponse{}, apierror.ErrNoEncontrado
		}
		return dto.CategoriaResponse{}, err
	}

	if !strings.EqualFold(nombre, c.Nombre) {
		existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoriaResponse{}, err
		}
		if existente != nil && existente.ID != id {
			return dto.CategoriaResponse{}, apierror.NewValidacion("ya existe una categoría con ese nombre")
		}
	}
	c.Nombre = nombre

	if err := s.repo.Actualizar(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

// Eliminar rejects the delete while insumos still reference the categoría.
func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNoEncontrado
		}
		return err
	}
	err := s.repo.Eliminar(ctx, id)
	if errors.Is(err, repository.ErrTieneInsumos) {
		return apierror.NewConflicto("no se puede eliminar: la categoría tiene insumos asociados")
	}
	return err
}

func (s *categoriaService) Buscar(ctx context.Context, termino string) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Buscar(ctx, strings.TrimSpace(termino))
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}
