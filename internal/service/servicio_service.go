package service

import (
	"context"
	"errors"
	"strings"

	"caruma/internal/apierror"
	"caruma/internal/dto"
	"caruma/internal/model"
	"caruma/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServicioService defines business operations for services and their
// insumo links.
type ServicioService interface {
	Crear(ctx context.Context, req dto.CrearServicioRequest) (dto.ServicioResponse, error)
	Listar(ctx context.Context) ([]dto.ServicioResponse, error)
	Buscar(ctx context.Context, termino string) ([]dto.ServicioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.ServicioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (dto.ServicioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	AgregarInsumo(ctx context.Context, servicioID uuid.UUID, req dto.AgregarInsumoServicioRequest) (dto.InsumoServicioResponse, error)
	ActualizarInsumo(ctx context.Context, servicioID, vinculoID uuid.UUID, req dto.ActualizarInsumoServicioRequest) (dto.InsumoServicioResponse, error)
	QuitarInsumo(ctx context.Context, servicioID, vinculoID uuid.UUID) error
	ListarInsumos(ctx context.Context, servicioID uuid.UUID) ([]dto.InsumoServicioResponse, error)
}

type servicioService struct {
	repo    repository.ServicioRepository
	insumos repository.InsumoRepository
}

func NewServicioService(repo repository.ServicioRepository, insumos repository.InsumoRepository) ServicioService {
	return &servicioService{repo: repo, insumos: insumos}
}

func mapFilaServicio(f repository.FilaServicio) dto.ServicioResponse {
	return dto.ServicioResponse{ID: f.ID, Nombre: f.Nombre, NumInsumos: f.NumInsumos}
}

func mapVinculo(f repository.FilaVinculo) dto.InsumoServicioResponse {
	return dto.InsumoServicioResponse{
		ID:                   f.ID,
		InsumoID:             f.InsumoID,
		InsumoNombre:         f.InsumoNombre,
		PiezasPorServicio:    f.PiezasPorServicio,
		ContenidoPorServicio: f.ContenidoPorServicio,
		UnidadContenido:      f.UnidadContenido,
	}
}

func (s *servicioService) Crear(ctx context.Context, req dto.CrearServicioRequest) (dto.ServicioResponse, error) {
	nombre, err := validarNombre(req.Nombre)
	if err != nil {
		return dto.ServicioResponse{}, err
	}

	existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ServicioResponse{}, err
	}
	if existente != nil {
		return dto.ServicioResponse{}, apierror.NewValidacion("ya existe un servicio con ese nombre")
	}

	sv := &model.Servicio{Nombre: nombre}
	if err := s.repo.Crear(ctx, sv); err != nil {
		return dto.ServicioResponse{}, err
	}
	return dto.ServicioResponse{ID: sv.ID, Nombre: sv.Nombre}, nil
}

func (s *servicioService) Listar(ctx context.Context) ([]dto.ServicioResponse, error) {
	filas, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ServicioResponse, 0, len(filas))
	for _, f := range filas {
		result = append(result, mapFilaServicio(f))
	}
	return result, nil
}

func (s *servicioService) Buscar(ctx context.Context, termino string) ([]dto.ServicioResponse, error) {
	filas, err := s.repo.Buscar(ctx, strings.TrimSpace(termino))
	if err != nil {
		return nil, err
	}
	result := make([]dto.ServicioResponse, 0, len(filas))
	for _, f := range filas {
		result = append(result, mapFilaServicio(f))
	}
	return result, nil
}

func (s *servicioService) Obtener(ctx context.Context, id uuid.UUID) (dto.ServicioResponse, error) {
	sv, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ServicioResponse{}, apierror.ErrNoEncontrado
		}
		return dto.ServicioResponse{}, err
	}
	vinculos, err := s.repo.ListarVinculos(ctx, id)
	if err != nil {
		return dto.ServicioResponse{}, err
	}
	return dto.ServicioResponse{ID: sv.ID, Nombre: sv.Nombre, NumInsumos: len(vinculos)}, nil
}

func (s *servicioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (dto.ServicioResponse, error) {
	nombre, err := validarNombre(req.Nombre)
	if err != nil {
		return dto.ServicioResponse{}, err
	}

	sv, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ServicioResponse{}, apierror.ErrNoEncontrado
		}
		return dto.ServicioResponse{}, err
	}

	if !strings.EqualFold(nombre, sv.Nombre) {
		existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ServicioResponse{}, err
		}
		if existente != nil && existente.ID != id {
			return dto.ServicioResponse{}, apierror.NewValidacion("ya existe un servicio con ese nombre")
		}
	}
	sv.Nombre = nombre

	if err := s.repo.Actualizar(ctx, sv); err != nil {
		return dto.ServicioResponse{}, err
	}
	return s.Obtener(ctx, id)
}

// Eliminar removes the servicio along with its links. Links never block the
// delete; they belong to the servicio.
func (s *servicioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNoEncontrado
		}
		return err
	}
	return s.repo.Eliminar(ctx, id)
}

// AgregarInsumo links an insumo to the servicio. One link per pair.
func (s *servicioService) AgregarInsumo(ctx context.Context, servicioID uuid.UUID, req dto.AgregarInsumoServicioRequest) (dto.InsumoServicioResponse, error) {
	if _, err := s.repo.ObtenerPorID(ctx, servicioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InsumoServicioResponse{}, apierror.ErrNoEncontrado
		}
		return dto.InsumoServicioResponse{}, err
	}
	ins, err := s.insumos.ObtenerPorID(ctx, req.InsumoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InsumoServicioResponse{}, apierror.NewValidacion("el insumo indicado no existe")
		}
		return dto.InsumoServicioResponse{}, err
	}

	v := &model.ServicioInsumo{
		ServicioID:           servicioID,
		InsumoID:             req.InsumoID,
		PiezasPorServicio:    req.PiezasPorServicio,
		ContenidoPorServicio: req.ContenidoPorServicio,
		UnidadContenido:      req.UnidadContenido,
	}
	if err := s.repo.AgregarVinculo(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVinculoDuplicado) {
			return dto.InsumoServicioResponse{}, apierror.NewValidacion("el insumo ya está agregado al servicio")
		}
		return dto.InsumoServicioResponse{}, err
	}
	return dto.InsumoServicioResponse{
		ID:                   v.ID,
		InsumoID:             v.InsumoID,
		InsumoNombre:         ins.Nombre,
		PiezasPorServicio:    v.PiezasPorServicio,
		ContenidoPorServicio: v.ContenidoPorServicio,
		UnidadContenido:      v.UnidadContenido,
	}, nil
}

func (s *servicioService) ActualizarInsumo(ctx context.Context, servicioID, vinculoID uuid.UUID, req dto.ActualizarInsumoServicioRequest) (dto.InsumoServicioResponse, error) {
	v, err := s.repo.ObtenerVinculo(ctx, vinculoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InsumoServicioResponse{}, apierror.ErrNoEncontrado
		}
		return dto.InsumoServicioResponse{}, err
	}
	if v.ServicioID != servicioID {
		return dto.InsumoServicioResponse{}, apierror.ErrNoEncontrado
	}

	v.PiezasPorServicio = req.PiezasPorServicio
	v.ContenidoPorServicio = req.ContenidoPorServicio
	v.UnidadContenido = req.UnidadContenido
	if err := s.repo.ActualizarVinculo(ctx, v); err != nil {
		return dto.InsumoServicioResponse{}, err
	}

	ins, err := s.insumos.ObtenerPorID(ctx, v.InsumoID)
	if err != nil {
		return dto.InsumoServicioResponse{}, err
	}
	return dto.InsumoServicioResponse{
		ID:                   v.ID,
		InsumoID:             v.InsumoID,
		InsumoNombre:         ins.Nombre,
		PiezasPorServicio:    v.PiezasPorServicio,
		ContenidoPorServicio: v.ContenidoPorServicio,
		UnidadContenido:      v.UnidadContenido,
	}, nil
}

func (s *servicioService) QuitarInsumo(ctx context.Context, servicioID, vinculoID uuid.UUID) error {
	v, err := s.repo.ObtenerVinculo(ctx, vinculoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNoEncontrado
		}
		return err
	}
	if v.ServicioID != servicioID {
		return apierror.ErrNoEncontrado
	}
	return s.repo.EliminarVinculo(ctx, vinculoID)
}

func (s *servicioService) ListarInsumos(ctx context.Context, servicioID uuid.UUID) ([]dto.InsumoServicioResponse, error) {
	if _, err := s.repo.ObtenerPorID(ctx, servicioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNoEncontrado
		}
		return nil, err
	}
	filas, err := s.repo.ListarVinculos(ctx, servicioID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InsumoServicioResponse, 0, len(filas))
	for _, f := range filas {
		result = append(result, mapVinculo(f))
	}
	return result, nil
}
