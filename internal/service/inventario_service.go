package service

import (
	"context"
	"sort"
	"time"

	"caruma/internal/clasificador"
	"caruma/internal/dto"
	"caruma/internal/repository"
)

// InventarioService is the aggregation engine: it builds consolidated,
// derived views over the inventory snapshot. Views are recomputed on every
// request — nothing is cached across calls.
type InventarioService interface {
	Resumen(ctx context.Context) (dto.ResumenInventarioResponse, error)
	PorCategoria(ctx context.Context) ([]dto.CategoriaRollupResponse, error)
	Completo(ctx context.Context, filtro dto.FiltroInventario, orden dto.OrdenInventario) ([]dto.InventarioItemResponse, error)
	StockBajo(ctx context.Context) ([]dto.AlertaStockBajoResponse, error)
	PorCaducar(ctx context.Context) ([]dto.AlertaPorCaducarResponse, error)
	Caducados(ctx context.Context) ([]dto.AlertaCaducadoResponse, error)
	ResumenAlertas(ctx context.Context) (dto.ResumenAlertasResponse, error)
	MasUsados(ctx context.Context) ([]dto.MasUsadoResponse, error)
	TotalesContenido(ctx context.Context) ([]dto.TotalContenidoResponse, error)
}

const masUsadosLimite = 10

type inventarioService struct {
	repo        repository.InsumoRepository
	ventanaDias int
	ahora       func() time.Time
}

// NewInventarioService builds the engine with the configured expiry-warning
// window (days, inclusive).
func NewInventarioService(repo repository.InsumoRepository, ventanaDias int) InventarioService {
	return NewInventarioServiceConReloj(repo, ventanaDias, time.Now)
}

// NewInventarioServiceConReloj injects the clock — the test suite pins the
// as-of date with it.
func NewInventarioServiceConReloj(repo repository.InsumoRepository, ventanaDias int, ahora func() time.Time) InventarioService {
	if ventanaDias <= 0 {
		ventanaDias = clasificador.VentanaCaducidadDefault
	}
	return &inventarioService{repo: repo, ventanaDias: ventanaDias, ahora: ahora}
}

// aInsumoClasificable adapts a snapshot row to the classifier input.
func aInsumoClasificable(f repository.FilaInventario) clasificador.Insumo {
	return clasificador.Insumo{
		Piezas:         f.Piezas,
		AlertaPiezas:   f.AlertaPiezas,
		FechaCaducidad: f.FechaCaducidad,
	}
}

func (s *inventarioService) Resumen(ctx context.Context) (dto.ResumenInventarioResponse, error) {
	filas, err := s.repo.ListarConCategoria(ctx)
	if err != nil {
		return dto.ResumenInventarioResponse{}, err
	}

	hoy := s.ahora()
	var r dto.ResumenInventarioResponse
	r.TotalInsumos = len(filas)
	for _, f := range filas {
		ins := aInsumoClasificable(f)
		r.TotalPiezas += f.Piezas
		// Condition counts are independent — one item may hit several.
		if clasificador.EsStockBajo(ins) {
			r.StockBajo++
		}
		if clasificador.EsPorCaducar(ins, hoy, s.ventanaDias) {
			r.PorCaducar++
		}
		if clasificador.EsCaducado(ins, hoy) {
			r.Caducados++
		}
	}
	return r, nil
}

// PorCategoria aggregates per category, including "Sin categoría" for
// uncategorized insumos. Ordered by name ascending with the pseudo-category
// always last.
func (s *inventarioService) PorCategoria(ctx context.Context) ([]dto.CategoriaRollupResponse, error) {
	filas, err := s.repo.ListarConCategoria(ctx)
	if err != nil {
		return nil, err
	}

	grupos := make(map[string]*dto.CategoriaRollupResponse)
	for _, f := range filas {
		g, ok := grupos[f.Categoria]
		if !ok {
			g = &dto.CategoriaRollupResponse{Categoria: f.Categoria}
			grupos[f.Categoria] = g
		}
		g.NumInsumos++
		g.TotalPiezas += f.Piezas
		if clasificador.EsStockBajo(aInsumoClasificable(f)) {
			g.StockBajo++
		}
	}

	resultado := make([]dto.CategoriaRollupResponse, 0, len(grupos))
	for _, g := range grupos {
		resultado = append(resultado, *g)
	}
	sort.Slice(resultado, func(i, j int) bool {
		a, b := resultado[i].Categoria, resultado[j].Categoria
		if a == repository.SinCategoria {
			return false
		}
		if b == repository.SinCategoria {
			return true
		}
		return a < b
	})
	return resultado, nil
}

func (s *inventarioService) Completo(ctx context.Context, filtro dto.FiltroInventario, orden dto.OrdenInventario) ([]dto.InventarioItemResponse, error) {
	filas, err := s.repo.ListarConCategoria(ctx)
	if err != nil {
		return nil, err
	}
	hoy := s.ahora()

	filtradas := filas[:0:0]
	for _, f := range filas {
		if s.cumpleFiltro(f, filtro, hoy) {
			filtradas = append(filtradas, f)
		}
	}
	s.ordenar(filtradas, orden)

	resultado := make([]dto.InventarioItemResponse, 0, len(filtradas))
	for _, f := range filtradas {
		item := dto.InventarioItemResponse{
			ID:                f.ID,
			Nombre:            f.Nombre,
			Categoria:         f.Categoria,
			Piezas:            f.Piezas,
			ContenidoPorPieza: f.ContenidoPorPieza,
			UnidadContenido:   f.UnidadContenido,
			AlertaPiezas:      f.AlertaPiezas,
			Estado:            clasificador.Clasificar(aInsumoClasificable(f), hoy, s.ventanaDias),
		}
		if f.FechaCaducidad != nil {
			item.FechaCaducidad = f.FechaCaducidad.Format("2006-01-02")
		}
		resultado = append(resultado, item)
	}
	return resultado, nil
}

// cumpleFiltro applies the sub-view filters. Filters test the raw condition,
// not the consolidated label, so an expired low-stock item appears under both
// the caducados and stock_bajo filters.
func (s *inventarioService) cumpleFiltro(f repository.FilaInventario, filtro dto.FiltroInventario, hoy time.Time) bool {
	ins := aInsumoClasificable(f)
	switch filtro {
	case dto.FiltroStockBajo:
		return clasificador.EsStockBajo(ins)
	case dto.FiltroPorCaducar:
		return clasificador.EsPorCaducar(ins, hoy, s.ventanaDias)
	case dto.FiltroCaducados:
		return clasificador.EsCaducado(ins, hoy)
	case dto.FiltroSinStock:
		return f.Piezas == 0
	default:
		return true
	}
}

// ordenar sorts in place. The snapshot arrives name-ascending, so a stable
// sort keeps name order as the tie break everywhere.
func (s *inventarioService) ordenar(filas []repository.FilaInventario, orden dto.OrdenInventario) {
	switch orden {
	case dto.OrdenCategoria:
		sort.SliceStable(filas, func(i, j int) bool {
			if filas[i].Categoria != filas[j].Categoria {
				return filas[i].Categoria < filas[j].Categoria
			}
			return filas[i].Nombre < filas[j].Nombre
		})
	case dto.OrdenPiezasAsc:
		sort.SliceStable(filas, func(i, j int) bool { return filas[i].Piezas < filas[j].Piezas })
	case dto.OrdenPiezasDesc:
		sort.SliceStable(filas, func(i, j int) bool { return filas[i].Piezas > filas[j].Piezas })
	case dto.OrdenCaducidad:
		// Expiry ascending, items without a date last.
		sort.SliceStable(filas, func(i, j int) bool {
			a, b := filas[i].FechaCaducidad, filas[j].FechaCaducidad
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	default: // OrdenNombre — snapshot is already name ascending
	}
}

// StockBajo returns the low-stock tab rows, most-missing first.
func (s *inventarioService) StockBajo(ctx context.Context) ([]dto.AlertaStockBajoResponse, error) {
	filas, err := s.repo.ListarConCategoria(ctx)
	if err != nil {
		return nil, err
	}

	resultado := []dto.AlertaStockBajoResponse{}
	for _, f := range filas {
		if !clasificador.EsStockBajo(aInsumoClasificable(f)) {
			continue
		}
		faltante := f.AlertaPiezas - f.Piezas
		if faltante < 0 {
			faltante = 0
		}
		resultado = append(resultado, dto.AlertaStockBajoResponse{
			InsumoID:     f.ID,
			Nombre:       f.Nombre,
			Categoria:    f.Categoria,
			Piezas:       f.Piezas,
			AlertaPiezas: f.AlertaPiezas,
			Faltante:     faltante,
		})
	}
	sort.SliceStable(resultado, func(i, j int) bool { return resultado[i].Faltante > resultado[j].Faltante })
	return resultado, nil
}

// PorCaducar returns items inside the warning window, soonest first.
func (s *inventarioService) PorCaducar(ctx context.Context) ([]dto.AlertaPorCaducarResponse, error) {
	filas, err := s.repo.ListarConCategoria(ctx)
	if err != nil {
		return nil, err
	}
	hoy := s.ahora()

	resultado := []dto.AlertaPorCaducarResponse{}
	for _, f := range filas {
		ins := aInsumoClasificable(f)
		if !clasificador.EsPorCaducar(ins, hoy, s.ventanaDias) {
			continue
		}
		resultado = append(resultado, dto.AlertaPorCaducarResponse{
			InsumoID:       f.ID,
			Nombre:         f.Nombre,
			Categoria:      f.Categoria,
			Piezas:         f.Piezas,
			FechaCaducidad: f.FechaCaducidad.Format("2006-01-02"),
			DiasRestantes:  clasificador.DiasRestantes(ins, hoy),
		})
	}
	sort.SliceStable(resultado, func(i, j int) bool { return resultado[i].FechaCaducidad < resultado[j].FechaCaducidad })
	return resultado, nil
}

// Caducados returns already expired items, oldest expiry first.
func (s *inventarioService) Caducados(ctx context.Context) ([]dto.AlertaCaducadoResponse, error) {
	filas, err := s.repo.ListarConCategoria(ctx)
	if err != nil {
		return nil, err
	}
	hoy := s.ahora()

	resultado := []dto.AlertaCaducadoResponse{}
	for _, f := range filas {
		ins := aInsumoClasificable(f)
		if !clasificador.EsCaducado(ins, hoy) {
			continue
		}
		resultado = append(resultado, dto.AlertaCaducadoResponse{
			InsumoID:       f.ID,
			Nombre:         f.Nombre,
			Categoria:      f.Categoria,
			Piezas:         f.Piezas,
			FechaCaducidad: f.FechaCaducidad.Format("2006-01-02"),
			DiasCaducado:   clasificador.DiasCaducado(ins, hoy),
		})
	}
	sort.SliceStable(resultado, func(i, j int) bool { return resultado[i].FechaCaducidad < resultado[j].FechaCaducidad })
	return resultado, nil
}

func (s *inventarioService) ResumenAlertas(ctx context.Context) (dto.ResumenAlertasResponse, error) {
	r, err := s.Resumen(ctx)
	if err != nil {
		return dto.ResumenAlertasResponse{}, err
	}
	return dto.ResumenAlertasResponse{
		StockBajo:  r.StockBajo,
		PorCaducar: r.PorCaducar,
		Caducados:  r.Caducados,
		Total:      r.StockBajo + r.PorCaducar + r.Caducados,
	}, nil
}

func (s *inventarioService) MasUsados(ctx context.Context) ([]dto.MasUsadoResponse, error) {
	filas, err := s.repo.MasUsados(ctx, masUsadosLimite)
	if err != nil {
		return nil, err
	}
	resultado := make([]dto.MasUsadoResponse, 0, len(filas))
	for _, f := range filas {
		resultado = append(resultado, dto.MasUsadoResponse{
			InsumoID:     f.InsumoID,
			Nombre:       f.Nombre,
			NumServicios: f.NumServicios,
			Piezas:       f.Piezas,
		})
	}
	return resultado, nil
}

func (s *inventarioService) TotalesContenido(ctx context.Context) ([]dto.TotalContenidoResponse, error) {
	filas, err := s.repo.TotalesContenido(ctx)
	if err != nil {
		return nil, err
	}
	resultado := make([]dto.TotalContenidoResponse, 0, len(filas))
	for _, f := range filas {
		resultado = append(resultado, dto.TotalContenidoResponse{
			UnidadContenido: f.UnidadContenido,
			Total:           f.Total,
		})
	}
	return resultado, nil
}
