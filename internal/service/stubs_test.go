package service

// In-memory repository stubs shared by the service tests. They mirror the
// ordering contracts of the real repositories (name-ascending snapshots,
// date-then-id descending history) so services can be tested without a DB.

import (
	"context"
	"sort"
	"strings"
	"time"

	"caruma/internal/model"
	"caruma/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── CategoriaRepository stub ─────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
	// insumosPorCategoria feeds the delete guard.
	insumosPorCategoria map[uuid.UUID]int
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{
		categorias:          make(map[uuid.UUID]*model.Categoria),
		insumosPorCategoria: make(map[uuid.UUID]int),
	}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.categorias[c.ID] = &cloned
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context) ([]model.Categoria, error) {
	list := make([]model.Categoria, 0, len(r.categorias))
	for _, c := range r.categorias {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nombre < list[j].Nombre })
	return list, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if strings.EqualFold(c.Nombre, nombre) {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	cloned := *c
	r.categorias[c.ID] = &cloned
	return nil
}

func (r *stubCategoriaRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if r.insumosPorCategoria[id] > 0 {
		return repository.ErrTieneInsumos
	}
	delete(r.categorias, id)
	return nil
}

func (r *stubCategoriaRepo) Buscar(_ context.Context, termino string) ([]model.Categoria, error) {
	var list []model.Categoria
	for _, c := range r.categorias {
		if strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(termino)) {
			list = append(list, *c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nombre < list[j].Nombre })
	return list, nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── InsumoRepository stub ────────────────────────────────────────────────────

type stubInsumoRepo struct {
	insumos   map[uuid.UUID]*model.Insumo
	filas     []repository.FilaInventario
	masUsados []repository.FilaMasUsado
	totales   []repository.FilaTotalContenido
	vinculos  map[uuid.UUID]int // insumo → number of service links
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{
		insumos:  make(map[uuid.UUID]*model.Insumo),
		vinculos: make(map[uuid.UUID]int),
	}
}

// agregarFila registers a snapshot row (and a matching model) in one call.
func (r *stubInsumoRepo) agregarFila(f repository.FilaInventario) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.filas = append(r.filas, f)
	r.insumos[f.ID] = &model.Insumo{
		ID:             f.ID,
		Nombre:         f.Nombre,
		Piezas:         f.Piezas,
		FechaCaducidad: f.FechaCaducidad,
		AlertaPiezas:   f.AlertaPiezas,
	}
}

func (r *stubInsumoRepo) Crear(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	cloned := *i
	r.insumos[i.ID] = &cloned
	return nil
}

func (r *stubInsumoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *i
	return &cloned, nil
}

func (r *stubInsumoRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Insumo, error) {
	for _, i := range r.insumos {
		if strings.EqualFold(i.Nombre, nombre) {
			cloned := *i
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInsumoRepo) Actualizar(_ context.Context, i *model.Insumo) error {
	cloned := *i
	r.insumos[i.ID] = &cloned
	return nil
}

func (r *stubInsumoRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if r.vinculos[id] > 0 {
		return repository.ErrAsociadoAServicios
	}
	delete(r.insumos, id)
	return nil
}

func (r *stubInsumoRepo) AjustarPiezas(_ context.Context, id uuid.UUID, cantidad int, op string) (int, error) {
	i, ok := r.insumos[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	switch op {
	case "add":
		i.Piezas += cantidad
	case "subtract":
		i.Piezas -= cantidad
		if i.Piezas < 0 {
			i.Piezas = 0
		}
	default:
		i.Piezas = cantidad
	}
	return i.Piezas, nil
}

func (r *stubInsumoRepo) ListarConCategoria(_ context.Context) ([]repository.FilaInventario, error) {
	filas := make([]repository.FilaInventario, len(r.filas))
	copy(filas, r.filas)
	sort.Slice(filas, func(i, j int) bool { return filas[i].Nombre < filas[j].Nombre })
	return filas, nil
}

func (r *stubInsumoRepo) Buscar(_ context.Context, termino string) ([]repository.FilaInventario, error) {
	var filas []repository.FilaInventario
	t := strings.ToLower(termino)
	for _, f := range r.filas {
		if strings.Contains(strings.ToLower(f.Nombre), t) || strings.Contains(strings.ToLower(f.Categoria), t) {
			filas = append(filas, f)
		}
	}
	sort.Slice(filas, func(i, j int) bool { return filas[i].Nombre < filas[j].Nombre })
	return filas, nil
}

func (r *stubInsumoRepo) ListarPorCategoria(_ context.Context, _ uuid.UUID) ([]repository.FilaInventario, error) {
	return r.ListarConCategoria(context.Background())
}

func (r *stubInsumoRepo) MasUsados(_ context.Context, limite int) ([]repository.FilaMasUsado, error) {
	if len(r.masUsados) > limite {
		return r.masUsados[:limite], nil
	}
	return r.masUsados, nil
}

func (r *stubInsumoRepo) TotalesContenido(_ context.Context) ([]repository.FilaTotalContenido, error) {
	return r.totales, nil
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

// ── AlertaRepository stub ────────────────────────────────────────────────────

type stubAlertaRepo struct {
	alertas []model.Alerta
	nombres map[uuid.UUID]string // insumo id → nombre for the history join
}

func newStubAlertaRepo() *stubAlertaRepo {
	return &stubAlertaRepo{nombres: make(map[uuid.UUID]string)}
}

func (r *stubAlertaRepo) Crear(_ context.Context, a *model.Alerta) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.alertas = append(r.alertas, *a)
	return nil
}

func (r *stubAlertaRepo) Historial(_ context.Context, limite int) ([]repository.FilaHistorial, error) {
	ordenadas := make([]model.Alerta, len(r.alertas))
	copy(ordenadas, r.alertas)
	sort.Slice(ordenadas, func(i, j int) bool {
		if !ordenadas[i].FechaAlerta.Equal(ordenadas[j].FechaAlerta) {
			return ordenadas[i].FechaAlerta.After(ordenadas[j].FechaAlerta)
		}
		return ordenadas[i].ID.String() > ordenadas[j].ID.String()
	})
	if len(ordenadas) > limite {
		ordenadas = ordenadas[:limite]
	}
	filas := make([]repository.FilaHistorial, 0, len(ordenadas))
	for _, a := range ordenadas {
		filas = append(filas, repository.FilaHistorial{
			ID:          a.ID,
			FechaAlerta: a.FechaAlerta,
			Insumo:      r.nombres[a.InsumoID],
			Tipo:        a.Tipo,
			Mensaje:     a.Mensaje,
		})
	}
	return filas, nil
}

func (r *stubAlertaRepo) ExisteEnFecha(_ context.Context, insumoID uuid.UUID, tipo string, fecha time.Time) (bool, error) {
	dia := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, time.UTC)
	for _, a := range r.alertas {
		if a.InsumoID == insumoID && a.Tipo == tipo && a.FechaAlerta.Equal(dia) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAlertaRepo) LimpiarTodo(_ context.Context) error {
	r.alertas = nil
	return nil
}

var _ repository.AlertaRepository = (*stubAlertaRepo)(nil)

// ── ServicioRepository stub ──────────────────────────────────────────────────

type stubServicioRepo struct {
	servicios map[uuid.UUID]*model.Servicio
	vinculos  map[uuid.UUID]*model.ServicioInsumo
	// insumoNombres feeds the link listing join.
	insumoNombres map[uuid.UUID]string
}

func newStubServicioRepo() *stubServicioRepo {
	return &stubServicioRepo{
		servicios:     make(map[uuid.UUID]*model.Servicio),
		vinculos:      make(map[uuid.UUID]*model.ServicioInsumo),
		insumoNombres: make(map[uuid.UUID]string),
	}
}

func (r *stubServicioRepo) Crear(_ context.Context, s *model.Servicio) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cloned := *s
	r.servicios[s.ID] = &cloned
	return nil
}

func (r *stubServicioRepo) Listar(_ context.Context) ([]repository.FilaServicio, error) {
	filas := make([]repository.FilaServicio, 0, len(r.servicios))
	for _, s := range r.servicios {
		filas = append(filas, repository.FilaServicio{ID: s.ID, Nombre: s.Nombre, NumInsumos: r.numVinculos(s.ID)})
	}
	sort.Slice(filas, func(i, j int) bool { return filas[i].Nombre < filas[j].Nombre })
	return filas, nil
}

func (r *stubServicioRepo) Buscar(_ context.Context, termino string) ([]repository.FilaServicio, error) {
	todas, _ := r.Listar(context.Background())
	var filas []repository.FilaServicio
	for _, f := range todas {
		if strings.Contains(strings.ToLower(f.Nombre), strings.ToLower(termino)) {
			filas = append(filas, f)
		}
	}
	return filas, nil
}

func (r *stubServicioRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Servicio, error) {
	s, ok := r.servicios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *s
	return &cloned, nil
}

func (r *stubServicioRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Servicio, error) {
	for _, s := range r.servicios {
		if strings.EqualFold(s.Nombre, nombre) {
			cloned := *s
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubServicioRepo) Actualizar(_ context.Context, s *model.Servicio) error {
	cloned := *s
	r.servicios[s.ID] = &cloned
	return nil
}

func (r *stubServicioRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	for vid, v := range r.vinculos {
		if v.ServicioID == id {
			delete(r.vinculos, vid)
		}
	}
	delete(r.servicios, id)
	return nil
}

func (r *stubServicioRepo) AgregarVinculo(_ context.Context, v *model.ServicioInsumo) error {
	for _, existente := range r.vinculos {
		if existente.ServicioID == v.ServicioID && existente.InsumoID == v.InsumoID {
			return repository.ErrVinculoDuplicado
		}
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	cloned := *v
	r.vinculos[v.ID] = &cloned
	return nil
}

func (r *stubServicioRepo) ObtenerVinculo(_ context.Context, id uuid.UUID) (*model.ServicioInsumo, error) {
	v, ok := r.vinculos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *v
	return &cloned, nil
}

func (r *stubServicioRepo) ActualizarVinculo(_ context.Context, v *model.ServicioInsumo) error {
	cloned := *v
	r.vinculos[v.ID] = &cloned
	return nil
}

func (r *stubServicioRepo) EliminarVinculo(_ context.Context, id uuid.UUID) error {
	delete(r.vinculos, id)
	return nil
}

func (r *stubServicioRepo) ListarVinculos(_ context.Context, servicioID uuid.UUID) ([]repository.FilaVinculo, error) {
	var filas []repository.FilaVinculo
	for _, v := range r.vinculos {
		if v.ServicioID != servicioID {
			continue
		}
		filas = append(filas, repository.FilaVinculo{
			ID:                   v.ID,
			InsumoID:             v.InsumoID,
			InsumoNombre:         r.insumoNombres[v.InsumoID],
			PiezasPorServicio:    v.PiezasPorServicio,
			ContenidoPorServicio: v.ContenidoPorServicio,
			UnidadContenido:      v.UnidadContenido,
		})
	}
	sort.Slice(filas, func(i, j int) bool { return filas[i].InsumoNombre < filas[j].InsumoNombre })
	return filas, nil
}

func (r *stubServicioRepo) numVinculos(servicioID uuid.UUID) int {
	n := 0
	for _, v := range r.vinculos {
		if v.ServicioID == servicioID {
			n++
		}
	}
	return n
}

var _ repository.ServicioRepository = (*stubServicioRepo)(nil)
