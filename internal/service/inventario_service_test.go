package service

import (
	"context"
	"testing"
	"time"

	"caruma/internal/clasificador"
	"caruma/internal/dto"
	"caruma/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hoyTest = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func relojFijo() time.Time { return hoyTest }

func fechaRel(dias int) *time.Time {
	t := hoyTest.AddDate(0, 0, dias)
	return &t
}

// inventarioDePrueba builds the snapshot used across the aggregation tests:
//
//	Agua   (Bebidas)       2 pzs, umbral 10            → stock bajo
//	Leche  (Lácteos)       4 pzs, caducó hace 2 días   → caducado
//	Queso  (Lácteos)       3 pzs, umbral 5, caduca +3  → stock bajo y por caducar
//	Vino   (Vinos)         0 pzs, sin umbral           → sin stock, OK
//	Pan    (sin categoría) 20 pzs, caduca +7           → por caducar (límite)
func inventarioDePrueba() *stubInsumoRepo {
	repo := newStubInsumoRepo()
	repo.agregarFila(repository.FilaInventario{Nombre: "Agua", Categoria: "Bebidas", Piezas: 2, AlertaPiezas: 10})
	repo.agregarFila(repository.FilaInventario{Nombre: "Leche", Categoria: "Lácteos", Piezas: 4, FechaCaducidad: fechaRel(-2)})
	repo.agregarFila(repository.FilaInventario{Nombre: "Queso", Categoria: "Lácteos", Piezas: 3, AlertaPiezas: 5, FechaCaducidad: fechaRel(3)})
	repo.agregarFila(repository.FilaInventario{Nombre: "Vino", Categoria: "Vinos", Piezas: 0})
	repo.agregarFila(repository.FilaInventario{Nombre: "Pan", Categoria: repository.SinCategoria, Piezas: 20, FechaCaducidad: fechaRel(7)})
	return repo
}

func nuevoInventario(repo *stubInsumoRepo) InventarioService {
	return NewInventarioServiceConReloj(repo, 7, relojFijo)
}

func TestResumenCuentaCondicionesIndependientes(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())

	r, err := svc.Resumen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, r.TotalInsumos)
	assert.Equal(t, 29, r.TotalPiezas)
	// Queso counts in both stock_bajo and por_caducar
	assert.Equal(t, 2, r.StockBajo)
	assert.Equal(t, 2, r.PorCaducar)
	assert.Equal(t, 1, r.Caducados)
}

func TestPorCategoriaConSinCategoriaAlFinal(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())

	rollup, err := svc.PorCategoria(context.Background())
	require.NoError(t, err)
	require.Len(t, rollup, 4)

	// Alphabetical, with the pseudo-category last even though "Sin" < "Vinos".
	assert.Equal(t, "Bebidas", rollup[0].Categoria)
	assert.Equal(t, "Lácteos", rollup[1].Categoria)
	assert.Equal(t, "Vinos", rollup[2].Categoria)
	assert.Equal(t, repository.SinCategoria, rollup[3].Categoria)

	assert.Equal(t, 2, rollup[1].NumInsumos)
	assert.Equal(t, 7, rollup[1].TotalPiezas)
	assert.Equal(t, 1, rollup[1].StockBajo) // Queso
	assert.Equal(t, 1, rollup[0].StockBajo) // Agua
}

func TestCompletoSinFiltroOrdenNombre(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())

	items, err := svc.Completo(context.Background(), dto.FiltroTodos, dto.OrdenNombre)
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "Agua", items[0].Nombre)
	assert.Equal(t, clasificador.EstadoStockBajo, items[0].Estado)
	assert.Equal(t, "Leche", items[1].Nombre)
	assert.Equal(t, clasificador.EstadoCaducado, items[1].Estado)
	assert.Equal(t, "Pan", items[2].Nombre)
	assert.Equal(t, clasificador.EstadoPorCaducar, items[2].Estado)
	// Queso is both low-stock and expiring; the single label follows precedence
	assert.Equal(t, clasificador.EstadoStockBajo, items[3].Estado)
	assert.Equal(t, clasificador.EstadoOK, items[4].Estado)
}

func TestCompletoFiltros(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())
	ctx := context.Background()

	nombres := func(items []dto.InventarioItemResponse) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Nombre)
		}
		return out
	}

	stockBajo, err := svc.Completo(ctx, dto.FiltroStockBajo, dto.OrdenNombre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agua", "Queso"}, nombres(stockBajo))

	// filters test the raw condition: Queso appears here too despite its
	// STOCK_BAJO label
	porCaducar, err := svc.Completo(ctx, dto.FiltroPorCaducar, dto.OrdenNombre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pan", "Queso"}, nombres(porCaducar))

	caducados, err := svc.Completo(ctx, dto.FiltroCaducados, dto.OrdenNombre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Leche"}, nombres(caducados))

	sinStock, err := svc.Completo(ctx, dto.FiltroSinStock, dto.OrdenNombre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vino"}, nombres(sinStock))
}

func TestCompletoOrdenes(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())
	ctx := context.Background()

	porPiezasDesc, err := svc.Completo(ctx, dto.FiltroTodos, dto.OrdenPiezasDesc)
	require.NoError(t, err)
	assert.Equal(t, "Pan", porPiezasDesc[0].Nombre)
	assert.Equal(t, "Vino", porPiezasDesc[4].Nombre)

	porPiezasAsc, err := svc.Completo(ctx, dto.FiltroTodos, dto.OrdenPiezasAsc)
	require.NoError(t, err)
	assert.Equal(t, "Vino", porPiezasAsc[0].Nombre)

	// expiry ascending, undated items last in name order
	porCaducidad, err := svc.Completo(ctx, dto.FiltroTodos, dto.OrdenCaducidad)
	require.NoError(t, err)
	assert.Equal(t, "Leche", porCaducidad[0].Nombre)
	assert.Equal(t, "Queso", porCaducidad[1].Nombre)
	assert.Equal(t, "Pan", porCaducidad[2].Nombre)
	assert.Equal(t, "Agua", porCaducidad[3].Nombre)
	assert.Equal(t, "Vino", porCaducidad[4].Nombre)

	porCategoria, err := svc.Completo(ctx, dto.FiltroTodos, dto.OrdenCategoria)
	require.NoError(t, err)
	assert.Equal(t, "Agua", porCategoria[0].Nombre)  // Bebidas
	assert.Equal(t, "Leche", porCategoria[1].Nombre) // Lácteos before Queso by name
	assert.Equal(t, "Queso", porCategoria[2].Nombre)
}

func TestCompletoEsIdempotente(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())
	ctx := context.Background()

	primero, err := svc.Completo(ctx, dto.FiltroTodos, dto.OrdenNombre)
	require.NoError(t, err)
	segundo, err := svc.Completo(ctx, dto.FiltroTodos, dto.OrdenNombre)
	require.NoError(t, err)
	assert.Equal(t, primero, segundo)
}

func TestStockBajoOrdenadoPorFaltante(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())

	lista, err := svc.StockBajo(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 2)

	// Agua is missing 8, Queso 2
	assert.Equal(t, "Agua", lista[0].Nombre)
	assert.Equal(t, 8, lista[0].Faltante)
	assert.Equal(t, "Queso", lista[1].Nombre)
	assert.Equal(t, 2, lista[1].Faltante)
}

func TestPorCaducarYCaducados(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())
	ctx := context.Background()

	porCaducar, err := svc.PorCaducar(ctx)
	require.NoError(t, err)
	require.Len(t, porCaducar, 2)
	assert.Equal(t, "Queso", porCaducar[0].Nombre)
	assert.Equal(t, 3, porCaducar[0].DiasRestantes)
	assert.Equal(t, "Pan", porCaducar[1].Nombre)
	assert.Equal(t, 7, porCaducar[1].DiasRestantes)

	caducados, err := svc.Caducados(ctx)
	require.NoError(t, err)
	require.Len(t, caducados, 1)
	assert.Equal(t, "Leche", caducados[0].Nombre)
	assert.Equal(t, 2, caducados[0].DiasCaducado)
}

func TestResumenAlertas(t *testing.T) {
	svc := nuevoInventario(inventarioDePrueba())

	r, err := svc.ResumenAlertas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, r.StockBajo)
	assert.Equal(t, 2, r.PorCaducar)
	assert.Equal(t, 1, r.Caducados)
	assert.Equal(t, 5, r.Total)
}

func TestMasUsadosYTotales(t *testing.T) {
	repo := inventarioDePrueba()
	repo.masUsados = []repository.FilaMasUsado{
		{Nombre: "Agua", NumServicios: 4, Piezas: 2},
		{Nombre: "Queso", NumServicios: 1, Piezas: 3},
	}
	repo.totales = []repository.FilaTotalContenido{
		{UnidadContenido: "L", Total: decimal.NewFromFloat(7.5)},
	}
	svc := nuevoInventario(repo)
	ctx := context.Background()

	masUsados, err := svc.MasUsados(ctx)
	require.NoError(t, err)
	require.Len(t, masUsados, 2)
	assert.Equal(t, "Agua", masUsados[0].Nombre)
	assert.Equal(t, 4, masUsados[0].NumServicios)

	totales, err := svc.TotalesContenido(ctx)
	require.NoError(t, err)
	require.Len(t, totales, 1)
	assert.Equal(t, "L", totales[0].UnidadContenido)
	assert.True(t, decimal.NewFromFloat(7.5).Equal(totales[0].Total))
}

func TestInventarioVacio(t *testing.T) {
	svc := nuevoInventario(newStubInsumoRepo())
	ctx := context.Background()

	r, err := svc.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.ResumenInventarioResponse{}, r)

	items, err := svc.Completo(ctx, dto.FiltroTodos, dto.OrdenNombre)
	require.NoError(t, err)
	assert.Empty(t, items)

	lista, err := svc.StockBajo(ctx)
	require.NoError(t, err)
	assert.Empty(t, lista)
}
