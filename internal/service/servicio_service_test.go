package service

import (
	"context"
	"errors"
	"testing"

	"caruma/internal/apierror"
	"caruma/internal/dto"
	"caruma/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoServicioService() (ServicioService, *stubServicioRepo, *stubInsumoRepo) {
	servicios := newStubServicioRepo()
	insumos := newStubInsumoRepo()
	return NewServicioService(servicios, insumos), servicios, insumos
}

func crearInsumoDePrueba(t *testing.T, servicios *stubServicioRepo, insumos *stubInsumoRepo, nombre string) uuid.UUID {
	t.Helper()
	i := &model.Insumo{Nombre: nombre}
	require.NoError(t, insumos.Crear(context.Background(), i))
	servicios.insumoNombres[i.ID] = nombre
	return i.ID
}

func TestCrearServicio(t *testing.T) {
	svc, _, _ := nuevoServicioService()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: " Desayuno buffet "})
	require.NoError(t, err)
	assert.Equal(t, "Desayuno buffet", resp.Nombre)
	assert.Zero(t, resp.NumInsumos)

	_, err = svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "desayuno BUFFET"})
	assert.True(t, apierror.EsValidacion(err))
}

func TestAgregarInsumoAServicio(t *testing.T) {
	svc, servicios, insumos := nuevoServicioService()
	ctx := context.Background()

	sv, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "Desayuno"})
	require.NoError(t, err)
	insumoID := crearInsumoDePrueba(t, servicios, insumos, "Café")

	piezas := decimal.NewFromInt(2)
	vinculo, err := svc.AgregarInsumo(ctx, sv.ID, dto.AgregarInsumoServicioRequest{
		InsumoID:          insumoID,
		PiezasPorServicio: &piezas,
	})
	require.NoError(t, err)
	assert.Equal(t, "Café", vinculo.InsumoNombre)
	require.NotNil(t, vinculo.PiezasPorServicio)
	assert.True(t, vinculo.PiezasPorServicio.Equal(piezas))

	// one link per servicio/insumo pair
	_, err = svc.AgregarInsumo(ctx, sv.ID, dto.AgregarInsumoServicioRequest{InsumoID: insumoID})
	assert.True(t, apierror.EsValidacion(err))

	obtenido, err := svc.Obtener(ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, obtenido.NumInsumos)
}

func TestAgregarInsumoServicioInexistente(t *testing.T) {
	svc, servicios, insumos := nuevoServicioService()
	ctx := context.Background()

	insumoID := crearInsumoDePrueba(t, servicios, insumos, "Café")
	_, err := svc.AgregarInsumo(ctx, uuid.New(), dto.AgregarInsumoServicioRequest{InsumoID: insumoID})
	assert.True(t, errors.Is(err, apierror.ErrNoEncontrado))

	sv, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "Desayuno"})
	require.NoError(t, err)
	_, err = svc.AgregarInsumo(ctx, sv.ID, dto.AgregarInsumoServicioRequest{InsumoID: uuid.New()})
	assert.True(t, apierror.EsValidacion(err))
}

func TestActualizarVinculoDeOtroServicio(t *testing.T) {
	svc, servicios, insumos := nuevoServicioService()
	ctx := context.Background()

	svA, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "Desayuno"})
	require.NoError(t, err)
	svB, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "Comida"})
	require.NoError(t, err)
	insumoID := crearInsumoDePrueba(t, servicios, insumos, "Café")

	vinculo, err := svc.AgregarInsumo(ctx, svA.ID, dto.AgregarInsumoServicioRequest{InsumoID: insumoID})
	require.NoError(t, err)

	// the link belongs to servicio A, addressing it through B is a 404
	_, err = svc.ActualizarInsumo(ctx, svB.ID, vinculo.ID, dto.ActualizarInsumoServicioRequest{})
	assert.True(t, errors.Is(err, apierror.ErrNoEncontrado))
	err = svc.QuitarInsumo(ctx, svB.ID, vinculo.ID)
	assert.True(t, errors.Is(err, apierror.ErrNoEncontrado))
}

func TestQuitarInsumoDeServicio(t *testing.T) {
	svc, servicios, insumos := nuevoServicioService()
	ctx := context.Background()

	sv, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "Desayuno"})
	require.NoError(t, err)
	insumoID := crearInsumoDePrueba(t, servicios, insumos, "Café")
	vinculo, err := svc.AgregarInsumo(ctx, sv.ID, dto.AgregarInsumoServicioRequest{InsumoID: insumoID})
	require.NoError(t, err)

	require.NoError(t, svc.QuitarInsumo(ctx, sv.ID, vinculo.ID))

	lista, err := svc.ListarInsumos(ctx, sv.ID)
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestEliminarServicioConVinculos(t *testing.T) {
	svc, servicios, insumos := nuevoServicioService()
	ctx := context.Background()

	sv, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "Desayuno"})
	require.NoError(t, err)
	insumoID := crearInsumoDePrueba(t, servicios, insumos, "Café")
	_, err = svc.AgregarInsumo(ctx, sv.ID, dto.AgregarInsumoServicioRequest{InsumoID: insumoID})
	require.NoError(t, err)

	// links never block the delete, they go with the servicio
	require.NoError(t, svc.Eliminar(ctx, sv.ID))
	assert.Empty(t, servicios.vinculos)
}

func TestListarInsumosOrdenPorNombre(t *testing.T) {
	svc, servicios, insumos := nuevoServicioService()
	ctx := context.Background()

	sv, err := svc.Crear(ctx, dto.CrearServicioRequest{Nombre: "Desayuno"})
	require.NoError(t, err)
	for _, nombre := range []string{"Pan", "Café", "Leche"} {
		id := crearInsumoDePrueba(t, servicios, insumos, nombre)
		_, err = svc.AgregarInsumo(ctx, sv.ID, dto.AgregarInsumoServicioRequest{InsumoID: id})
		require.NoError(t, err)
	}

	lista, err := svc.ListarInsumos(ctx, sv.ID)
	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, "Café", lista[0].InsumoNombre)
	assert.Equal(t, "Leche", lista[1].InsumoNombre)
	assert.Equal(t, "Pan", lista[2].InsumoNombre)
}
