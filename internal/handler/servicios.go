package handler

import (
	"net/http"

	"caruma/internal/dto"
	"caruma/internal/service"

	"github.com/gin-gonic/gin"
)

type ServiciosHandler struct{ svc service.ServicioService }

func NewServiciosHandler(svc service.ServicioService) *ServiciosHandler {
	return &ServiciosHandler{svc: svc}
}

// Crear POST /v1/servicios
func (h *ServiciosHandler) Crear(c *gin.Context) {
	var req dto.CrearServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/servicios — ?q= filters by name.
func (h *ServiciosHandler) Listar(c *gin.Context) {
	ctx := c.Request.Context()
	var resp []dto.ServicioResponse
	var err error
	if q := c.Query("q"); q != "" {
		resp, err = h.svc.Buscar(ctx, q)
	} else {
		resp, err = h.svc.Listar(ctx)
	}
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /v1/servicios/:id
func (h *ServiciosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /v1/servicios/:id
func (h *ServiciosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar DELETE /v1/servicios/:id — links are removed with the servicio.
func (h *ServiciosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ListarInsumos GET /v1/servicios/:id/insumos
func (h *ServiciosHandler) ListarInsumos(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarInsumos(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarInsumo POST /v1/servicios/:id/insumos — one link per (servicio, insumo).
func (h *ServiciosHandler) AgregarInsumo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarInsumoServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarInsumo(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarInsumo PUT /v1/servicios/:id/insumos/:vinculo_id
func (h *ServiciosHandler) ActualizarInsumo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vinculoID, ok := parseID(c, "vinculo_id")
	if !ok {
		return
	}
	var req dto.ActualizarInsumoServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarInsumo(c.Request.Context(), id, vinculoID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarInsumo DELETE /v1/servicios/:id/insumos/:vinculo_id
func (h *ServiciosHandler) QuitarInsumo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vinculoID, ok := parseID(c, "vinculo_id")
	if !ok {
		return
	}
	if err := h.svc.QuitarInsumo(c.Request.Context(), id, vinculoID); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
