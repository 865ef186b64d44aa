package handler

import (
	"net/http"

	"caruma/internal/apierror"
	"caruma/internal/dto"
	"caruma/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

var filtrosValidos = map[dto.FiltroInventario]bool{
	dto.FiltroTodos:      true,
	dto.FiltroStockBajo:  true,
	dto.FiltroPorCaducar: true,
	dto.FiltroCaducados:  true,
	dto.FiltroSinStock:   true,
}

var ordenesValidos = map[dto.OrdenInventario]bool{
	dto.OrdenNombre:     true,
	dto.OrdenCategoria:  true,
	dto.OrdenPiezasAsc:  true,
	dto.OrdenPiezasDesc: true,
	dto.OrdenCaducidad:  true,
}

// Resumen GET /v1/inventario/resumen
func (h *InventarioHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorCategoria GET /v1/inventario/por-categoria
func (h *InventarioHandler) PorCategoria(c *gin.Context) {
	resp, err := h.svc.PorCategoria(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Completo GET /v1/inventario?filtro=&orden=
func (h *InventarioHandler) Completo(c *gin.Context) {
	filtro := dto.FiltroInventario(c.Query("filtro"))
	if !filtrosValidos[filtro] {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro inválido"))
		return
	}
	orden := dto.OrdenInventario(c.DefaultQuery("orden", string(dto.OrdenNombre)))
	if !ordenesValidos[orden] {
		c.JSON(http.StatusBadRequest, apierror.New("Orden inválido"))
		return
	}

	resp, err := h.svc.Completo(c.Request.Context(), filtro, orden)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MasUsados GET /v1/inventario/mas-usados
func (h *InventarioHandler) MasUsados(c *gin.Context) {
	resp, err := h.svc.MasUsados(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TotalesContenido GET /v1/inventario/totales-contenido
func (h *InventarioHandler) TotalesContenido(c *gin.Context) {
	resp, err := h.svc.TotalesContenido(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
