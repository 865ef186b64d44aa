package handler

import (
	"net/http"

	"caruma/internal/dto"
	"caruma/internal/service"

	"github.com/gin-gonic/gin"
)

// AlertasHandler serves the alert center: live condition lists computed from
// the current snapshot, plus the persisted alert log.
type AlertasHandler struct {
	inventario service.InventarioService
	alertas    service.AlertaService
}

func NewAlertasHandler(inventario service.InventarioService, alertas service.AlertaService) *AlertasHandler {
	return &AlertasHandler{inventario: inventario, alertas: alertas}
}

// Resumen GET /v1/alertas/resumen
func (h *AlertasHandler) Resumen(c *gin.Context) {
	resp, err := h.inventario.ResumenAlertas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StockBajo GET /v1/alertas/stock-bajo
func (h *AlertasHandler) StockBajo(c *gin.Context) {
	resp, err := h.inventario.StockBajo(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorCaducar GET /v1/alertas/por-caducar
func (h *AlertasHandler) PorCaducar(c *gin.Context) {
	resp, err := h.inventario.PorCaducar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Caducados GET /v1/alertas/caducados
func (h *AlertasHandler) Caducados(c *gin.Context) {
	resp, err := h.inventario.Caducados(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Registrar POST /v1/alertas/historial — appends one log entry.
func (h *AlertasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarAlertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.alertas.Registrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Historial GET /v1/alertas/historial — most recent first.
func (h *AlertasHandler) Historial(c *gin.Context) {
	resp, err := h.alertas.Historial(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LimpiarHistorial DELETE /v1/alertas/historial
func (h *AlertasHandler) LimpiarHistorial(c *gin.Context) {
	if err := h.alertas.LimpiarHistorial(c.Request.Context()); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// Escanear POST /v1/alertas/escanear — classifies the inventory and logs
// active conditions not yet recorded today.
func (h *AlertasHandler) Escanear(c *gin.Context) {
	resp, err := h.alertas.EscanearYRegistrar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
