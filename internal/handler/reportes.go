package handler

import (
	"net/http"

	"caruma/internal/dto"
	"caruma/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ListaCompras GET /v1/reportes/lista-compras
func (h *ReportesHandler) ListaCompras(c *gin.Context) {
	resp, err := h.svc.ListaCompras(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas GET /v1/reportes/alertas
func (h *ReportesHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.ReporteAlertas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListaComprasPDF GET /v1/reportes/lista-compras/pdf — streams the file.
func (h *ReportesHandler) ListaComprasPDF(c *gin.Context) {
	resp, err := h.svc.ListaComprasPDF(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.FileAttachment(resp.Ruta, "lista_compras_"+resp.Fecha+".pdf")
}

// AlertasPDF GET /v1/reportes/alertas/pdf — streams the file.
func (h *ReportesHandler) AlertasPDF(c *gin.Context) {
	resp, err := h.svc.ReporteAlertasPDF(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.FileAttachment(resp.Ruta, "reporte_alertas_"+resp.Fecha+".pdf")
}

// EnviarAlertas POST /v1/reportes/alertas/enviar — enqueues email delivery.
func (h *ReportesHandler) EnviarAlertas(c *gin.Context) {
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnviarReporteAlertas(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
