package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// EnviarReporteRequest asks for the alert report to be mailed. An empty
// destino falls back to the configured recipient.
type EnviarReporteRequest struct {
	Destino string `json:"destino" validate:"omitempty,email"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// ReporteResponse carries a rendered plain-text report.
type ReporteResponse struct {
	Contenido string `json:"contenido"`
	Fecha     string `json:"fecha"`
}

// ReportePDFResponse points at a generated PDF on disk.
type ReportePDFResponse struct {
	Ruta  string `json:"ruta"`
	Fecha string `json:"fecha"`
}

// EnvioReporteResponse acknowledges an enqueued report email.
type EnvioReporteResponse struct {
	Destino  string `json:"destino"`
	Encolado bool   `json:"encolado"`
}
