// Package apierror provides the standardized error envelope for the API plus
// the small domain error taxonomy services use, so handlers can map failures
// to status codes without string matching.
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}

// ── Domain error taxonomy ─────────────────────────────────────────────────────
// Services return these instead of bare errors.New so the HTTP layer can
// distinguish a rejected operation (validation, referential conflict, missing
// selection) from a genuine store failure. Anything not wrapped in one of
// these surfaces as a 500.

// ErrNoEncontrado marks a lookup by id that matched nothing on an action path.
// Read paths treat "no rows" as a valid empty result, never as this error.
var ErrNoEncontrado = errors.New("no encontrado")

// Validacion is a locally recoverable rejected operation with a
// human-readable reason (name too short, negative quantity, duplicate name…).
type Validacion struct{ Detalle string }

func (e *Validacion) Error() string { return e.Detalle }

func NewValidacion(detalle string) error { return &Validacion{Detalle: detalle} }

// ConflictoReferencial marks a delete blocked by dependent rows.
type ConflictoReferencial struct{ Detalle string }

func (e *ConflictoReferencial) Error() string { return e.Detalle }

func NewConflicto(detalle string) error { return &ConflictoReferencial{Detalle: detalle} }

// EsValidacion reports whether err is (or wraps) a Validacion.
func EsValidacion(err error) bool {
	var v *Validacion
	return errors.As(err, &v)
}

// EsConflicto reports whether err is (or wraps) a ConflictoReferencial.
func EsConflicto(err error) bool {
	var c *ConflictoReferencial
	return errors.As(err, &c)
}
