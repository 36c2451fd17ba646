package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConsistency       = errors.New("agregado inconsistente")
)

// ValidationError detalla los campos inválidos de un payload.
// Se produce antes de cualquier mutación; errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea el error con un primer campo.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Add registra un campo inválido. Conserva el primer mensaje por campo.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Merge incorpora los campos de otro error de validación; otros errores se ignoran.
func (e *ValidationError) Merge(err error) {
	var other *ValidationError
	if errors.As(err, &other) && other != nil {
		for k, v := range other.Fields {
			e.Add(k, v)
		}
	}
}

// Empty indica si no se registró ningún campo.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err devuelve nil si no hay campos, para poder acumular y retornar al final.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
