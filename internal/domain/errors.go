package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrMalformedInput = errors.New("datos de origen mal formados")
	ErrEmptyResult    = errors.New("el conjunto filtrado está vacío")
	ErrNotLoaded      = errors.New("el conjunto de transacciones no ha sido cargado")
)

// MalformedInputError describe un campo obligatorio que no se pudo interpretar
// (o una columna obligatoria ausente). Aborta la pasada de limpieza completa.
type MalformedInputError struct {
	Line   int    // línea de origen (1 = cabecera); 0 si no aplica
	Column string // nombre lógico de la columna, ej: "invoice_timestamp"
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("línea %d, columna %s: %s (valor %q)", e.Line, e.Column, e.Reason, e.Value)
	}
	return fmt.Sprintf("columna %s: %s", e.Column, e.Reason)
}

// Unwrap permite errors.Is(err, ErrMalformedInput).
func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }
