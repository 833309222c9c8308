package spreadsheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhoicas/retail-analytics/internal/domain"
	"github.com/jhoicas/retail-analytics/internal/domain/repository"
)

// Open elige el lector según kind ("xlsx" o "csv"); kind vacío se deduce de la extensión.
func Open(kind, path, sheet, enc string) (repository.TransactionSource, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: ruta del dataset vacía", domain.ErrInvalidInput)
	}
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch kind {
	case "xlsx", "xlsm":
		return NewXLSXSource(path, sheet), nil
	case "csv":
		return NewCSVSource(path, enc)
	default:
		return nil, fmt.Errorf("%w: formato de dataset no soportado: %q", domain.ErrInvalidInput, kind)
	}
}
