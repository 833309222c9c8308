package repository

import (
	"context"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

// TransactionSource entrega las filas crudas del dataset de ventas.
// Las implementaciones son read-only; la limpieza la hace la capa de aplicación.
type TransactionSource interface {
	// LoadRows lee todas las filas del origen. Un error de estructura (columna
	// obligatoria ausente) se devuelve como *domain.MalformedInputError.
	LoadRows(ctx context.Context) ([]entity.RawRow, error)

	// Describe devuelve una etiqueta legible del origen (ruta o tabla) para logs.
	Describe() string
}
