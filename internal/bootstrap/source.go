// Package bootstrap arma las dependencias compartidas por cmd/api y cmd/report.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-analytics/internal/domain/repository"
	"github.com/jhoicas/retail-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-analytics/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/retail-analytics/pkg/config"
)

// OpenSource construye el origen de transacciones configurado en cfg.Data.
// El func devuelto libera recursos (pool de PostgreSQL) y siempre es no nulo.
func OpenSource(ctx context.Context, cfg *config.Config) (repository.TransactionSource, func(), error) {
	if cfg.Data.UsesPostgres() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, func() {}, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewTransactionSource(pool, cfg.Data.Table), pool.Close, nil
	}
	source, err := spreadsheet.Open(cfg.Data.Source, cfg.Data.Path, cfg.Data.Sheet, cfg.Data.Encoding)
	if err != nil {
		return nil, func() {}, err
	}
	return source, func() {}, nil
}
