package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

// importColumns orden de columnas para COPY; coincide con selectQuery.
var importColumns = []string{
	entity.ColumnInvoiceID,
	entity.ColumnCustomerID,
	entity.ColumnCountry,
	entity.ColumnDescription,
	entity.ColumnQuantity,
	entity.ColumnUnitPrice,
	entity.ColumnInvoiceTimestamp,
}

// TransactionImporter vuelca transacciones limpias a la tabla que lee TransactionSource.
type TransactionImporter struct {
	pool  *pgxpool.Pool
	table string
}

// NewTransactionImporter construye el importador. table admite "esquema.tabla".
func NewTransactionImporter(pool *pgxpool.Pool, table string) *TransactionImporter {
	return &TransactionImporter{pool: pool, table: table}
}

// Import crea la tabla si no existe, la vacía y copia records en una sola transacción.
// Si algo falla la tabla conserva su contenido anterior.
func (i *TransactionImporter) Import(ctx context.Context, records []entity.Transaction) (int64, error) {
	tx, err := i.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ident := tableIdentifier(i.table)
	if _, err := tx.Exec(ctx, createTableSQL(ident)); err != nil {
		return 0, fmt.Errorf("transactions.Import create: %w", err)
	}
	if _, err := tx.Exec(ctx, `TRUNCATE `+ident.Sanitize()); err != nil {
		return 0, fmt.Errorf("transactions.Import truncate: %w", err)
	}

	n, err := tx.CopyFrom(ctx, ident, importColumns, pgx.CopyFromSlice(len(records), func(idx int) ([]any, error) {
		t := records[idx]
		return []any{t.InvoiceID, t.CustomerID, t.Country, t.Description, t.Quantity, t.UnitPrice, t.InvoiceDate}, nil
	}))
	if err != nil {
		return 0, fmt.Errorf("transactions.Import copy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return n, nil
}

func tableIdentifier(table string) pgx.Identifier {
	return pgx.Identifier(strings.Split(table, "."))
}

func createTableSQL(ident pgx.Identifier) string {
	return `
	CREATE TABLE IF NOT EXISTS ` + ident.Sanitize() + ` (
	    invoice_id        TEXT           NOT NULL,
	    customer_id       BIGINT,
	    country           TEXT           NOT NULL,
	    description       TEXT,
	    quantity          BIGINT,
	    unit_price        NUMERIC,
	    invoice_timestamp TIMESTAMP      NOT NULL
	)`
}
