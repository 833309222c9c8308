package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
	"github.com/jhoicas/retail-analytics/internal/domain/repository"
)

var _ repository.TransactionSource = (*TransactionSource)(nil)

const timestampText = "2006-01-02 15:04:05"

// TransactionSource lee las líneas de factura desde una tabla con las columnas lógicas
// invoice_id, customer_id, country, description, quantity, unit_price, invoice_timestamp.
type TransactionSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewTransactionSource construye el adaptador. table admite "esquema.tabla".
func NewTransactionSource(pool *pgxpool.Pool, table string) *TransactionSource {
	return &TransactionSource{pool: pool, table: table}
}

// Describe implementa repository.TransactionSource.
func (s *TransactionSource) Describe() string { return "postgres " + s.table }

// LoadRows implementa repository.TransactionSource.
// Los NUMERIC se escanean como decimal (codec pgx-shopspring-decimal) y se pasan a texto;
// los NULL llegan como "" y la limpieza decide qué hacer con ellos.
func (s *TransactionSource) LoadRows(ctx context.Context) ([]entity.RawRow, error) {
	rows, err := s.pool.Query(ctx, selectQuery(s.table))
	if err != nil {
		return nil, fmt.Errorf("transactions.LoadRows: %w", err)
	}
	defer rows.Close()

	var out []entity.RawRow
	for rows.Next() {
		var (
			invoiceID, customerID, country, description *string
			quantity, unitPrice                         decimal.NullDecimal
			ts                                          *time.Time
		)
		if err := rows.Scan(&invoiceID, &customerID, &country, &description, &quantity, &unitPrice, &ts); err != nil {
			return nil, fmt.Errorf("transactions.LoadRows scan: %w", err)
		}
		out = append(out, entity.RawRow{
			Line:             len(out) + 2,
			InvoiceID:        deref(invoiceID),
			CustomerID:       deref(customerID),
			Country:          deref(country),
			Description:      deref(description),
			Quantity:         nullDecimalText(quantity),
			UnitPrice:        nullDecimalText(unitPrice),
			InvoiceTimestamp: timeText(ts),
		})
	}
	return out, rows.Err()
}

// selectQuery arma la consulta con el identificador de tabla escapado.
// El orden es determinista para que los empates de los rankings sean reproducibles.
func selectQuery(table string) string {
	ident := tableIdentifier(table).Sanitize()
	return `
	SELECT
	    invoice_id::TEXT,
	    customer_id::TEXT,
	    country,
	    description,
	    quantity::NUMERIC,
	    unit_price::NUMERIC,
	    invoice_timestamp::TIMESTAMP
	FROM ` + ident + `
	ORDER BY invoice_timestamp, invoice_id`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullDecimalText(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func timeText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timestampText)
}
