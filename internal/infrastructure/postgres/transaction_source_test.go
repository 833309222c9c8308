package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
	"github.com/jhoicas/retail-analytics/internal/domain/entity"
	"github.com/jhoicas/retail-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-analytics/pkg/config"
)

// Requiere una base real: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func TestTransactionSource_Integracion(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()

	table := fmt.Sprintf("online_retail_test_%d", time.Now().UnixNano())
	_, err = pool.Exec(ctx, `
	CREATE TABLE `+table+` (
	    invoice_id        TEXT,
	    customer_id       INTEGER,
	    country           TEXT,
	    description       TEXT,
	    quantity          INTEGER,
	    unit_price        NUMERIC(10,2),
	    invoice_timestamp TIMESTAMP
	)`)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+table) })

	_, err = pool.Exec(ctx, `
	INSERT INTO `+table+` VALUES
	    ('536365', 17850, 'United Kingdom', 'WHITE METAL LANTERN', 2, 5.00, '2011-01-05 08:26:00'),
	    ('536366', NULL,  'United Kingdom', 'HAND WARMER',         1, 1.85, '2011-01-06 09:00:00'),
	    ('536367', 12583, 'France',         'ALARM CLOCK',         3, 2.00, '2011-02-01 12:00:00')`)
	require.NoError(t, err)

	src := postgres.NewTransactionSource(pool, table)
	rows, err := src.LoadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "17850", rows[0].CustomerID)
	assert.Equal(t, "", rows[1].CustomerID)
	assert.Equal(t, "5", rows[0].UnitPrice)
	assert.Equal(t, "2011-01-05 08:26:00", rows[0].InvoiceTimestamp)

	records, err := analytics.Clean(rows)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "16", analytics.ComputeKPIs(records).TotalRevenue.String())
}

func TestTransactionImporter_Integracion(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()

	table := fmt.Sprintf("online_retail_import_%d", time.Now().UnixNano())
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+table) })

	records := []entity.Transaction{
		{InvoiceID: "536365", CustomerID: 17850, Country: "United Kingdom", Description: "WHITE METAL LANTERN",
			Quantity: 2, UnitPrice: decimal.RequireFromString("5.00"), InvoiceDate: time.Date(2011, 1, 5, 8, 26, 0, 0, time.UTC)},
		{InvoiceID: "536367", CustomerID: 12583, Country: "France", Description: "ALARM CLOCK",
			Quantity: 3, UnitPrice: decimal.RequireFromString("2.125"), InvoiceDate: time.Date(2011, 2, 1, 12, 0, 0, 0, time.UTC)},
		{InvoiceID: "536368", CustomerID: 12583, Country: "France", Description: "PADS TO MATCH ALL CUSHIONS",
			Quantity: 1, UnitPrice: decimal.RequireFromString("0.001"), InvoiceDate: time.Date(2011, 2, 2, 9, 0, 0, 0, time.UTC)},
	}

	importer := postgres.NewTransactionImporter(pool, table)
	n, err := importer.Import(ctx, records)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	// Los precios conservan todos sus decimales: la limpieza de lo leído coincide con lo importado.
	rows, err := postgres.NewTransactionSource(pool, table).LoadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2.125", rows[1].UnitPrice)
	assert.Equal(t, "0.001", rows[2].UnitPrice)
	roundTrip, err := analytics.Clean(rows)
	require.NoError(t, err)
	require.Len(t, roundTrip, 3, "un precio menor a un penique sigue siendo > 0")
	assert.Equal(t, analytics.ComputeKPIs(records).TotalRevenue.String(), analytics.ComputeKPIs(roundTrip).TotalRevenue.String())

	// Reimportar reemplaza el contenido, no lo duplica.
	n, err = importer.Import(ctx, records[:1])
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	rows, err = postgres.NewTransactionSource(pool, table).LoadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "536365", rows[0].InvoiceID)
	assert.Equal(t, "17850", rows[0].CustomerID)
	assert.Equal(t, "2011-01-05 08:26:00", rows[0].InvoiceTimestamp)
}
