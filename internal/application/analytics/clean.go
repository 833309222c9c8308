// Package analytics contiene el agregador de transacciones del dashboard de
// ventas minoristas: limpieza, filtrado y reportes sobre un conjunto en memoria.
package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics/internal/domain"
	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

// timestampLayouts formatos aceptados para invoice_timestamp, en orden de prueba.
// Los seriales de Excel ya llegan normalizados por el lector xlsx.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/06 15:04",
}

// Clean convierte filas crudas en transacciones válidas.
//
// Pasos:
//  1. Descarta filas sin customer_id.
//  2. Interpreta invoice_timestamp (error fatal si no se puede).
//  3. Convierte customer_id a entero (error fatal si no es numérico).
//  4. Conserva solo quantity > 0 y unit_price > 0.
//
// Ante cualquier *domain.MalformedInputError no se devuelve resultado parcial.
func Clean(rows []entity.RawRow) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, 0, len(rows))
	for _, r := range rows {
		customerRaw := strings.TrimSpace(r.CustomerID)
		if customerRaw == "" {
			continue
		}

		ts, err := parseTimestamp(r.InvoiceTimestamp)
		if err != nil {
			return nil, malformed(r, entity.ColumnInvoiceTimestamp, r.InvoiceTimestamp, "fecha/hora no interpretable")
		}

		customerID, ok := parseWhole(customerRaw)
		if !ok {
			return nil, malformed(r, entity.ColumnCustomerID, r.CustomerID, "identificador de cliente no numérico")
		}

		qtyRaw := strings.TrimSpace(r.Quantity)
		priceRaw := strings.TrimSpace(r.UnitPrice)
		// Un numérico ausente nunca cumple > 0: la fila se descarta sin error.
		if qtyRaw == "" || priceRaw == "" {
			continue
		}
		qty, ok := parseWhole(qtyRaw)
		if !ok {
			return nil, malformed(r, entity.ColumnQuantity, r.Quantity, "cantidad no entera")
		}
		price, err := decimal.NewFromString(priceRaw)
		if err != nil {
			return nil, malformed(r, entity.ColumnUnitPrice, r.UnitPrice, "precio unitario no numérico")
		}
		if qty <= 0 || !price.IsPositive() {
			continue
		}

		out = append(out, entity.Transaction{
			InvoiceID:   strings.TrimSpace(r.InvoiceID),
			CustomerID:  customerID,
			Country:     strings.TrimSpace(r.Country),
			Description: strings.TrimSpace(r.Description),
			Quantity:    qty,
			UnitPrice:   price,
			InvoiceDate: ts,
		})
	}
	return out, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// parseWhole acepta enteros escritos como "17850" o "17850.0" (celdas numéricas de hoja de cálculo).
func parseWhole(s string) (int64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	return d.IntPart(), true
}

func malformed(r entity.RawRow, column, value, reason string) error {
	return &domain.MalformedInputError{Line: r.Line, Column: column, Value: value, Reason: reason}
}
