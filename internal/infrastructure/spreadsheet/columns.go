// Package spreadsheet implementa TransactionSource sobre archivos tabulares
// (.xlsx con excelize y .csv con encoding/csv).
package spreadsheet

import (
	"strings"
	"unicode"

	"github.com/jhoicas/retail-analytics/internal/domain"
	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

// headerAliases nombres de cabecera aceptados por columna lógica, ya normalizados
// (minúsculas, solo letras y dígitos). Cubre el dataset "Online Retail" y snake_case.
var headerAliases = map[string][]string{
	entity.ColumnInvoiceID:        {"invoiceno", "invoiceid", "invoice", "invoicenumber"},
	entity.ColumnCustomerID:       {"customerid", "customer"},
	entity.ColumnCountry:          {"country"},
	entity.ColumnDescription:      {"description", "product", "productdescription"},
	entity.ColumnQuantity:         {"quantity", "qty"},
	entity.ColumnUnitPrice:        {"unitprice", "price"},
	entity.ColumnInvoiceTimestamp: {"invoicedate", "invoicetimestamp", "invoicedatetime"},
}

// columnIndex posición de cada columna lógica en la fila de cabecera.
type columnIndex map[string]int

// mapHeader ubica las columnas obligatorias; el resto se ignora.
func mapHeader(header []string) (columnIndex, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := byName[key]; !dup {
			byName[key] = i
		}
	}

	idx := make(columnIndex, len(entity.RequiredColumns))
	for _, col := range entity.RequiredColumns {
		found := false
		for _, alias := range headerAliases[col] {
			if i, ok := byName[alias]; ok {
				idx[col] = i
				found = true
				break
			}
		}
		if !found {
			return nil, &domain.MalformedInputError{Line: 1, Column: col, Reason: "columna obligatoria ausente"}
		}
	}
	return idx, nil
}

// rawRow arma la fila cruda; celdas faltantes al final de la fila cuentan como vacías.
func (idx columnIndex) rawRow(line int, cells []string) entity.RawRow {
	cell := func(col string) string {
		i := idx[col]
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return entity.RawRow{
		Line:             line,
		InvoiceID:        cell(entity.ColumnInvoiceID),
		CustomerID:       cell(entity.ColumnCustomerID),
		Country:          cell(entity.ColumnCountry),
		Description:      cell(entity.ColumnDescription),
		Quantity:         cell(entity.ColumnQuantity),
		UnitPrice:        cell(entity.ColumnUnitPrice),
		InvoiceTimestamp: cell(entity.ColumnInvoiceTimestamp),
	}
}

func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
