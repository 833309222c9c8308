// Package format da formato legible a montos y conteos del dashboard.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer usa separador de miles "," y punto decimal (dataset en libras esterlinas).
var printer = message.NewPrinter(language.BritishEnglish)

// Pounds formatea un monto sin decimales, ej: "£1,234,567".
func Pounds(d decimal.Decimal) string {
	return printer.Sprintf("£%d", d.Round(0).IntPart())
}

// PoundsCents formatea un monto con dos decimales, ej: "£1,234.57".
func PoundsCents(d decimal.Decimal) string {
	return printer.Sprintf("£%.2f", d.Round(2).InexactFloat64())
}

// Count formatea un entero con separador de miles, ej: "25,900".
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
