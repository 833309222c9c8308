package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nombres lógicos de las columnas obligatorias del origen.
const (
	ColumnInvoiceID        = "invoice_id"
	ColumnCustomerID       = "customer_id"
	ColumnCountry          = "country"
	ColumnDescription      = "description"
	ColumnQuantity         = "quantity"
	ColumnUnitPrice        = "unit_price"
	ColumnInvoiceTimestamp = "invoice_timestamp"
)

// RequiredColumns en el orden de proyección de los pedidos recientes.
var RequiredColumns = []string{
	ColumnInvoiceID,
	ColumnCustomerID,
	ColumnCountry,
	ColumnDescription,
	ColumnQuantity,
	ColumnUnitPrice,
	ColumnInvoiceTimestamp,
}

// RawRow fila del origen antes de la limpieza. Cada campo es el texto de la celda;
// "" significa valor ausente.
type RawRow struct {
	Line             int // línea 1-based en el origen (la cabecera es la 1)
	InvoiceID        string
	CustomerID       string
	Country          string
	Description      string
	Quantity         string
	UnitPrice        string
	InvoiceTimestamp string
}

// Transaction representa una línea de factura ya limpia.
// Invariante: CustomerID presente, Quantity > 0, UnitPrice > 0.
type Transaction struct {
	InvoiceID   string
	CustomerID  int64
	Country     string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	InvoiceDate time.Time
}

// LineTotal devuelve Quantity × UnitPrice. Se deriva siempre, nunca se almacena.
func (t Transaction) LineTotal() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

// Month devuelve el primer día del mes de InvoiceDate a las 00:00 (misma zona horaria).
func (t Transaction) Month() time.Time {
	return time.Date(t.InvoiceDate.Year(), t.InvoiceDate.Month(), 1, 0, 0, 0, 0, t.InvoiceDate.Location())
}
