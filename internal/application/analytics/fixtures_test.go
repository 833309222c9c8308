package analytics_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

// exampleRows tres líneas de factura: dos en Reino Unido (enero) y una en Francia (febrero).
func exampleRows() []entity.RawRow {
	return []entity.RawRow{
		{Line: 2, InvoiceID: "536365", CustomerID: "17850", Country: "United Kingdom", Description: "WHITE HANGING HEART T-LIGHT HOLDER", Quantity: "2", UnitPrice: "5.00", InvoiceTimestamp: "2011-01-05 08:26:00"},
		{Line: 3, InvoiceID: "536366", CustomerID: "17850", Country: "United Kingdom", Description: "WHITE METAL LANTERN", Quantity: "1", UnitPrice: "10.00", InvoiceTimestamp: "2011-01-20 09:01:00"},
		{Line: 4, InvoiceID: "536367", CustomerID: "12583", Country: "France", Description: "ALARM CLOCK BAKELIKE PINK", Quantity: "3", UnitPrice: "2.00", InvoiceTimestamp: "2011-02-01 12:00:00"},
	}
}

func tx(invoice string, customer int64, country, desc string, qty int64, price string, ts time.Time) entity.Transaction {
	return entity.Transaction{
		InvoiceID:   invoice,
		CustomerID:  customer,
		Country:     country,
		Description: desc,
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
		InvoiceDate: ts,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
