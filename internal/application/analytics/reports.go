package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

// Tamaños por defecto de los reportes del dashboard.
const (
	DefaultTopN         = 10
	DefaultRecentOrders = 300
)

// KPIs indicadores escalares del subconjunto filtrado (sin redondear).
type KPIs struct {
	TotalRevenue   decimal.Decimal
	TotalOrders    int // facturas distintas
	TotalCustomers int // clientes distintos
	AvgOrderValue  decimal.Decimal
}

// MonthRevenue ingreso agregado de un mes calendario.
type MonthRevenue struct {
	Month   time.Time // primer día del mes
	Revenue decimal.Decimal
}

// ProductQuantity unidades vendidas por descripción de producto.
type ProductQuantity struct {
	Description string
	Quantity    int64
}

// CountryRevenue ingreso agregado por país.
type CountryRevenue struct {
	Country string
	Revenue decimal.Decimal
}

// RecentOrder proyección fija de la tabla de pedidos recientes.
type RecentOrder struct {
	InvoiceDate time.Time
	InvoiceID   string
	CustomerID  int64
	Country     string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ComputeKPIs calcula ingreso total, pedidos, clientes y ticket promedio.
// Con cero pedidos el ticket promedio es 0 (sin división).
func ComputeKPIs(subset []entity.Transaction) KPIs {
	revenue := decimal.Zero
	invoices := make(map[string]struct{})
	customers := make(map[int64]struct{})
	for _, t := range subset {
		revenue = revenue.Add(t.LineTotal())
		invoices[t.InvoiceID] = struct{}{}
		customers[t.CustomerID] = struct{}{}
	}

	aov := decimal.Zero
	if len(invoices) > 0 {
		aov = revenue.Div(decimal.NewFromInt(int64(len(invoices))))
	}
	return KPIs{
		TotalRevenue:   revenue,
		TotalOrders:    len(invoices),
		TotalCustomers: len(customers),
		AvgOrderValue:  aov,
	}
}

// MonthlyRevenue agrupa por mes y suma line_total; orden ascendente por mes.
func MonthlyRevenue(subset []entity.Transaction) []MonthRevenue {
	byMonth := make(map[int]int) // year*12+month → índice en out
	out := make([]MonthRevenue, 0)
	for _, t := range subset {
		m := t.Month()
		key := m.Year()*12 + int(m.Month())
		idx, ok := byMonth[key]
		if !ok {
			idx = len(out)
			byMonth[key] = idx
			out = append(out, MonthRevenue{Month: m, Revenue: decimal.Zero})
		}
		out[idx].Revenue = out[idx].Revenue.Add(t.LineTotal())
	}
	slices.SortFunc(out, func(a, b MonthRevenue) int { return a.Month.Compare(b.Month) })
	return out
}

// TopProducts devuelve las n descripciones con más unidades vendidas.
// Las líneas sin descripción no forman un producto y no entran al ranking.
// Empates: orden de primera aparición.
func TopProducts(subset []entity.Transaction, n int) []ProductQuantity {
	if n <= 0 {
		n = DefaultTopN
	}
	index := make(map[string]int)
	groups := make([]ProductQuantity, 0)
	for _, t := range subset {
		if t.Description == "" {
			continue
		}
		idx, ok := index[t.Description]
		if !ok {
			idx = len(groups)
			index[t.Description] = idx
			groups = append(groups, ProductQuantity{Description: t.Description})
		}
		groups[idx].Quantity += t.Quantity
	}
	slices.SortStableFunc(groups, func(a, b ProductQuantity) int {
		switch {
		case a.Quantity > b.Quantity:
			return -1
		case a.Quantity < b.Quantity:
			return 1
		}
		return 0
	})
	return head(groups, n)
}

// TopCountries devuelve los n países con mayor ingreso. Empates: orden de primera aparición.
func TopCountries(subset []entity.Transaction, n int) []CountryRevenue {
	if n <= 0 {
		n = DefaultTopN
	}
	groups := RevenueByCountry(subset)
	slices.SortStableFunc(groups, func(a, b CountryRevenue) int {
		return b.Revenue.Cmp(a.Revenue)
	})
	return head(groups, n)
}

// RevenueByCountry suma line_total por país, en orden de primera aparición.
// Lo consume el mapa coroplético, que no exige orden.
func RevenueByCountry(subset []entity.Transaction) []CountryRevenue {
	index := make(map[string]int)
	groups := make([]CountryRevenue, 0)
	for _, t := range subset {
		idx, ok := index[t.Country]
		if !ok {
			idx = len(groups)
			index[t.Country] = idx
			groups = append(groups, CountryRevenue{Country: t.Country, Revenue: decimal.Zero})
		}
		groups[idx].Revenue = groups[idx].Revenue.Add(t.LineTotal())
	}
	return groups
}

// RecentOrders ordena por fecha descendente (estable) y proyecta las primeras n filas.
func RecentOrders(subset []entity.Transaction, n int) []RecentOrder {
	if n <= 0 {
		n = DefaultRecentOrders
	}
	sorted := slices.Clone(subset)
	slices.SortStableFunc(sorted, func(a, b entity.Transaction) int {
		return b.InvoiceDate.Compare(a.InvoiceDate)
	})
	sorted = head(sorted, n)

	out := make([]RecentOrder, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, RecentOrder{
			InvoiceDate: t.InvoiceDate,
			InvoiceID:   t.InvoiceID,
			CustomerID:  t.CustomerID,
			Country:     t.Country,
			Description: t.Description,
			Quantity:    t.Quantity,
			UnitPrice:   t.UnitPrice,
			LineTotal:   t.LineTotal(),
		})
	}
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
