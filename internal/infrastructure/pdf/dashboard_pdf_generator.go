// Package pdf exporta el dashboard de ventas a un PDF A4 con Maroto v2.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + filtro aplicado (país, rango de fechas)   │
//	│  KPIs: Ingresos | Pedidos | Clientes | Ticket promedio      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Ventas mensuales (tabla mes → ingreso)                     │
//	│  Top productos (unidades) │ Top países (ingreso)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Pedidos recientes (primeras filas)                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/retail-analytics/internal/application/dto"
	"github.com/jhoicas/retail-analytics/internal/application/ports"
	"github.com/jhoicas/retail-analytics/pkg/format"
)

var _ ports.DashboardPDFGenerator = (*MarotoReportGenerator)(nil)

// recentOrdersInPDF filas de pedidos recientes que caben razonablemente en el anexo.
const recentOrdersInPDF = 50

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorCard    = &props.Color{Red: 31, Green: 41, Blue: 55}
	colorGray    = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorLight   = &props.Color{Red: 229, Green: 231, Blue: 235}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.DashboardPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDashboardPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDashboardPDF(_ context.Context, d *dto.DashboardDTO) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("pdf: dashboard nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Retail Analytics Dashboard", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(d))
	m.AddRows(kpiRow(d.KPIs))
	m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(sectionTitle("Sales Trend"))
	m.AddRows(tableHeader([]string{"Month", "Revenue"}, []int{6, 6}))
	for _, r := range d.MonthlyRevenue {
		m.AddRows(tableRow([]string{r.Month, format.PoundsCents(r.Revenue)}, []int{6, 6}))
	}
	m.AddRows(emptyNote(len(d.MonthlyRevenue)))

	m.AddRows(sectionTitle("Top Products (Quantity)"))
	m.AddRows(tableHeader([]string{"#", "Description", "Quantity"}, []int{1, 8, 3}))
	for _, p := range d.TopProducts {
		m.AddRows(tableRow([]string{fmt.Sprint(p.Rank), p.Description, format.Count(int(p.Quantity))}, []int{1, 8, 3}))
	}
	m.AddRows(emptyNote(len(d.TopProducts)))

	m.AddRows(sectionTitle("Top Countries (Revenue)"))
	m.AddRows(tableHeader([]string{"Country", "Revenue"}, []int{6, 6}))
	for _, c := range d.TopCountries {
		m.AddRows(tableRow([]string{c.Country, format.PoundsCents(c.Revenue)}, []int{6, 6}))
	}
	m.AddRows(emptyNote(len(d.TopCountries)))

	m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionTitle("Recent Orders"))
	widths := []int{2, 1, 1, 2, 3, 1, 1, 1}
	m.AddRows(tableHeader([]string{"Date", "Invoice", "Customer", "Country", "Description", "Qty", "Price", "Total"}, widths))
	for i, o := range d.RecentOrders {
		if i == recentOrdersInPDF {
			break
		}
		m.AddRows(tableRow([]string{
			shortDate(o.InvoiceDate),
			o.InvoiceID,
			fmt.Sprint(o.CustomerID),
			o.Country,
			nonEmpty(o.Description, "—"),
			fmt.Sprint(o.Quantity),
			o.UnitPrice.StringFixed(2),
			o.LineTotal.StringFixed(2),
		}, widths))
	}
	m.AddRows(emptyNote(len(d.RecentOrders)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y filtro aplicado (der).
func headerRow(d *dto.DashboardDTO) core.Row {
	period := fmt.Sprintf("%s → %s", nonEmpty(d.Filter.StartDate, "inicio"), nonEmpty(d.Filter.EndDate, "fin"))
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Retail Analytics Dashboard", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s line items", format.Count(d.RecordCount)), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Country: "+d.Filter.Country, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(period, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro tarjetas con fondo oscuro, como en el dashboard web.
func kpiRow(k dto.KPIsDTO) core.Row {
	card := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorLight, Top: 2, Left: 3}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorLight, Top: 7, Left: 3}),
		).WithStyle(&props.Cell{BackgroundColor: colorCard})
	}
	return row.New(18).Add(
		card("REVENUE", k.RevenueLabel),
		card("ORDERS", format.Count(k.TotalOrders)),
		card("CUSTOMERS", format.Count(k.TotalCustomers)),
		card("AVG. ORDER VALUE", k.AvgOrderValueLabel),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3}),
	))
}

func tableHeader(labels []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(widths[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorLight, Top: 1.5, Left: 1,
		})))
	}
	return row.New(6).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(values []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(widths[i]).Add(text.New(v, props.Text{Size: 7.5, Top: 1, Left: 1})))
	}
	return row.New(5).Add(cols...)
}

// emptyNote agrega una leyenda cuando la tabla quedó vacía, o un espaciador si no.
func emptyNote(n int) core.Row {
	if n > 0 {
		return row.New(3)
	}
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin datos para el filtro seleccionado.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortDate recorta un RFC3339 a "2006-01-02 15:04".
func shortDate(rfc3339 string) string {
	if len(rfc3339) >= 16 {
		return rfc3339[:10] + " " + rfc3339[11:16]
	}
	return rfc3339
}
