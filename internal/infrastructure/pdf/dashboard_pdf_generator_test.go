package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics/internal/application/dto"
	"github.com/jhoicas/retail-analytics/internal/infrastructure/pdf"
)

func sampleDashboard() *dto.DashboardDTO {
	return &dto.DashboardDTO{
		Filter:      dto.AppliedFilterDTO{Country: "All", StartDate: "2011-01-05", EndDate: "2011-02-01"},
		RecordCount: 3,
		KPIs: dto.KPIsDTO{
			TotalRevenue: decimal.NewFromInt(26), TotalOrders: 3, TotalCustomers: 2,
			AvgOrderValue: decimal.RequireFromString("8.67"), RevenueLabel: "£26", AvgOrderValueLabel: "£8.67",
		},
		MonthlyRevenue: []dto.MonthlyRevenueDTO{
			{Month: "2011-01", Revenue: decimal.NewFromInt(20)},
			{Month: "2011-02", Revenue: decimal.NewFromInt(6)},
		},
		TopProducts:  []dto.TopProductDTO{{Rank: 1, Description: "ALARM CLOCK BAKELIKE PINK", Quantity: 3}},
		TopCountries: []dto.CountryRevenueDTO{{Country: "United Kingdom", Revenue: decimal.NewFromInt(20)}},
		RecentOrders: []dto.RecentOrderDTO{{
			InvoiceDate: "2011-02-01T12:00:00Z", InvoiceID: "536367", CustomerID: 12583, Country: "France",
			Description: "ALARM CLOCK BAKELIKE PINK", Quantity: 3,
			UnitPrice: decimal.NewFromInt(2), LineTotal: decimal.NewFromInt(6),
		}},
	}
}

func TestGenerateDashboardPDF_DevuelvePDF(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator().GenerateDashboardPDF(context.Background(), sampleDashboard())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe comenzar con la firma %PDF")
}

func TestGenerateDashboardPDF_DashboardVacio(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator().GenerateDashboardPDF(context.Background(), &dto.DashboardDTO{
		Filter: dto.AppliedFilterDTO{Country: "Japan"},
	})
	require.NoError(t, err, "un filtro sin datos también se exporta")
	assert.NotEmpty(t, out)
}

func TestGenerateDashboardPDF_Nulo(t *testing.T) {
	_, err := pdf.NewMarotoReportGenerator().GenerateDashboardPDF(context.Background(), nil)
	assert.Error(t, err)
}
