package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
	"github.com/jhoicas/retail-analytics/internal/application/dto"
	"github.com/jhoicas/retail-analytics/internal/domain"
	"github.com/jhoicas/retail-analytics/internal/domain/entity"
	"github.com/jhoicas/retail-analytics/internal/infrastructure/memory"
)

func loadedUseCase(t *testing.T, rows ...entity.RawRow) *analytics.DashboardUseCase {
	t.Helper()
	if len(rows) == 0 {
		rows = exampleRows()
	}
	uc := analytics.NewDashboardUseCase(memory.NewSource(rows...), zerolog.Nop())
	_, err := uc.Load(context.Background())
	require.NoError(t, err)
	return uc
}

func TestDashboard_SinCargarDevuelveErrNotLoaded(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewSource(exampleRows()...), zerolog.Nop())

	_, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{})
	assert.ErrorIs(t, err, domain.ErrNotLoaded)
	_, err = uc.GetFilterOptions()
	assert.ErrorIs(t, err, domain.ErrNotLoaded)
	_, err = uc.Info()
	assert.ErrorIs(t, err, domain.ErrNotLoaded)
}

func TestDashboard_Load(t *testing.T) {
	rows := append(exampleRows(), entity.RawRow{Line: 5, InvoiceID: "536368", Country: "France", Quantity: "1", UnitPrice: "1", InvoiceTimestamp: "2011-02-02"})
	uc := analytics.NewDashboardUseCase(memory.NewSource(rows...), zerolog.Nop())

	info, err := uc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, info.RowsRead)
	assert.Equal(t, 3, info.RecordCount, "la fila sin cliente se descarta")
	assert.NotEmpty(t, info.SnapshotID)
	assert.Contains(t, info.Source, "memory")
}

func TestDashboard_CompletoSinFiltros(t *testing.T) {
	uc := loadedUseCase(t)

	d, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.AppliedFilterDTO{Country: "All", StartDate: "2011-01-05", EndDate: "2011-02-01"}, d.Filter)
	assert.Equal(t, 3, d.RecordCount)
	assert.Equal(t, "26.00", d.KPIs.TotalRevenue.StringFixed(2))
	assert.Equal(t, "8.67", d.KPIs.AvgOrderValue.String())
	assert.Equal(t, 3, d.KPIs.TotalOrders)
	assert.Equal(t, "£26", d.KPIs.RevenueLabel)
	assert.Equal(t, "£8.67", d.KPIs.AvgOrderValueLabel)

	require.Len(t, d.MonthlyRevenue, 2)
	assert.Equal(t, "2011-01", d.MonthlyRevenue[0].Month)
	assert.Equal(t, "20", d.MonthlyRevenue[0].Revenue.String())
	assert.Equal(t, "2011-02", d.MonthlyRevenue[1].Month)

	require.Len(t, d.TopProducts, 3)
	assert.Equal(t, 1, d.TopProducts[0].Rank)
	assert.Equal(t, "ALARM CLOCK BAKELIKE PINK", d.TopProducts[0].Description)

	require.Len(t, d.TopCountries, 2)
	assert.Equal(t, "United Kingdom", d.TopCountries[0].Country)
	assert.Len(t, d.RevenueByCountry, 2)

	require.Len(t, d.RecentOrders, 3)
	assert.Equal(t, "536367", d.RecentOrders[0].InvoiceID)
	assert.Equal(t, "2011-02-01T12:00:00Z", d.RecentOrders[0].InvoiceDate)
}

func TestDashboard_FiltroPais(t *testing.T) {
	uc := loadedUseCase(t)

	k, err := uc.GetKPIs(context.Background(), dto.DashboardRequest{Country: "United Kingdom"})
	require.NoError(t, err)
	assert.Equal(t, "20", k.TotalRevenue.String())
	assert.Equal(t, 2, k.TotalOrders)
}

func TestDashboard_FechaFinInclusivaHastaElFinalDelDia(t *testing.T) {
	uc := loadedUseCase(t)

	// 2011-02-01 12:00 debe entrar aunque end_date sea solo la fecha.
	rows, err := uc.GetRecentOrders(context.Background(), dto.DashboardRequest{StartDate: "2011-01-20", EndDate: "2011-02-01"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "536367", rows[0].InvoiceID)
	assert.Equal(t, "536366", rows[1].InvoiceID)
}

func TestDashboard_SubconjuntoVacioNoFalla(t *testing.T) {
	uc := loadedUseCase(t)

	d, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{Country: "Japan"})
	require.NoError(t, err)
	assert.Zero(t, d.RecordCount)
	assert.True(t, d.KPIs.AvgOrderValue.IsZero())
	assert.Empty(t, d.MonthlyRevenue)
	assert.Empty(t, d.TopProducts)
	assert.Empty(t, d.TopCountries)
	assert.Empty(t, d.RevenueByCountry)
	assert.Empty(t, d.RecentOrders)
}

func TestDashboard_SoloEndDateAnteriorAlDatasetDevuelveVacio(t *testing.T) {
	uc := loadedUseCase(t)

	k, err := uc.GetKPIs(context.Background(), dto.DashboardRequest{EndDate: "2010-12-31"})
	require.NoError(t, err, "el inicio por defecto no invierte un rango que el usuario no pidió")
	assert.Zero(t, k.TotalOrders)
	assert.True(t, k.TotalRevenue.IsZero())
	assert.True(t, k.AvgOrderValue.IsZero())
}

func TestDashboard_SoloStartDatePosteriorAlDatasetDevuelveVacio(t *testing.T) {
	uc := loadedUseCase(t)

	d, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{StartDate: "2011-03-01"})
	require.NoError(t, err)
	assert.Zero(t, d.RecordCount)
	assert.Empty(t, d.MonthlyRevenue)
	assert.Empty(t, d.RecentOrders)
	assert.Equal(t, "2011-03-01", d.Filter.StartDate)
}

func TestDashboard_ParametrosInvalidos(t *testing.T) {
	uc := loadedUseCase(t)
	ctx := context.Background()

	_, err := uc.GetDashboard(ctx, dto.DashboardRequest{StartDate: "05/01/2011"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetDashboard(ctx, dto.DashboardRequest{EndDate: "2011-13-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetDashboard(ctx, dto.DashboardRequest{StartDate: "2011-03-01", EndDate: "2011-02-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_TopNYLimitSeAcotan(t *testing.T) {
	uc := loadedUseCase(t)
	ctx := context.Background()

	top, err := uc.GetTopProducts(ctx, dto.DashboardRequest{TopN: 1})
	require.NoError(t, err)
	assert.Len(t, top, 1)

	countries, err := uc.GetTopCountries(ctx, dto.DashboardRequest{TopN: 5000})
	require.NoError(t, err)
	assert.Len(t, countries, 2)

	recent, err := uc.GetRecentOrders(ctx, dto.DashboardRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestDashboard_OpcionesDeFiltro(t *testing.T) {
	uc := loadedUseCase(t)

	opts, err := uc.GetFilterOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "France", "United Kingdom"}, opts.Countries)
	assert.Equal(t, "2011-01-05", opts.MinDate)
	assert.Equal(t, "2011-02-01", opts.MaxDate)
}

func TestDashboard_OpcionesDeFiltroConDatasetVacio(t *testing.T) {
	uc := loadedUseCase(t, entity.RawRow{Line: 2, InvoiceID: "1", CustomerID: "1", Quantity: "-1", UnitPrice: "1", InvoiceTimestamp: "2011-01-01"})

	_, err := uc.GetFilterOptions()
	assert.ErrorIs(t, err, domain.ErrEmptyResult)

	d, err := uc.GetDashboard(context.Background(), dto.DashboardRequest{})
	require.NoError(t, err, "los reportes sobre un conjunto vacío no fallan")
	assert.Zero(t, d.RecordCount)
}

func TestDashboard_RecargaFallidaConservaElConjuntoAnterior(t *testing.T) {
	src := memory.NewSource(exampleRows()...)
	uc := analytics.NewDashboardUseCase(src, zerolog.Nop())
	before, err := uc.Load(context.Background())
	require.NoError(t, err)

	bad := exampleRows()
	bad[0].InvoiceTimestamp = "??"
	src.Replace(bad...)

	_, err = uc.Load(context.Background())
	var mErr *domain.MalformedInputError
	require.True(t, errors.As(err, &mErr))

	after, err := uc.Info()
	require.NoError(t, err)
	assert.Equal(t, before.SnapshotID, after.SnapshotID)
	assert.Equal(t, 3, after.RecordCount)
}

func TestDashboard_RecargaPublicaNuevoConjunto(t *testing.T) {
	src := memory.NewSource(exampleRows()...)
	uc := analytics.NewDashboardUseCase(src, zerolog.Nop())
	first, err := uc.Load(context.Background())
	require.NoError(t, err)

	src.Replace(exampleRows()[:1]...)
	second, err := uc.Load(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.SnapshotID, second.SnapshotID)
	k, err := uc.GetKPIs(context.Background(), dto.DashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, "10", k.TotalRevenue.String())
}

func TestDashboard_ErrorDelOrigen(t *testing.T) {
	boom := errors.New("archivo no encontrado")
	uc := analytics.NewDashboardUseCase(memory.NewFailingSource(boom), zerolog.Nop())

	_, err := uc.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = uc.Info()
	assert.ErrorIs(t, err, domain.ErrNotLoaded)
}
