package analytics

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/retail-analytics/internal/application/dto"
	"github.com/jhoicas/retail-analytics/internal/domain"
	"github.com/jhoicas/retail-analytics/internal/domain/entity"
	"github.com/jhoicas/retail-analytics/internal/domain/repository"
	"github.com/jhoicas/retail-analytics/pkg/format"
)

const (
	maxTopN         = 100
	maxRecentOrders = 1000
	dateLayout      = "2006-01-02"
)

// snapshot conjunto base inmutable producido por una carga.
type snapshot struct {
	id        string
	rowsRead  int
	records   []entity.Transaction
	countries []string // orden alfabético, sin "All"
	minDate   time.Time
	maxDate   time.Time
	loadedAt  time.Time
}

// DashboardUseCase posee el conjunto base de transacciones y genera las tablas del dashboard.
//
// Fuente de datos: TransactionSource inyectado (xlsx, csv, postgres o memoria).
// El conjunto base se lee una vez con Load y es de solo lectura; Load de nuevo
// reemplaza el puntero completo, así los lectores concurrentes nunca ven una carga a medias.
type DashboardUseCase struct {
	source repository.TransactionSource
	log    zerolog.Logger
	base   atomic.Pointer[snapshot]
}

// NewDashboardUseCase construye el caso de uso. No lee el origen hasta Load.
func NewDashboardUseCase(source repository.TransactionSource, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{source: source, log: log}
}

// Load lee el origen, limpia las filas y publica el nuevo conjunto base.
// Si la limpieza falla se conserva el conjunto anterior.
func (uc *DashboardUseCase) Load(ctx context.Context) (*dto.DatasetInfoDTO, error) {
	start := time.Now()
	uc.log.Info().Str("source", uc.source.Describe()).Msg("cargando transacciones")

	rows, err := uc.source.LoadRows(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo leer el origen; se conserva el conjunto anterior")
		return nil, fmt.Errorf("dashboard: leer origen: %w", err)
	}
	records, err := Clean(rows)
	if err != nil {
		uc.log.Error().Err(err).Int("rows_read", len(rows)).Msg("limpieza fallida; se conserva el conjunto anterior")
		return nil, fmt.Errorf("dashboard: limpieza: %w", err)
	}

	snap := buildSnapshot(rows, records)
	uc.base.Store(snap)

	uc.log.Info().
		Str("snapshot_id", snap.id).
		Int("rows_read", snap.rowsRead).
		Int("records", len(snap.records)).
		Dur("duration", time.Since(start)).
		Msg("transacciones cargadas")

	return uc.info(snap), nil
}

// Info devuelve los metadatos del conjunto base actual.
func (uc *DashboardUseCase) Info() (*dto.DatasetInfoDTO, error) {
	snap, err := uc.current()
	if err != nil {
		return nil, err
	}
	return uc.info(snap), nil
}

// GetFilterOptions devuelve "All" + los países del conjunto base y sus fechas mínima/máxima.
func (uc *DashboardUseCase) GetFilterOptions() (*dto.FilterOptionsDTO, error) {
	snap, err := uc.current()
	if err != nil {
		return nil, err
	}
	if len(snap.records) == 0 {
		return nil, fmt.Errorf("dashboard: límites de fecha: %w", domain.ErrEmptyResult)
	}
	countries := make([]string, 0, len(snap.countries)+1)
	countries = append(countries, AllCountries)
	countries = append(countries, snap.countries...)
	return &dto.FilterOptionsDTO{
		Countries: countries,
		MinDate:   snap.minDate.Format(dateLayout),
		MaxDate:   snap.maxDate.Format(dateLayout),
	}, nil
}

// GetDashboard construye las seis tablas del reporte para el filtro solicitado.
func (uc *DashboardUseCase) GetDashboard(_ context.Context, req dto.DashboardRequest) (*dto.DashboardDTO, error) {
	subset, applied, err := uc.subset(req)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardDTO{
		Filter:           applied,
		RecordCount:      len(subset),
		KPIs:             toKPIsDTO(ComputeKPIs(subset)),
		MonthlyRevenue:   toMonthlyDTO(MonthlyRevenue(subset)),
		TopProducts:      toTopProductsDTO(TopProducts(subset, clampTopN(req.TopN))),
		TopCountries:     toCountryDTO(TopCountries(subset, clampTopN(req.TopN))),
		RevenueByCountry: toCountryDTO(RevenueByCountry(subset)),
		RecentOrders:     toRecentDTO(RecentOrders(subset, clampLimit(req.Limit))),
	}, nil
}

// GetKPIs devuelve solo las tarjetas de indicadores.
func (uc *DashboardUseCase) GetKPIs(_ context.Context, req dto.DashboardRequest) (*dto.KPIsDTO, error) {
	subset, _, err := uc.subset(req)
	if err != nil {
		return nil, err
	}
	k := toKPIsDTO(ComputeKPIs(subset))
	return &k, nil
}

// GetMonthlyRevenue devuelve la serie mensual ascendente.
func (uc *DashboardUseCase) GetMonthlyRevenue(_ context.Context, req dto.DashboardRequest) ([]dto.MonthlyRevenueDTO, error) {
	subset, _, err := uc.subset(req)
	if err != nil {
		return nil, err
	}
	return toMonthlyDTO(MonthlyRevenue(subset)), nil
}

// GetTopProducts devuelve el ranking de productos por unidades.
func (uc *DashboardUseCase) GetTopProducts(_ context.Context, req dto.DashboardRequest) ([]dto.TopProductDTO, error) {
	subset, _, err := uc.subset(req)
	if err != nil {
		return nil, err
	}
	return toTopProductsDTO(TopProducts(subset, clampTopN(req.TopN))), nil
}

// GetTopCountries devuelve el ranking de países por ingreso.
func (uc *DashboardUseCase) GetTopCountries(_ context.Context, req dto.DashboardRequest) ([]dto.CountryRevenueDTO, error) {
	subset, _, err := uc.subset(req)
	if err != nil {
		return nil, err
	}
	return toCountryDTO(TopCountries(subset, clampTopN(req.TopN))), nil
}

// GetRevenueByCountry devuelve el ingreso de cada país (para el mapa).
func (uc *DashboardUseCase) GetRevenueByCountry(_ context.Context, req dto.DashboardRequest) ([]dto.CountryRevenueDTO, error) {
	subset, _, err := uc.subset(req)
	if err != nil {
		return nil, err
	}
	return toCountryDTO(RevenueByCountry(subset)), nil
}

// GetRecentOrders devuelve los pedidos más recientes.
func (uc *DashboardUseCase) GetRecentOrders(_ context.Context, req dto.DashboardRequest) ([]dto.RecentOrderDTO, error) {
	subset, _, err := uc.subset(req)
	if err != nil {
		return nil, err
	}
	return toRecentDTO(RecentOrders(subset, clampLimit(req.Limit))), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *DashboardUseCase) current() (*snapshot, error) {
	snap := uc.base.Load()
	if snap == nil {
		return nil, domain.ErrNotLoaded
	}
	return snap, nil
}

func (uc *DashboardUseCase) subset(req dto.DashboardRequest) ([]entity.Transaction, dto.AppliedFilterDTO, error) {
	snap, err := uc.current()
	if err != nil {
		return nil, dto.AppliedFilterDTO{}, err
	}
	f, err := resolveFilter(snap, req)
	if err != nil {
		return nil, dto.AppliedFilterDTO{}, err
	}
	applied := dto.AppliedFilterDTO{Country: AllCountries}
	if !f.IsAllCountries() {
		applied.Country = f.Country
	}
	if !f.From.IsZero() {
		applied.StartDate = f.From.Format(dateLayout)
	}
	if !f.To.IsZero() {
		applied.EndDate = f.To.Format(dateLayout)
	}
	return f.Apply(snap.records), applied, nil
}

func (uc *DashboardUseCase) info(snap *snapshot) *dto.DatasetInfoDTO {
	return &dto.DatasetInfoDTO{
		SnapshotID:  snap.id,
		Source:      uc.source.Describe(),
		RowsRead:    snap.rowsRead,
		RecordCount: len(snap.records),
		LoadedAt:    snap.loadedAt.Format(time.RFC3339),
	}
}

// resolveFilter convierte la petición en Filter aplicando los límites del dataset por defecto.
// end_date es inclusivo hasta el final del día.
func resolveFilter(snap *snapshot, req dto.DashboardRequest) (Filter, error) {
	f := Filter{Country: req.Country, From: snap.minDate, To: snap.maxDate}
	if req.StartDate != "" {
		start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: start_date inválido: %s", domain.ErrInvalidInput, req.StartDate)
		}
		f.From = start
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: end_date inválido: %s", domain.ErrInvalidInput, req.EndDate)
		}
		f.To = end.Add(24*time.Hour - time.Nanosecond)
	}
	// Solo un rango pedido explícitamente puede estar invertido; con un límite por defecto
	// el resultado es simplemente un subconjunto vacío.
	if req.StartDate != "" && req.EndDate != "" && f.From.After(f.To) {
		return Filter{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}
	return f, nil
}

func buildSnapshot(rows []entity.RawRow, records []entity.Transaction) *snapshot {
	snap := &snapshot{
		id:       uuid.NewString(),
		rowsRead: len(rows),
		records:  records,
		loadedAt: time.Now(),
	}
	seen := make(map[string]struct{})
	for i, t := range records {
		if i == 0 || t.InvoiceDate.Before(snap.minDate) {
			snap.minDate = t.InvoiceDate
		}
		if i == 0 || t.InvoiceDate.After(snap.maxDate) {
			snap.maxDate = t.InvoiceDate
		}
		if t.Country == "" {
			continue
		}
		if _, ok := seen[t.Country]; !ok {
			seen[t.Country] = struct{}{}
			snap.countries = append(snap.countries, t.Country)
		}
	}
	slices.Sort(snap.countries)
	return snap
}

func clampTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	return min(n, maxTopN)
}

func clampLimit(n int) int {
	if n <= 0 {
		return DefaultRecentOrders
	}
	return min(n, maxRecentOrders)
}

// ── Conversión a DTO (montos redondeados a 2 decimales) ──────────────────────

func toKPIsDTO(k KPIs) dto.KPIsDTO {
	return dto.KPIsDTO{
		TotalRevenue:       k.TotalRevenue.Round(2),
		TotalOrders:        k.TotalOrders,
		TotalCustomers:     k.TotalCustomers,
		AvgOrderValue:      k.AvgOrderValue.Round(2),
		RevenueLabel:       format.Pounds(k.TotalRevenue),
		AvgOrderValueLabel: format.PoundsCents(k.AvgOrderValue),
	}
}

func toMonthlyDTO(rows []MonthRevenue) []dto.MonthlyRevenueDTO {
	out := make([]dto.MonthlyRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyRevenueDTO{Month: r.Month.Format("2006-01"), Revenue: r.Revenue.Round(2)})
	}
	return out
}

func toTopProductsDTO(rows []ProductQuantity) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for i, r := range rows {
		out = append(out, dto.TopProductDTO{Rank: i + 1, Description: r.Description, Quantity: r.Quantity})
	}
	return out
}

func toCountryDTO(rows []CountryRevenue) []dto.CountryRevenueDTO {
	out := make([]dto.CountryRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CountryRevenueDTO{Country: r.Country, Revenue: r.Revenue.Round(2)})
	}
	return out
}

func toRecentDTO(rows []RecentOrder) []dto.RecentOrderDTO {
	out := make([]dto.RecentOrderDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RecentOrderDTO{
			InvoiceDate: r.InvoiceDate.Format(time.RFC3339),
			InvoiceID:   r.InvoiceID,
			CustomerID:  r.CustomerID,
			Country:     r.Country,
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			LineTotal:   r.LineTotal.Round(2),
		})
	}
	return out
}
