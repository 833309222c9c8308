package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics/internal/application/analytics"
	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

func cleanedExample(t *testing.T) []entity.Transaction {
	t.Helper()
	records, err := analytics.Clean(exampleRows())
	require.NoError(t, err)
	return records
}

func TestFilter_PaisExactoSensibleAMayusculas(t *testing.T) {
	records := cleanedExample(t)

	assert.Len(t, analytics.Filter{Country: "United Kingdom"}.Apply(records), 2)
	assert.Empty(t, analytics.Filter{Country: "united kingdom"}.Apply(records),
		"la comparación de país es exacta")
	assert.Len(t, analytics.Filter{Country: "France"}.Apply(records), 1)
}

func TestFilter_TodosLosPaises(t *testing.T) {
	records := cleanedExample(t)

	for _, c := range []string{"", "All", "all", "ALL"} {
		assert.Len(t, analytics.Filter{Country: c}.Apply(records), 3, "country=%q", c)
	}
}

func TestFilter_RangoInclusivoEnAmbosExtremos(t *testing.T) {
	records := cleanedExample(t)
	first := records[0].InvoiceDate
	last := records[2].InvoiceDate

	got := analytics.Filter{From: first, To: last}.Apply(records)
	assert.Len(t, got, 3, "los extremos exactos se incluyen")

	got = analytics.Filter{From: first.Add(time.Second), To: last.Add(-time.Second)}.Apply(records)
	require.Len(t, got, 1)
	assert.Equal(t, "536366", got[0].InvoiceID)
}

func TestFilter_Idempotente(t *testing.T) {
	records := cleanedExample(t)
	f := analytics.Filter{Country: "United Kingdom", From: day(2011, time.January, 10), To: day(2011, time.December, 31)}

	once := f.Apply(records)
	twice := f.Apply(once)
	assert.Equal(t, once, twice)
}

func TestFilter_Conmutativo(t *testing.T) {
	records := cleanedExample(t)
	byCountry := analytics.Filter{Country: "United Kingdom"}
	byDate := analytics.Filter{From: day(2011, time.January, 10), To: day(2011, time.February, 28)}

	a := byDate.Apply(byCountry.Apply(records))
	b := byCountry.Apply(byDate.Apply(records))
	assert.Equal(t, a, b)
	require.Len(t, a, 1)
}

func TestFilter_NoMutaElConjuntoBase(t *testing.T) {
	records := cleanedExample(t)
	snapshot := append([]entity.Transaction(nil), records...)

	_ = analytics.Filter{Country: "France"}.Apply(records)
	assert.Equal(t, snapshot, records)
}
