package analytics

import (
	"strings"
	"time"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
)

// AllCountries valor del selector de país que desactiva el filtro por país.
const AllCountries = "All"

// Filter selección del usuario: país (o "All") y rango de fechas inclusivo.
// From/To en cero significan "sin límite" en ese extremo.
type Filter struct {
	Country string
	From    time.Time
	To      time.Time
}

// IsAllCountries indica si el filtro de país está desactivado.
func (f Filter) IsAllCountries() bool {
	return f.Country == "" || strings.EqualFold(f.Country, AllCountries)
}

// Match evalúa ambos predicados sobre una transacción.
// País: igualdad exacta (sensible a mayúsculas). Fechas: From <= ts <= To.
func (f Filter) Match(t entity.Transaction) bool {
	if !f.IsAllCountries() && t.Country != f.Country {
		return false
	}
	if !f.From.IsZero() && t.InvoiceDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.InvoiceDate.After(f.To) {
		return false
	}
	return true
}

// Apply devuelve un nuevo slice con las transacciones que cumplen el filtro,
// en el mismo orden. Nunca modifica records.
func (f Filter) Apply(records []entity.Transaction) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(records))
	for _, t := range records {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
