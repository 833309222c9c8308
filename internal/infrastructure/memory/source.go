// Package memory implementa un TransactionSource en memoria para fixtures y tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
	"github.com/jhoicas/retail-analytics/internal/domain/repository"
)

var _ repository.TransactionSource = (*Source)(nil)

// Source devuelve siempre una copia de las filas con las que se construyó.
type Source struct {
	mu   sync.RWMutex
	rows []entity.RawRow
	err  error
}

// NewSource construye el origen. Las filas sin Line reciben su posición (la cabecera cuenta como 1).
func NewSource(rows ...entity.RawRow) *Source {
	return &Source{rows: numbered(rows)}
}

// Replace sustituye las filas (simula un archivo reescrito entre recargas).
func (s *Source) Replace(rows ...entity.RawRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = numbered(rows)
}

// NewFailingSource origen que siempre falla con err.
func NewFailingSource(err error) *Source {
	return &Source{err: err}
}

// LoadRows implementa repository.TransactionSource.
func (s *Source) LoadRows(ctx context.Context) ([]entity.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rows), nil
}

// Describe implementa repository.TransactionSource.
func (s *Source) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("memory (%d filas)", len(s.rows))
}

func numbered(rows []entity.RawRow) []entity.RawRow {
	cp := slices.Clone(rows)
	for i := range cp {
		if cp[i].Line == 0 {
			cp[i].Line = i + 2
		}
	}
	return cp
}
