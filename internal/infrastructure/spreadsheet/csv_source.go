package spreadsheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/retail-analytics/internal/domain"
	"github.com/jhoicas/retail-analytics/internal/domain/entity"
	"github.com/jhoicas/retail-analytics/internal/domain/repository"
)

var _ repository.TransactionSource = (*CSVSource)(nil)

// CSVSource lee el dataset desde un CSV con cabecera.
// Las exportaciones de "Online Retail" suelen venir en ISO-8859-1.
type CSVSource struct {
	path     string
	encoding encoding.Encoding // nil = UTF-8
}

// NewCSVSource construye el origen. enc: "", "utf8", "latin1" o "windows1252".
func NewCSVSource(path, enc string) (*CSVSource, error) {
	e, err := lookupEncoding(enc)
	if err != nil {
		return nil, err
	}
	return &CSVSource{path: path, encoding: e}, nil
}

// Describe implementa repository.TransactionSource.
func (s *CSVSource) Describe() string { return "csv " + s.path }

// LoadRows implementa repository.TransactionSource.
func (s *CSVSource) LoadRows(ctx context.Context) ([]entity.RawRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csv: abrir %s: %w", s.path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if s.encoding != nil {
		r = transform.NewReader(f, s.encoding.NewDecoder())
	}
	return readCSV(ctx, r)
}

func readCSV(ctx context.Context, r io.Reader) ([]entity.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: archivo vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: cabecera: %w", err)
	}
	idx, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var out []entity.RawRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pErr *csv.ParseError
			if errors.As(err, &pErr) {
				return nil, &domain.MalformedInputError{Line: pErr.Line, Column: "*", Reason: pErr.Err.Error()}
			}
			return nil, fmt.Errorf("csv: leer: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if line%5000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlank(record) {
			continue
		}
		out = append(out, idx.rawRow(line, record))
	}
	return out, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "utf8":
		return nil, nil
	case "latin1", "iso88591":
		return charmap.ISO8859_1, nil
	case "windows1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%w: codificación CSV no soportada: %s", domain.ErrInvalidInput, name)
	}
}
