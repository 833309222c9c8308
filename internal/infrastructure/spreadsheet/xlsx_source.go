package spreadsheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/retail-analytics/internal/domain/entity"
	"github.com/jhoicas/retail-analytics/internal/domain/repository"
)

var _ repository.TransactionSource = (*XLSXSource)(nil)

// XLSXSource lee el dataset desde un libro de Excel.
type XLSXSource struct {
	path  string
	sheet string // vacío = primera hoja
}

// NewXLSXSource construye el origen. sheet vacío usa la primera hoja del libro.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

// Describe implementa repository.TransactionSource.
func (s *XLSXSource) Describe() string {
	if s.sheet != "" {
		return fmt.Sprintf("xlsx %s [%s]", s.path, s.sheet)
	}
	return "xlsx " + s.path
}

// LoadRows recorre la hoja en streaming. Se leen valores crudos de celda para que
// los números no dependan del formato de visualización; las fechas llegan como
// serial de Excel y se normalizan a "2006-01-02 15:04:05".
func (s *XLSXSource) LoadRows(ctx context.Context) ([]entity.RawRow, error) {
	f, err := excelize.OpenFile(s.path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir %s: %w", s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: %s no contiene hojas", s.path)
		}
		sheet = sheets[0]
	}

	// Libros creados en Mac antiguos cuentan los seriales desde 1904.
	date1904 := false
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("xlsx: propiedades del libro: %w", err)
	}
	if props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: hoja %q: %w", sheet, err)
	}
	defer rows.Close()

	var (
		idx  columnIndex
		out  []entity.RawRow
		line int
	)
	for rows.Next() {
		line++
		if line%5000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", line, err)
		}
		if idx == nil {
			if idx, err = mapHeader(cells); err != nil {
				return nil, err
			}
			continue
		}
		if isBlank(cells) {
			continue
		}
		raw := idx.rawRow(line, cells)
		raw.InvoiceTimestamp = normalizeExcelDate(raw.InvoiceTimestamp, date1904)
		out = append(out, raw)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %q: %w", sheet, err)
	}
	if idx == nil {
		return nil, fmt.Errorf("xlsx: hoja %q vacía", sheet)
	}
	return out, nil
}

// normalizeExcelDate convierte un serial de Excel (ej: "40513.35138888889") en texto.
// Cualquier otro valor se devuelve intacto; la limpieza decide si es interpretable.
func normalizeExcelDate(v string, date1904 bool) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return v
	}
	return t.Round(time.Second).Format("2006-01-02 15:04:05")
}
