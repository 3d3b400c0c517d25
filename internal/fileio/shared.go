package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"partmatch-service/internal/reconcile/model"
)

// ReadAny: выберет парсер по расширению и вернёт все листы справочника.
// Первая строка каждого листа: заголовки колонок.
func ReadAny(r io.Reader, filename string) (model.Catalog, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return readXLSX(r, 1)
	case ".xls":
		return readXLS(r, 1)
	case ".csv":
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		sheet, err := readCSV(r, name, 1)
		if err != nil {
			return nil, err
		}
		return model.Catalog{sheet}, nil
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// LoadFile: справочник с диска (один раз при старте процесса).
func LoadFile(path string) (model.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	cat, err := ReadAny(f, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return cat, nil
}

type SheetSummary struct {
	Name string `json:"sheetName"`
	Rows int    `json:"rows"`
}

func Summary(c model.Catalog) []SheetSummary {
	out := make([]SheetSummary, 0, len(c))
	for _, s := range c {
		out = append(out, SheetSummary{Name: s.Name, Rows: len(s.Rows)})
	}
	return out
}

// pickHeader: берёт строку заголовков и подставляет Column N для пустых.
func pickHeader(rows [][]string, headerRow int) []string {
	if len(rows) == 0 {
		return nil
	}
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps: конвертирует AoA в строки справочника по заголовкам.
// Пустые ячейки в строку не попадают (как "нет поля"), полностью пустые строки пропускаются.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []model.Row {
	start := headerRow // первая строка после заголовков
	var out []model.Row
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := model.Row{}
		for c := 0; c < len(headers) && c < len(rec); c++ {
			if v := normalizeCell(rec[c]); v != "" {
				m[headers[c]] = v
			}
		}
		if len(m) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// normalizeCell: NBSP/NNBSP в пробел, обрезка краёв и переводов строк.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
