package fileio

import (
	"bytes"
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"

	"partmatch-service/internal/reconcile/model"
)

// readXLSX: все листы книги в порядке вкладок.
func readXLSX(r io.Reader, headerRow int) (model.Catalog, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cat model.Catalog
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		sheet := model.Sheet{Name: name}
		if len(rows) > 0 {
			h := pickHeader(rows, headerRow)
			sheet.Rows = rowsToMaps(rows, h, headerRow)
		}
		cat = append(cat, sheet)
	}
	return cat, nil
}
