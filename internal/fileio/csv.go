package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"partmatch-service/internal/reconcile/model"
)

// readCSV читает CSV как один лист, определяя кодировку и перекодируя в UTF-8.
// Поддерживаются UTF-8 (с BOM и без), EUC-KR/CP949 и Windows-1251.
func readCSV(r io.Reader, sheetName string, headerRow int) (model.Sheet, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(2048)
	var dec io.Reader = br
	if enc := detectEncoding(peek); enc != nil {
		dec = transform.NewReader(br, enc.NewDecoder())
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Sheet{}, err
		}
		rows = append(rows, rec)
	}
	sheet := model.Sheet{Name: sheetName}
	if len(rows) == 0 {
		return sheet, nil
	}
	// BOM в первом заголовке
	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	h := pickHeader(rows, headerRow)
	sheet.Rows = rowsToMaps(rows, h, headerRow)
	return sheet, nil
}

// nil: оставляем как есть (UTF-8)
func detectEncoding(peek []byte) encoding.Encoding {
	if len(peek) == 0 || looksUTF8(peek) {
		return nil
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return nil
	}
	switch strings.ToLower(det.Charset) {
	case "euc-kr", "cp949":
		return korean.EUCKR
	case "windows-1251", "cp1251":
		return charmap.Windows1251
	default:
		return nil
	}
}

// peek может оборвать последний символ посередине
func looksUTF8(b []byte) bool {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}
		b = b[:len(b)-1]
	}
	return len(b) > 0 && utf8.Valid(b)
}
