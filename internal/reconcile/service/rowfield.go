package service

import (
	"regexp"
	"strings"

	"partmatch-service/internal/reconcile/model"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, NBSP, служ.символы и лишние пробелы
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return collapseSpaces(nonWord.ReplaceAllString(s, " "))
}

// Field: значение колонки want в строке справочника, "" если колонки нет.
// want поддерживает альтернативы через "|": сначала точное совпадение
// заголовка, затем сравнение нормализованных заголовков ("사양 / 타입" == "사양/타입").
func Field(row model.Row, want string) string {
	want = strings.TrimSpace(want)
	if want == "" || len(row) == 0 {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
		if v, ok := row[alts[i]]; ok {
			return v
		}
	}
	for _, a := range alts {
		na := normHeaderKey(a)
		if na == "" {
			continue
		}
		// при нескольких подходящих заголовках берём наименьший: порядок map не важен
		found, best := false, ""
		for k := range row {
			if normHeaderKey(k) == na && (!found || k < best) {
				found, best = true, k
			}
		}
		if found {
			return row[best]
		}
	}
	return ""
}
