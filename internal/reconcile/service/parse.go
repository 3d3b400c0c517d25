package service

import (
	"regexp"
	"strings"

	"partmatch-service/internal/reconcile/model"
)

// шапка таблицы: все четыре заголовка колонок в одной строке
var headerColumns = []string{"명칭", "재료", "수량", "규격"}

// служебные колонки: достаточно одного вхождения
var headerFurniture = []string{"순번", "p.no", "비고", "remarks"}

// IsHeaderNoise: строка похожа на шапку таблицы и в разбор не идёт.
// Это эвристика: пропущенные шапки дальше отвалятся как ошибки разбора.
func IsHeaderNoise(line string) bool {
	lower := strings.ToLower(line)
	all := true
	for _, k := range headerColumns {
		if !strings.Contains(lower, k) {
			all = false
			break
		}
	}
	if all {
		return true
	}
	for _, k := range headerFurniture {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// таб или 2+ пробела: граница колонок в выводе OCR
var columnGap = regexp.MustCompile(`\t+|\s{2,}`)

func splitLine(line string, gaps bool) []string {
	if gaps {
		var cols []string
		for _, c := range columnGap.Split(line, -1) {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
		if len(cols) >= 4 {
			return cols
		}
	}
	return strings.Fields(line)
}

// ParseLine: имя, материал, количество, спецификация (всё остальное).
// Меньше 4 токенов: одна ошибка разбора с исходной строкой.
func ParseLine(line string, opt model.Options) []model.Entry {
	parts := splitLine(line, opt.ColumnGaps)
	if len(parts) < 4 {
		return []model.Entry{model.ErrorEntry(line, model.ReasonInsufficientTokens)}
	}
	rawName, rawMaterial, rawQty := parts[0], parts[1], parts[2]
	spec := strings.Join(parts[3:], " ")

	items := ExpandNameSubitems(rawName, rawMaterial, ExtractDigits(rawQty), spec, opt.Aliases)
	out := make([]model.Entry, 0, len(items))
	for _, it := range items {
		out = append(out, model.ItemEntry(it))
	}
	return out
}

// ParseAll: весь текст OCR в упорядоченную последовательность позиций/ошибок.
// Порядок результата задаёт нумерацию seq ниже по конвейеру.
func ParseAll(text string, opt model.Options) []model.Entry {
	opt = withDefaults(opt)
	var out []model.Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || IsHeaderNoise(line) {
			continue
		}
		out = append(out, ParseLine(line, opt)...)
	}
	return out
}
