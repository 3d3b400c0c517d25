package service

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"partmatch-service/internal/reconcile/model"
)

// Известные сокращения в таблицах деталей (ключи: в верхнем регистре).
var defaultAliases = map[string]string{
	"HEX SOCKET HEAD BOLT": "HEX BOLT",
	"SW":                   "SW (SPRING WASHER)",
	"PW":                   "PW (PLAIN WASHER)",
	"NUT":                  "NUT",
}

// DefaultAliases: копия встроенной таблицы сокращений.
func DefaultAliases() map[string]string {
	out := make(map[string]string, len(defaultAliases))
	for k, v := range defaultAliases {
		out[k] = v
	}
	return out
}

// MergeAliases накладывает extra поверх base; пустое значение удаляет ключ.
// Ключи приводятся к верхнему регистру, поиск регистронезависимый.
func MergeAliases(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	for k, v := range extra {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.TrimSpace(v) == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// LoadAliases читает JSON-объект {"SW": "SW (SPRING WASHER)", ...} и накладывает
// его на встроенную таблицу. Пустой path: только встроенная таблица.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return DefaultAliases(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	var extra map[string]string
	if err := json.Unmarshal(b, &extra); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	return MergeAliases(defaultAliases, extra), nil
}

var nameSeparators = regexp.MustCompile(`[,/]+`)

// ключи таблицы могут прийти в любом регистре, если она собрана без MergeAliases
func lookupAlias(aliases map[string]string, tok string) (string, bool) {
	if full, ok := aliases[strings.ToUpper(tok)]; ok {
		return full, true
	}
	// "cb" и "Cb" в одной таблице: берём наименьший ключ, порядок map не важен
	found, best := false, ""
	for k := range aliases {
		if strings.EqualFold(strings.TrimSpace(k), tok) && (!found || k < best) {
			found, best = true, k
		}
	}
	if !found {
		return "", false
	}
	return aliases[best], true
}

// ExpandNameSubitems режет составное имя по "," и "/" и раскрывает сокращения.
// Все подпозиции получают материал, количество и спецификацию родителя.
func ExpandNameSubitems(name, material, quantity, spec string, aliases map[string]string) []model.ParsedItem {
	if aliases == nil {
		aliases = defaultAliases
	}
	var out []model.ParsedItem
	for _, tok := range nameSeparators.Split(name, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if full, ok := lookupAlias(aliases, tok); ok {
			tok = full
		}
		out = append(out, model.ParsedItem{Name: tok, Material: material, Quantity: quantity, Spec: spec})
	}
	// имя из одних разделителей ("/", ",,"): оставляем как есть одной позицией
	if len(out) == 0 {
		out = append(out, model.ParsedItem{Name: strings.TrimSpace(name), Material: material, Quantity: quantity, Spec: spec})
	}
	return out
}
