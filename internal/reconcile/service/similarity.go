package service

import (
	"strings"

	"partmatch-service/internal/reconcile/model"
)

// DiceCoefficient: коэффициент Сёренсена-Дайса по мультимножеству биграмм:
// 2*|общие| / (биграмм в a + биграмм в b). Пробелы не учитываются.
// Совпадающие непустые строки → 1; обе пустые → 0 (считаем несовпадением).
func DiceCoefficient(a, b string) float64 {
	a = strings.Join(strings.Fields(a), "")
	b = strings.Join(strings.Fields(b), "")
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	grams := make(map[[2]rune]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		grams[[2]rune{ra[i], ra[i+1]}]++
	}
	common := 0
	for i := 0; i < len(rb)-1; i++ {
		g := [2]rune{rb[i], rb[i+1]}
		if grams[g] > 0 {
			grams[g]--
			common++
		}
	}
	return 2 * float64(common) / float64(len(ra)+len(rb)-2)
}

// ScorerByName: "dice" (по умолчанию) или "damerau".
func ScorerByName(name string) (model.Scorer, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dice", "bigram":
		return DiceCoefficient, true
	case "damerau", "levenshtein":
		return DamerauSimilarity, true
	default:
		return nil, false
	}
}
