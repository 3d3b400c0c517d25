package service

import (
	"fmt"
	"math"
	"strings"

	"partmatch-service/internal/reconcile/model"
)

const (
	DefaultThreshold = 0.40

	NoPartNumber = "(no part number)"
)

// DefaultOptions: порог 40%, коэффициент Дайса, встроенные сокращения.
func DefaultOptions() model.Options {
	return model.Options{
		Threshold: DefaultThreshold,
		Aliases:   DefaultAliases(),
		Fields:    model.DefaultFields(),
		Scorer:    DiceCoefficient,
	}
}

// заполняем незаданные опции значениями по умолчанию
func withDefaults(opt model.Options) model.Options {
	if opt.Threshold <= 0 || opt.Threshold > 1 || math.IsNaN(opt.Threshold) {
		opt.Threshold = DefaultThreshold
	}
	if opt.Aliases == nil {
		opt.Aliases = defaultAliases
	} else {
		opt.Aliases = MergeAliases(opt.Aliases, nil)
	}
	if opt.Fields == (model.Fields{}) {
		opt.Fields = model.DefaultFields()
	}
	if opt.Scorer == nil {
		opt.Scorer = DiceCoefficient
	}
	return opt
}

// Score: схожесть позиции OCR и строки справочника.
// Справочник: 자재명+재질+사양/타입+용량/사이즈+상세규격+품번; позиция: имя+материал+спецификация.
func Score(item model.ParsedItem, row model.Row, opt model.Options) float64 {
	opt = withDefaults(opt)
	return score(item, row, opt)
}

func score(item model.ParsedItem, row model.Row, opt model.Options) float64 {
	var sb strings.Builder
	for _, key := range opt.Fields.Scoring() {
		sb.WriteString(Field(row, key))
		sb.WriteByte(' ')
	}
	rowNorm := Normalize(sb.String())
	itemNorm := Normalize(item.Name + " " + item.Material + " " + item.Spec)
	return opt.Scorer(itemNorm, rowNorm)
}

// BestMatch: полный перебор всех строк всех листов в порядке справочника.
// При равных оценках остаётся первый найденный кандидат. false: ниже порога.
func BestMatch(item model.ParsedItem, catalog model.Catalog, opt model.Options) (model.Candidate, bool) {
	return bestMatch(item, catalog, withDefaults(opt))
}

func bestMatch(item model.ParsedItem, catalog model.Catalog, opt model.Options) (model.Candidate, bool) {
	var (
		best  model.Candidate
		found bool
	)
	for _, sheet := range catalog {
		for _, row := range sheet.Rows {
			s := score(item, row, opt)
			if !found || s > best.Score {
				best = model.Candidate{SheetName: sheet.Name, Row: row, Score: s}
				found = true
			}
		}
	}
	if !found || best.Score < opt.Threshold {
		return model.Candidate{}, false
	}
	return best, true
}

// Reconcile: делим разобранные позиции на сопоставленные и нет.
// seq: 1-based позиция в последовательности entries.
func Reconcile(entries []model.Entry, catalog model.Catalog, opt model.Options) model.Result {
	opt = withDefaults(opt)
	res := model.Result{
		Matched:   make([]model.MatchedResult, 0, len(entries)),
		Unmatched: make([]model.UnmatchedResult, 0),
	}
	belowReason := fmt.Sprintf("match below %d%% threshold", percent(opt.Threshold))

	for i, e := range entries {
		seq := i + 1
		if e.Err != nil {
			res.Unmatched = append(res.Unmatched, model.UnmatchedResult{
				Seq:      seq,
				Name:     e.Err.RawLine,
				Spec:     "-",
				Quantity: "-",
				Reason:   fmt.Sprintf("parse error (%s)", e.Err.Reason),
			})
			continue
		}
		if e.Item == nil {
			continue
		}
		item := *e.Item

		best, ok := bestMatch(item, catalog, opt)
		if !ok {
			res.Unmatched = append(res.Unmatched, model.UnmatchedResult{
				Seq:      seq,
				Name:     item.Name,
				Spec:     item.Spec,
				Quantity: item.Quantity,
				Reason:   belowReason,
			})
			continue
		}

		pn := strings.TrimSpace(Field(best.Row, opt.Fields.PartNumber))
		if pn == "" {
			pn = NoPartNumber
		}
		res.Matched = append(res.Matched, model.MatchedResult{
			Seq:        seq,
			PartNumber: pn,
			Name:       item.Name,
			Spec:       item.Spec,
			Quantity:   item.Quantity,
			MatchRate:  percent(best.Score),
			Sheet:      best.SheetName,
		})
	}
	return res
}

// Run: текст OCR целиком, разбор + сверка со справочником.
func Run(text string, catalog model.Catalog, opt model.Options) model.Result {
	opt = withDefaults(opt)
	return Reconcile(ParseAll(text, opt), catalog, opt)
}

func percent(f float64) int { return int(math.Round(f * 100)) }
