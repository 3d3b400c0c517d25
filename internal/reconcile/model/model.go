package model

// ParsedItem: одна позиция, разобранная из строки OCR.
type ParsedItem struct {
	Name     string `json:"name"`
	Material string `json:"material"`
	Quantity string `json:"quantity"` // только цифры, "0" если не нашли
	Spec     string `json:"spec"`
}

// ParseError: строка, которую не удалось разложить на поля.
type ParseError struct {
	RawLine string `json:"rawLine"`
	Reason  string `json:"reason"`
}

const ReasonInsufficientTokens = "insufficient tokens"

// Entry: элемент результата разбора, либо Item, либо Err (ровно одно не nil).
type Entry struct {
	Item *ParsedItem
	Err  *ParseError
}

func ItemEntry(it ParsedItem) Entry { return Entry{Item: &it} }

func ErrorEntry(line, reason string) Entry {
	return Entry{Err: &ParseError{RawLine: line, Reason: reason}}
}

// Row: строка справочника, заголовок колонки -> значение. Только чтение.
type Row map[string]string

type Sheet struct {
	Name string `json:"sheetName"`
	Rows []Row  `json:"-"`
}

// Catalog: упорядоченный набор листов справочника.
type Catalog []Sheet

// Rows: общее число строк по всем листам.
func (c Catalog) Rows() int {
	n := 0
	for _, s := range c {
		n += len(s.Rows)
	}
	return n
}

// Fields: имена колонок справочника, участвующих в сравнении.
// Допускаются альтернативы через "|" (например: "품번|P/N").
type Fields struct {
	MaterialName string
	MaterialType string
	SpecType     string
	CapacitySize string
	DetailSpec   string
	PartNumber   string
}

func DefaultFields() Fields {
	return Fields{
		MaterialName: "자재명",
		MaterialType: "재질",
		SpecType:     "사양/타입",
		CapacitySize: "용량/사이즈",
		DetailSpec:   "상세규격",
		PartNumber:   "품번",
	}
}

// Scoring: порядок склейки полей строки справочника.
func (f Fields) Scoring() []string {
	return []string{f.MaterialName, f.MaterialType, f.SpecType, f.CapacitySize, f.DetailSpec, f.PartNumber}
}

type Candidate struct {
	SheetName string
	Row       Row
	Score     float64
}

type MatchedResult struct {
	Seq        int    `json:"seq"`
	PartNumber string `json:"pn"`
	Name       string `json:"name"`
	Spec       string `json:"spec"`
	Quantity   string `json:"quantity"`
	MatchRate  int    `json:"matchRate"` // проценты, round(score*100)
	Sheet      string `json:"sheet,omitempty"`
}

type UnmatchedResult struct {
	Seq      int    `json:"seq"`
	Name     string `json:"name"`
	Spec     string `json:"spec"`
	Quantity string `json:"quantity"`
	Reason   string `json:"reason"`
}

type Result struct {
	Matched   []MatchedResult   `json:"matchedItems"`
	Unmatched []UnmatchedResult `json:"unmatchedItems"`
}

// Counts: сводка для логов и метрик.
func (r Result) Counts() (matched, unmatched, parseErrors int) {
	for _, u := range r.Unmatched {
		// у разобранных позиций количество всегда из цифр
		if u.Quantity == "-" {
			parseErrors++
		}
	}
	return len(r.Matched), len(r.Unmatched) - parseErrors, parseErrors
}

// Scorer: коэффициент схожести двух нормализованных строк в [0..1].
type Scorer func(a, b string) float64

type Options struct {
	Threshold  float64           // порог совпадения (0..1), по умолчанию 0.40
	ColumnGaps bool              // делить строку по широким промежуткам (таб, 2+ пробела)
	Aliases    map[string]string // сокращение -> полное наименование
	Fields     Fields            // колонки справочника
	Scorer     Scorer            // nil -> коэффициент Дайса по биграммам
}
