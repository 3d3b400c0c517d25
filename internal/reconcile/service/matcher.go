package service

import "partmatch-service/internal/reconcile/model"

// Matcher держит справочник и опции, загруженные при старте.
// Справочник только читается, поэтому Matcher безопасен для параллельных вызовов.
type Matcher struct {
	catalog model.Catalog
	opt     model.Options
}

func NewMatcher(catalog model.Catalog, opt model.Options) *Matcher {
	return &Matcher{catalog: catalog, opt: withDefaults(opt)}
}

func (m *Matcher) Catalog() model.Catalog { return m.catalog }

// Options: копия опций; Aliases общий и не должен меняться.
func (m *Matcher) Options() model.Options { return m.opt }

func (m *Matcher) Run(text string) model.Result { return Run(text, m.catalog, m.opt) }

// RunWith: как Run, но с опциями запроса (порог, разбор по колонкам).
func (m *Matcher) RunWith(text string, opt model.Options) model.Result {
	return Run(text, m.catalog, opt)
}
