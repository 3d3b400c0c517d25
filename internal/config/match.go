package config

import (
	"fmt"

	"partmatch-service/internal/reconcile/model"
	recSvc "partmatch-service/internal/reconcile/service"
)

// MatchOptions: опции сверки из окружения (порог, коэффициент, сокращения).
func (c Config) MatchOptions() (model.Options, error) {
	opt := recSvc.DefaultOptions()
	if c.MatchThreshold > 0 && c.MatchThreshold <= 1 {
		opt.Threshold = c.MatchThreshold
	}
	opt.ColumnGaps = c.ColumnGaps

	scorer, ok := recSvc.ScorerByName(c.Scorer)
	if !ok {
		return opt, fmt.Errorf("unknown scorer %q", c.Scorer)
	}
	opt.Scorer = scorer

	aliases, err := recSvc.LoadAliases(c.AliasesFile)
	if err != nil {
		return opt, err
	}
	opt.Aliases = aliases
	return opt, nil
}
