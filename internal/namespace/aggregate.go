package namespace

import (
	"log/slog"
	"sort"

	"github.com/mtlprog/verusns/internal/batch"
	"github.com/mtlprog/verusns/internal/domain"
)

// collect keeps the successful resolutions sorted by name. Failures are only logged.
func collect(logger *slog.Logger, candidates []domain.CurrencyDefinition, results []batch.Result[domain.NamespaceOption]) []domain.NamespaceOption {
	options := make([]domain.NamespaceOption, 0, len(results))
	for _, r := range results {
		if !r.OK() {
			def := candidates[r.Index]
			logger.Warn("dropping namespace", "name", def.Name, "currency_id", def.CurrencyID, "error", r.Err)
			continue
		}
		options = append(options, r.Value)
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Name < options[j].Name
	})
	return options
}
