package domain

import (
	"sort"

	"github.com/samber/lo"
)

// rootCurrencyTickers maps supported chain identifiers to their native currency ticker.
var rootCurrencyTickers = map[string]string{
	"verus":         "vrsc",
	"verus-testnet": "vrsctest",
	"chips":         "chips",
	"vdex":          "vdex",
	"varrr":         "varrr",
}

// RootCurrencyTicker returns the native currency ticker of a known chain.
func RootCurrencyTicker(chainID string) (string, bool) {
	ticker, ok := rootCurrencyTickers[chainID]
	return ticker, ok
}

// SupportedChains returns the known chain identifiers in sorted order.
func SupportedChains() []string {
	chains := lo.Keys(rootCurrencyTickers)
	sort.Strings(chains)
	return chains
}
