package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCurrencyTicker(t *testing.T) {
	ticker, ok := RootCurrencyTicker("verus-testnet")
	assert.True(t, ok)
	assert.Equal(t, "vrsctest", ticker)

	ticker, ok = RootCurrencyTicker("verus")
	assert.True(t, ok)
	assert.Equal(t, "vrsc", ticker)

	_, ok = RootCurrencyTicker("unknown-chain")
	assert.False(t, ok)

	_, ok = RootCurrencyTicker("VERUS")
	assert.False(t, ok, "chain identifiers are case sensitive")
}

func TestSupportedChainsSorted(t *testing.T) {
	assert.Equal(t, []string{"chips", "varrr", "vdex", "verus", "verus-testnet"}, SupportedChains())
}
