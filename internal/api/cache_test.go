package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/verusns/internal/domain"
	"github.com/mtlprog/verusns/internal/verusd"
)

func TestDetailCacheExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newDetailCache(30 * time.Second)
	c.now = func() time.Time { return now }

	c.set("Kaiju", domain.CurrencyDetail{CurrencyDefinition: domain.CurrencyDefinition{Name: "Kaiju"}})

	got, ok := c.get("Kaiju")
	require.True(t, ok)
	assert.Equal(t, "Kaiju", got.Name)

	now = now.Add(31 * time.Second)
	_, ok = c.get("Kaiju")
	assert.False(t, ok)

	c.set("VRSC", domain.CurrencyDetail{})
	assert.Len(t, c.entries, 1)
}

func TestNilDetailCache(t *testing.T) {
	var c *detailCache
	c.set("Kaiju", domain.CurrencyDetail{})
	_, ok := c.get("Kaiju")
	assert.False(t, ok)
}

func TestGetCurrencyServedFromCache(t *testing.T) {
	ns := &mockNamespaces{detail: domain.CurrencyDetail{CurrencyDefinition: domain.CurrencyDefinition{Name: "Kaiju"}}}
	router := NewRouter("verus", Deps{Namespaces: ns, CurrencyCacheTTL: time.Minute}, "")

	for range 3 {
		w := serve(t, router, http.MethodGet, "/api/v1/currencies/Kaiju")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Kaiju")
	}
	assert.Equal(t, 1, ns.detailCalls)
}

func TestGetCurrencyFailuresNotCached(t *testing.T) {
	ns := &mockNamespaces{detailErr: &verusd.RPCError{Code: -5, Message: "Cannot find currency"}}
	router := NewRouter("verus", Deps{Namespaces: ns, CurrencyCacheTTL: time.Minute}, "")

	for range 2 {
		w := serve(t, router, http.MethodGet, "/api/v1/currencies/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	assert.Equal(t, 2, ns.detailCalls)
}
