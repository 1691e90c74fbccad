package namespace

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mtlprog/verusns/internal/domain"
)

func definition(name, importFees string) domain.CurrencyDefinition {
	return domain.CurrencyDefinition{
		Name:               name,
		CurrencyID:         "i" + name,
		IDImportFees:       decimal.RequireFromString(importFees),
		FullyQualifiedName: name,
	}
}

func stateWith(ids ...string) *domain.CurrencyState {
	res := make([]domain.ReserveCurrency, 0, len(ids))
	for _, id := range ids {
		res = append(res, domain.ReserveCurrency{CurrencyID: id, Reserves: decimal.NewFromInt(1)})
	}
	return &domain.CurrencyState{ReserveCurrencies: res}
}

func TestResolveFeeCurrencyReserveIndexed(t *testing.T) {
	def := definition("X", "0.00000000")
	detail := domain.CurrencyDetail{
		CurrencyNames: map[string]string{"R1": "Gold"},
		State:         stateWith("R1"),
	}

	got := ResolveFeeCurrency(def, detail)

	assert.Equal(t, "Gold", got.Name)
	assert.Equal(t, 0, got.ReserveIndex)
	assert.NoError(t, got.Miss)
}

func TestResolveFeeCurrencySecondReserve(t *testing.T) {
	def := definition("Bridge", "0.00000001")
	detail := domain.CurrencyDetail{
		CurrencyNames: map[string]string{"iA": "VRSC", "iB": "DAI.vETH", "iBridge": "Bridge"},
		State:         stateWith("iA", "iB"),
	}

	got := ResolveFeeCurrency(def, detail)

	assert.Equal(t, "DAI.vETH", got.Name)
	assert.Equal(t, 1, got.ReserveIndex)
	assert.NoError(t, got.Miss)
}

func TestResolveFeeCurrencySelf(t *testing.T) {
	tests := []struct {
		name       string
		importFees string
	}{
		{"ordinary fee fraction", "0.0005"},
		{"just above window", "0.0000001"},
		{"twelve satoshis", "0.00000012"},
		{"negative", "-0.00000003"},
		{"whole coins", "5"},
	}

	// A detail with nothing in it proves the self case never reads it.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFeeCurrency(definition("Own", tt.importFees), domain.CurrencyDetail{})
			assert.Equal(t, "Own", got.Name)
			assert.Equal(t, -1, got.ReserveIndex)
			assert.NoError(t, got.Miss)
		})
	}
}

func TestResolveFeeCurrencyMisses(t *testing.T) {
	names := map[string]string{"iA": "VRSC"}

	tests := []struct {
		name       string
		importFees string
		detail     domain.CurrencyDetail
		wantName   string
		wantErr    error
	}{
		{
			name:       "no currencynames",
			importFees: "0.00000000",
			detail:     domain.CurrencyDetail{State: stateWith("iA")},
			wantName:   "UnknownCurrency",
			wantErr:    ErrNoCurrencyNames,
		},
		{
			name:       "no state",
			importFees: "0.00000000",
			detail:     domain.CurrencyDetail{CurrencyNames: names},
			wantName:   "UnknownReserve",
			wantErr:    ErrNoCurrencyState,
		},
		{
			name:       "no reserve list",
			importFees: "0.00000000",
			detail:     domain.CurrencyDetail{CurrencyNames: names, State: &domain.CurrencyState{}},
			wantName:   "NoReserves",
			wantErr:    ErrNoReserveCurrencies,
		},
		{
			name:       "index out of range",
			importFees: "0.00000002",
			detail:     domain.CurrencyDetail{CurrencyNames: names, State: stateWith("iA", "iB")},
			wantName:   "InvalidIndex_2",
			wantErr:    ErrReserveIndexOutOfRange,
		},
		{
			name:       "empty reserve list",
			importFees: "0.00000000",
			detail:     domain.CurrencyDetail{CurrencyNames: names, State: stateWith()},
			wantName:   "InvalidIndex_0",
			wantErr:    ErrReserveIndexOutOfRange,
		},
		{
			name:       "name not in table",
			importFees: "0.00000001",
			detail:     domain.CurrencyDetail{CurrencyNames: names, State: stateWith("iA", "iB")},
			wantName:   "Unknown_1",
			wantErr:    ErrReserveNameMissing,
		},
		{
			name:       "empty table",
			importFees: "0.00000000",
			detail:     domain.CurrencyDetail{CurrencyNames: map[string]string{}, State: stateWith("iA")},
			wantName:   "Unknown_0",
			wantErr:    ErrReserveNameMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFeeCurrency(definition("Ns", tt.importFees), tt.detail)
			assert.Equal(t, tt.wantName, got.Name)
			assert.ErrorIs(t, got.Miss, tt.wantErr)
		})
	}
}
