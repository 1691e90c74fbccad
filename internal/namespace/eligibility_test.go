package namespace

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mtlprog/verusns/internal/domain"
)

func reserves(amounts ...string) []domain.ReserveCurrency {
	out := make([]domain.ReserveCurrency, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, domain.ReserveCurrency{
			CurrencyID: "iReserve" + string(rune('A'+i)),
			Weight:     decimal.RequireFromString("0.5"),
			Reserves:   decimal.RequireFromString(a),
		})
	}
	return out
}

func candidate(name string, options uint32, proof int, res []domain.ReserveCurrency) domain.CurrencyInfo {
	return domain.CurrencyInfo{
		Definition: domain.CurrencyDefinition{
			Name:               name,
			CurrencyID:         "i" + name,
			Options:            options,
			ProofProtocol:      proof,
			IDRegistrationFees: decimal.NewFromInt(100),
			IDImportFees:       decimal.RequireFromString("0.02"),
			IDReferralLevels:   3,
			FullyQualifiedName: name,
		},
		State: domain.CurrencyState{CurrencyID: "i" + name, ReserveCurrencies: res},
	}
}

func TestAdmit(t *testing.T) {
	tests := []struct {
		name   string
		info   domain.CurrencyInfo
		want   bool
		reason string
	}{
		{"fractional token", candidate("a", 33, 1, reserves("10", "20")), true, ""},
		{"referral token", candidate("a", 41, 1, reserves("1")), true, ""},
		{"plain token", candidate("a", 32, 1, reserves("1")), false, "options"},
		{"referral flags without fractional", candidate("a", 40, 1, reserves("1")), false, "options"},
		{"extra flag set", candidate("a", 41|0x100, 1, reserves("1")), false, "options"},
		{"zero options", candidate("a", 0, 1, reserves("1")), false, "options"},
		{"centralized proof", candidate("a", 41, 2, reserves("1")), false, "proof protocol"},
		{"chain proof", candidate("a", 33, 3, reserves("1")), false, "proof protocol"},
		{"reserves absent", candidate("a", 41, 1, nil), false, "no reserves"},
		{"reserves empty", candidate("a", 41, 1, []domain.ReserveCurrency{}), false, "no reserves"},
		{"one zero reserve", candidate("a", 41, 1, reserves("5", "0")), false, "empty reserve"},
		{"negative reserve", candidate("a", 33, 1, reserves("-1")), false, "empty reserve"},
		{"tiny positive reserve", candidate("a", 33, 1, reserves("0.00000001")), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admit(tt.info))
			assert.Equal(t, tt.reason, RejectReason(tt.info))
		})
	}
}

func TestAdmittedKeepsCatalogOrder(t *testing.T) {
	catalog := []domain.CurrencyInfo{
		candidate("zeta", 41, 1, reserves("1")),
		candidate("skip", 32, 1, reserves("1")),
		candidate("alpha", 33, 1, reserves("1")),
	}

	got := admitted(catalog)

	if assert.Len(t, got, 2) {
		assert.Equal(t, "zeta", got[0].Name)
		assert.Equal(t, "alpha", got[1].Name)
	}
	assert.NotNil(t, admitted(nil))
}
