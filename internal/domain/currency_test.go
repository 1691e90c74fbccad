package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyDetailJSON(t *testing.T) {
	detail := CurrencyDetail{
		CurrencyDefinition: CurrencyDefinition{
			Name:               "Kaiju",
			CurrencyID:         "iKaiju",
			Options:            OptionsReferralToken,
			ProofProtocol:      1,
			IDRegistrationFees: decimal.NewFromInt(100),
			IDImportFees:       decimal.RequireFromString("0.00000003"),
			IDReferralLevels:   3,
			FullyQualifiedName: "Kaiju",
		},
		CurrencyNames: map[string]string{"iVRSC": "VRSC"},
		State: &CurrencyState{
			CurrencyID: "iKaiju",
			ReserveCurrencies: []ReserveCurrency{{
				CurrencyID:     "iVRSC",
				Weight:         decimal.RequireFromString("0.5"),
				Reserves:       decimal.RequireFromString("1200.25"),
				PriceInReserve: decimal.RequireFromString("1.1"),
			}},
		},
	}

	data, err := json.Marshal(detail)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "Kaiju",
		"currency_id": "iKaiju",
		"options": 41,
		"proof_protocol": 1,
		"id_registration_fees": 100,
		"id_import_fees": 0.00000003,
		"id_referral_levels": 3,
		"fully_qualified_name": "Kaiju",
		"currency_names": {"iVRSC": "VRSC"},
		"state": {
			"currency_id": "iKaiju",
			"flags": 0,
			"reserve_currencies": [
				{"currency_id": "iVRSC", "weight": 0.5, "reserves": 1200.25, "price_in_reserve": 1.1}
			]
		}
	}`, string(data))
}

func TestCurrencyDetailJSONRoundTrip(t *testing.T) {
	detail := CurrencyDetail{CurrencyDefinition: CurrencyDefinition{
		Name:               "Bridge.vETH",
		IDRegistrationFees: decimal.RequireFromString("0.5"),
		IDImportFees:       decimal.RequireFromString("0.02"),
	}}

	data, err := json.Marshal(detail)
	require.NoError(t, err)

	var back CurrencyDetail
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IDRegistrationFees.Equal(detail.IDRegistrationFees))
	assert.True(t, back.IDImportFees.Equal(detail.IDImportFees))
}
