package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CurrencyDefinition is the on-chain definition of a currency as reported by the daemon.
// It has no JSON encoder of its own: it is served embedded in CurrencyDetail.
type CurrencyDefinition struct {
	Name               string          `json:"name"`
	CurrencyID         string          `json:"currency_id"`
	Parent             string          `json:"parent,omitempty"`
	SystemID           string          `json:"system_id,omitempty"`
	Options            uint32          `json:"options"`
	ProofProtocol      int             `json:"proof_protocol"`
	IDRegistrationFees decimal.Decimal `json:"id_registration_fees"`
	IDImportFees       decimal.Decimal `json:"id_import_fees"`
	IDReferralLevels   int             `json:"id_referral_levels"`
	FullyQualifiedName string          `json:"fully_qualified_name"`
}

// ReserveCurrency is one backing reserve of a fractional currency.
// Its position in CurrencyState.ReserveCurrencies is meaningful.
type ReserveCurrency struct {
	CurrencyID     string          `json:"currency_id"`
	Weight         decimal.Decimal `json:"weight"`
	Reserves       decimal.Decimal `json:"reserves"`
	PriceInReserve decimal.Decimal `json:"price_in_reserve"`
}

// MarshalJSON encodes the amounts as JSON numbers.
func (r ReserveCurrency) MarshalJSON() ([]byte, error) {
	type plain ReserveCurrency
	return json.Marshal(struct {
		plain
		Weight         json.Number `json:"weight"`
		Reserves       json.Number `json:"reserves"`
		PriceInReserve json.Number `json:"price_in_reserve"`
	}{
		plain:          plain(r),
		Weight:         amount(r.Weight),
		Reserves:       amount(r.Reserves),
		PriceInReserve: amount(r.PriceInReserve),
	})
}

// CurrencyState is the dynamic state of a currency.
// A nil ReserveCurrencies means the daemon did not report any; an empty
// non-nil slice means it reported an empty list.
type CurrencyState struct {
	CurrencyID        string            `json:"currency_id"`
	Flags             uint32            `json:"flags"`
	ReserveCurrencies []ReserveCurrency `json:"reserve_currencies,omitempty"`
}

// HasReserves reports whether the state carries at least one reserve entry.
func (s CurrencyState) HasReserves() bool {
	return len(s.ReserveCurrencies) > 0
}

// CurrencyInfo is one entry of the currency catalog.
type CurrencyInfo struct {
	Definition CurrencyDefinition `json:"definition"`
	State      CurrencyState      `json:"state"`
}

// CurrencyDetail is the result of a single currency lookup.
type CurrencyDetail struct {
	CurrencyDefinition
	CurrencyNames map[string]string `json:"currency_names,omitempty"`
	State         *CurrencyState    `json:"state,omitempty"`
}

// MarshalJSON flattens the definition and encodes its fees as JSON numbers.
func (d CurrencyDetail) MarshalJSON() ([]byte, error) {
	type plain CurrencyDetail
	return json.Marshal(struct {
		plain
		IDRegistrationFees json.Number `json:"id_registration_fees"`
		IDImportFees       json.Number `json:"id_import_fees"`
	}{
		plain:              plain(d),
		IDRegistrationFees: amount(d.IDRegistrationFees),
		IDImportFees:       amount(d.IDImportFees),
	})
}

// RootCurrency is the native currency of a chain.
type RootCurrency struct {
	Name               string          `json:"name"`
	CurrencyID         string          `json:"currency_id"`
	IDRegistrationFees decimal.Decimal `json:"id_registration_fees"`
	IDReferralLevels   int             `json:"id_referral_levels"`
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
