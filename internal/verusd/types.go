package verusd

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/verusns/internal/domain"
)

// Default policy for daemon responses.
//
// Required fields are pointers or NullDecimal and produce ErrMalformedResponse
// when absent. Optional fields fall back as follows:
//   - parent, systemid: empty string
//   - fullyqualifiedname: the currency name
//   - bestcurrencystate.reservecurrencies: nil (no reserves)
//   - currencynames, getcurrency bestcurrencystate: nil
//   - reserve weight, priceinreserve: zero
//
// idimportfees is required everywhere: a missing value would otherwise read as
// reserve index 0.

// CurrencyDefinition is the currencydefinition object of listcurrencies and getcurrency.
type CurrencyDefinition struct {
	Name               string              `json:"name"`
	CurrencyID         string              `json:"currencyid"`
	Parent             string              `json:"parent"`
	SystemID           string              `json:"systemid"`
	Options            *uint32             `json:"options"`
	ProofProtocol      *int                `json:"proofprotocol"`
	IDRegistrationFees decimal.NullDecimal `json:"idregistrationfees"`
	IDImportFees       decimal.NullDecimal `json:"idimportfees"`
	IDReferralLevels   *int                `json:"idreferrallevels"`
	FullyQualifiedName string              `json:"fullyqualifiedname"`
}

// ReserveCurrency is one entry of bestcurrencystate.reservecurrencies.
type ReserveCurrency struct {
	CurrencyID     string              `json:"currencyid"`
	Weight         decimal.Decimal     `json:"weight"`
	Reserves       decimal.NullDecimal `json:"reserves"`
	PriceInReserve decimal.Decimal     `json:"priceinreserve"`
}

// BestCurrencyState is the bestcurrencystate object.
type BestCurrencyState struct {
	CurrencyID        string            `json:"currencyid"`
	Flags             uint32            `json:"flags"`
	ReserveCurrencies []ReserveCurrency `json:"reservecurrencies"`
}

// ListedCurrency is one element of the listcurrencies result.
type ListedCurrency struct {
	CurrencyDefinition *CurrencyDefinition `json:"currencydefinition"`
	BestHeight         int64               `json:"bestheight"`
	BestCurrencyState  *BestCurrencyState  `json:"bestcurrencystate"`
}

// CurrencyResponse is the getcurrency result: definition fields at the top level
// plus the name table and current state.
type CurrencyResponse struct {
	CurrencyDefinition
	CurrencyNames     map[string]string  `json:"currencynames"`
	BestCurrencyState *BestCurrencyState `json:"bestcurrencystate"`
}

func (d *CurrencyDefinition) validateIdentity() error {
	if d.Name == "" {
		return missing("name")
	}
	if d.CurrencyID == "" {
		return missing("currencyid")
	}
	return nil
}

func (d *CurrencyDefinition) validateCatalog() error {
	if err := d.validateIdentity(); err != nil {
		return err
	}
	switch {
	case d.Options == nil:
		return missing("options")
	case d.ProofProtocol == nil:
		return missing("proofprotocol")
	case !d.IDRegistrationFees.Valid:
		return missing("idregistrationfees")
	case !d.IDImportFees.Valid:
		return missing("idimportfees")
	case d.IDReferralLevels == nil:
		return missing("idreferrallevels")
	}
	return nil
}

func (d *CurrencyDefinition) validateLookup() error {
	if err := d.validateIdentity(); err != nil {
		return err
	}
	switch {
	case !d.IDRegistrationFees.Valid:
		return missing("idregistrationfees")
	case !d.IDImportFees.Valid:
		return missing("idimportfees")
	}
	return nil
}

func (d *CurrencyDefinition) validateRoot() error {
	if err := d.validateIdentity(); err != nil {
		return err
	}
	switch {
	case !d.IDRegistrationFees.Valid:
		return missing("idregistrationfees")
	case d.IDReferralLevels == nil:
		return missing("idreferrallevels")
	}
	return nil
}

func (s *BestCurrencyState) validate() error {
	for i, r := range s.ReserveCurrencies {
		if r.CurrencyID == "" {
			return missing(fmt.Sprintf("reservecurrencies[%d].currencyid", i))
		}
		if !r.Reserves.Valid {
			return missing(fmt.Sprintf("reservecurrencies[%d].reserves", i))
		}
	}
	return nil
}

func (d *CurrencyDefinition) toDomain() domain.CurrencyDefinition {
	def := domain.CurrencyDefinition{
		Name:               d.Name,
		CurrencyID:         d.CurrencyID,
		Parent:             d.Parent,
		SystemID:           d.SystemID,
		IDRegistrationFees: d.IDRegistrationFees.Decimal,
		IDImportFees:       d.IDImportFees.Decimal,
		FullyQualifiedName: d.FullyQualifiedName,
	}
	if d.Options != nil {
		def.Options = *d.Options
	}
	if d.ProofProtocol != nil {
		def.ProofProtocol = *d.ProofProtocol
	}
	if d.IDReferralLevels != nil {
		def.IDReferralLevels = *d.IDReferralLevels
	}
	if def.FullyQualifiedName == "" {
		def.FullyQualifiedName = d.Name
	}
	return def
}

func (s *BestCurrencyState) toDomain() domain.CurrencyState {
	state := domain.CurrencyState{
		CurrencyID: s.CurrencyID,
		Flags:      s.Flags,
	}
	if s.ReserveCurrencies != nil {
		state.ReserveCurrencies = make([]domain.ReserveCurrency, 0, len(s.ReserveCurrencies))
		for _, r := range s.ReserveCurrencies {
			state.ReserveCurrencies = append(state.ReserveCurrencies, domain.ReserveCurrency{
				CurrencyID:     r.CurrencyID,
				Weight:         r.Weight,
				Reserves:       r.Reserves.Decimal,
				PriceInReserve: r.PriceInReserve,
			})
		}
	}
	return state
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedResponse, field)
}
