package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Currency option flags used by namespace eligibility.
const (
	OptionFractional  uint32 = 0x01
	OptionIDReferrals uint32 = 0x08
	OptionToken       uint32 = 0x20
)

// Option combinations that mark a currency as an identity namespace.
const (
	OptionsFractionalToken = OptionToken | OptionFractional                     // 33
	OptionsReferralToken   = OptionToken | OptionIDReferrals | OptionFractional // 41
)

// EligibleProofProtocol is the proof protocol of fully reserved, convertible currencies.
const EligibleProofProtocol = 1

// NamespaceOption is a currency under which identities can be registered.
// The JSON field names are consumed by the wallet UI and must not change.
type NamespaceOption struct {
	Name               string          `json:"name"`
	CurrencyID         string          `json:"currency_id"`
	RegistrationFee    decimal.Decimal `json:"registration_fee"`
	FullyQualifiedName string          `json:"fully_qualified_name"`
	FeeCurrencyName    string          `json:"fee_currency_name"`
	Options            uint32          `json:"options"`
	IDReferralLevels   int             `json:"id_referral_levels"`
}

// MarshalJSON encodes the registration fee as a JSON number.
func (o NamespaceOption) MarshalJSON() ([]byte, error) {
	type plain NamespaceOption
	return json.Marshal(struct {
		plain
		RegistrationFee json.Number `json:"registration_fee"`
	}{
		plain:           plain(o),
		RegistrationFee: amount(o.RegistrationFee),
	})
}

// NamespaceSnapshot is a stored result of one discovery run.
type NamespaceSnapshot struct {
	Chain      string            `json:"chain"`
	TakenAt    time.Time         `json:"taken_at"`
	Root       *NamespaceOption  `json:"root,omitempty"`
	Namespaces []NamespaceOption `json:"namespaces"`
}
