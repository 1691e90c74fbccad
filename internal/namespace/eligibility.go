package namespace

import (
	"github.com/samber/lo"

	"github.com/mtlprog/verusns/internal/domain"
)

// Admit reports whether a catalog entry can serve as an identity namespace.
func Admit(info domain.CurrencyInfo) bool {
	return RejectReason(info) == ""
}

// RejectReason returns the first admission rule the entry fails, or "" if it is admitted.
func RejectReason(info domain.CurrencyInfo) string {
	def := info.Definition
	switch {
	case def.Options != domain.OptionsFractionalToken && def.Options != domain.OptionsReferralToken:
		return "options"
	case def.ProofProtocol != domain.EligibleProofProtocol:
		return "proof protocol"
	case !info.State.HasReserves():
		return "no reserves"
	case lo.SomeBy(info.State.ReserveCurrencies, func(r domain.ReserveCurrency) bool { return !r.Reserves.IsPositive() }):
		return "empty reserve"
	}
	return ""
}

func admitted(catalog []domain.CurrencyInfo) []domain.CurrencyDefinition {
	return lo.FilterMap(catalog, func(info domain.CurrencyInfo, _ int) (domain.CurrencyDefinition, bool) {
		return info.Definition, Admit(info)
	})
}
