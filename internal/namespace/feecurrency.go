package namespace

import (
	"errors"
	"fmt"

	"github.com/mtlprog/verusns/internal/domain"
)

// Steps of reserve-indexed fee currency resolution. Each miss keeps the
// namespace and reports a placeholder name.
var (
	ErrNoCurrencyNames        = errors.New("currencynames table absent")
	ErrNoCurrencyState        = errors.New("currency state absent")
	ErrNoReserveCurrencies    = errors.New("reserve list absent")
	ErrReserveIndexOutOfRange = errors.New("reserve index out of range")
	ErrReserveNameMissing     = errors.New("reserve currency not in currencynames")
)

// FeeCurrency is the outcome of fee currency resolution for one namespace.
type FeeCurrency struct {
	Name string
	// ReserveIndex is the decoded reserve index, or -1 when the fee is paid in the namespace itself.
	ReserveIndex int
	// Miss is set when the index could not be resolved and Name is a placeholder.
	Miss error
}

// ResolveFeeCurrency determines which currency the registration fee of def is paid in.
// Small idimportfees values select an entry of the reserve list in detail; any other
// value means the namespace's own currency.
func ResolveFeeCurrency(def domain.CurrencyDefinition, detail domain.CurrencyDetail) FeeCurrency {
	index, reserveIndexed := domain.DecodeFeeIndicator(def.IDImportFees)
	if !reserveIndexed {
		return FeeCurrency{Name: def.Name, ReserveIndex: -1}
	}

	name, err := reserveName(detail, index)
	if err != nil {
		return FeeCurrency{Name: name, ReserveIndex: index, Miss: err}
	}
	return FeeCurrency{Name: name, ReserveIndex: index}
}

func reserveName(detail domain.CurrencyDetail, index int) (string, error) {
	if detail.CurrencyNames == nil {
		return "UnknownCurrency", ErrNoCurrencyNames
	}
	if detail.State == nil {
		return "UnknownReserve", ErrNoCurrencyState
	}
	reserves := detail.State.ReserveCurrencies
	if reserves == nil {
		return "NoReserves", ErrNoReserveCurrencies
	}
	if index >= len(reserves) {
		return fmt.Sprintf("InvalidIndex_%d", index),
			fmt.Errorf("%w: index %d, %d reserves", ErrReserveIndexOutOfRange, index, len(reserves))
	}
	id := reserves[index].CurrencyID
	name, ok := detail.CurrencyNames[id]
	if !ok {
		return fmt.Sprintf("Unknown_%d", index), fmt.Errorf("%w: %s", ErrReserveNameMissing, id)
	}
	return name, nil
}
