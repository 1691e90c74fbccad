package domain

import "github.com/shopspring/decimal"

// MaxReserveFeeIndex is the highest idimportfees value (in satoshis) that is read
// as an index into the currency's reserve list instead of a fee amount.
const MaxReserveFeeIndex = 9

const satoshiDigits = 8

// DecodeFeeIndicator interprets a currency's idimportfees value.
// Values that round to 0..9 satoshis select the reserve currency at that index;
// anything else means the registration fee is paid in the currency itself.
func DecodeFeeIndicator(idImportFees decimal.Decimal) (reserveIndex int, reserveIndexed bool) {
	sats := idImportFees.Shift(satoshiDigits).Round(0)
	if sats.IsNegative() || sats.GreaterThan(decimal.NewFromInt(MaxReserveFeeIndex)) {
		return -1, false
	}
	return int(sats.IntPart()), true
}
