package pool

import (
	"log"

	"github.com/shopspring/decimal"
)

// DefaultQuoteDecimals is used when a pool does not carry the quote token's
// decimal precision.
const DefaultQuoteDecimals = 9

// Rate bundles a pool's token exchange ratio with the quote token's decimal
// precision so conversions are applied uniformly across a record.
type Rate struct {
	Ratio    decimal.Decimal
	Decimals int32
}

// ToDisplay converts a raw base-unit amount to display units: de-scale by
// 10^decimals, divide by the exchange ratio, round half away from zero at the
// quote token's decimal count.
func ToDisplay(raw, rate decimal.Decimal, decimals int32) decimal.Decimal {
	return raw.Shift(-decimals).Div(safeRate(rate)).Round(decimals)
}

// ToRaw converts a display-unit amount back to raw base units for submission:
// multiply by the exchange ratio and re-scale by 10^decimals. Round-tripping
// through ToDisplay is stable after the first rounding pass.
func ToRaw(display, rate decimal.Decimal, decimals int32) decimal.Decimal {
	return display.Mul(safeRate(rate)).Shift(decimals)
}

// safeRate guards against a zero or negative token ratio. Rather than let a
// bad record poison every converted amount with division errors, the ratio is
// read as 1 and the record is flagged in the log.
func safeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.Sign() <= 0 {
		log.Printf("pool: invalid token ratio %s, using 1", rate)
		return decimal.NewFromInt(1)
	}
	return rate
}
