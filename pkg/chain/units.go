package chain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const EtherDecimals uint8 = 18

// ToBaseUnits scales a decimal token amount to integer base units, truncating extra precision
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %s", amount)
	}
	return amount.Shift(int32(decimals)).BigInt(), nil
}

// ParseUnits parses a decimal string such as "1.5" into base units
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return ToBaseUnits(d, decimals)
}

func FromBaseUnits(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}
