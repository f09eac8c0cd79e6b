package model

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmountDecimals is the number of subunit decimals every ledger amount is
// scaled by. Balances are held as integers in these subunits.
const AmountDecimals = 18

// GenerateUUIDWithSuffix generates a UUID with a given module name as a suffix.
// This is useful for creating unique identifiers with context-specific prefixes.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", module, id.String())
}

// ParseAmount converts a human-readable decimal amount ("100.5") into ledger
// subunits. The value must be non-negative and must not carry more than
// AmountDecimals decimal places.
func ParseAmount(value string) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount %q must not be negative", value)
	}
	shifted := d.Shift(AmountDecimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", value, AmountDecimals)
	}
	return shifted.BigInt(), nil
}

// MustAmount is ParseAmount for fixed values; it panics on invalid input.
func MustAmount(value string) *big.Int {
	amount, err := ParseAmount(value)
	if err != nil {
		panic(err)
	}
	return amount
}

// FormatAmount renders ledger subunits back as a decimal string.
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -AmountDecimals).String()
}
