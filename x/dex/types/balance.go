package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// MaxBalance is the largest representable balance, 2^128 - 1.
var MaxBalance = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// ValidateBalance checks that amt is initialised, non-negative and fits a balance.
func ValidateBalance(amt math.Int) error {
	if amt.IsNil() {
		return ErrInvalidAmount.Wrap("amount is nil")
	}
	if amt.IsNegative() {
		return ErrInvalidAmount.Wrapf("amount %s is negative", amt)
	}
	if amt.GT(MaxBalance) {
		return ErrOverflow.Wrapf("amount %s exceeds maximum balance", amt)
	}
	return nil
}
