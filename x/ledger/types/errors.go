package types

import (
	"cosmossdk.io/errors"
)

// Ledger module sentinel errors
var (
	ErrBalanceLow    = errors.Register(ModuleName, 2, "balance too low")
	ErrInvalidAmount = errors.Register(ModuleName, 3, "invalid amount")
	ErrOverflow      = errors.Register(ModuleName, 4, "balance overflow")
	ErrInvalidAsset  = errors.Register(ModuleName, 5, "invalid asset")
)
