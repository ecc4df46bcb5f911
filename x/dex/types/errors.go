package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors
var (
	ErrBadOrigin                     = errors.Register(ModuleName, 2, "caller is not authorized")
	ErrInvalidCurrencyID             = errors.Register(ModuleName, 3, "invalid currency id")
	ErrInvalidTradingPathLength      = errors.Register(ModuleName, 4, "invalid trading path length")
	ErrTradingPairMustBeEnabled      = errors.Register(ModuleName, 5, "trading pair must be enabled")
	ErrTradingPairMustBeProvisioning = errors.Register(ModuleName, 6, "trading pair must be provisioning")
	ErrTradingPairMustBeDisabled     = errors.Register(ModuleName, 7, "trading pair must be disabled")
	ErrTradingPairAlreadyProvisioned = errors.Register(ModuleName, 8, "trading pair already has provisioning contributions")
	ErrTradingPairAlreadyEnabled     = errors.Register(ModuleName, 9, "trading pair already enabled")
	ErrUnqualifiedProvision          = errors.Register(ModuleName, 10, "provisioning target not reached")
	ErrInvalidContributionIncrement  = errors.Register(ModuleName, 11, "contribution below minimum increment")
	ErrInvalidLiquidityIncrement     = errors.Register(ModuleName, 12, "invalid liquidity increment")
	ErrInvalidRemoveShareAmount      = errors.Register(ModuleName, 13, "invalid share amount to remove")
	ErrZeroTotalShare                = errors.Register(ModuleName, 14, "pool has no shares outstanding")
	ErrUnacceptableWithdrawnAmount   = errors.Register(ModuleName, 15, "withdrawn amount below minimum")
	ErrInsufficientLiquidity         = errors.Register(ModuleName, 16, "insufficient liquidity")
	ErrZeroTargetAmount              = errors.Register(ModuleName, 17, "target amount is zero")
	ErrZeroSupplyAmount              = errors.Register(ModuleName, 18, "supply amount is zero")
	ErrInsufficientTargetAmount      = errors.Register(ModuleName, 19, "target amount below minimum")
	ErrInsufficientSupplyAmount      = errors.Register(ModuleName, 20, "supply amount above maximum")
	ErrInvariantAfterCheckFailed     = errors.Register(ModuleName, 21, "constant product decreased after swap")
	ErrOverflow                      = errors.Register(ModuleName, 22, "arithmetic overflow")
	ErrUnderflow                     = errors.Register(ModuleName, 23, "arithmetic underflow")
	ErrInvalidParams                 = errors.Register(ModuleName, 24, "invalid module parameters")
	ErrInvalidAmount                 = errors.Register(ModuleName, 25, "invalid amount")
)
