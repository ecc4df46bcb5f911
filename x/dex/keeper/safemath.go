package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// Balances are bounded by types.MaxBalance. Products of a balance, a fee
// term and another balance need close to 300 bits, which is past what
// math.Int allows, so intermediates are computed on big.Int and narrowed back.

var (
	maxBalanceBig = types.MaxBalance.BigInt()
	decPrecision  = new(big.Int).Exp(big.NewInt(10), big.NewInt(math.LegacyPrecision), nil)
)

// narrow converts a wide intermediate back into a balance.
func narrow(v *big.Int) (math.Int, error) {
	if v.Sign() < 0 {
		return math.Int{}, types.ErrUnderflow.Wrapf("negative result %s", v)
	}
	if v.Cmp(maxBalanceBig) > 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("result %s exceeds maximum balance", v)
	}
	return math.NewIntFromBigInt(v), nil
}

// SafeAdd adds two balances with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	return narrow(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// SafeSub subtracts two balances with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrUnderflow.Wrapf("cannot subtract %s from %s", b, a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv computes floor(a * b / c) without intermediate overflow
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("division by zero")
	}
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return narrow(num.Quo(num, c.BigInt()))
}

// InitialShares returns the shares minted for the first deposit into an empty
// pool and the exchange rate that produced them. Shares are valued in units
// of the first asset: rate = (1, amount0 / amount1), shares = amount0 + amount1
// * rate1, so the initial deposit is worth twice its first side.
func InitialShares(amount0, amount1 math.Int) (math.Int, types.ExchangeRate, error) {
	if !amount0.IsPositive() || !amount1.IsPositive() {
		return math.Int{}, types.ExchangeRate{}, types.ErrInvalidLiquidityIncrement.Wrap("both sides must be positive")
	}
	rate1Raw := new(big.Int).Mul(amount0.BigInt(), decPrecision)
	rate1Raw.Quo(rate1Raw, amount1.BigInt())
	rate := types.ExchangeRate{
		Rate0: math.LegacyOneDec(),
		Rate1: math.LegacyNewDecFromBigIntWithPrec(rate1Raw, math.LegacyPrecision),
	}
	shares, err := SharesAtRate(rate, amount0, amount1)
	if err != nil {
		return math.Int{}, types.ExchangeRate{}, err
	}
	return shares, rate, nil
}

// SharesAtRate computes floor(amount0 * rate0 + amount1 * rate1).
func SharesAtRate(rate types.ExchangeRate, amount0, amount1 math.Int) (math.Int, error) {
	sum := new(big.Int).Mul(amount0.BigInt(), rate.Rate0.BigInt())
	sum.Add(sum, new(big.Int).Mul(amount1.BigInt(), rate.Rate1.BigInt()))
	return narrow(sum.Quo(sum, decPrecision))
}
