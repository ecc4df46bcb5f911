package types

import (
	"fmt"
)

const (
	// DefaultExchangeFeeNumerator and DefaultExchangeFeeDenominator give a 0.3% fee.
	DefaultExchangeFeeNumerator   uint32 = 3
	DefaultExchangeFeeDenominator uint32 = 1000

	// DefaultTradingPathLimit is the longest swap path, counted in assets.
	DefaultTradingPathLimit uint32 = 3
)

// ExchangeFee is the rational fee charged on swap input.
type ExchangeFee struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

func (f ExchangeFee) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// Params are the module parameters.
type Params struct {
	ExchangeFee      ExchangeFee `json:"exchange_fee"`
	TradingPathLimit uint32      `json:"trading_path_limit"`
}

// DefaultParams returns the default module parameters.
func DefaultParams() Params {
	return Params{
		ExchangeFee: ExchangeFee{
			Numerator:   DefaultExchangeFeeNumerator,
			Denominator: DefaultExchangeFeeDenominator,
		},
		TradingPathLimit: DefaultTradingPathLimit,
	}
}

// Validate checks the fee is a proper fraction and paths can hold one hop.
func (p Params) Validate() error {
	if p.ExchangeFee.Denominator == 0 {
		return ErrInvalidParams.Wrap("exchange fee denominator must be positive")
	}
	if p.ExchangeFee.Numerator >= p.ExchangeFee.Denominator {
		return ErrInvalidParams.Wrapf("exchange fee %s must be below 1", p.ExchangeFee)
	}
	if p.TradingPathLimit < 2 {
		return ErrInvalidParams.Wrapf("trading path limit %d must be at least 2", p.TradingPathLimit)
	}
	return nil
}
