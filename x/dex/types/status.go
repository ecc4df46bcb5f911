package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// PairStatus is the lifecycle state of a trading pair.
type PairStatus uint32

const (
	StatusDisabled PairStatus = iota
	StatusProvisioning
	StatusEnabled
)

func (s PairStatus) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusProvisioning:
		return "provisioning"
	case StatusEnabled:
		return "enabled"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(s))
	}
}

// ProvisioningParameters are the bootstrap thresholds of a pair together with
// what has been contributed so far. All amounts are aligned to the pair's
// canonical order.
type ProvisioningParameters struct {
	MinContribution0      math.Int `json:"min_contribution0"`
	MinContribution1      math.Int `json:"min_contribution1"`
	TargetProvision0      math.Int `json:"target_provision0"`
	TargetProvision1      math.Int `json:"target_provision1"`
	AccumulatedProvision0 math.Int `json:"accumulated_provision0"`
	AccumulatedProvision1 math.Int `json:"accumulated_provision1"`
}

// NewProvisioningParameters returns parameters with an empty accumulator.
func NewProvisioningParameters(min0, min1, target0, target1 math.Int) ProvisioningParameters {
	return ProvisioningParameters{
		MinContribution0:      min0,
		MinContribution1:      min1,
		TargetProvision0:      target0,
		TargetProvision1:      target1,
		AccumulatedProvision0: math.ZeroInt(),
		AccumulatedProvision1: math.ZeroInt(),
	}
}

// Validate checks that every amount is a representable balance.
func (p ProvisioningParameters) Validate() error {
	for _, amt := range []math.Int{
		p.MinContribution0, p.MinContribution1,
		p.TargetProvision0, p.TargetProvision1,
		p.AccumulatedProvision0, p.AccumulatedProvision1,
	} {
		if err := ValidateBalance(amt); err != nil {
			return err
		}
	}
	return nil
}

// TargetReached reports whether both accumulated sides meet their targets
// and are non-zero.
func (p ProvisioningParameters) TargetReached() bool {
	return p.AccumulatedProvision0.IsPositive() &&
		p.AccumulatedProvision1.IsPositive() &&
		p.AccumulatedProvision0.GTE(p.TargetProvision0) &&
		p.AccumulatedProvision1.GTE(p.TargetProvision1)
}

// HasContributions reports whether anything has been accumulated.
func (p ProvisioningParameters) HasContributions() bool {
	return !p.AccumulatedProvision0.IsZero() || !p.AccumulatedProvision1.IsZero()
}

// TradingPairStatus is the stored status record of a pair. Provisioning is
// set only while Status is StatusProvisioning.
type TradingPairStatus struct {
	Status       PairStatus              `json:"status"`
	Provisioning *ProvisioningParameters `json:"provisioning,omitempty"`
}

// DisabledStatus is the status of a pair that has never been touched.
func DisabledStatus() TradingPairStatus {
	return TradingPairStatus{Status: StatusDisabled}
}

// EnabledStatus is the status of a pair open for trading.
func EnabledStatus() TradingPairStatus {
	return TradingPairStatus{Status: StatusEnabled}
}

// ProvisioningStatus wraps params into a provisioning status record.
func ProvisioningStatus(params ProvisioningParameters) TradingPairStatus {
	return TradingPairStatus{Status: StatusProvisioning, Provisioning: &params}
}

func (s TradingPairStatus) IsEnabled() bool      { return s.Status == StatusEnabled }
func (s TradingPairStatus) IsDisabled() bool     { return s.Status == StatusDisabled }
func (s TradingPairStatus) IsProvisioning() bool { return s.Status == StatusProvisioning }

// Validate checks that the record is internally consistent.
func (s TradingPairStatus) Validate() error {
	switch s.Status {
	case StatusDisabled, StatusEnabled:
		if s.Provisioning != nil {
			return fmt.Errorf("%s pair carries provisioning parameters", s.Status)
		}
		return nil
	case StatusProvisioning:
		if s.Provisioning == nil {
			return fmt.Errorf("provisioning pair is missing its parameters")
		}
		return s.Provisioning.Validate()
	default:
		return fmt.Errorf("unknown pair status %d", s.Status)
	}
}

// Reserves are the pool balances of a pair aligned to its canonical order.
type Reserves struct {
	Reserve0 math.Int `json:"reserve0"`
	Reserve1 math.Int `json:"reserve1"`
}

// ZeroReserves is the reserve record of an empty pool.
func ZeroReserves() Reserves {
	return Reserves{Reserve0: math.ZeroInt(), Reserve1: math.ZeroInt()}
}

func (r Reserves) IsEmpty() bool {
	return r.Reserve0.IsZero() && r.Reserve1.IsZero()
}

// Oriented returns the reserves ordered as (asset, other) for a pair member.
func (r Reserves) Oriented(pair TradingPair, asset string) (math.Int, math.Int) {
	if pair.IsFirst(asset) {
		return r.Reserve0, r.Reserve1
	}
	return r.Reserve1, r.Reserve0
}

// ExchangeRate is the initial share rate recorded when a pair leaves
// provisioning: shares owed = c0*Rate0 + c1*Rate1.
type ExchangeRate struct {
	Rate0 math.LegacyDec `json:"rate0"`
	Rate1 math.LegacyDec `json:"rate1"`
}

// Contribution is one account's accumulated provisioning deposit.
type Contribution struct {
	Amount0 math.Int `json:"amount0"`
	Amount1 math.Int `json:"amount1"`
}

func (c Contribution) IsZero() bool {
	return c.Amount0.IsZero() && c.Amount1.IsZero()
}
