package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Event types for the DEX module
const (
	EventTypeTradingPairProvisioning            = "trading_pair_provisioning"
	EventTypeProvisioningParametersUpdated      = "provisioning_parameters_updated"
	EventTypeTradingPairEnabled                 = "trading_pair_enabled"
	EventTypeTradingPairEnabledFromProvisioning = "trading_pair_enabled_from_provisioning"
	EventTypeAddProvision                       = "add_provision"
	EventTypeClaimDexShare                      = "claim_dex_share"
	EventTypeAddLiquidity                       = "add_liquidity"
	EventTypeRemoveLiquidity                    = "remove_liquidity"
	EventTypeSwap                               = "swap"
	EventTypeParamsUpdated                      = "params_updated"
)

// Event is a notification delivered to the EventSink after a state change
// has been committed.
type Event interface {
	EventType() string
}

type EventTradingPairProvisioning struct {
	Pair       TradingPair            `json:"pair"`
	Parameters ProvisioningParameters `json:"parameters"`
}

type EventProvisioningParametersUpdated struct {
	Pair       TradingPair            `json:"pair"`
	Parameters ProvisioningParameters `json:"parameters"`
}

type EventTradingPairEnabled struct {
	Pair TradingPair `json:"pair"`
}

type EventTradingPairEnabledFromProvisioning struct {
	Pair        TradingPair `json:"pair"`
	Reserve0    math.Int    `json:"reserve0"`
	Reserve1    math.Int    `json:"reserve1"`
	TotalShares math.Int    `json:"total_shares"`
}

type EventAddProvision struct {
	Who     sdk.AccAddress `json:"who"`
	Asset0  string         `json:"asset0"`
	Amount0 math.Int       `json:"amount0"`
	Asset1  string         `json:"asset1"`
	Amount1 math.Int       `json:"amount1"`
}

type EventClaimDexShare struct {
	Who         sdk.AccAddress `json:"who"`
	Beneficiary sdk.AccAddress `json:"beneficiary"`
	Pair        TradingPair    `json:"pair"`
	Shares      math.Int       `json:"shares"`
}

type EventAddLiquidity struct {
	Who     sdk.AccAddress `json:"who"`
	Asset0  string         `json:"asset0"`
	Amount0 math.Int       `json:"amount0"`
	Asset1  string         `json:"asset1"`
	Amount1 math.Int       `json:"amount1"`
	Shares  math.Int       `json:"shares"`
}

type EventRemoveLiquidity struct {
	Who     sdk.AccAddress `json:"who"`
	Asset0  string         `json:"asset0"`
	Amount0 math.Int       `json:"amount0"`
	Asset1  string         `json:"asset1"`
	Amount1 math.Int       `json:"amount1"`
	Shares  math.Int       `json:"shares"`
}

// EventSwap carries the full path and the amount at every step, so
// Amounts[0] is what the trader paid and the last entry what they received.
type EventSwap struct {
	Trader  sdk.AccAddress `json:"trader"`
	Path    []string       `json:"path"`
	Amounts []math.Int     `json:"amounts"`
}

type EventParamsUpdated struct {
	Params Params `json:"params"`
}

func (EventTradingPairProvisioning) EventType() string            { return EventTypeTradingPairProvisioning }
func (EventProvisioningParametersUpdated) EventType() string      { return EventTypeProvisioningParametersUpdated }
func (EventTradingPairEnabled) EventType() string                 { return EventTypeTradingPairEnabled }
func (EventTradingPairEnabledFromProvisioning) EventType() string { return EventTypeTradingPairEnabledFromProvisioning }
func (EventAddProvision) EventType() string                       { return EventTypeAddProvision }
func (EventClaimDexShare) EventType() string                      { return EventTypeClaimDexShare }
func (EventAddLiquidity) EventType() string                       { return EventTypeAddLiquidity }
func (EventRemoveLiquidity) EventType() string                    { return EventTypeRemoveLiquidity }
func (EventSwap) EventType() string                               { return EventTypeSwap }
func (EventParamsUpdated) EventType() string                      { return EventTypeParamsUpdated }
