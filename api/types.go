package api

import (
	"cosmossdk.io/math"

	"github.com/bholdus-chain/dex/app"
	dextypes "github.com/bholdus-chain/dex/x/dex/types"
)

// Amounts travel as decimal strings both ways; math.Int marshals that way.

// ==================== Swap Types ====================

// SwapExactSupplyRequest sells exactly SupplyAmount of Path[0].
type SwapExactSupplyRequest struct {
	Sender          string   `json:"sender" binding:"required"`
	Path            []string `json:"path" binding:"required"`
	SupplyAmount    string   `json:"supply_amount" binding:"required"`
	MinTargetAmount string   `json:"min_target_amount" binding:"required"`
}

// SwapExactTargetRequest buys exactly TargetAmount of the last path asset.
type SwapExactTargetRequest struct {
	Sender          string   `json:"sender" binding:"required"`
	Path            []string `json:"path" binding:"required"`
	TargetAmount    string   `json:"target_amount" binding:"required"`
	MaxSupplyAmount string   `json:"max_supply_amount" binding:"required"`
}

// SwapResponse reports what the trader paid and received.
type SwapResponse struct {
	Path         []string `json:"path"`
	SupplyAmount math.Int `json:"supply_amount"`
	TargetAmount math.Int `json:"target_amount"`
}

// QuoteResponse has one amount per path asset.
type QuoteResponse struct {
	Path    []string   `json:"path"`
	Amounts []math.Int `json:"amounts"`
}

// ==================== Liquidity Types ====================

// AddLiquidityRequest deposits up to Amount0 of Asset0 and Amount1 of Asset1.
type AddLiquidityRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Asset0  string `json:"asset0" binding:"required"`
	Asset1  string `json:"asset1" binding:"required"`
	Amount0 string `json:"amount0" binding:"required"`
	Amount1 string `json:"amount1" binding:"required"`
}

// AddLiquidityResponse reports the amounts actually deposited, in request order.
type AddLiquidityResponse struct {
	Amount0 math.Int `json:"amount0"`
	Amount1 math.Int `json:"amount1"`
	Shares  math.Int `json:"shares"`
}

// RemoveLiquidityRequest burns Shares for at least Min0 and Min1.
type RemoveLiquidityRequest struct {
	Sender string `json:"sender" binding:"required"`
	Asset0 string `json:"asset0" binding:"required"`
	Asset1 string `json:"asset1" binding:"required"`
	Shares string `json:"shares" binding:"required"`
	Min0   string `json:"min0"`
	Min1   string `json:"min1"`
}

// RemoveLiquidityResponse reports the withdrawn amounts, in request order.
type RemoveLiquidityResponse struct {
	Amount0 math.Int `json:"amount0"`
	Amount1 math.Int `json:"amount1"`
}

// ==================== Provisioning Types ====================

// ProvisioningParamsRequest lists a pair for provisioning or updates its
// thresholds. Amounts follow the request's asset order.
type ProvisioningParamsRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Asset0  string `json:"asset0" binding:"required"`
	Asset1  string `json:"asset1" binding:"required"`
	Min0    string `json:"min0" binding:"required"`
	Min1    string `json:"min1" binding:"required"`
	Target0 string `json:"target0" binding:"required"`
	Target1 string `json:"target1" binding:"required"`
}

// ContributeRequest adds a provisioning contribution.
type ContributeRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Asset0  string `json:"asset0" binding:"required"`
	Asset1  string `json:"asset1" binding:"required"`
	Amount0 string `json:"amount0"`
	Amount1 string `json:"amount1"`
}

// PairRequest names a pair on behalf of Sender.
type PairRequest struct {
	Sender string `json:"sender" binding:"required"`
	Asset0 string `json:"asset0" binding:"required"`
	Asset1 string `json:"asset1" binding:"required"`
}

// ClaimRequest pays Sender's provisioning shares to Beneficiary, or to
// Sender when Beneficiary is empty.
type ClaimRequest struct {
	Sender      string `json:"sender" binding:"required"`
	Beneficiary string `json:"beneficiary"`
	Asset0      string `json:"asset0" binding:"required"`
	Asset1      string `json:"asset1" binding:"required"`
}

// ClaimResponse reports the shares paid out.
type ClaimResponse struct {
	Beneficiary string   `json:"beneficiary"`
	Shares      math.Int `json:"shares"`
}

// UpdateParamsRequest replaces the module parameters.
type UpdateParamsRequest struct {
	Sender string          `json:"sender" binding:"required"`
	Params dextypes.Params `json:"params"`
}

// ==================== Query Types ====================

// PairResponse describes a pair in the order the caller asked for it.
type PairResponse struct {
	Asset0       string                           `json:"asset0"`
	Asset1       string                           `json:"asset1"`
	Status       string                           `json:"status"`
	Reserve0     math.Int                         `json:"reserve0"`
	Reserve1     math.Int                         `json:"reserve1"`
	ShareAsset   string                           `json:"share_asset"`
	TotalShares  math.Int                         `json:"total_shares"`
	Provisioning *dextypes.ProvisioningParameters `json:"provisioning,omitempty"`
	ExchangeRate *dextypes.ExchangeRate           `json:"exchange_rate,omitempty"`
}

// BalanceResponse is one account's holding of one asset.
type BalanceResponse struct {
	Address string   `json:"address"`
	Asset   string   `json:"asset"`
	Amount  math.Int `json:"amount"`
}

// EventsResponse pages through the event log.
type EventsResponse struct {
	LastSeq uint64            `json:"last_seq"`
	Events  []app.EventRecord `json:"events"`
}

// InvariantsResponse lists broken invariants by route.
type InvariantsResponse struct {
	Broken     bool              `json:"broken"`
	Invariants map[string]string `json:"invariants"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Version   string `json:"version"`
}

// ==================== Common Types ====================

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
