package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisTradingPair is the full stored state of one pair.
type GenesisTradingPair struct {
	Pair         TradingPair       `json:"pair"`
	Status       TradingPairStatus `json:"status"`
	Reserves     Reserves          `json:"reserves"`
	ExchangeRate *ExchangeRate     `json:"exchange_rate,omitempty"`
}

// GenesisProvision is one account's outstanding provisioning contribution.
type GenesisProvision struct {
	Pair         TradingPair  `json:"pair"`
	Contributor  string       `json:"contributor"`
	Contribution Contribution `json:"contribution"`
}

// GenesisLiquidity is liquidity added through AddLiquidity at genesis. The
// provider must already hold the funds in the ledger.
type GenesisLiquidity struct {
	Provider string   `json:"provider"`
	Asset0   string   `json:"asset0"`
	Asset1   string   `json:"asset1"`
	Amount0  math.Int `json:"amount0"`
	Amount1  math.Int `json:"amount1"`
}

// GenesisState is the genesis state of the DEX module.
type GenesisState struct {
	Params           Params               `json:"params"`
	TradingPairs     []GenesisTradingPair `json:"trading_pairs"`
	Provisions       []GenesisProvision   `json:"provisions"`
	InitialLiquidity []GenesisLiquidity   `json:"initial_liquidity"`
}

// DefaultGenesis returns the default genesis state for the DEX module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:           DefaultParams(),
		TradingPairs:     []GenesisTradingPair{},
		Provisions:       []GenesisProvision{},
		InitialLiquidity: []GenesisLiquidity{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	statuses := make(map[TradingPair]TradingPairStatus, len(gs.TradingPairs))
	hasRate := make(map[TradingPair]bool, len(gs.TradingPairs))
	for _, tp := range gs.TradingPairs {
		if err := tp.Pair.Validate(); err != nil {
			return fmt.Errorf("trading pair %s: %w", tp.Pair, err)
		}
		if _, dup := statuses[tp.Pair]; dup {
			return fmt.Errorf("duplicate trading pair %s", tp.Pair)
		}
		if err := tp.Status.Validate(); err != nil {
			return fmt.Errorf("trading pair %s: %w", tp.Pair, err)
		}
		if err := validateReserves(tp); err != nil {
			return fmt.Errorf("trading pair %s: %w", tp.Pair, err)
		}
		if tp.ExchangeRate != nil {
			if !tp.Status.IsEnabled() {
				return fmt.Errorf("trading pair %s: exchange rate set on %s pair", tp.Pair, tp.Status.Status)
			}
			if tp.ExchangeRate.Rate0.IsNil() || tp.ExchangeRate.Rate1.IsNil() ||
				tp.ExchangeRate.Rate0.IsNegative() || tp.ExchangeRate.Rate1.IsNegative() {
				return fmt.Errorf("trading pair %s: invalid exchange rate", tp.Pair)
			}
		}
		statuses[tp.Pair] = tp.Status
		hasRate[tp.Pair] = tp.ExchangeRate != nil
	}

	type provisionKey struct {
		pair TradingPair
		who  string
	}
	seen := make(map[provisionKey]struct{}, len(gs.Provisions))
	sums := make(map[TradingPair]Contribution)
	for _, p := range gs.Provisions {
		if _, err := sdk.AccAddressFromBech32(p.Contributor); err != nil {
			return fmt.Errorf("provision contributor %q: %w", p.Contributor, err)
		}
		key := provisionKey{pair: p.Pair, who: p.Contributor}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate provision of %s on %s", p.Contributor, p.Pair)
		}
		seen[key] = struct{}{}
		if err := ValidateBalance(p.Contribution.Amount0); err != nil {
			return fmt.Errorf("provision of %s on %s: %w", p.Contributor, p.Pair, err)
		}
		if err := ValidateBalance(p.Contribution.Amount1); err != nil {
			return fmt.Errorf("provision of %s on %s: %w", p.Contributor, p.Pair, err)
		}
		status, ok := statuses[p.Pair]
		if !ok || status.IsDisabled() {
			return fmt.Errorf("provision of %s on unlisted pair %s", p.Contributor, p.Pair)
		}
		if status.IsEnabled() && !hasRate[p.Pair] {
			return fmt.Errorf("provision of %s on %s which has no exchange rate", p.Contributor, p.Pair)
		}
		sum, ok := sums[p.Pair]
		if !ok {
			sum = Contribution{Amount0: math.ZeroInt(), Amount1: math.ZeroInt()}
		}
		sums[p.Pair] = Contribution{
			Amount0: sum.Amount0.Add(p.Contribution.Amount0),
			Amount1: sum.Amount1.Add(p.Contribution.Amount1),
		}
	}
	for pair, status := range statuses {
		if !status.IsProvisioning() {
			continue
		}
		sum, ok := sums[pair]
		if !ok {
			sum = Contribution{Amount0: math.ZeroInt(), Amount1: math.ZeroInt()}
		}
		if !sum.Amount0.Equal(status.Provisioning.AccumulatedProvision0) ||
			!sum.Amount1.Equal(status.Provisioning.AccumulatedProvision1) {
			return fmt.Errorf("trading pair %s: provisions do not add up to the accumulated provision", pair)
		}
	}

	for _, l := range gs.InitialLiquidity {
		if _, err := sdk.AccAddressFromBech32(l.Provider); err != nil {
			return fmt.Errorf("initial liquidity provider %q: %w", l.Provider, err)
		}
		pair, err := NewTradingPair(l.Asset0, l.Asset1)
		if err != nil {
			return fmt.Errorf("initial liquidity of %s: %w", l.Provider, err)
		}
		if status, ok := statuses[pair]; !ok || !status.IsEnabled() {
			return fmt.Errorf("initial liquidity of %s on pair %s which is not enabled", l.Provider, pair)
		}
		if err := ValidateBalance(l.Amount0); err != nil {
			return fmt.Errorf("initial liquidity of %s: %w", l.Provider, err)
		}
		if err := ValidateBalance(l.Amount1); err != nil {
			return fmt.Errorf("initial liquidity of %s: %w", l.Provider, err)
		}
		if !l.Amount0.IsPositive() || !l.Amount1.IsPositive() {
			return fmt.Errorf("initial liquidity of %s on %s must be positive on both sides", l.Provider, pair)
		}
	}

	return nil
}

func validateReserves(tp GenesisTradingPair) error {
	r := tp.Reserves
	if r.Reserve0.IsNil() || r.Reserve1.IsNil() {
		return fmt.Errorf("reserves must be set")
	}
	if err := ValidateBalance(r.Reserve0); err != nil {
		return err
	}
	if err := ValidateBalance(r.Reserve1); err != nil {
		return err
	}
	if !tp.Status.IsEnabled() && !r.IsEmpty() {
		return fmt.Errorf("%s pair holds reserves", tp.Status.Status)
	}
	if r.Reserve0.IsZero() != r.Reserve1.IsZero() {
		return fmt.Errorf("reserves must be both zero or both positive")
	}
	return nil
}
