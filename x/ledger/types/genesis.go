package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxBalance is the largest balance or supply the ledger holds, 2^128 - 1.
var MaxBalance = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// Balance is one account's holding of one asset.
type Balance struct {
	Address string   `json:"address"`
	Asset   string   `json:"asset"`
	Amount  math.Int `json:"amount"`
}

// GenesisState is the genesis state of the ledger module. Supplies are
// derived from the balances.
type GenesisState struct {
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Balances: []Balance{}}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	type key struct{ addr, asset string }
	seen := make(map[key]struct{}, len(gs.Balances))
	supply := make(map[string]math.Int)

	for _, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return fmt.Errorf("balance address %q: %w", b.Address, err)
		}
		if b.Asset == "" {
			return fmt.Errorf("balance of %s has an empty asset", b.Address)
		}
		if b.Amount.IsNil() || !b.Amount.IsPositive() {
			return fmt.Errorf("balance of %s in %s must be positive", b.Address, b.Asset)
		}
		k := key{b.Address, b.Asset}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("duplicate balance of %s in %s", b.Address, b.Asset)
		}
		seen[k] = struct{}{}

		total, ok := supply[b.Asset]
		if !ok {
			total = math.ZeroInt()
		}
		total = total.Add(b.Amount)
		if total.GT(MaxBalance) {
			return fmt.Errorf("supply of %s exceeds maximum balance", b.Asset)
		}
		supply[b.Asset] = total
	}
	return nil
}
