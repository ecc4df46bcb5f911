package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// Invariant checks one property of the module state. It returns a
// description and whether the property is broken.
type Invariant func(ctx context.Context) (string, bool)

// RegisteredInvariants lists the module invariants by route name.
func RegisteredInvariants(k *Keeper) map[string]Invariant {
	return map[string]Invariant{
		"pool-reserves":          PoolReservesInvariant(k),
		"module-account-balance": ModuleAccountBalanceInvariant(k),
		"provision-shares":       ProvisionSharesInvariant(k),
	}
}

// AllInvariants runs all invariants of the DEX module
func AllInvariants(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		res, stop := PoolReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ModuleAccountBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return ProvisionSharesInvariant(k)(ctx)
	}
}

func formatInvariant(name, msg string) string {
	return fmt.Sprintf("%s/%s invariant\n%s", types.ModuleName, name, msg)
}

// stateSnapshot is a consistent copy of pair state taken under lockAll.
type stateSnapshot struct {
	statuses   map[types.TradingPair]types.TradingPairStatus
	reserves   map[types.TradingPair]types.Reserves
	provisions map[types.TradingPair][]types.Contribution
}

func (k *Keeper) snapshot() (stateSnapshot, error) {
	unlock := k.lockAll()
	defer unlock()

	snap := stateSnapshot{
		statuses:   make(map[types.TradingPair]types.TradingPairStatus),
		reserves:   make(map[types.TradingPair]types.Reserves),
		provisions: make(map[types.TradingPair][]types.Contribution),
	}
	if err := k.iterateStatuses(k.store, func(pair types.TradingPair, status types.TradingPairStatus) bool {
		snap.statuses[pair] = status
		return false
	}); err != nil {
		return stateSnapshot{}, err
	}
	if err := k.iterateReserves(k.store, func(pair types.TradingPair, reserves types.Reserves) bool {
		snap.reserves[pair] = reserves
		return false
	}); err != nil {
		return stateSnapshot{}, err
	}
	if err := k.iterateProvisions(k.store, func(pair types.TradingPair, _ sdk.AccAddress, c types.Contribution) bool {
		snap.provisions[pair] = append(snap.provisions[pair], c)
		return false
	}); err != nil {
		return stateSnapshot{}, err
	}
	return snap, nil
}

func (k *Keeper) iterateReserves(store storetypes.KVStore, cb func(types.TradingPair, types.Reserves) bool) error {
	iter := storetypes.KVStorePrefixIterator(store, ReservesKeyPrefix)
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		pair, _, err := parsePairKey(iter.Key()[len(ReservesKeyPrefix):])
		if err != nil {
			return fmt.Errorf("iterate reserves: %w", err)
		}
		var reserves types.Reserves
		if err := k.cdc.Unmarshal(iter.Value(), &reserves); err != nil {
			return fmt.Errorf("decode reserves of %s: %w", pair, err)
		}
		if cb(pair, reserves) {
			break
		}
	}
	return nil
}

// PoolReservesInvariant checks that only enabled pools hold reserves and
// that no pool holds reserves on one side only.
func PoolReservesInvariant(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		snap, err := k.snapshot()
		if err != nil {
			return formatInvariant("pool-reserves", err.Error()), true
		}

		var (
			msg   string
			count int
		)
		for pair, reserves := range snap.reserves {
			status := snap.statuses[pair]
			if !status.IsEnabled() {
				count++
				msg += fmt.Sprintf("\t%s pair %s holds reserves %s/%s\n", status.Status, pair, reserves.Reserve0, reserves.Reserve1)
				continue
			}
			if reserves.Reserve0.IsZero() != reserves.Reserve1.IsZero() {
				count++
				msg += fmt.Sprintf("\tpair %s has one-sided reserves %s/%s\n", pair, reserves.Reserve0, reserves.Reserve1)
			}
		}

		broken := count != 0
		if broken {
			k.metrics.InvariantFailures.WithLabelValues("pool-reserves").Inc()
		}
		return formatInvariant("pool-reserves", fmt.Sprintf("found %d pools with invalid reserves\n%s", count, msg)), broken
	}
}

// ModuleAccountBalanceInvariant checks that the module account holds at
// least the pool reserves plus the provisioning deposits of every asset.
func ModuleAccountBalanceInvariant(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		snap, err := k.snapshot()
		if err != nil {
			return formatInvariant("module-account-balance", err.Error()), true
		}

		owed := make(map[string]math.Int)
		add := func(asset string, amt math.Int) {
			if cur, ok := owed[asset]; ok {
				owed[asset] = cur.Add(amt)
				return
			}
			owed[asset] = amt
		}
		for pair, reserves := range snap.reserves {
			add(pair.First(), reserves.Reserve0)
			add(pair.Second(), reserves.Reserve1)
		}
		for pair, status := range snap.statuses {
			if status.IsProvisioning() {
				add(pair.First(), status.Provisioning.AccumulatedProvision0)
				add(pair.Second(), status.Provisioning.AccumulatedProvision1)
			}
		}

		var (
			msg   string
			count int
		)
		for asset, amt := range owed {
			balance := k.ledger.Balance(ctx, asset, k.moduleAddr)
			if balance.LT(amt) {
				count++
				msg += fmt.Sprintf("\tmodule account holds %s%s, owes %s%s\n", balance, asset, amt, asset)
			}
		}

		broken := count != 0
		if broken {
			k.metrics.InvariantFailures.WithLabelValues("module-account-balance").Inc()
		}
		return formatInvariant("module-account-balance", fmt.Sprintf("found %d under-backed assets\n%s", count, msg)), broken
	}
}

// ProvisionSharesInvariant checks that the module account holds enough
// shares of every pair to pay all outstanding provisioning claims.
func ProvisionSharesInvariant(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		snap, err := k.snapshot()
		if err != nil {
			return formatInvariant("provision-shares", err.Error()), true
		}

		var (
			msg   string
			count int
		)
		for pair, contributions := range snap.provisions {
			if !snap.statuses[pair].IsEnabled() {
				continue
			}
			rate, found, err := k.getExchangeRate(k.store, pair)
			if err != nil || !found {
				count++
				msg += fmt.Sprintf("\tpair %s has claims but no exchange rate\n", pair)
				continue
			}
			owed := math.ZeroInt()
			for _, c := range contributions {
				shares, err := SharesAtRate(rate, c.Amount0, c.Amount1)
				if err != nil {
					count++
					msg += fmt.Sprintf("\tpair %s: %s\n", pair, err)
					continue
				}
				owed = owed.Add(shares)
			}
			held := k.ledger.Balance(ctx, pair.ShareAssetID(), k.moduleAddr)
			if held.LT(owed) {
				count++
				msg += fmt.Sprintf("\tpair %s: module holds %s shares, owes %s\n", pair, held, owed)
			}
		}

		broken := count != 0
		if broken {
			k.metrics.InvariantFailures.WithLabelValues("provision-shares").Inc()
		}
		return formatInvariant("provision-shares", fmt.Sprintf("found %d pairs with unbacked claims\n%s", count, msg)), broken
	}
}
