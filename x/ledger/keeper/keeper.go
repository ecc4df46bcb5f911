package keeper

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/bholdus-chain/dex/x/ledger/types"
)

var (
	// BalanceKeyPrefix is the prefix for account balances
	BalanceKeyPrefix = []byte{0x01}

	// SupplyKeyPrefix is the prefix for total issuance per asset
	SupplyKeyPrefix = []byte{0x02}
)

func assetKey(asset string) []byte {
	bz := make([]byte, 2, 2+len(asset))
	binary.BigEndian.PutUint16(bz, uint16(len(asset)))
	return append(bz, asset...)
}

// BalanceKey returns the store key for who's balance of asset
func BalanceKey(asset string, who sdk.AccAddress) []byte {
	key := append(append([]byte{}, BalanceKeyPrefix...), assetKey(asset)...)
	return append(key, address.MustLengthPrefix(who)...)
}

// SupplyKey returns the store key for the total issuance of asset
func SupplyKey(asset string) []byte {
	return append(append([]byte{}, SupplyKeyPrefix...), assetKey(asset)...)
}

// Keeper is a store-backed multi-asset ledger. Each call holds the keeper
// mutex for its whole duration, so it either applies completely or not at all.
type Keeper struct {
	mu     sync.Mutex
	store  storetypes.KVStore
	logger log.Logger
}

// NewKeeper creates a ledger over the ModuleName-prefixed part of store.
func NewKeeper(store storetypes.KVStore, logger log.Logger) *Keeper {
	return &Keeper{
		store:  prefix.NewStore(store, []byte(types.StoreKey+"/")),
		logger: logger.With("module", "x/"+types.ModuleName),
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

func (k *Keeper) get(key []byte) math.Int {
	bz := k.store.Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var amt math.Int
	if err := amt.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("corrupt ledger entry %X: %w", key, err))
	}
	return amt
}

func (k *Keeper) set(key []byte, amt math.Int) {
	if amt.IsZero() {
		k.store.Delete(key)
		return
	}
	bz, err := amt.Marshal()
	if err != nil {
		panic(fmt.Errorf("encode ledger entry %X: %w", key, err))
	}
	k.store.Set(key, bz)
}

func validate(asset string, amount math.Int) error {
	if asset == "" {
		return types.ErrInvalidAsset.Wrap("empty asset")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("amount %s", amount)
	}
	if amount.GT(types.MaxBalance) {
		return types.ErrOverflow.Wrapf("amount %s exceeds maximum balance", amount)
	}
	return nil
}

// Balance returns who's balance of asset.
func (k *Keeper) Balance(_ context.Context, asset string, who sdk.AccAddress) math.Int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.get(BalanceKey(asset, who))
}

// TotalIssuance returns the total supply of asset.
func (k *Keeper) TotalIssuance(_ context.Context, asset string) math.Int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.get(SupplyKey(asset))
}

// Transfer moves amount of asset from one account to another.
func (k *Keeper) Transfer(_ context.Context, asset string, from, to sdk.AccAddress, amount math.Int) error {
	if err := validate(asset, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	fromKey := BalanceKey(asset, from)
	fromBal := k.get(fromKey)
	if fromBal.LT(amount) {
		return types.ErrBalanceLow.Wrapf("%s has %s%s, needs %s%s", from, fromBal, asset, amount, asset)
	}
	if from.Equals(to) {
		return nil
	}
	toKey := BalanceKey(asset, to)
	toBal := k.get(toKey).Add(amount)
	if toBal.GT(types.MaxBalance) {
		return types.ErrOverflow.Wrapf("balance of %s in %s", to, asset)
	}

	k.set(fromKey, fromBal.Sub(amount))
	k.set(toKey, toBal)
	return nil
}

// Mint creates amount of asset in to's account.
func (k *Keeper) Mint(_ context.Context, asset string, to sdk.AccAddress, amount math.Int) error {
	if err := validate(asset, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	supply := k.get(SupplyKey(asset)).Add(amount)
	if supply.GT(types.MaxBalance) {
		return types.ErrOverflow.Wrapf("supply of %s", asset)
	}
	toKey := BalanceKey(asset, to)
	k.set(toKey, k.get(toKey).Add(amount))
	k.set(SupplyKey(asset), supply)
	return nil
}

// Burn destroys amount of asset held by from.
func (k *Keeper) Burn(_ context.Context, asset string, from sdk.AccAddress, amount math.Int) error {
	if err := validate(asset, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	fromKey := BalanceKey(asset, from)
	fromBal := k.get(fromKey)
	if fromBal.LT(amount) {
		return types.ErrBalanceLow.Wrapf("%s has %s%s, burning %s%s", from, fromBal, asset, amount, asset)
	}
	k.set(fromKey, fromBal.Sub(amount))
	k.set(SupplyKey(asset), k.get(SupplyKey(asset)).Sub(amount))
	return nil
}

// GetAllBalances returns every non-zero balance in store order.
func (k *Keeper) GetAllBalances(_ context.Context) ([]types.Balance, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	iter := storetypes.KVStorePrefixIterator(k.store, BalanceKeyPrefix)
	defer iter.Close()

	var balances []types.Balance
	for ; iter.Valid(); iter.Next() {
		asset, who, err := parseBalanceKey(iter.Key()[len(BalanceKeyPrefix):])
		if err != nil {
			return nil, err
		}
		var amt math.Int
		if err := amt.Unmarshal(iter.Value()); err != nil {
			return nil, fmt.Errorf("decode balance of %s in %s: %w", who, asset, err)
		}
		balances = append(balances, types.Balance{Address: who.String(), Asset: asset, Amount: amt})
	}
	return balances, nil
}

func parseBalanceKey(bz []byte) (string, sdk.AccAddress, error) {
	if len(bz) < 2 {
		return "", nil, fmt.Errorf("malformed balance key")
	}
	n := int(binary.BigEndian.Uint16(bz))
	if len(bz) < 2+n+1 {
		return "", nil, fmt.Errorf("malformed balance key")
	}
	asset, rest := string(bz[2:2+n]), bz[2+n:]
	if len(rest) != 1+int(rest[0]) {
		return "", nil, fmt.Errorf("malformed balance key")
	}
	return asset, sdk.AccAddress(rest[1:]), nil
}
