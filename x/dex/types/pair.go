package types

import (
	"fmt"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TradingPair is an unordered pair of distinct assets, stored in canonical
// order so that First() < Second().
type TradingPair struct {
	Asset0 string `json:"asset0"`
	Asset1 string `json:"asset1"`
}

// NewTradingPair builds the canonical pair for a and b in either order.
// Pool-share assets cannot be paired.
func NewTradingPair(a, b string) (TradingPair, error) {
	for _, id := range []string{a, b} {
		if err := ValidateAsset(id); err != nil {
			return TradingPair{}, err
		}
		if IsShareAsset(id) {
			return TradingPair{}, ErrInvalidCurrencyID.Wrapf("%s is a share asset", id)
		}
	}
	if a == b {
		return TradingPair{}, ErrInvalidCurrencyID.Wrapf("identical assets %s", a)
	}
	if a > b {
		a, b = b, a
	}
	return TradingPair{Asset0: a, Asset1: b}, nil
}

// MustNewTradingPair is NewTradingPair for fixtures and constants.
func MustNewTradingPair(a, b string) TradingPair {
	pair, err := NewTradingPair(a, b)
	if err != nil {
		panic(err)
	}
	return pair
}

func (p TradingPair) First() string  { return p.Asset0 }
func (p TradingPair) Second() string { return p.Asset1 }

// Contains reports whether asset is one side of the pair.
func (p TradingPair) Contains(asset string) bool {
	return asset == p.Asset0 || asset == p.Asset1
}

// IsFirst reports whether asset is the canonical first side.
func (p TradingPair) IsFirst(asset string) bool {
	return asset == p.Asset0
}

// ShareAssetID derives the pool-share asset id. The first asset is length
// prefixed so that distinct pairs can never produce the same id.
func (p TradingPair) ShareAssetID() string {
	return fmt.Sprintf("%s%d:%s/%s", ShareAssetPrefix, len(p.Asset0), p.Asset0, p.Asset1)
}

// Validate checks that the pair is well-formed and canonical.
func (p TradingPair) Validate() error {
	canonical, err := NewTradingPair(p.Asset0, p.Asset1)
	if err != nil {
		return err
	}
	if canonical != p {
		return ErrInvalidCurrencyID.Wrapf("pair %s is not in canonical order", p)
	}
	return nil
}

func (p TradingPair) String() string {
	return p.Asset0 + "/" + p.Asset1
}

// ValidateAsset checks that id is usable as an asset id.
func ValidateAsset(id string) error {
	if err := sdk.ValidateDenom(id); err != nil {
		return ErrInvalidCurrencyID.Wrap(err.Error())
	}
	return nil
}

// IsShareAsset reports whether id names a pool-share asset.
func IsShareAsset(id string) bool {
	return strings.HasPrefix(id, ShareAssetPrefix)
}

// PairFromShareAssetID recovers the pair a share asset id was derived from.
func PairFromShareAssetID(id string) (TradingPair, error) {
	rest, ok := strings.CutPrefix(id, ShareAssetPrefix)
	if !ok {
		return TradingPair{}, ErrInvalidCurrencyID.Wrapf("%s is not a share asset", id)
	}
	lenStr, rest, ok := strings.Cut(rest, ":")
	if !ok {
		return TradingPair{}, ErrInvalidCurrencyID.Wrapf("malformed share asset %s", id)
	}
	n, err := strconv.Atoi(lenStr)
	if err != nil || n <= 0 || n+1 >= len(rest) || rest[n] != '/' {
		return TradingPair{}, ErrInvalidCurrencyID.Wrapf("malformed share asset %s", id)
	}
	pair := TradingPair{Asset0: rest[:n], Asset1: rest[n+1:]}
	if err := pair.Validate(); err != nil {
		return TradingPair{}, err
	}
	return pair, nil
}
