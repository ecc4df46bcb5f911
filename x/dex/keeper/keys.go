package keeper

import (
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/bholdus-chain/dex/x/dex/types"
)

var (
	// PairStatusKeyPrefix is the prefix for trading pair status records
	PairStatusKeyPrefix = []byte{0x01}

	// ReservesKeyPrefix is the prefix for pool reserves
	ReservesKeyPrefix = []byte{0x02}

	// ProvisionKeyPrefix is the prefix for per-account provisioning contributions
	ProvisionKeyPrefix = []byte{0x03}

	// ExchangeRateKeyPrefix is the prefix for initial share exchange rates
	ExchangeRateKeyPrefix = []byte{0x04}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}
)

func lengthPrefixed(s string) []byte {
	bz := make([]byte, 2, 2+len(s))
	binary.BigEndian.PutUint16(bz, uint16(len(s)))
	return append(bz, s...)
}

// pairKey encodes a pair so that no two pairs share a key prefix.
func pairKey(pair types.TradingPair) []byte {
	return append(lengthPrefixed(pair.First()), lengthPrefixed(pair.Second())...)
}

// parsePairKey decodes a pairKey and returns what follows it.
func parsePairKey(bz []byte) (types.TradingPair, []byte, error) {
	first, rest, err := readLengthPrefixed(bz)
	if err != nil {
		return types.TradingPair{}, nil, err
	}
	second, rest, err := readLengthPrefixed(rest)
	if err != nil {
		return types.TradingPair{}, nil, err
	}
	return types.TradingPair{Asset0: first, Asset1: second}, rest, nil
}

func readLengthPrefixed(bz []byte) (string, []byte, error) {
	if len(bz) < 2 {
		return "", nil, fmt.Errorf("key too short")
	}
	n := int(binary.BigEndian.Uint16(bz))
	if len(bz) < 2+n {
		return "", nil, fmt.Errorf("key too short for %d byte segment", n)
	}
	return string(bz[2 : 2+n]), bz[2+n:], nil
}

// PairStatusKey returns the store key for a pair's status
func PairStatusKey(pair types.TradingPair) []byte {
	return append(append([]byte{}, PairStatusKeyPrefix...), pairKey(pair)...)
}

// ReservesKey returns the store key for a pair's reserves
func ReservesKey(pair types.TradingPair) []byte {
	return append(append([]byte{}, ReservesKeyPrefix...), pairKey(pair)...)
}

// ExchangeRateKey returns the store key for a pair's initial exchange rate
func ExchangeRateKey(pair types.TradingPair) []byte {
	return append(append([]byte{}, ExchangeRateKeyPrefix...), pairKey(pair)...)
}

// ProvisionPrefix returns the prefix of all contributions to a pair
func ProvisionPrefix(pair types.TradingPair) []byte {
	return append(append([]byte{}, ProvisionKeyPrefix...), pairKey(pair)...)
}

// ProvisionKey returns the store key for one account's contribution to a pair
func ProvisionKey(pair types.TradingPair, who sdk.AccAddress) []byte {
	return append(ProvisionPrefix(pair), address.MustLengthPrefix(who)...)
}

func parseProvisionKey(bz []byte) (types.TradingPair, sdk.AccAddress, error) {
	pair, rest, err := parsePairKey(bz)
	if err != nil {
		return types.TradingPair{}, nil, err
	}
	if len(rest) < 1 || len(rest) != 1+int(rest[0]) {
		return types.TradingPair{}, nil, fmt.Errorf("malformed provision key")
	}
	return pair, sdk.AccAddress(rest[1:]), nil
}
