package api

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Validation constants
const (
	MaxRequestSize   = 1 << 16
	MaxAmountLength  = 40
	MaxAddressLength = 100
	MaxPathAssets    = 16
)

// parseAddress decodes a bech32 account address.
func parseAddress(field, s string) (sdk.AccAddress, error) {
	if s == "" {
		return nil, fmt.Errorf("%s is required", field)
	}
	if len(s) > MaxAddressLength {
		return nil, fmt.Errorf("%s is too long", field)
	}
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return addr, nil
}

// parseAmount decodes a non-negative decimal integer. An empty optional
// amount is zero.
func parseAmount(field, s string, optional bool) (math.Int, error) {
	if s == "" {
		if optional {
			return math.ZeroInt(), nil
		}
		return math.Int{}, fmt.Errorf("%s is required", field)
	}
	if len(s) > MaxAmountLength {
		return math.Int{}, fmt.Errorf("%s is too long", field)
	}
	if strings.TrimLeft(s, "0123456789") != "" {
		return math.Int{}, fmt.Errorf("%s: %q is not a non-negative decimal integer", field, s)
	}
	// Leading zeros would otherwise select octal.
	digits := strings.TrimLeft(s, "0")
	if digits == "" {
		digits = "0"
	}
	amt, ok := math.NewIntFromString(digits)
	if !ok {
		return math.Int{}, fmt.Errorf("%s: %q is out of range", field, s)
	}
	return amt, nil
}

// parsePath splits a comma separated query path such as "A,B,C".
func parsePath(s string) ([]string, error) {
	if s == "" {
		return nil, fmt.Errorf("path is required")
	}
	path := strings.Split(s, ",")
	if err := checkPath(path); err != nil {
		return nil, err
	}
	return path, nil
}

func checkPath(path []string) error {
	if len(path) > MaxPathAssets {
		return fmt.Errorf("path has more than %d assets", MaxPathAssets)
	}
	for i, asset := range path {
		if strings.TrimSpace(asset) == "" {
			return fmt.Errorf("path entry %d is empty", i)
		}
	}
	return nil
}

// amountFields parses several named amounts in one pass.
type amountFields struct {
	err error
}

func (f *amountFields) required(field, s string) math.Int {
	return f.parse(field, s, false)
}

func (f *amountFields) optional(field, s string) math.Int {
	return f.parse(field, s, true)
}

func (f *amountFields) parse(field, s string, optional bool) math.Int {
	if f.err != nil {
		return math.Int{}
	}
	amt, err := parseAmount(field, s, optional)
	if err != nil {
		f.err = err
	}
	return amt
}
