package types

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AddressListAuthority authorizes a fixed set of accounts.
type AddressListAuthority struct {
	allowed map[string]struct{}
}

var _ ListingAuthority = AddressListAuthority{}

// NewAddressListAuthority builds an authority over addrs.
func NewAddressListAuthority(addrs ...sdk.AccAddress) AddressListAuthority {
	allowed := make(map[string]struct{}, len(addrs))
	for _, addr := range addrs {
		allowed[string(addr)] = struct{}{}
	}
	return AddressListAuthority{allowed: allowed}
}

// AddressListAuthorityFromBech32 parses bech32 account addresses.
func AddressListAuthorityFromBech32(addrs []string) (AddressListAuthority, error) {
	parsed := make([]sdk.AccAddress, 0, len(addrs))
	for _, s := range addrs {
		addr, err := sdk.AccAddressFromBech32(s)
		if err != nil {
			return AddressListAuthority{}, fmt.Errorf("invalid authority address %q: %w", s, err)
		}
		parsed = append(parsed, addr)
	}
	return NewAddressListAuthority(parsed...), nil
}

func (a AddressListAuthority) IsAuthorized(_ context.Context, caller sdk.AccAddress) bool {
	if caller.Empty() {
		return false
	}
	_, ok := a.allowed[string(caller)]
	return ok
}
