package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LedgerKeeper is the token custody ledger the engine moves funds through.
// Every call must either fully succeed or leave balances untouched, and its
// errors are returned to the engine's callers unchanged.
type LedgerKeeper interface {
	Transfer(ctx context.Context, asset string, from, to sdk.AccAddress, amount math.Int) error
	Mint(ctx context.Context, asset string, to sdk.AccAddress, amount math.Int) error
	Burn(ctx context.Context, asset string, from sdk.AccAddress, amount math.Int) error
	Balance(ctx context.Context, asset string, who sdk.AccAddress) math.Int
	TotalIssuance(ctx context.Context, asset string) math.Int
}

// ListingAuthority decides who may list pairs and change module parameters.
type ListingAuthority interface {
	IsAuthorized(ctx context.Context, caller sdk.AccAddress) bool
}

// EventSink receives module notifications after commit.
type EventSink interface {
	Emit(ctx context.Context, event Event)
}

// NopEventSink drops every event.
type NopEventSink struct{}

func (NopEventSink) Emit(context.Context, Event) {}
