package keeper

import (
	"context"
	"errors"
	"sync"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// ErrInjected is returned by FailingLedger for the call it was told to fail.
var ErrInjected = errors.New("injected ledger failure")

// FailingLedger wraps a ledger and, once armed, fails the n-th call
// (1-based) of one mutating method.
type FailingLedger struct {
	types.LedgerKeeper

	mu     sync.Mutex
	method string
	failAt int
	calls  int
}

// NewFailingLedger returns a disarmed FailingLedger around inner.
func NewFailingLedger(inner types.LedgerKeeper) *FailingLedger {
	return &FailingLedger{LedgerKeeper: inner}
}

// Arm fails the failAt-th call to method ("transfer", "mint" or "burn"),
// counting from now.
func (l *FailingLedger) Arm(method string, failAt int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.method = method
	l.failAt = failAt
	l.calls = 0
}

func (l *FailingLedger) shouldFail(method string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if method != l.method {
		return false
	}
	l.calls++
	return l.calls == l.failAt
}

// Disarm stops any further injected failures.
func (l *FailingLedger) Disarm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.method = ""
	l.failAt = 0
}

func (l *FailingLedger) Transfer(ctx context.Context, asset string, from, to sdk.AccAddress, amount math.Int) error {
	if l.shouldFail("transfer") {
		return ErrInjected
	}
	return l.LedgerKeeper.Transfer(ctx, asset, from, to, amount)
}

func (l *FailingLedger) Mint(ctx context.Context, asset string, to sdk.AccAddress, amount math.Int) error {
	if l.shouldFail("mint") {
		return ErrInjected
	}
	return l.LedgerKeeper.Mint(ctx, asset, to, amount)
}

func (l *FailingLedger) Burn(ctx context.Context, asset string, from sdk.AccAddress, amount math.Int) error {
	if l.shouldFail("burn") {
		return ErrInjected
	}
	return l.LedgerKeeper.Burn(ctx, asset, from, amount)
}
