package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ledgerOps records every successful ledger call of an operation together
// with its inverse, so a later failure can put balances back.
type ledgerOps struct {
	k    *Keeper
	ctx  context.Context
	undo []func() error
}

func (k *Keeper) newLedgerOps(ctx context.Context) *ledgerOps {
	return &ledgerOps{k: k, ctx: ctx}
}

func (o *ledgerOps) transfer(asset string, from, to sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := o.k.ledger.Transfer(o.ctx, asset, from, to, amount); err != nil {
		return err
	}
	o.undo = append(o.undo, func() error {
		return o.k.ledger.Transfer(o.ctx, asset, to, from, amount)
	})
	return nil
}

func (o *ledgerOps) mint(asset string, to sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := o.k.ledger.Mint(o.ctx, asset, to, amount); err != nil {
		return err
	}
	o.undo = append(o.undo, func() error {
		return o.k.ledger.Burn(o.ctx, asset, to, amount)
	})
	return nil
}

func (o *ledgerOps) burn(asset string, from sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := o.k.ledger.Burn(o.ctx, asset, from, amount); err != nil {
		return err
	}
	o.undo = append(o.undo, func() error {
		return o.k.ledger.Mint(o.ctx, asset, from, amount)
	})
	return nil
}

// revert undoes the recorded calls in reverse order. A failed inverse is
// logged and the remaining ones still run.
func (o *ledgerOps) revert() {
	for i := len(o.undo) - 1; i >= 0; i-- {
		if err := o.undo[i](); err != nil {
			o.k.Logger().Error("failed to revert ledger operation", "step", i, "error", err)
			o.k.metrics.LedgerRevertFailures.Inc()
		}
	}
	o.undo = nil
}
