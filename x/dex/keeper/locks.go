package keeper

import (
	"sort"
	"sync"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// pairLocks hands out one mutex per trading pair. Entries are reference
// counted and dropped once no goroutine holds or waits on them.
type pairLocks struct {
	mu    sync.Mutex
	locks map[types.TradingPair]*pairLock
}

type pairLock struct {
	sync.Mutex
	refs int
}

func newPairLocks() *pairLocks {
	return &pairLocks{locks: make(map[types.TradingPair]*pairLock)}
}

// lock acquires the locks of all pairs in canonical order, so two callers
// locking overlapping sets cannot deadlock. Duplicates are locked once.
func (l *pairLocks) lock(pairs ...types.TradingPair) (unlock func()) {
	ordered := sortedUniquePairs(pairs)

	held := make([]*pairLock, 0, len(ordered))
	for _, pair := range ordered {
		l.mu.Lock()
		pl, ok := l.locks[pair]
		if !ok {
			pl = &pairLock{}
			l.locks[pair] = pl
		}
		pl.refs++
		l.mu.Unlock()

		pl.Lock()
		held = append(held, pl)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()

			l.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.locks, ordered[i])
			}
			l.mu.Unlock()
		}
	}
}

func sortedUniquePairs(pairs []types.TradingPair) []types.TradingPair {
	ordered := make([]types.TradingPair, len(pairs))
	copy(ordered, pairs)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Asset0 != ordered[j].Asset0 {
			return ordered[i].Asset0 < ordered[j].Asset0
		}
		return ordered[i].Asset1 < ordered[j].Asset1
	})

	out := ordered[:0]
	for _, pair := range ordered {
		if len(out) > 0 && out[len(out)-1] == pair {
			continue
		}
		out = append(out, pair)
	}
	return out
}

// lockPairs takes the shared state lock and the pair locks.
func (k *Keeper) lockPairs(pairs ...types.TradingPair) (unlock func()) {
	k.stateMu.RLock()
	unlockPairs := k.locks.lock(pairs...)
	return func() {
		unlockPairs()
		k.stateMu.RUnlock()
	}
}

// lockAll excludes every other operation.
func (k *Keeper) lockAll() (unlock func()) {
	k.stateMu.Lock()
	return k.stateMu.Unlock
}
