package keeper

import (
	"context"
	"sync"

	"github.com/bholdus-chain/dex/x/dex/types"
)

// EventRecorder is an EventSink that keeps every event in memory.
type EventRecorder struct {
	mu     sync.Mutex
	events []types.Event
}

var _ types.EventSink = (*EventRecorder)(nil)

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) Emit(_ context.Context, event types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of everything recorded so far.
func (r *EventRecorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Event(nil), r.events...)
}

// Last returns the most recent event, or nil.
func (r *EventRecorder) Last() types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// Reset drops recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
