package app

import (
	"context"
	"encoding/json"
	"sync"

	"cosmossdk.io/log"

	dextypes "github.com/bholdus-chain/dex/x/dex/types"
)

// DefaultEventLogSize is how many notifications the event log keeps.
const DefaultEventLogSize = 1024

// EventRecord is one committed notification in its amino JSON form.
type EventRecord struct {
	Seq   uint64          `json:"seq"`
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

// EventLog is a bounded in-memory log of dex notifications. Older records are
// overwritten once the log is full.
type EventLog struct {
	mu      sync.RWMutex
	records []EventRecord
	next    int
	seq     uint64
	logger  log.Logger
}

var _ dextypes.EventSink = (*EventLog)(nil)

// NewEventLog creates an event log holding up to size records.
func NewEventLog(size int, logger log.Logger) *EventLog {
	if size <= 0 {
		size = DefaultEventLogSize
	}
	return &EventLog{
		records: make([]EventRecord, 0, size),
		logger:  logger.With("module", "events"),
	}
}

// Emit implements dextypes.EventSink.
func (l *EventLog) Emit(_ context.Context, event dextypes.Event) {
	bz, err := dextypes.ModuleCdc.MarshalJSON(event)
	if err != nil {
		l.logger.Error("failed to encode event", "type", event.EventType(), "error", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	rec := EventRecord{Seq: l.seq, Type: event.EventType(), Event: bz}
	if len(l.records) < cap(l.records) {
		l.records = append(l.records, rec)
	} else {
		l.records[l.next] = rec
	}
	l.next = (l.next + 1) % cap(l.records)

	l.logger.Debug("event", "seq", rec.Seq, "type", rec.Type)
}

// Recent returns up to limit records, oldest first, with a sequence number
// greater than after. A limit of zero or less returns everything retained.
func (l *EventLog) Recent(after uint64, limit int) []EventRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ordered := make([]EventRecord, 0, len(l.records))
	if len(l.records) == cap(l.records) {
		ordered = append(ordered, l.records[l.next:]...)
		ordered = append(ordered, l.records[:l.next]...)
	} else {
		ordered = append(ordered, l.records...)
	}

	out := make([]EventRecord, 0, len(ordered))
	for _, rec := range ordered {
		if rec.Seq > after {
			out = append(out, rec)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// LastSeq returns the sequence number of the newest record, or zero.
func (l *EventLog) LastSeq() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seq
}
