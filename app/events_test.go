package app

import (
	"context"
	"encoding/json"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	dextypes "github.com/bholdus-chain/dex/x/dex/types"
)

func TestEventLog_Wraps(t *testing.T) {
	l := NewEventLog(3, log.NewNopLogger())
	ctx := context.Background()
	pair := dextypes.MustNewTradingPair("BHO", "BNB")

	for i := 0; i < 5; i++ {
		l.Emit(ctx, dextypes.EventTradingPairEnabled{Pair: pair})
	}

	records := l.Recent(0, 0)
	require.Len(t, records, 3)
	require.Equal(t, []uint64{3, 4, 5}, []uint64{records[0].Seq, records[1].Seq, records[2].Seq})
	require.Equal(t, uint64(5), l.LastSeq())

	require.Len(t, l.Recent(4, 0), 1)
	require.Len(t, l.Recent(0, 2), 2)
	require.Equal(t, uint64(5), l.Recent(0, 1)[0].Seq)
}

func TestEventLog_EncodesAmino(t *testing.T) {
	l := NewEventLog(0, log.NewNopLogger())
	pair := dextypes.MustNewTradingPair("BHO", "BNB")
	l.Emit(context.Background(), dextypes.EventTradingPairEnabled{Pair: pair})

	rec := l.Recent(0, 0)[0]
	require.Equal(t, dextypes.EventTypeTradingPairEnabled, rec.Type)

	var wrapped struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(rec.Event, &wrapped))
	require.Equal(t, "dex/TradingPairEnabled", wrapped.Type)

	var decoded dextypes.Event
	require.NoError(t, dextypes.ModuleCdc.UnmarshalJSON(rec.Event, &decoded))
	require.Equal(t, pair, decoded.(dextypes.EventTradingPairEnabled).Pair)
}
