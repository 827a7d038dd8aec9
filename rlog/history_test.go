package rlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinnya/raftlog/clusterconf"
	"github.com/shinnya/raftlog/raftlogerr"
)

func TestRecordAppendedExtendsTail(t *testing.T) {
	h := New(clusterconf.New("n1", "n2", "n3"))
	suffix := LogSuffix{
		Head:    h.Tail(),
		Entries: []LogEntry{CommandEntry{Term: 1, Command: []byte("a")}},
	}
	require.NoError(t, h.RecordAppended(suffix))
	assert.Equal(t, LogIndex(1), h.Tail().Index)
}

func TestRecordAppendedRejectsGap(t *testing.T) {
	h := New(clusterconf.New("n1"))
	suffix := LogSuffix{Head: LogPosition{Index: 5}}
	err := h.RecordAppended(suffix)
	require.Error(t, err)
	assert.Equal(t, raftlogerr.KindInconsistentState, raftlogerr.KindOf(err))
}

func TestRecordCommittedRejectsPastTail(t *testing.T) {
	h := New(clusterconf.New("n1"))
	err := h.RecordCommitted(1)
	require.Error(t, err)
	assert.Equal(t, raftlogerr.KindInconsistentState, raftlogerr.KindOf(err))
}

func TestInvariantOrderingHoldsThroughAppendCommitConsume(t *testing.T) {
	h := New(clusterconf.New("n1"))
	suffix := LogSuffix{
		Head: h.Tail(),
		Entries: []LogEntry{
			CommandEntry{Term: 1, Command: []byte("a")},
			CommandEntry{Term: 1, Command: []byte("b")},
		},
	}
	require.NoError(t, h.RecordAppended(suffix))
	require.NoError(t, h.RecordCommitted(2))
	require.NoError(t, h.RecordConsumed(2))

	assert.LessOrEqual(t, h.Head().Index, h.ConsumedTail().Index)
	assert.LessOrEqual(t, h.ConsumedTail().Index, h.CommittedTail().Index)
	assert.LessOrEqual(t, h.CommittedTail().Index, h.Tail().Index)
}

func TestRecordSnapshotInstalledClampsBoundaries(t *testing.T) {
	h := New(clusterconf.New("n1"))
	newConfig := clusterconf.New("n1", "n2")
	require.NoError(t, h.RecordSnapshotInstalled(LogPosition{PrevTerm: 2, Index: 10}, newConfig))

	assert.Equal(t, LogIndex(10), h.Head().Index)
	assert.Equal(t, LogIndex(10), h.ConsumedTail().Index)
	assert.Equal(t, LogIndex(10), h.CommittedTail().Index)
	assert.Equal(t, LogIndex(10), h.Tail().Index)
	assert.Equal(t, 2, h.Config().Len())
}

func TestRecordSnapshotLoadedRejectsPastTail(t *testing.T) {
	h := New(clusterconf.New("n1"))
	prefix := LogPrefix{Tail: LogPosition{Index: 3}, Config: clusterconf.New("n1")}
	err := h.RecordSnapshotLoaded(prefix)
	require.Error(t, err)
	assert.Equal(t, raftlogerr.KindInconsistentState, raftlogerr.KindOf(err))
}
