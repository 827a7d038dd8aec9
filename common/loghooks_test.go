package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinnya/raftlog/clusterconf"
	"github.com/shinnya/raftlog/rlog"
)

// The ordering-robust path of HandleLogSnapshotLoaded (spec.md §9: "a
// correctness fix, not an optimization"): a load_committed result can
// resolve to a snapshot prefix whose tail runs ahead of committed_tail when
// the install notification for that very snapshot hasn't been observed yet.
// The handler must pre-clamp history forward before recording the load, so
// invariant 1 keeps holding.
func TestHandleLogSnapshotLoadedClampsAheadOfCommittedTail(t *testing.T) {
	c, _ := newTestCommon("node1", "node1", "node2")

	suffix := commandSuffix(rlog.LogPosition{Index: 0}, 1, 1, 1, 1, 1)
	require.NoError(t, c.history.RecordAppended(suffix))
	require.NoError(t, c.history.RecordCommitted(2))

	newConfig := clusterconf.New("node1", "node2", "node3")
	prefix := rlog.LogPrefix{
		Tail:     rlog.LogPosition{PrevTerm: 1, Index: 5},
		Config:   newConfig,
		Snapshot: []byte("snap"),
	}

	require.NoError(t, c.HandleLogSnapshotLoaded(prefix))

	assert.Equal(t, rlog.LogIndex(5), c.history.Head().Index)
	assert.Equal(t, rlog.LogIndex(5), c.history.CommittedTail().Index)
	assert.Equal(t, rlog.LogIndex(5), c.history.ConsumedTail().Index)
	assert.Equal(t, 3, c.history.Config().Len())

	var saw SnapshotLoaded
	var found bool
	for {
		e, ok := c.NextEvent()
		if !ok {
			break
		}
		if sl, ok := e.(SnapshotLoaded); ok {
			saw = sl
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, rlog.LogIndex(5), saw.NewHead.Index)
	assert.Equal(t, []byte("snap"), saw.Snapshot)
}

// When the loaded prefix's tail does not run ahead of committed_tail, no
// pre-clamp is needed; the load is recorded directly.
func TestHandleLogSnapshotLoadedWithoutClampNeeded(t *testing.T) {
	cfg := clusterconf.New("node1")
	c, _ := newTestCommon("node1", "node1")

	suffix := commandSuffix(rlog.LogPosition{Index: 0}, 1, 1, 1)
	require.NoError(t, c.history.RecordAppended(suffix))
	require.NoError(t, c.history.RecordCommitted(3))

	prefix := rlog.LogPrefix{Tail: rlog.LogPosition{PrevTerm: 1, Index: 2}, Config: cfg}
	require.NoError(t, c.HandleLogSnapshotLoaded(prefix))

	assert.Equal(t, rlog.LogIndex(2), c.history.Head().Index)
	assert.Equal(t, rlog.LogIndex(3), c.history.CommittedTail().Index)
}
