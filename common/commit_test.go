package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/rio"
	"github.com/shinnya/raftlog/rlog"
	"github.com/shinnya/raftlog/roles"
)

// Scenario 6: a committed Retire entry naming a different successor first
// broadcasts an empty AppendEntries, then hands off to Follower(successor).
func TestRetirementCommitPromotesSuccessor(t *testing.T) {
	c, io := newTestCommon("nodeLeader", "nodeLeader", "nodeC", "nodeD")
	c.SetBallot(election.Ballot{Term: 9, VotedFor: "nodeLeader"})
	c.setRole(election.RoleLeader)

	suffix := rlog.LogSuffix{
		Head:    rlog.LogPosition{Index: 0},
		Entries: []rlog.LogEntry{rlog.RetireEntry{Term: 9, Successor: "nodeC"}},
	}
	require.NoError(t, c.history.RecordAppended(suffix))
	require.NoError(t, c.history.RecordCommitted(1))

	io.LoadLogResult = &rio.LoadLogResult{Log: rlog.Log{Suffix: &suffix}}

	next, err := c.RunOnce()
	require.NoError(t, err)

	require.NotEmpty(t, io.Outbox)
	for _, sent := range io.Outbox {
		ae, ok := sent.Msg.(raftmsg.AppendEntriesCall)
		require.True(t, ok)
		assert.Empty(t, ae.Suffix.Entries)
	}

	follower, ok := next.(roles.Follower)
	require.True(t, ok)
	assert.Equal(t, "nodeC", string(follower.Followee))
	assert.Equal(t, election.RoleFollower, c.LocalNode().Role)
}

func TestRetirementCommitSelfPromotesToCandidate(t *testing.T) {
	c, _ := newTestCommon("nodeC", "nodeC", "nodeD")
	c.SetBallot(election.Ballot{Term: 4, VotedFor: "nodeC"})
	c.setRole(election.RoleFollower)

	suffix := rlog.LogSuffix{
		Head:    rlog.LogPosition{Index: 0},
		Entries: []rlog.LogEntry{rlog.RetireEntry{Term: 4, Successor: "nodeC"}},
	}
	next := c.handleRetirement(suffix.Entries[0])

	_, ok := next.(roles.Candidate)
	require.True(t, ok)
	assert.Equal(t, election.RoleCandidate, c.LocalNode().Role)
	assert.Equal(t, election.Term(5), c.Term())
}

func TestCommitPipelineEmitsCommittedEventsInOrder(t *testing.T) {
	c, io := newTestCommon("node1", "node1", "node2")
	suffix := commandSuffix(rlog.LogPosition{Index: 0}, 1, 1, 1)

	require.NoError(t, c.history.RecordAppended(suffix))
	require.NoError(t, c.history.RecordCommitted(3))

	io.LoadLogResult = &rio.LoadLogResult{Log: rlog.Log{Suffix: &suffix}}

	_, err := c.RunOnce()
	require.NoError(t, err)

	var indexes []rlog.LogIndex
	for {
		e, ok := c.NextEvent()
		if !ok {
			break
		}
		if committed, ok := e.(Committed); ok {
			indexes = append(indexes, committed.Index)
		}
	}
	assert.Equal(t, []rlog.LogIndex{0, 1, 2}, indexes)
	assert.Equal(t, rlog.LogIndex(3), c.history.ConsumedTail().Index)
}
