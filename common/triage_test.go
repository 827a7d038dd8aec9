package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/rlog"
)

// Scenario 3: higher-term disruptor ignored while following a healthy
// leader.
func TestHigherTermDisruptorIgnoredWhileFollowing(t *testing.T) {
	c, _ := newTestCommon("nodeSelf", "nodeSelf", "leaderX", "nodeY")
	c.SetBallot(election.Ballot{Term: 3, VotedFor: "leaderX"})
	c.setRole(election.RoleFollower)

	msg := raftmsg.RequestVoteCall{
		Hdr:     raftmsg.MessageHeader{Sender: "nodeY", Term: 4},
		LogTail: rlog.LogPosition{},
	}

	result, err := c.HandleMessage(msg)
	require.NoError(t, err)

	assert.True(t, result.IsHandled())
	assert.Nil(t, result.Next)
	assert.Equal(t, election.Term(3), c.Term())
	assert.Equal(t, raftid.NodeID("leaderX"), c.LocalNode().Ballot.VotedFor)
}

// Scenario 4: higher-term AppendEntries adopts the new leader and defers
// the message for re-delivery.
func TestHigherTermAppendEntriesAdoptsLeader(t *testing.T) {
	c, _ := newTestCommon("nodeSelf", "nodeSelf", "nodeZ")
	c.SetBallot(election.Ballot{Term: 3})
	c.setRole(election.RoleCandidate)

	msg := raftmsg.AppendEntriesCall{
		Hdr: raftmsg.MessageHeader{Sender: "nodeZ", Term: 5},
	}

	result, err := c.HandleMessage(msg)
	require.NoError(t, err)

	require.NotNil(t, result.Next)
	assert.Equal(t, election.Term(5), c.Term())
	assert.Equal(t, election.RoleFollower, c.LocalNode().Role)
	assert.Equal(t, raftid.NodeID("nodeZ"), c.LocalNode().Ballot.VotedFor)

	redelivered, ok, err := c.TryRecvMessage()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, msg, redelivered)
}

// Scenario 5: same-term RequestVote from a non-followed sender draws a
// negative reply and no role change.
func TestSameTermRequestVoteFromNonFollowedSender(t *testing.T) {
	c, io := newTestCommon("nodeSelf", "nodeSelf", "leaderA", "nodeB")
	c.SetBallot(election.Ballot{Term: 7, VotedFor: "leaderA"})

	msg := raftmsg.RequestVoteCall{
		Hdr: raftmsg.MessageHeader{Sender: "nodeB", Term: 7},
	}

	result, err := c.HandleMessage(msg)
	require.NoError(t, err)

	assert.True(t, result.IsHandled())
	assert.Nil(t, result.Next)
	assert.Equal(t, election.RoleFollower, c.LocalNode().Role)

	require.Len(t, io.Outbox, 1)
	reply, ok := io.Outbox[0].Msg.(raftmsg.RequestVoteResponse)
	require.True(t, ok)
	assert.False(t, reply.VoteGranted)
	assert.Equal(t, raftid.NodeID("nodeB"), io.Outbox[0].Target)
}

func TestLeaderDropsMessageFromUnknownSender(t *testing.T) {
	c, _ := newTestCommon("nodeSelf", "nodeSelf", "nodeB")
	c.setRole(election.RoleLeader)

	msg := fakeMessage("unknownNode", c.Term(), 1)
	result, err := c.HandleMessage(msg)
	require.NoError(t, err)
	assert.True(t, result.IsHandled())
	assert.Nil(t, result.Next)
}

func TestSameTermAppendEntriesFromFolloweeIsUnhandled(t *testing.T) {
	c, _ := newTestCommon("nodeSelf", "nodeSelf", "nodeB")
	c.SetBallot(election.Ballot{Term: 2, VotedFor: "nodeB"})

	msg := raftmsg.AppendEntriesCall{Hdr: raftmsg.MessageHeader{Sender: "nodeB", Term: 2}}
	result, err := c.HandleMessage(msg)
	require.NoError(t, err)
	assert.False(t, result.IsHandled())
	assert.Equal(t, msg, result.Message)
}
