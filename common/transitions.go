package common

import (
	"go.uber.org/zap"

	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/rlog"
	"github.com/shinnya/raftlog/roles"
)

// TransitToLeader sets role Leader. The ballot is untouched: term and vote
// were already settled when the node won the election that led here.
func (c *Common) TransitToLeader() roles.Leader {
	c.log.Info("transitioning to leader", zap.Uint64("term", uint64(c.local.Ballot.Term)))
	c.setRole(election.RoleLeader)
	return roles.Leader{}
}

// TransitToCandidate sets the ballot to {term+1, voted_for=self} and sets
// role Candidate. Persisting the new ballot is the caller's responsibility,
// typically as part of the candidate's own entry logic.
func (c *Common) TransitToCandidate() roles.Candidate {
	newTerm := c.local.Ballot.Term.Next()
	c.log.Info("transitioning to candidate", zap.Uint64("term", uint64(newTerm)))
	c.SetBallot(election.Ballot{Term: newTerm, VotedFor: c.local.ID})
	c.setRole(election.RoleCandidate)
	return roles.Candidate{}
}

// TransitToFollower sets the ballot to {current term, voted_for=followee}
// and sets role Follower.
func (c *Common) TransitToFollower(followee raftid.NodeID) roles.Follower {
	c.log.Info("transitioning to follower", zap.String("followee", followee.String()))
	c.SetBallot(election.Ballot{Term: c.local.Ballot.Term, VotedFor: followee})
	c.setRole(election.RoleFollower)
	return roles.Follower{Followee: followee}
}

// handleRetirement is evaluated once per consumed log entry by the commit
// pipeline. Only a RetireEntry whose term matches the local term has any
// effect; anything else is a no-op. On a matching entry: if local is
// currently Leader, it first broadcasts an empty AppendEntries so every
// peer observes the commit without waiting on the next regular heartbeat,
// then hands off — to Candidate if local is the named successor (it will
// almost certainly win the next ballot, since a quorum already accepted the
// retirement), otherwise to Follower(successor).
func (c *Common) handleRetirement(entry rlog.LogEntry) roles.RoleState {
	retire, ok := entry.(rlog.RetireEntry)
	if !ok || retire.Term != c.local.Ballot.Term {
		return nil
	}
	if c.local.Role == election.RoleLeader {
		c.log.Info("broadcasting empty append entries for retirement commit",
			zap.String("successor", retire.Successor.String()))
		c.broadcastEmptyAppendEntries()
	}
	if c.local.ID == retire.Successor {
		return c.TransitToCandidate()
	}
	return c.TransitToFollower(retire.Successor)
}

// broadcastEmptyAppendEntries sends a heartbeat-shaped AppendEntriesCall
// with no entries to every other known cluster member.
func (c *Common) broadcastEmptyAppendEntries() {
	tail := c.history.Tail()
	committed := c.history.CommittedTail().Index
	for _, member := range c.history.Config().Members() {
		if member == c.local.ID {
			continue
		}
		msg := raftmsg.AppendEntriesCall{
			Hdr:           c.RPCCaller().Header(),
			Suffix:        rlog.LogSuffix{Head: tail},
			CommittedTail: committed,
		}
		c.io.SendMessage(member, msg)
	}
}
