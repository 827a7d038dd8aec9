package common

import (
	"go.uber.org/zap"

	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/roles"
)

// HandleMessageResult is the outcome of HandleMessage: either the message
// was fully consumed here (Message is nil), possibly producing a role
// transition in Next, or it is Unhandled and must be passed to the active
// role's own handler.
type HandleMessageResult struct {
	Message raftmsg.Message
	Next    roles.RoleState
}

// IsHandled reports whether the message was fully triaged here.
func (r HandleMessageResult) IsHandled() bool {
	return r.Message == nil
}

// HandleMessage is the message-triage priority cascade of spec.md §4.3: a
// decision on (local.role, local.term vs msg.term, sender-is-followed,
// message kind).
func (c *Common) HandleMessage(msg raftmsg.Message) (HandleMessageResult, error) {
	hdr := msg.Header()

	// (a) Unknown-sender guard for Leader: non-leaders accept unknown
	// senders so a restart spanning a configuration change can discover
	// new membership.
	if c.local.Role == election.RoleLeader && !c.history.Config().IsKnownNode(hdr.Sender) {
		return HandleMessageResult{}, nil
	}

	switch {
	case hdr.Term > c.local.Ballot.Term:
		return c.handleHigherTerm(msg, hdr)
	case hdr.Term < c.local.Ballot.Term:
		c.replyNegativeVote(hdr)
		return HandleMessageResult{}, nil
	default:
		return c.handleSameTerm(msg, hdr)
	}
}

// handleHigherTerm implements spec.md §4.3(b), including the disruptive-
// server mitigation from Raft §6.
func (c *Common) handleHigherTerm(msg raftmsg.Message, hdr raftmsg.MessageHeader) (HandleMessageResult, error) {
	isFollowingSomeone := c.local.Role == election.RoleFollower && c.local.Ballot.VotedFor != c.local.ID
	if isFollowingSomeone && hdr.Sender != c.local.Ballot.VotedFor {
		// A stray higher-term probe while a healthy leader is being
		// tracked; ignored so the cluster isn't repeatedly dragged into
		// new elections by a partitioned old-configuration member.
		c.log.Debug("dropping higher-term message from non-followed sender",
			zap.String("sender", hdr.Sender.String()),
			zap.Uint64("msgTerm", uint64(hdr.Term)),
			zap.Uint64("localTerm", uint64(c.local.Ballot.Term)))
		return HandleMessageResult{}, nil
	}

	wasLeader := c.local.Role == election.RoleLeader
	// Adopt the sender's term before dispatching, as a raw field write
	// (not SetBallot): voted_for is left untouched and no TermChanged is
	// emitted here, exactly as the original does. The TransitTo* call below
	// is the sole TermChanged source for this path — emitting one here too
	// would double-fire it and expose an intermediate ballot (msg.term, old
	// voted_for) the node is never meaningfully in.
	c.log.Info("adopting higher term",
		zap.Uint64("fromTerm", uint64(c.local.Ballot.Term)),
		zap.Uint64("toTerm", uint64(hdr.Term)),
		zap.String("sender", hdr.Sender.String()))
	c.local.Ballot.Term = hdr.Term

	switch m := msg.(type) {
	case raftmsg.RequestVoteCall:
		if m.LogTail.IsNewerOrEqualThan(c.history.Tail()) {
			c.deferMessage(msg)
			return HandleMessageResult{Next: c.TransitToFollower(hdr.Sender)}, nil
		}
		return HandleMessageResult{Next: c.TransitToCandidate()}, nil

	case raftmsg.AppendEntriesCall:
		c.deferMessage(msg)
		return HandleMessageResult{Next: c.TransitToFollower(hdr.Sender)}, nil

	default:
		if wasLeader {
			return HandleMessageResult{Next: c.TransitToCandidate()}, nil
		}
		// No definite leader yet; reset to self-vote until one appears.
		// Unusual, but preserved for equivalence per spec.md §9.
		return HandleMessageResult{Next: c.TransitToFollower(c.local.ID)}, nil
	}
}

// handleSameTerm implements spec.md §4.3(d).
func (c *Common) handleSameTerm(msg raftmsg.Message, hdr raftmsg.MessageHeader) (HandleMessageResult, error) {
	switch msg.(type) {
	case raftmsg.RequestVoteCall:
		if hdr.Sender != c.local.Ballot.VotedFor {
			c.replyNegativeVote(hdr)
			return HandleMessageResult{}, nil
		}
		return HandleMessageResult{Message: msg}, nil

	case raftmsg.AppendEntriesCall:
		if hdr.Sender != c.local.Ballot.VotedFor {
			// The cluster has produced a definite leader at this term.
			c.deferMessage(msg)
			return HandleMessageResult{Next: c.TransitToFollower(hdr.Sender)}, nil
		}
		return HandleMessageResult{Message: msg}, nil

	default:
		return HandleMessageResult{Message: msg}, nil
	}
}

// deferMessage stashes msg for exactly one re-delivery via the next
// TryRecvMessage call, per invariant 6.
func (c *Common) deferMessage(msg raftmsg.Message) {
	c.unreadMessage = msg
}

// replyNegativeVote sends the least-harmful stale-term signal: a negative
// RequestVote response, addressed back to the sender. Receivers only read
// its header to learn their term is stale; the kind of the original message
// is irrelevant.
func (c *Common) replyNegativeVote(hdr raftmsg.MessageHeader) {
	c.log.Debug("replying stale-term signal",
		zap.String("to", hdr.Sender.String()),
		zap.Uint64("localTerm", uint64(c.local.Ballot.Term)))
	reply := raftmsg.RequestVoteResponse{
		Hdr:         c.RPCCallee(hdr).Header(),
		VoteGranted: false,
	}
	c.io.SendMessage(hdr.Sender, reply)
}
