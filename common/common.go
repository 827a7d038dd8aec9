// Package common implements the role-common core of a Raft replica: the
// state every one of Leader, Candidate, and Follower shares, the message
// triage that decides whether an inbound message is handled here or handed
// to the active role, the background tick that drives the snapshot-install
// and commit-consumption pipelines, and the role-transition primitives.
// Everything here is grounded on
// _examples/original_source/src/node_state/common/mod.rs (the raftlog
// crate's own Common), reworked onto the teacher's (pingcap-incubator/
// tinykv raft package) ambient stack.
package common

import (
	"container/list"

	"go.uber.org/zap"

	"github.com/shinnya/raftlog/clusterconf"
	"github.com/shinnya/raftlog/config"
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/rio"
	"github.com/shinnya/raftlog/rlog"
)

// Common is the shared trunk the Leader/Candidate/Follower role states are
// leaves on. Exactly one task owns it at a time (spec.md §5); none of its
// methods suspend internally, they either complete synchronously or hand
// back a handle that RunOnce polls later.
type Common struct {
	cfg   config.Config
	log   *zap.Logger
	local LocalNode

	history rlog.LogHistory
	timeout rio.Timeout
	events  *list.List

	io rio.IO

	unreadMessage raftmsg.Message
	seqNo         raftmsg.SequenceNumber

	loadCommitted *loadCommittedTask
	installTask   *installSnapshotTask
}

// New builds a Common for localID, starting in Follower role with a
// Follower-scoped timeout already armed, matching the original's
// Common::new arming a Follower timeout before any message is processed.
func New(localID raftid.NodeID, io rio.IO, initialConfig clusterconf.ClusterConfig, cfg config.Config) *Common {
	c := &Common{
		cfg: cfg,
		log: zap.NewNop(),
		local: LocalNode{
			ID:   localID,
			Role: election.RoleFollower,
		},
		history: rlog.New(initialConfig),
		io:      io,
		events:  list.New(),
	}
	c.timeout = io.CreateTimeout(election.RoleFollower)
	return c
}

// WithLogger swaps in a structured logger; Common logs role transitions,
// term adoptions, disruptive-sender drops, and pipeline milestones through
// it. A freshly-constructed Common logs nothing until this is called.
func (c *Common) WithLogger(log *zap.Logger) *Common {
	c.log = log
	return c
}

// Config returns the active cluster configuration.
func (c *Common) Config() clusterconf.ClusterConfig {
	return c.history.Config()
}

// Log returns a read-only view of the log history.
func (c *Common) Log() rlog.LogHistory {
	return c.history
}

// CommittedTail returns the committed-tail boundary of the log history.
func (c *Common) CommittedTail() rlog.LogPosition {
	return c.history.CommittedTail()
}

// Term returns the current ballot's term.
func (c *Common) Term() election.Term {
	return c.local.Ballot.Term
}

// LocalNode returns the local node's identity, role, and ballot.
func (c *Common) LocalNode() LocalNode {
	return c.local
}

// NextSeqNo peeks the sequence number the next outgoing RPC will carry. It
// does not itself advance the counter; only RPCCaller does.
func (c *Common) NextSeqNo() raftmsg.SequenceNumber {
	return c.seqNo
}

// IO returns an immutable view of the I/O capability bundle.
func (c *Common) IO() rio.IO {
	return c.io
}

// IOMut returns the I/O capability bundle for direct, mutating use.
//
// Misuse corrupts data: calling backend operations outside the protocol
// Common implements (HandleMessage/RunOnce/the transition primitives) can
// violate the LogHistory invariants. Prefer the typed methods on Common.
func (c *Common) IOMut() rio.IO {
	return c.io
}

// SetBallot updates the local ballot, enqueueing TermChanged exactly when
// the value actually changes (idempotent on a same-valued call).
func (c *Common) SetBallot(newBallot election.Ballot) {
	if c.local.Ballot.Equal(newBallot) {
		return
	}
	c.local.Ballot = newBallot
	c.pushEvent(TermChanged{NewBallot: newBallot})
}

// setRole updates the local role, enqueueing RoleChanged exactly when the
// value actually changes. Unexported: role changes only ever happen as a
// side effect of one of the three transition primitives in transitions.go.
func (c *Common) setRole(newRole election.Role) {
	if c.local.Role == newRole {
		return
	}
	c.local.Role = newRole
	c.pushEvent(RoleChanged{NewRole: newRole})
}

// SetTimeout replaces the armed deadline with a fresh one for role. Per
// spec.md §5, the previous deadline is dropped: PollTimeout no longer
// consults it. rio.Timeout has no cancel operation, so the host is not told.
func (c *Common) SetTimeout(role election.Role) {
	c.timeout = c.io.CreateTimeout(role)
}

// PollTimeout reports whether the armed deadline has fired.
func (c *Common) PollTimeout() bool {
	return c.timeout.Poll()
}

// NextEvent pops the oldest queued event, if any.
func (c *Common) NextEvent() (Event, bool) {
	front := c.events.Front()
	if front == nil {
		return nil, false
	}
	c.events.Remove(front)
	return front.Value.(Event), true
}

func (c *Common) pushEvent(e Event) {
	c.events.PushBack(e)
}

// TryRecvMessage returns the next inbound message. A message deferred by a
// prior HandleMessage call (invariant 6) is always returned before transport
// is consulted again.
func (c *Common) TryRecvMessage() (raftmsg.Message, bool, error) {
	if c.unreadMessage != nil {
		m := c.unreadMessage
		c.unreadMessage = nil
		return m, true, nil
	}
	msg, ok, err := c.io.TryRecvMessage()
	if err != nil {
		return nil, false, err
	}
	return msg, ok, nil
}

// LoadLog requests the given range from the durable backend directly. Most
// callers should not need this: the commit-consumption pipeline in
// commit.go drives load_committed on their behalf.
func (c *Common) LoadLog(start rlog.LogIndex, end *rlog.LogIndex) rio.LoadLogFuture {
	return c.io.LoadLog(start, end)
}

// SaveLogSuffix durably appends suffix via the backend.
func (c *Common) SaveLogSuffix(suffix rlog.LogSuffix) rio.SaveFuture {
	return c.io.SaveLogSuffix(suffix)
}

// SaveBallot durably persists the current ballot.
func (c *Common) SaveBallot() rio.SaveFuture {
	return c.io.SaveBallot(c.local.Ballot)
}

// LoadBallot recovers a previously-persisted ballot, used only on restart.
func (c *Common) LoadBallot() rio.LoadBallotFuture {
	return c.io.LoadBallot()
}
