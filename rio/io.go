// Package rio declares the I/O capability bundle Common is handed at
// construction (spec.md §6) and never implements: log read/append, ballot
// persistence, timers, and message transport all belong to the host. What
// this package does own is the *shape* Common polls those capabilities
// through, since none of the teacher's own code is async (tinykv's raft.go
// is driven synchronously by an outer Ready loop) — the non-blocking,
// channel-backed poll idiom here is grounded instead in
// hongbing-etcd/raft/node.go's run loop, which multiplexes exactly this
// kind of in-flight work (readyc/advancec/tickc) through buffered channels
// read with select.
package rio

import (
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/rlog"
)

// Timeout is a single-shot, role-scoped deadline handle. Polling it once it
// has fired keeps reporting fired until a new Timeout replaces it.
type Timeout interface {
	// Poll reports whether the deadline has elapsed.
	Poll() bool
}

// IO is the external capability bundle. Every method that touches durable
// storage or the network returns immediately with a future-shaped result
// that Common (via run_once, or directly for synchronous calls like
// TryRecvMessage) polls without blocking.
type IO interface {
	// CreateTimeout arms a new deadline appropriate for role.
	CreateTimeout(role election.Role) Timeout

	// LoadLog requests the range [start, end). A nil end means "through
	// the current tail". The result resolves to a log suffix, unless the
	// range has been compacted into a snapshot, in which case it resolves
	// to that snapshot's prefix instead.
	LoadLog(start rlog.LogIndex, end *rlog.LogIndex) LoadLogFuture

	// SaveLogSuffix durably appends suffix.
	SaveLogSuffix(suffix rlog.LogSuffix) SaveFuture

	// SaveLogPrefix durably installs prefix as the new snapshot.
	SaveLogPrefix(prefix rlog.LogPrefix) SaveFuture

	// SaveBallot durably persists ballot.
	SaveBallot(ballot election.Ballot) SaveFuture

	// LoadBallot recovers a previously-persisted ballot, used only on
	// restart.
	LoadBallot() LoadBallotFuture

	// TryRecvMessage is non-blocking: it returns immediately with the next
	// inbound message if one is already available.
	TryRecvMessage() (raftmsg.Message, bool, error)

	// SendMessage dispatches msg to target over transport. It is
	// fire-and-forget: none of this core's call sites (the retirement
	// hook's broadcast, chiefly) wait for delivery confirmation, mirroring
	// TryRecvMessage's symmetric non-blocking shape on the receive side.
	SendMessage(target raftid.NodeID, msg raftmsg.Message)
}
