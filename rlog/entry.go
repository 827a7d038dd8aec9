package rlog

import (
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
)

// LogEntry is the sum type of things that can occupy a log slot. Only two
// variants are in scope for this core: application commands (opaque to
// Common) and the Retire entry that drives the leader-retirement hook in
// §4.4. A third "BeginMembershipChange"-style variant is explicitly out of
// scope per spec.md §1 (joint-consensus membership change).
type LogEntry interface {
	isLogEntry()
	EntryTerm() election.Term
}

// CommandEntry is an application-level command, opaque to this core.
type CommandEntry struct {
	Term    election.Term
	Command []byte
}

func (CommandEntry) isLogEntry()                   {}
func (e CommandEntry) EntryTerm() election.Term    { return e.Term }

// RetireEntry marks the committing leader's intent to hand off to Successor
// once this entry reaches quorum. See Common.handleRetirement.
type RetireEntry struct {
	Term      election.Term
	Successor raftid.NodeID
}

func (RetireEntry) isLogEntry()                 {}
func (e RetireEntry) EntryTerm() election.Term  { return e.Term }
