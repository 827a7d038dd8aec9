package common

import (
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/rlog"
)

// Event is the sum type the host drains through NextEvent. Exactly the five
// kinds spec.md §6 names.
type Event interface {
	isEvent()
}

// RoleChanged fires exactly once per actual role change (invariant 5).
type RoleChanged struct {
	NewRole election.Role
}

func (RoleChanged) isEvent() {}

// TermChanged fires exactly once per actual ballot change.
type TermChanged struct {
	NewBallot election.Ballot
}

func (TermChanged) isEvent() {}

// Committed fires once per entry, in ascending index order, as the
// commit-consumption pipeline drains a loaded suffix.
type Committed struct {
	Index rlog.LogIndex
	Entry rlog.LogEntry
}

func (Committed) isEvent() {}

// SnapshotLoaded fires when a snapshot prefix has been loaded, whether from
// a direct load_committed result or from the ordering-robust path in
// HandleLogSnapshotLoaded.
type SnapshotLoaded struct {
	NewHead  rlog.LogPosition
	Snapshot []byte
}

func (SnapshotLoaded) isEvent() {}

// SnapshotInstalled fires strictly after the durable write backing an
// install_snapshot call completes.
type SnapshotInstalled struct {
	NewHead rlog.LogPosition
}

func (SnapshotInstalled) isEvent() {}
