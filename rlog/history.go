package rlog

import (
	"github.com/shinnya/raftlog/clusterconf"
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftlogerr"
)

// LogHistory is the ordered log abstraction Common owns: four monotone
// boundaries (head ≤ consumed_tail ≤ committed_tail ≤ tail) plus the
// cluster configuration active as of head. None of these mutators talk to
// the I/O backend; they only ever translate an I/O outcome the caller has
// already obtained into a new, invariant-preserving History value.
type LogHistory struct {
	head         LogPosition
	consumedTail LogPosition
	committedTail LogPosition
	tail         LogPosition
	config       clusterconf.ClusterConfig
}

// New builds a LogHistory at the origin, with config as the initial
// membership. This is what Common.New seeds itself with before any log
// entry has ever been recorded.
func New(config clusterconf.ClusterConfig) LogHistory {
	return LogHistory{config: config}
}

func (h LogHistory) Head() LogPosition          { return h.head }
func (h LogHistory) ConsumedTail() LogPosition  { return h.consumedTail }
func (h LogHistory) CommittedTail() LogPosition { return h.committedTail }
func (h LogHistory) Tail() LogPosition          { return h.tail }
func (h LogHistory) Config() clusterconf.ClusterConfig { return h.config }

// RecordAppended extends tail by suffix, which must start exactly where the
// log currently ends.
func (h *LogHistory) RecordAppended(suffix LogSuffix) error {
	if suffix.Head != h.tail {
		return raftlogerr.Newf(raftlogerr.KindInconsistentState,
			"append suffix head %+v does not match current tail %+v", suffix.Head, h.tail)
	}
	h.tail = suffix.Tail()
	return nil
}

// RecordCommitted advances committed_tail to newTail, which must not run
// ahead of tail.
func (h *LogHistory) RecordCommitted(newTail LogIndex) error {
	if newTail > h.tail.Index {
		return raftlogerr.Newf(raftlogerr.KindInconsistentState,
			"committed tail %d would run past log tail %d", newTail, h.tail.Index)
	}
	h.committedTail = LogPosition{PrevTerm: h.termAt(newTail), Index: newTail}
	return nil
}

// RecordConsumed advances consumed_tail to newTail, which must not run
// ahead of committed_tail. This is the mutator the commit-consumption
// pipeline (§4.6) drives after it has drained every entry in a loaded
// suffix.
func (h *LogHistory) RecordConsumed(newTail LogIndex) error {
	if newTail > h.committedTail.Index {
		return raftlogerr.Newf(raftlogerr.KindInconsistentState,
			"consumed tail %d would run past committed tail %d", newTail, h.committedTail.Index)
	}
	h.consumedTail = LogPosition{PrevTerm: h.termAt(newTail), Index: newTail}
	return nil
}

// RecordRollback truncates the uncommitted suffix of the log down to
// newTail, which must not cross committed_tail.
func (h *LogHistory) RecordRollback(newTail LogPosition) error {
	if newTail.Index < h.committedTail.Index {
		return raftlogerr.Newf(raftlogerr.KindInconsistentState,
			"rollback to %d would cross committed tail %d", newTail.Index, h.committedTail.Index)
	}
	h.tail = newTail
	return nil
}

// RecordSnapshotInstalled moves head forward to newHead and replaces the
// active configuration. Per invariant 7, consumed_tail and committed_tail
// (and, defensively, tail) are clamped up to newHead so invariant 1 keeps
// holding even if they had not yet caught up.
func (h *LogHistory) RecordSnapshotInstalled(newHead LogPosition, config clusterconf.ClusterConfig) error {
	if newHead.Index < h.head.Index {
		return raftlogerr.Newf(raftlogerr.KindInconsistentState,
			"snapshot head %d would move head backward from %d", newHead.Index, h.head.Index)
	}
	h.head = newHead
	h.config = config
	if h.consumedTail.Index < newHead.Index {
		h.consumedTail = newHead
	}
	if h.committedTail.Index < newHead.Index {
		h.committedTail = newHead
	}
	if h.tail.Index < newHead.Index {
		h.tail = newHead
	}
	return nil
}

// RecordSnapshotLoaded applies a freshly-loaded snapshot prefix. The caller
// (Common.HandleLogSnapshotLoaded) is responsible for pre-clamping via
// RecordSnapshotInstalled when the prefix runs ahead of what this history
// already knows about, per the ordering-robust rule in spec.md §4.2; by the
// time this is called prefix.Tail.Index is guaranteed ≤ tail.Index.
func (h *LogHistory) RecordSnapshotLoaded(prefix LogPrefix) error {
	if prefix.Tail.Index > h.tail.Index {
		return raftlogerr.Newf(raftlogerr.KindInconsistentState,
			"loaded snapshot tail %d runs past log tail %d", prefix.Tail.Index, h.tail.Index)
	}
	h.head = prefix.Tail
	h.config = prefix.Config
	if h.consumedTail.Index < prefix.Tail.Index {
		h.consumedTail = prefix.Tail
	}
	if h.committedTail.Index < prefix.Tail.Index {
		h.committedTail = prefix.Tail
	}
	return nil
}

// termAt makes a best-effort guess at the term bordering index, used only
// to keep LogPosition.PrevTerm populated for consumed_tail/committed_tail;
// no triage rule in this core ever compares those two positions by term,
// only by index, so any value consistent with the neighbouring boundaries
// is sufficient.
func (h LogHistory) termAt(index LogIndex) election.Term {
	switch {
	case index == h.tail.Index:
		return h.tail.PrevTerm
	case index == h.head.Index:
		return h.head.PrevTerm
	case index >= h.committedTail.Index:
		return h.committedTail.PrevTerm
	default:
		return h.head.PrevTerm
	}
}
