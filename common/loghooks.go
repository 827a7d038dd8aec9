package common

import (
	"github.com/shinnya/raftlog/clusterconf"
	"github.com/shinnya/raftlog/rlog"
)

// HandleLogAppended records an append extending tail, per spec.md §4.2.
func (c *Common) HandleLogAppended(suffix rlog.LogSuffix) error {
	return c.history.RecordAppended(suffix)
}

// HandleLogCommitted advances committed_tail, per spec.md §4.2.
func (c *Common) HandleLogCommitted(newTail rlog.LogIndex) error {
	return c.history.RecordCommitted(newTail)
}

// HandleLogRollbacked truncates the uncommitted suffix, per spec.md §4.2.
func (c *Common) HandleLogRollbacked(newTail rlog.LogPosition) error {
	return c.history.RecordRollback(newTail)
}

// HandleLogSnapshotInstalled moves head forward and replaces the active
// configuration, per spec.md §4.2.
func (c *Common) HandleLogSnapshotInstalled(newHead rlog.LogPosition, config clusterconf.ClusterConfig) error {
	return c.history.RecordSnapshotInstalled(newHead, config)
}

// HandleLogSnapshotLoaded is ordering-robust: if prefix's tail index runs
// ahead of committed_tail, it first clamps the history forward via the
// equivalent of RecordSnapshotInstalled before recording the load, so
// invariant 1 keeps holding even though the install notification for this
// exact snapshot has not yet been observed separately. This is the
// correctness fix spec.md §9 calls out, not an optimization.
func (c *Common) HandleLogSnapshotLoaded(prefix rlog.LogPrefix) error {
	if prefix.Tail.Index > c.history.CommittedTail().Index {
		if err := c.history.RecordSnapshotInstalled(prefix.Tail, prefix.Config); err != nil {
			return err
		}
	}
	if err := c.history.RecordSnapshotLoaded(prefix); err != nil {
		return err
	}
	c.pushEvent(SnapshotLoaded{NewHead: prefix.Tail, Snapshot: prefix.Snapshot})
	return nil
}
