package common

import (
	"go.uber.org/zap"

	"github.com/shinnya/raftlog/clusterconf"
	"github.com/shinnya/raftlog/raftlogerr"
	"github.com/shinnya/raftlog/rio"
	"github.com/shinnya/raftlog/rlog"
)

// SnapshotSummary is what an install-snapshot task resolves to: the durable
// write's precomputed outcome, applied to the log history the moment the
// write confirms.
type SnapshotSummary struct {
	Tail   rlog.LogPosition
	Config clusterconf.ClusterConfig
}

// installSnapshotTask is the single-flight slot install_snapshot occupies.
// Per spec.md §9's "futures as data" note, the summary is computed up front
// at call time rather than re-derived on completion.
type installSnapshotTask struct {
	future  rio.SaveFuture
	summary SnapshotSummary
}

// InstallSnapshot starts a single-flight task durably writing prefix via the
// I/O backend. It fails fast, before touching I/O, if either precondition
// is violated.
func (c *Common) InstallSnapshot(prefix rlog.LogPrefix) error {
	if prefix.Tail.Index < c.history.Head().Index {
		return raftlogerr.Newf(raftlogerr.KindInconsistentState,
			"snapshot tail %d is behind current head %d", prefix.Tail.Index, c.history.Head().Index)
	}
	if c.installTask != nil {
		return raftlogerr.New(raftlogerr.KindBusy, "a snapshot install is already running")
	}
	c.log.Info("starting snapshot install", zap.Uint64("tailIndex", uint64(prefix.Tail.Index)))
	c.installTask = &installSnapshotTask{
		future:  c.io.SaveLogPrefix(prefix),
		summary: SnapshotSummary{Tail: prefix.Tail, Config: prefix.Config},
	}
	return nil
}

// IsSnapshotInstalling reports whether an install task is currently active.
func (c *Common) IsSnapshotInstalling() bool {
	return c.installTask != nil
}

// IsFocusingOnInstallingSnapshot additionally requires that the local log
// has not yet caught up to the installing snapshot's tail — the signal a
// role should use to avoid starting other long work until the install
// settles.
func (c *Common) IsFocusingOnInstallingSnapshot() bool {
	if c.installTask == nil {
		return false
	}
	return c.history.Tail().Index < c.installTask.summary.Tail.Index
}

// pollInstallSnapshot is run_once's step 1. It reports whether the task slot
// changed state this call; RunOnce ignores that flag and decides whether to
// keep looping from the committed-load slot and the log boundaries alone.
func (c *Common) pollInstallSnapshot() (changed bool, err error) {
	if c.installTask == nil {
		return false, nil
	}
	writeErr, ok := c.installTask.future.Poll()
	if !ok {
		return false, nil
	}
	summary := c.installTask.summary
	c.installTask = nil
	if writeErr != nil {
		return true, raftlogerr.WrapIO(writeErr)
	}
	if applyErr := c.history.RecordSnapshotInstalled(summary.Tail, summary.Config); applyErr != nil {
		return true, applyErr
	}
	c.log.Info("snapshot install completed", zap.Uint64("newHeadIndex", uint64(summary.Tail.Index)))
	c.pushEvent(SnapshotInstalled{NewHead: summary.Tail})
	return true, nil
}
