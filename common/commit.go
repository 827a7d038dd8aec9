package common

import (
	"github.com/shinnya/raftlog/raftlogerr"
	"github.com/shinnya/raftlog/rio"
	"github.com/shinnya/raftlog/rlog"
	"github.com/shinnya/raftlog/roles"
)

// loadCommittedTask is the single-flight slot the commit-consumption
// pipeline occupies while a range load is outstanding.
type loadCommittedTask struct {
	future rio.LoadLogFuture
}

// startLoadCommitted issues a new committed-log load for
// [consumed_tail, committed_tail), capped to the configured batch limit so
// one very long unconsumed range never blocks the tick loop behind a single
// oversized I/O call.
func (c *Common) startLoadCommitted() {
	start := c.history.ConsumedTail().Index
	end := c.history.CommittedTail().Index
	if c.cfg.CommitLoadBatchLimit > 0 && uint64(end-start) > c.cfg.CommitLoadBatchLimit {
		end = start + rlog.LogIndex(c.cfg.CommitLoadBatchLimit)
	}
	c.loadCommitted = &loadCommittedTask{future: c.io.LoadLog(start, &end)}
}

// pollLoadCommitted is run_once's step 2. It reports whether the task slot
// changed state this call, and any next role state produced by the
// retirement hook while draining a loaded suffix.
func (c *Common) pollLoadCommitted() (changed bool, next roles.RoleState, err error) {
	if c.loadCommitted == nil {
		return false, nil, nil
	}
	result, ok := c.loadCommitted.future.Poll()
	if !ok {
		return false, nil, nil
	}
	c.loadCommitted = nil
	if result.Err != nil {
		return true, nil, raftlogerr.WrapIO(result.Err)
	}
	next, err = c.handleLoadedLog(result.Log)
	return true, next, err
}

// handleLoadedLog dispatches a completed committed-log load per spec.md
// §4.6: a snapshot prefix routes through the ordering-robust
// HandleLogSnapshotLoaded hook; a log suffix is drained entry by entry.
func (c *Common) handleLoadedLog(loaded rlog.Log) (roles.RoleState, error) {
	if loaded.IsPrefix() {
		return nil, c.HandleLogSnapshotLoaded(*loaded.Prefix)
	}
	return c.drainCommittedSuffix(*loaded.Suffix)
}

// drainCommittedSuffix enumerates each (index, entry) in order, evaluating
// the retirement hook and enqueuing Committed events in ascending index
// order, then advances consumed_tail — but only if the suffix's tail index
// is still at or ahead of head.index, since a snapshot install/load may
// have superseded the range mid-flight.
func (c *Common) drainCommittedSuffix(suffix rlog.LogSuffix) (roles.RoleState, error) {
	var next roles.RoleState
	index := suffix.Head.Index
	for _, entry := range suffix.Entries {
		if rs := c.handleRetirement(entry); rs != nil {
			next = rs
		}
		c.pushEvent(Committed{Index: index, Entry: entry})
		index++
	}
	tail := suffix.Tail()
	if tail.Index >= c.history.Head().Index {
		if err := c.history.RecordConsumed(tail.Index); err != nil {
			return next, err
		}
	}
	return next, nil
}

// RunOnce drives the background tick: poll the snapshot-install task, poll
// the committed-load task, and keep looping until either a load is in
// flight or consumed_tail has caught up to committed_tail — starting a new
// load otherwise. It returns the most recent next-role-state produced by
// the retirement hook, if any; the caller must adopt it before the next
// RunOnce.
func (c *Common) RunOnce() (roles.RoleState, error) {
	var next roles.RoleState
	for {
		if _, err := c.pollInstallSnapshot(); err != nil {
			return next, err
		}
		_, loadedNext, err := c.pollLoadCommitted()
		if err != nil {
			return next, err
		}
		// Deliberately conditional, unlike the original's unconditional
		// reassignment each loop iteration: at most one retirement can
		// surface per RunOnce, so a nil result here never needs to clobber
		// an already-observed next-role-state.
		if loadedNext != nil {
			next = loadedNext
		}
		if c.loadCommitted != nil || c.history.ConsumedTail().Index == c.history.CommittedTail().Index {
			return next, nil
		}
		c.startLoadCommitted()
	}
}
