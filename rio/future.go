package rio

import (
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/rlog"
)

// SaveFuture resolves to nil (success) or an error once a durable write
// completes. It is never cancelled; an in-flight save runs to completion
// even if the node's role changes while it is outstanding (spec.md §5).
type SaveFuture struct {
	ch <-chan error
}

// NewSaveFuture wraps a result channel the host's I/O goroutine writes
// exactly once before returning.
func NewSaveFuture(ch <-chan error) SaveFuture {
	return SaveFuture{ch: ch}
}

// Poll performs a single non-blocking check. ok is true exactly once, the
// first time the underlying write has completed.
func (f SaveFuture) Poll() (err error, ok bool) {
	select {
	case err = <-f.ch:
		return err, true
	default:
		return nil, false
	}
}

// LoadLogFuture resolves to either a log suffix or a snapshot prefix.
type LoadLogFuture struct {
	ch <-chan LoadLogResult
}

// LoadLogResult is what a LoadLogFuture resolves to.
type LoadLogResult struct {
	Log rlog.Log
	Err error
}

func NewLoadLogFuture(ch <-chan LoadLogResult) LoadLogFuture {
	return LoadLogFuture{ch: ch}
}

func (f LoadLogFuture) Poll() (LoadLogResult, bool) {
	select {
	case r := <-f.ch:
		return r, true
	default:
		return LoadLogResult{}, false
	}
}

// LoadBallotFuture resolves to a recovered ballot.
type LoadBallotFuture struct {
	ch <-chan LoadBallotResult
}

type LoadBallotResult struct {
	Ballot election.Ballot
	Err    error
}

func NewLoadBallotFuture(ch <-chan LoadBallotResult) LoadBallotFuture {
	return LoadBallotFuture{ch: ch}
}

func (f LoadBallotFuture) Poll() (LoadBallotResult, bool) {
	select {
	case r := <-f.ch:
		return r, true
	default:
		return LoadBallotResult{}, false
	}
}
