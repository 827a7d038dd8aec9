// Package testio is a fake, in-memory rio.IO used by this module's own
// tests, grounded in the original Rust crate's TestIoBuilder test utility:
// durable writes resolve immediately (the channel is pre-filled before the
// caller ever polls it), timers fire only when a test explicitly tells them
// to, and sent messages land in an inspectable outbox instead of a real
// transport.
package testio

import (
	"sync"

	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/rio"
	"github.com/shinnya/raftlog/rlog"
)

// IO is a single-node fake of rio.IO. It is not safe for concurrent use
// across goroutines; tests drive it from a single goroutine, matching the
// single-threaded-cooperative model Common itself assumes.
type IO struct {
	mu sync.Mutex

	ballot election.Ballot

	inbox  []raftmsg.Message
	Outbox []SentMessage

	timeouts []*fakeTimeout

	// LoadLogResult, when non-nil, is what the next LoadLog call resolves
	// to; tests set it before triggering a load.
	LoadLogResult *rio.LoadLogResult
}

// SentMessage records one SendMessage call for test assertions.
type SentMessage struct {
	Target raftid.NodeID
	Msg    raftmsg.Message
}

// New builds an empty fake IO.
func New() *IO {
	return &IO{}
}

// fakeTimeout is armed but only reports fired once a test calls Fire.
type fakeTimeout struct {
	fired bool
}

func (t *fakeTimeout) Poll() bool { return t.fired }

// CreateTimeout arms a new, not-yet-fired timeout and returns it; the most
// recently created one is also reachable via FireLatestTimeout.
func (io *IO) CreateTimeout(role election.Role) rio.Timeout {
	io.mu.Lock()
	defer io.mu.Unlock()
	t := &fakeTimeout{}
	io.timeouts = append(io.timeouts, t)
	return t
}

// FireLatestTimeout marks the most recently created timeout as fired.
func (io *IO) FireLatestTimeout() {
	io.mu.Lock()
	defer io.mu.Unlock()
	if len(io.timeouts) == 0 {
		return
	}
	io.timeouts[len(io.timeouts)-1].fired = true
}

// LoadLog resolves immediately to whatever LoadLogResult currently holds
// (zero value if the test never set one).
func (io *IO) LoadLog(start rlog.LogIndex, end *rlog.LogIndex) rio.LoadLogFuture {
	io.mu.Lock()
	defer io.mu.Unlock()
	ch := make(chan rio.LoadLogResult, 1)
	if io.LoadLogResult != nil {
		ch <- *io.LoadLogResult
	} else {
		ch <- rio.LoadLogResult{}
	}
	return rio.NewLoadLogFuture(ch)
}

// SaveLogSuffix resolves immediately with no error.
func (io *IO) SaveLogSuffix(suffix rlog.LogSuffix) rio.SaveFuture {
	return immediateSave(nil)
}

// SaveLogPrefix resolves immediately with no error.
func (io *IO) SaveLogPrefix(prefix rlog.LogPrefix) rio.SaveFuture {
	return immediateSave(nil)
}

// SaveBallot records ballot and resolves immediately with no error.
func (io *IO) SaveBallot(ballot election.Ballot) rio.SaveFuture {
	io.mu.Lock()
	io.ballot = ballot
	io.mu.Unlock()
	return immediateSave(nil)
}

// LoadBallot resolves immediately to whatever ballot was last saved.
func (io *IO) LoadBallot() rio.LoadBallotFuture {
	io.mu.Lock()
	defer io.mu.Unlock()
	ch := make(chan rio.LoadBallotResult, 1)
	ch <- rio.LoadBallotResult{Ballot: io.ballot}
	return rio.NewLoadBallotFuture(ch)
}

// EnqueueMessage makes msg available to the next TryRecvMessage call.
func (io *IO) EnqueueMessage(msg raftmsg.Message) {
	io.mu.Lock()
	defer io.mu.Unlock()
	io.inbox = append(io.inbox, msg)
}

// TryRecvMessage pops the oldest enqueued message, if any.
func (io *IO) TryRecvMessage() (raftmsg.Message, bool, error) {
	io.mu.Lock()
	defer io.mu.Unlock()
	if len(io.inbox) == 0 {
		return nil, false, nil
	}
	msg := io.inbox[0]
	io.inbox = io.inbox[1:]
	return msg, true, nil
}

// SendMessage appends to Outbox for test inspection.
func (io *IO) SendMessage(target raftid.NodeID, msg raftmsg.Message) {
	io.mu.Lock()
	defer io.mu.Unlock()
	io.Outbox = append(io.Outbox, SentMessage{Target: target, Msg: msg})
}

func immediateSave(err error) rio.SaveFuture {
	ch := make(chan error, 1)
	ch <- err
	return rio.NewSaveFuture(ch)
}
