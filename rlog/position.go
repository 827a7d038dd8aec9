// Package rlog models the locally-held log: its four monotone boundary
// positions (head, consumed tail, committed tail, tail), the entries
// themselves, and the prefix/suffix shapes the durable I/O backend produces
// when a range is loaded.
package rlog

import "github.com/shinnya/raftlog/election"

// LogIndex addresses an entry slot in the log.
type LogIndex uint64

// LogPosition names a point in the log by the term of the entry immediately
// preceding it and its index. Comparing two positions this way (term first,
// then index) is exactly the §5.4.1 "log up-to-date" rule from the Raft
// paper, grounded in the teacher's RaftLog.isUpToDate comparison in raft.go.
type LogPosition struct {
	PrevTerm election.Term
	Index    LogIndex
}

// IsNewerOrEqualThan reports whether p is at least as up-to-date as other.
func (p LogPosition) IsNewerOrEqualThan(other LogPosition) bool {
	if p.PrevTerm != other.PrevTerm {
		return p.PrevTerm > other.PrevTerm
	}
	return p.Index >= other.Index
}
