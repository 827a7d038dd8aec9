// Package election holds the small, comparable value types that describe a
// node's position in the Raft election protocol: the term counter, the
// current role tag, and the (term, voted_for) ballot pair that must be
// persisted before a node replies to a vote or append RPC.
package election

import "github.com/shinnya/raftlog/raftid"

// Term is Raft's monotonic election epoch.
type Term uint64

// Next returns the term that follows t.
func (t Term) Next() Term {
	return t + 1
}

// Role is the three-way tag a replica carries at any instant.
type Role int

const (
	RoleFollower Role = iota
	RoleCandidate
	RoleLeader
)

func (r Role) String() string {
	switch r {
	case RoleFollower:
		return "Follower"
	case RoleCandidate:
		return "Candidate"
	case RoleLeader:
		return "Leader"
	default:
		return "Unknown"
	}
}

// Ballot is the pair a node must persist before it can safely grant a vote
// or acknowledge an append in the current term.
type Ballot struct {
	Term     Term
	VotedFor raftid.NodeID
}

// Equal reports whether b and other carry the same term and vote.
func (b Ballot) Equal(other Ballot) bool {
	return b.Term == other.Term && b.VotedFor == other.VotedFor
}
