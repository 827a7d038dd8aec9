// Package roles holds the tagged, data-free markers the three role-scoped
// state machines (Leader, Candidate, Follower) are represented by from this
// core's point of view. Their actual election/replication/heartbeat logic
// is an external collaborator (spec.md §1b) implemented by the host on top
// of Common; this package exists only so Common's role-transition
// primitives and message triage have a concrete type to return.
//
// Per the design notes, roles are modelled as plain value tags rather than
// structs holding a back-reference to Common: all the state a role needs is
// already sitting on Common (current ballot, followee, log history), so a
// back-pointer would just be a second path to the same data.
package roles

import "github.com/shinnya/raftlog/raftid"

// RoleState is the role a node has just transitioned into, returned by
// Common's transition primitives and surfaced to the host so it can swap in
// the matching role-scoped handler.
type RoleState interface {
	roleState()
}

// Leader is returned by Common.TransitToLeader.
type Leader struct{}

func (Leader) roleState() {}

// Candidate is returned by Common.TransitToCandidate.
type Candidate struct{}

func (Candidate) roleState() {}

// Follower is returned by Common.TransitToFollower. Followee names the node
// this Follower currently trusts as leader (or itself, in the "no definite
// leader yet" case spec.md §4.3(b) and the design notes flag as unusual).
type Follower struct {
	Followee raftid.NodeID
}

func (Follower) roleState() {}
