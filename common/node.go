package common

import (
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
)

// LocalNode is the identity and volatile role/ballot state of the node
// Common is running on.
type LocalNode struct {
	ID     raftid.NodeID
	Role   election.Role
	Ballot election.Ballot
}
