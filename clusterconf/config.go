// Package clusterconf models the cluster's active membership configuration.
// Common keeps exactly one of these alive at a time as part of its
// LogHistory; it changes only through a snapshot install/load, never through
// direct mutation, so the type here is treated as an immutable value.
package clusterconf

import (
	"github.com/google/btree"

	"github.com/shinnya/raftlog/raftid"
)

// nodeItem adapts raftid.NodeID to btree.Item so membership can be kept in
// an ordered set. The teacher's raftstore layer (kv/tikv/raftstore) keeps
// region and peer metadata in btree.BTree for ordered range scans; this
// reuses the same structure for the much smaller membership set so that
// ClusterConfig.Members() returns a stable, deterministic order without a
// sort on every call.
type nodeItem raftid.NodeID

func (n nodeItem) Less(other btree.Item) bool {
	return string(n) < string(other.(nodeItem))
}

// ClusterConfig is the set of nodes that currently count toward quorum.
type ClusterConfig struct {
	members *btree.BTree
}

// New builds a ClusterConfig from a set of member node IDs.
func New(members ...raftid.NodeID) ClusterConfig {
	t := btree.New(8)
	for _, m := range members {
		t.ReplaceOrInsert(nodeItem(m))
	}
	return ClusterConfig{members: t}
}

// IsKnownNode reports whether id is a current member of the cluster. This
// backs the unknown-sender guard a Leader applies in message triage.
func (c ClusterConfig) IsKnownNode(id raftid.NodeID) bool {
	if c.members == nil {
		return false
	}
	return c.members.Has(nodeItem(id))
}

// Members returns the member set in a stable, sorted order.
func (c ClusterConfig) Members() []raftid.NodeID {
	if c.members == nil {
		return nil
	}
	out := make([]raftid.NodeID, 0, c.members.Len())
	c.members.Ascend(func(item btree.Item) bool {
		out = append(out, raftid.NodeID(item.(nodeItem)))
		return true
	})
	return out
}

// Len returns the number of members, used by callers computing quorum size.
func (c ClusterConfig) Len() int {
	if c.members == nil {
		return 0
	}
	return c.members.Len()
}
