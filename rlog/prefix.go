package rlog

import "github.com/shinnya/raftlog/clusterconf"

// LogPrefix is a durable compaction covering every index strictly below
// Tail. It carries the cluster configuration active as of that point,
// because a snapshot is the only way a restarted node recovers membership
// spanning a configuration change.
type LogPrefix struct {
	Tail     LogPosition
	Config   clusterconf.ClusterConfig
	Snapshot []byte
}

// Log is the result of a committed-log load: either a suffix (the common
// case) or a prefix, when the requested range has been compacted into a
// snapshot by the time the load completes.
type Log struct {
	Suffix *LogSuffix
	Prefix *LogPrefix
}

// IsPrefix reports whether the load resolved to a snapshot prefix rather
// than a log suffix.
func (l Log) IsPrefix() bool {
	return l.Prefix != nil
}
