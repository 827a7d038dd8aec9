// Package config decodes the ambient, host-tunable knobs Common is given at
// construction: timer base durations for the host's rio.IO.CreateTimeout
// implementation (Common does not read them; CreateTimeout receives only a
// role), and the batch ceiling the commit-consumption pipeline
// (common.Common.RunOnce) applies to a single load_committed task. Decoding is via
// github.com/BurntSushi/toml, the same library the teacher's own
// kv/tikv/config.Config is decoded with.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
)

// Config holds the ambient tuning knobs. Everything Raft-safety-relevant
// (term, ballot, log positions) lives on Common instead; nothing here can
// be varied without changing only performance/latency, never correctness.
type Config struct {
	// ElectionTimeoutBase is the shortest a Follower or Candidate will wait
	// before its timeout fires; a real IO.CreateTimeout implementation is
	// expected to randomize around this the way the teacher's
	// randomizedElectionTimeout does in raft.go.
	ElectionTimeoutBase time.Duration `toml:"election_timeout_base"`
	// HeartbeatTimeoutBase is how often a Leader's timeout fires.
	HeartbeatTimeoutBase time.Duration `toml:"heartbeat_timeout_base"`
	// CommitLoadBatchLimit caps how many entries a single load_committed
	// task is asked to read at once, so one very long unconsumed range
	// doesn't block the tick loop behind one oversized I/O call.
	CommitLoadBatchLimit uint64 `toml:"commit_load_batch_limit"`
}

// DefaultConfig returns the values this module ships with absent an
// operator-supplied file.
func DefaultConfig() Config {
	return Config{
		ElectionTimeoutBase:  150 * time.Millisecond,
		HeartbeatTimeoutBase: 50 * time.Millisecond,
		CommitLoadBatchLimit: 4096,
	}
}

// Load decodes a Config from a TOML file at path, filling in any field the
// file omits from DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Annotatef(err, "decoding raftlog config from %s", path)
	}
	return cfg, nil
}
