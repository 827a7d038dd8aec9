// Package raftmsg defines the inbound/outbound message shapes Common's
// triage logic dispatches on. The wire encoding of these types is out of
// scope (spec.md §1); only their Go-level shape and header matters here.
package raftmsg

import (
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
	"github.com/shinnya/raftlog/rlog"
)

// SequenceNumber tags an outgoing RPC so its eventual reply can be matched
// back to the call; common.RPCCaller is the sole mutator of the counter it's drawn
// from.
type SequenceNumber uint64

// MessageHeader carries the fields every message kind has in common.
type MessageHeader struct {
	Sender raftid.NodeID
	Term   election.Term
	SeqNo  SequenceNumber
}

// Message is the sum type Common.HandleMessage triages on.
type Message interface {
	Header() MessageHeader
}

// RequestVoteCall is a candidate's bid for votes in Hdr.Term. LogTail is the
// candidate's log tail, compared against the receiver's for up-to-dateness.
type RequestVoteCall struct {
	Hdr     MessageHeader
	LogTail rlog.LogPosition
}

func (m RequestVoteCall) Header() MessageHeader { return m.Hdr }

// RequestVoteResponse answers a RequestVoteCall.
type RequestVoteResponse struct {
	Hdr          MessageHeader
	VoteGranted  bool
}

func (m RequestVoteResponse) Header() MessageHeader { return m.Hdr }

// AppendEntriesCall is the leader's replication/heartbeat RPC.
type AppendEntriesCall struct {
	Hdr           MessageHeader
	Suffix        rlog.LogSuffix
	CommittedTail rlog.LogIndex
}

func (m AppendEntriesCall) Header() MessageHeader { return m.Hdr }

// AppendEntriesResponse answers an AppendEntriesCall.
type AppendEntriesResponse struct {
	Hdr     MessageHeader
	Success bool
	// MatchIndex is the last index the follower can confirm, set on success.
	MatchIndex rlog.LogIndex
}

func (m AppendEntriesResponse) Header() MessageHeader { return m.Hdr }
