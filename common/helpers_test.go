package common

import (
	"github.com/shinnya/raftlog/election"
	"github.com/shinnya/raftlog/raftid"
	"github.com/shinnya/raftlog/raftmsg"
	"github.com/shinnya/raftlog/rlog"
)

// fakeMessage builds a RequestVoteCall, the simplest concrete Message, for
// tests that only care about header-level triage and don't exercise
// kind-specific dispatch.
func fakeMessage(sender raftid.NodeID, term election.Term, seqNo raftmsg.SequenceNumber) raftmsg.Message {
	return raftmsg.RequestVoteCall{
		Hdr: raftmsg.MessageHeader{Sender: sender, Term: term, SeqNo: seqNo},
	}
}

func commandSuffix(head rlog.LogPosition, terms ...election.Term) rlog.LogSuffix {
	entries := make([]rlog.LogEntry, 0, len(terms))
	for _, term := range terms {
		entries = append(entries, rlog.CommandEntry{Term: term, Command: []byte("x")})
	}
	return rlog.LogSuffix{Head: head, Entries: entries}
}
