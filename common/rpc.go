package common

import "github.com/shinnya/raftlog/raftmsg"

// RPCCaller issues outgoing RPCs. It is the sole mutator of seq_no: every
// header it builds draws the next sequence number and advances the counter.
type RPCCaller struct {
	c *Common
}

// RPCCaller borrows Common for building a fresh outgoing call.
func (c *Common) RPCCaller() RPCCaller {
	return RPCCaller{c: c}
}

// Header builds the header for a new outgoing RPC, addressed under the
// local node's current term and a freshly-drawn sequence number. Callers
// must invoke SetBallot before this if a term bump needs to accompany the
// call, so TermChanged precedes the RPC it is carried by (spec.md §5).
func (r RPCCaller) Header() raftmsg.MessageHeader {
	hdr := raftmsg.MessageHeader{
		Sender: r.c.local.ID,
		Term:   r.c.local.Ballot.Term,
		SeqNo:  r.c.seqNo,
	}
	r.c.seqNo++
	return hdr
}

// RPCCallee constructs replies addressed back to the message that prompted
// them.
type RPCCallee struct {
	c      *Common
	reqHdr raftmsg.MessageHeader
}

// RPCCallee borrows Common for building a reply to an inbound message whose
// header is reqHdr.
func (c *Common) RPCCallee(reqHdr raftmsg.MessageHeader) RPCCallee {
	return RPCCallee{c: c, reqHdr: reqHdr}
}

// Header builds the header for a reply, carrying the local term and echoing
// the request's sequence number so the original caller can match it.
func (r RPCCallee) Header() raftmsg.MessageHeader {
	return raftmsg.MessageHeader{
		Sender: r.c.local.ID,
		Term:   r.c.local.Ballot.Term,
		SeqNo:  r.reqHdr.SeqNo,
	}
}
