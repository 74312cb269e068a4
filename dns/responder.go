package dns

import (
	"encoding/binary"
)

// Resolver is the lookup capability the responder is built around.
// The match is exact and case-sensitive on the dot-joined name.
type Resolver interface {
	LookupA(name string) (addr [4]byte, ok bool)
}

// OutcomeKind classifies what Respond produced for a datagram.
type OutcomeKind uint8

const (
	// Answered: the name resolved; Reply carries one A record.
	Answered OutcomeKind = iota
	// NameError: the name did not resolve; Reply carries an NXDOMAIN
	// response with the question echoed and no answer section.
	NameError
	// DroppedMalformed: the datagram could not be parsed. No reply.
	DroppedMalformed
	// DroppedUnsupportedType: a well-formed query for a type other
	// than A. No reply.
	DroppedUnsupportedType
)

func (k OutcomeKind) String() string {
	switch k {
	case Answered:
		return "answered"
	case NameError:
		return "nxdomain"
	case DroppedMalformed:
		return "dropped_malformed"
	case DroppedUnsupportedType:
		return "dropped_unsupported_type"
	default:
		return "unknown"
	}
}

// Outcome is the result of handling one query datagram.
type Outcome struct {
	Kind     OutcomeKind
	Reply    []byte   // response datagram; nil for dropped outcomes
	Question Question // zero value when parsing failed
	Err      error    // parse error for DroppedMalformed
}

// Responder turns query datagrams into response datagrams against an
// injected resolver. It holds no per-request state and is safe for
// concurrent use on independent buffers.
type Responder struct {
	resolver Resolver
}

// NewResponder creates a responder backed by the given resolver.
func NewResponder(r Resolver) *Responder {
	return &Responder{resolver: r}
}

// Respond parses one query and builds the reply. The query must hold a
// full header and at least one question; only the first question is
// considered. Queries for types other than A produce no reply.
func (rp *Responder) Respond(query []byte) Outcome {
	header, err := ParseHeader(query)
	if err != nil {
		return Outcome{Kind: DroppedMalformed, Err: err}
	}

	question, _, err := ParseQuestion(query, headerLen)
	if err != nil {
		return Outcome{Kind: DroppedMalformed, Err: err}
	}

	if question.Type != TypeA {
		return Outcome{Kind: DroppedUnsupportedType, Question: question}
	}

	addr, ok := rp.resolver.LookupA(question.Name)
	if !ok {
		return Outcome{
			Kind:     NameError,
			Question: question,
			Reply:    buildReply(header.ID, FlagsNXDomain, question, nil),
		}
	}

	return Outcome{
		Kind:     Answered,
		Question: question,
		Reply:    buildReply(header.ID, FlagsNoError, question, addr[:]),
	}
}

// buildReply assembles the response datagram: header, echoed question,
// and, when addr is non-nil, a single A answer whose name is a
// compression pointer back to the question at offset 12.
func buildReply(id, flags uint16, q Question, addr []byte) []byte {
	h := Header{
		ID:      id,
		Flags:   flags,
		QdCount: 1,
	}
	if addr != nil {
		h.AnCount = 1
	}

	reply := h.Bytes()
	reply = append(reply, q.bytes()...)

	if addr == nil {
		return reply
	}

	// The question is always the only thing after the fixed header, so
	// the pointer target is offset 12.
	reply = append(reply, 0xC0, headerLen)
	reply = binary.BigEndian.AppendUint16(reply, TypeA)
	reply = binary.BigEndian.AppendUint16(reply, ClassIN)
	reply = binary.BigEndian.AppendUint32(reply, AnswerTTL)
	reply = binary.BigEndian.AppendUint16(reply, uint16(len(addr)))
	return append(reply, addr...)
}
