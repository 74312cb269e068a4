package dns

// Record types understood on the question path
const (
	TypeA uint16 = 1 // IPv4 address
)

// Classes
const (
	ClassIN uint16 = 1 // Internet
)

// DNS response codes
const (
	RcodeNoError  = 0 // No error
	RcodeNXDomain = 3 // Name does not exist
)

// Flag patterns stamped on responses: QR, RD and RA set, opcode 0,
// rcode in the low four bits.
const (
	FlagsNoError  uint16 = 0x8180
	FlagsNXDomain uint16 = 0x8180 | RcodeNXDomain
)

// AnswerTTL is the TTL, in seconds, on every answer record.
const AnswerTTL uint32 = 300

const (
	headerLen       = 12
	maxPointerJumps = 16 // compression-jump cap, common resolver practice
)

// Header represents a DNS message header
type Header struct {
	ID      uint16 // Query identifier
	Flags   uint16 // Message flags
	QdCount uint16 // Number of questions
	AnCount uint16 // Number of answers
	NsCount uint16 // Number of authority records
	ArCount uint16 // Number of additional records
}

// Question represents a DNS question
type Question struct {
	Name  string // Domain name, labels joined with '.'
	Type  uint16 // Record type
	Class uint16 // Class (usually 1 for IN)
}
