package dns

import (
	"encoding/binary"
	"fmt"
)

// ParseQuestion decodes one question entry at offset: a domain name
// followed by 16-bit type and class. Returns the question and the
// offset of the first byte after it.
func ParseQuestion(data []byte, offset int) (Question, int, error) {
	name, off, err := decodeName(data, offset)
	if err != nil {
		return Question{}, 0, err
	}

	if off+4 > len(data) {
		return Question{}, 0, fmt.Errorf("%w: question truncated after name", ErrMalformed)
	}

	q := Question{
		Name:  name,
		Type:  binary.BigEndian.Uint16(data[off:]),
		Class: binary.BigEndian.Uint16(data[off+2:]),
	}
	return q, off + 4, nil
}

// bytes re-encodes the question for the response's question section.
func (q Question) bytes() []byte {
	buf := encodeName(q.Name)
	buf = binary.BigEndian.AppendUint16(buf, q.Type)
	buf = binary.BigEndian.AppendUint16(buf, q.Class)
	return buf
}
