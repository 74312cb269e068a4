package dns

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformed is the root of all codec parse failures. Callers that
// only care whether a buffer was malformed can errors.Is against it.
var ErrMalformed = errors.New("malformed dns message")

// ParseHeader reads the fixed 12-byte header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < headerLen {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformed, len(data), headerLen)
	}

	return Header{
		ID:      binary.BigEndian.Uint16(data[0:]),
		Flags:   binary.BigEndian.Uint16(data[2:]),
		QdCount: binary.BigEndian.Uint16(data[4:]),
		AnCount: binary.BigEndian.Uint16(data[6:]),
		NsCount: binary.BigEndian.Uint16(data[8:]),
		ArCount: binary.BigEndian.Uint16(data[10:]),
	}, nil
}

// Bytes serializes the header to its 12-byte wire form.
func (h Header) Bytes() []byte {
	buf := make([]byte, headerLen)
	binary.BigEndian.PutUint16(buf[0:], h.ID)
	binary.BigEndian.PutUint16(buf[2:], h.Flags)
	binary.BigEndian.PutUint16(buf[4:], h.QdCount)
	binary.BigEndian.PutUint16(buf[6:], h.AnCount)
	binary.BigEndian.PutUint16(buf[8:], h.NsCount)
	binary.BigEndian.PutUint16(buf[10:], h.ArCount)
	return buf
}
