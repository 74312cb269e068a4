package dns

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// decodeName reads a length-prefixed label sequence from data starting
// at offset. Compression pointers are followed in place with a hop cap,
// so a pointer loop fails as malformed input instead of spinning.
// Returns the dot-joined name and the offset of the first byte after
// the name in the original (un-jumped) stream.
func decodeName(data []byte, offset int) (string, int, error) {
	var labels []string
	pos := offset
	next := -1 // resume position recorded at the first jump
	jumps := 0

	for {
		if pos >= len(data) {
			return "", 0, fmt.Errorf("%w: name runs past end of buffer", ErrMalformed)
		}

		length := int(data[pos])

		if length == 0 {
			pos++
			break
		}

		// Two high bits set: this byte and the next form a 14-bit
		// back-pointer into the same buffer.
		if length&0xC0 == 0xC0 {
			if pos+1 >= len(data) {
				return "", 0, fmt.Errorf("%w: truncated compression pointer", ErrMalformed)
			}
			jumps++
			if jumps > maxPointerJumps {
				return "", 0, fmt.Errorf("%w: compression chain exceeds %d jumps", ErrMalformed, maxPointerJumps)
			}
			if next < 0 {
				next = pos + 2
			}
			pos = int(binary.BigEndian.Uint16(data[pos:]) & 0x3FFF)
			continue
		}

		// Regular label
		pos++
		if pos+length > len(data) {
			return "", 0, fmt.Errorf("%w: label runs past end of buffer", ErrMalformed)
		}
		labels = append(labels, lossyLabel(data[pos:pos+length]))
		pos += length
	}

	if next >= 0 {
		pos = next
	}

	return strings.Join(labels, "."), pos, nil
}

// lossyLabel decodes label bytes as text, substituting U+FFFD for
// invalid UTF-8 rather than failing.
func lossyLabel(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "�")
}

// encodeName writes name as length-prefixed labels followed by the
// zero terminator. Empty segments collapse, so leading, trailing and
// doubled dots never emit a zero-length label. Always literal; the
// codec never emits compression pointers here.
func encodeName(name string) []byte {
	buf := make([]byte, 0, len(name)+2)
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			continue
		}
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	return append(buf, 0)
}
