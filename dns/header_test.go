package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		header Header
	}{
		{
			name:   "zero header",
			header: Header{},
		},
		{
			name: "typical query",
			header: Header{
				ID:      0x1234,
				Flags:   0x0100,
				QdCount: 1,
			},
		},
		{
			name: "typical response",
			header: Header{
				ID:      0xBEEF,
				Flags:   FlagsNoError,
				QdCount: 1,
				AnCount: 1,
			},
		},
		{
			name: "all fields maxed",
			header: Header{
				ID:      0xFFFF,
				Flags:   0xFFFF,
				QdCount: 0xFFFF,
				AnCount: 0xFFFF,
				NsCount: 0xFFFF,
				ArCount: 0xFFFF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := tt.header.Bytes()
			assert.Len(t, wire, 12)

			parsed, err := ParseHeader(wire)
			require.NoError(t, err)
			assert.Equal(t, tt.header, parsed)
		})
	}
}

func TestHeaderBytesLayout(t *testing.T) {
	h := Header{
		ID:      0x1234,
		Flags:   0x8180,
		QdCount: 1,
		AnCount: 2,
		NsCount: 3,
		ArCount: 4,
	}

	want := []byte{
		0x12, 0x34,
		0x81, 0x80,
		0x00, 0x01,
		0x00, 0x02,
		0x00, 0x03,
		0x00, 0x04,
	}
	assert.Equal(t, want, h.Bytes())
}

func TestParseHeaderTooShort(t *testing.T) {
	for _, n := range []int{0, 1, 10, 11} {
		_, err := ParseHeader(make([]byte, n))
		assert.ErrorIs(t, err, ErrMalformed, "buffer of %d bytes", n)
	}
}

func TestParseHeaderIgnoresTrailingBytes(t *testing.T) {
	wire := append(Header{ID: 7, QdCount: 1}.Bytes(), 0xDE, 0xAD)
	parsed, err := ParseHeader(wire)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), parsed.ID)
	assert.Equal(t, uint16(1), parsed.QdCount)
}
