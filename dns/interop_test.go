package dns_test

import (
	"testing"

	mdns "github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanukidns/dns"
)

// Interop tests use miekg/dns as the reference peer: it packs the
// queries and unpacks our replies.

type staticResolver map[string][4]byte

func (r staticResolver) LookupA(name string) ([4]byte, bool) {
	addr, ok := r[name]
	return addr, ok
}

func TestInteropAnswer(t *testing.T) {
	rp := dns.NewResponder(staticResolver{"example.com": {93, 184, 216, 34}})

	query := new(mdns.Msg)
	query.SetQuestion("example.com.", mdns.TypeA)
	wire, err := query.Pack()
	require.NoError(t, err)

	outcome := rp.Respond(wire)
	require.Equal(t, dns.Answered, outcome.Kind)

	reply := new(mdns.Msg)
	require.NoError(t, reply.Unpack(outcome.Reply))

	assert.True(t, reply.Response)
	assert.Equal(t, query.Id, reply.Id)
	assert.Equal(t, mdns.RcodeSuccess, reply.Rcode)
	require.Len(t, reply.Question, 1)
	assert.Equal(t, "example.com.", reply.Question[0].Name)

	require.Len(t, reply.Answer, 1)
	a, ok := reply.Answer[0].(*mdns.A)
	require.True(t, ok, "answer is an A record")
	assert.Equal(t, "example.com.", a.Hdr.Name)
	assert.Equal(t, uint32(300), a.Hdr.Ttl)
	assert.Equal(t, uint16(mdns.ClassINET), a.Hdr.Class)
	assert.Equal(t, "93.184.216.34", a.A.String())
}

func TestInteropNXDomain(t *testing.T) {
	rp := dns.NewResponder(staticResolver{})

	query := new(mdns.Msg)
	query.SetQuestion("nosuch.example.", mdns.TypeA)
	wire, err := query.Pack()
	require.NoError(t, err)

	outcome := rp.Respond(wire)
	require.Equal(t, dns.NameError, outcome.Kind)

	reply := new(mdns.Msg)
	require.NoError(t, reply.Unpack(outcome.Reply))

	assert.True(t, reply.Response)
	assert.Equal(t, query.Id, reply.Id)
	assert.Equal(t, mdns.RcodeNameError, reply.Rcode)
	require.Len(t, reply.Question, 1)
	assert.Equal(t, "nosuch.example.", reply.Question[0].Name)
	assert.Empty(t, reply.Answer)
}
