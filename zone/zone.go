package zone

import (
	"fmt"
	"net"
)

// Record is one authoritative A record.
type Record struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Table is an immutable name -> IPv4 snapshot. It satisfies the DNS
// responder's Resolver interface; mutations go through the Store and
// produce a fresh Table.
type Table struct {
	addrs map[string][4]byte
}

// NewTable builds a snapshot from records. Later records win on
// duplicate names.
func NewTable(records []Record) (*Table, error) {
	addrs := make(map[string][4]byte, len(records))
	for _, r := range records {
		addr, err := ParseIPv4(r.Address)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", r.Name, err)
		}
		addrs[r.Name] = addr
	}
	return &Table{addrs: addrs}, nil
}

// LookupA resolves name to its IPv4 address. Exact, case-sensitive
// match on the dot-joined name.
func (t *Table) LookupA(name string) ([4]byte, bool) {
	addr, ok := t.addrs[name]
	return addr, ok
}

// Len reports how many names the snapshot holds.
func (t *Table) Len() int {
	return len(t.addrs)
}

// ParseIPv4 parses a dotted-quad address into its 4 wire octets.
func ParseIPv4(s string) ([4]byte, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return [4]byte{}, fmt.Errorf("invalid IPv4 address %q", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return [4]byte{}, fmt.Errorf("not an IPv4 address %q", s)
	}
	var addr [4]byte
	copy(addr[:], v4)
	return addr, nil
}
