package server

import (
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"tanukidns/dns"
	"tanukidns/stats"
)

// DNS over UDP: one query per datagram, 512 bytes is enough.
const readBufferSize = 512

// Server owns the UDP transport loop. Parsing and response building
// are delegated to the responder; the loop only moves datagrams.
type Server struct {
	port     int
	stats    *stats.Stats
	conn     *net.UDPConn
	shutdown chan struct{}

	// Swapped wholesale when the zone changes; in-flight requests
	// keep the snapshot they started with.
	responder atomic.Pointer[dns.Responder]
}

// New creates a DNS server resolving against the given resolver.
func New(port int, resolver dns.Resolver, s *stats.Stats) *Server {
	srv := &Server{
		port:     port,
		stats:    s,
		shutdown: make(chan struct{}),
	}
	srv.responder.Store(dns.NewResponder(resolver))
	return srv
}

// SetResolver swaps the lookup table for subsequent queries.
func (s *Server) SetResolver(r dns.Resolver) {
	s.responder.Store(dns.NewResponder(r))
}

// Start binds the UDP socket and begins serving.
func (s *Server) Start() error {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to resolve address: %w", err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.conn = conn
	glog.Infof("DNS server listening on %s", conn.LocalAddr())

	go s.serve()

	return nil
}

// Addr returns the bound UDP address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Stop stops the server and closes the socket.
func (s *Server) Stop() {
	close(s.shutdown)
	if s.conn != nil {
		s.conn.Close()
	}
	glog.Info("DNS server stopped")
}

// serve reads datagrams until shutdown.
func (s *Server) serve() {
	buffer := make([]byte, readBufferSize)

	for {
		select {
		case <-s.shutdown:
			return
		default:
			s.conn.SetReadDeadline(time.Now().Add(1 * time.Second))
			n, clientAddr, err := s.conn.ReadFromUDP(buffer)
			if err != nil {
				if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
					continue
				}
				select {
				case <-s.shutdown:
					return
				default:
				}
				glog.Errorf("Error reading from UDP: %v", err)
				continue
			}

			query := make([]byte, n)
			copy(query, buffer[:n])
			go s.handle(query, clientAddr)
		}
	}
}

// handle resolves one query datagram and sends the reply, if any.
func (s *Server) handle(query []byte, client *net.UDPAddr) {
	start := time.Now()

	outcome := s.responder.Load().Respond(query)

	switch outcome.Kind {
	case dns.Answered, dns.NameError:
		if _, err := s.conn.WriteToUDP(outcome.Reply, client); err != nil {
			glog.Errorf("Error sending response to %v: %v", client, err)
		}
	case dns.DroppedMalformed:
		glog.Warningf("Dropping query from %v: %v", client, outcome.Err)
	case dns.DroppedUnsupportedType:
		glog.V(1).Infof("Dropping type %d query for %q from %v",
			outcome.Question.Type, outcome.Question.Name, client)
	}

	s.stats.Record(stats.NewEvent(
		outcome.Question.Name,
		outcome.Question.Type,
		outcome.Kind.String(),
		time.Since(start),
	))
}
