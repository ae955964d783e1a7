package memspace

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/memview/errors"
)

// RetroArch is a MemorySpace over the live memory of a core running in
// RetroArch, using its UDP network command protocol
// (READ_CORE_MEMORY / WRITE_CORE_MEMORY). Values observed through it
// change as the game runs; nothing is cached.
//
// The protocol is one datagram per request, so large accesses are
// chunked. A mutex pairs each request with its response, making the
// backend safe for concurrent views.
type RetroArch struct {
	mu      sync.Mutex
	conn    *net.UDPConn
	timeout time.Duration
	chunk   uint32
	ranges  []AddrRange
	log     *zap.Logger
}

// AddrRange is a half-open span of valid guest addresses.
type AddrRange struct {
	Start uint64
	End   uint64
}

// RetroOption configures a RetroArch connection.
type RetroOption func(*RetroArch)

// WithTimeout sets the per-request deadline. Default 500ms.
func WithTimeout(d time.Duration) RetroOption {
	return func(r *RetroArch) { r.timeout = d }
}

// WithChunkSize caps the bytes moved per datagram. Default 2048, a safe
// size across cores; smaller consoles may need less.
func WithChunkSize(n uint32) RetroOption {
	return func(r *RetroArch) {
		if n > 0 {
			r.chunk = n
		}
	}
}

// WithValidRanges restricts accesses to known-mapped guest ranges, so
// typos fail fast instead of round-tripping to the emulator. GC/Wii
// cores, for example, map [0x80000000, 0x81800000) and
// [0x90000000, 0x94000000).
func WithValidRanges(ranges ...AddrRange) RetroOption {
	return func(r *RetroArch) { r.ranges = ranges }
}

// WithRetroLogger replaces the default no-op logger.
func WithRetroLogger(l *zap.Logger) RetroOption {
	return func(r *RetroArch) {
		if l != nil {
			r.log = l
		}
	}
}

// Connect dials the RetroArch network command interface and probes it
// with VERSION.
func Connect(host string, port int, opts ...RetroOption) (*RetroArch, error) {
	r := &RetroArch{
		timeout: 500 * time.Millisecond,
		chunk:   2048,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, errors.New(errors.PhaseBackend, errors.KindInvalidInput).
			Detail("resolve %s:%d", host, port).
			Cause(err).
			Build()
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, errors.New(errors.PhaseBackend, errors.KindInvalidInput).
			Detail("dial retroarch at %s:%d", host, port).
			Cause(err).
			Build()
	}
	r.conn = conn

	version, err := r.roundTrip("VERSION")
	if err != nil {
		conn.Close()
		return nil, err
	}
	r.log.Info("connected to retroarch",
		zap.String("addr", addr.String()),
		zap.String("version", version))
	return r, nil
}

// Close shuts the connection down.
func (r *RetroArch) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}

// Read fetches length bytes of live core memory at addr.
func (r *RetroArch) Read(addr uint64, length uint32) ([]byte, error) {
	if err := r.validate(addr, length); err != nil {
		return nil, err
	}

	out := make([]byte, 0, length)
	for length > 0 {
		n := length
		if n > r.chunk {
			n = r.chunk
		}
		reply, err := r.roundTrip(fmt.Sprintf("READ_CORE_MEMORY %x %d", addr, n))
		if err != nil {
			return nil, err
		}
		chunk, err := parseReadReply(reply, n)
		if err != nil {
			return nil, errors.OutOfBounds(errors.PhaseBackend, addr, n, err)
		}
		out = append(out, chunk...)
		addr += uint64(n)
		length -= n
	}
	return out, nil
}

// Write stores data into live core memory at addr.
func (r *RetroArch) Write(addr uint64, data []byte) error {
	if err := r.validate(addr, uint32(len(data))); err != nil {
		return err
	}

	for len(data) > 0 {
		n := uint32(len(data))
		if n > r.chunk {
			n = r.chunk
		}
		hexBytes := make([]string, n)
		for i, b := range data[:n] {
			hexBytes[i] = fmt.Sprintf("%02x", b)
		}
		reply, err := r.roundTrip(fmt.Sprintf("WRITE_CORE_MEMORY %x %s",
			addr, strings.Join(hexBytes, " ")))
		if err != nil {
			return err
		}
		if err := checkWriteReply(reply); err != nil {
			return errors.OutOfBounds(errors.PhaseBackend, addr, n, err)
		}
		addr += uint64(n)
		data = data[n:]
	}
	return nil
}

func (r *RetroArch) validate(addr uint64, length uint32) error {
	if len(r.ranges) == 0 {
		return nil
	}
	for _, rg := range r.ranges {
		// Room-left comparison; addr+length wraps for near-max addrs.
		if addr >= rg.Start && addr < rg.End && uint64(length) <= rg.End-addr {
			return nil
		}
	}
	return errors.OutOfBounds(errors.PhaseBackend, addr, length,
		fmt.Errorf("outside configured valid ranges"))
}

// roundTrip sends one command datagram and waits for its reply.
func (r *RetroArch) roundTrip(command string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return "", errors.InvalidInput(errors.PhaseBackend, "not connected")
	}
	if err := r.conn.SetDeadline(time.Now().Add(r.timeout)); err != nil {
		return "", errors.New(errors.PhaseBackend, errors.KindInvalidInput).
			Detail("set deadline").
			Cause(err).
			Build()
	}
	if _, err := r.conn.Write([]byte(command)); err != nil {
		return "", errors.New(errors.PhaseBackend, errors.KindOutOfBounds).
			Detail("send command").
			Cause(err).
			Build()
	}

	// Replies are a single datagram: the echoed command plus payload.
	buf := make([]byte, 4*int(r.chunk)+64)
	n, err := r.conn.Read(buf)
	if err != nil {
		return "", errors.New(errors.PhaseBackend, errors.KindOutOfBounds).
			Detail("read reply").
			Cause(err).
			Build()
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

// parseReadReply decodes "READ_CORE_MEMORY <addr> <b0> <b1> ...".
// The payload "-1" means the core declined the address.
func parseReadReply(reply string, want uint32) ([]byte, error) {
	parts := strings.Fields(reply)
	if len(parts) < 3 {
		return nil, fmt.Errorf("malformed reply %q", reply)
	}
	if parts[2] == "-1" {
		return nil, fmt.Errorf("core declined read")
	}
	payload := parts[2:]
	if uint32(len(payload)) != want {
		return nil, fmt.Errorf("expected %d bytes, got %d", want, len(payload))
	}
	data := make([]byte, want)
	for i, s := range payload {
		b, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q: %w", s, err)
		}
		data[i] = byte(b)
	}
	return data, nil
}

// checkWriteReply decodes "WRITE_CORE_MEMORY <addr> <count>"; a count
// of -1 means the core declined the address.
func checkWriteReply(reply string) error {
	parts := strings.Fields(reply)
	if len(parts) < 3 {
		return fmt.Errorf("malformed reply %q", reply)
	}
	if parts[2] == "-1" {
		return fmt.Errorf("core declined write")
	}
	return nil
}
