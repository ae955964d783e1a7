package memspace

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/memview/errors"
)

func wantKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("kind: got %s, want %s (%v)", e.Kind, kind, err)
	}
}

func TestBufferReadWrite(t *testing.T) {
	buf := NewBuffer(0x1000, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	got, err := buf.Read(0x1002, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{3, 4, 5}, got); diff != "" {
		t.Errorf("read mismatch (-want +got):\n%s", diff)
	}

	if err := buf.Write(0x1000, []byte{0xaa, 0xbb}); err != nil {
		t.Fatal(err)
	}
	got, err = buf.Read(0x1000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0xaa, 0xbb}, got); diff != "" {
		t.Errorf("after write (-want +got):\n%s", diff)
	}
}

func TestBufferReadReturnsCopy(t *testing.T) {
	buf := NewBuffer(0, []byte{1, 2, 3})
	got, err := buf.Read(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	got[0] = 99
	again, err := buf.Read(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if again[0] != 1 {
		t.Fatalf("backing store mutated through returned slice: %d", again[0])
	}
}

func TestBufferBounds(t *testing.T) {
	buf := NewBuffer(0x1000, make([]byte, 8))

	cases := []struct {
		name   string
		addr   uint64
		length uint32
	}{
		{"before base", 0xfff, 1},
		{"past end", 0x1008, 1},
		{"straddles end", 0x1006, 4},
		{"far away", 0xdeadbeef, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buf.Read(tc.addr, tc.length)
			wantKind(t, err, errors.KindOutOfBounds)

			err = buf.Write(tc.addr, make([]byte, tc.length))
			wantKind(t, err, errors.KindOutOfBounds)
		})
	}
}

func TestBufferNearMaxAddress(t *testing.T) {
	// A pointer slot holding a -1 sentinel dereferences to an address
	// near 2^64; addr+length wraps there, so the check must compare
	// against the room left instead of the range end.
	buf := NewBuffer(0, make([]byte, 16))

	cases := []struct {
		name   string
		addr   uint64
		length uint32
	}{
		{"max addr", 0xffffffffffffffff, 4},
		{"wraps past zero", 0xfffffffffffffffd, 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buf.Read(tc.addr, tc.length)
			wantKind(t, err, errors.KindOutOfBounds)

			err = buf.Write(tc.addr, make([]byte, tc.length))
			wantKind(t, err, errors.KindOutOfBounds)

			if buf.Contains(tc.addr) {
				t.Errorf("Contains(%#x) = true", tc.addr)
			}
		})
	}

	// A length that exceeds the region must fail even when the
	// subtraction addr-base is fine.
	_, err := buf.Read(8, 0xffffffff)
	wantKind(t, err, errors.KindOutOfBounds)
}

func TestBufferZeroLengthRead(t *testing.T) {
	buf := NewBuffer(0x1000, make([]byte, 8))
	got, err := buf.Read(0x1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("zero-length read returned %d bytes", len(got))
	}
}
