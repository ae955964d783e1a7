package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAccess,
				Kind:   KindNoSuchField,
				Path:   []string{"player", "stats", "hp"},
				CType:  "struct Player",
				Detail: "no field \"hp\"",
			},
			contains: []string{"[access]", "no_such_field", "player.stats.hp", "struct Player", "no field"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with addr and cause",
			err: &Error{
				Phase:   PhaseBackend,
				Kind:    KindOutOfBounds,
				Addr:    0x80003120,
				HasAddr: true,
				Detail:  "cannot access 4 byte(s)",
				Cause:   errors.New("region not mapped"),
			},
			contains: []string{"[backend]", "out_of_bounds", "0x80003120", "caused by", "region not mapped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := OutOfBounds(PhaseBackend, 0x100, 8, cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(error(err)), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := NoSuchField([]string{"foo"}, "struct Foo", "bar")

	if !errors.Is(err, &Error{Phase: PhaseAccess, Kind: KindNoSuchField}) {
		t.Error("Is should match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseAccess, Kind: KindTypeMismatch}) {
		t.Error("Is should not match a different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindNoSuchField}) {
		t.Error("Is should not match a different phase")
	}
	if errors.Is(err, errors.New("no_such_field")) {
		t.Error("Is should not match plain errors")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("io failure")
	err := New(PhaseEncode, KindOverflow).
		Path("world", "timer").
		CType("s16").
		Addr(0xdead).
		Value(70000).
		Cause(cause).
		Detail("value %d overflows %s", 70000, "s16").
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindOverflow {
		t.Fatalf("phase/kind: got %s/%s", err.Phase, err.Kind)
	}
	if err.Addr != 0xdead || !err.HasAddr {
		t.Errorf("addr: got %#x (set=%v)", err.Addr, err.HasAddr)
	}
	if err.Value != 70000 {
		t.Errorf("value: got %v", err.Value)
	}
	if !errors.Is(err, &Error{Phase: PhaseEncode, Kind: KindOverflow}) {
		t.Error("built error should match its phase and kind")
	}
	msg := err.Error()
	for _, s := range []string{"world.timer", "0xdead", "s16", "overflows", "io failure"} {
		if !strings.Contains(msg, s) {
			t.Errorf("message %q missing %q", msg, s)
		}
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		phase Phase
		kind  Kind
	}{
		{OutOfBounds(PhaseBackend, 0, 1, nil), PhaseBackend, KindOutOfBounds},
		{TypeMismatch(PhaseAccess, nil, "s32", "indexing"), PhaseAccess, KindTypeMismatch},
		{NoSuchField(nil, "struct S", "x"), PhaseAccess, KindNoSuchField},
		{IndexOutOfRange(nil, 4, 4), PhaseAccess, KindIndexOutOfRange},
		{InvalidIndex(nil, -1), PhaseAccess, KindInvalidIndex},
		{NullDereference(nil), PhaseDeref, KindNullDereference},
		{NotInstantiable("void"), PhaseLayout, KindNotInstantiable},
		{UnknownKind(PhaseLayout, "???"), PhaseLayout, KindUnknownKind},
		{Overflow(nil, 256, "u8"), PhaseEncode, KindOverflow},
		{Unsupported(PhaseImport, "wit list"), PhaseImport, KindUnsupported},
		{NotFound(PhaseRegistry, "type", "MapWork"), PhaseRegistry, KindNotFound},
		{InvalidInput(PhaseLayout, "pointer width 3"), PhaseLayout, KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase: got %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind: got %s, want %s", tt.err.Kind, tt.kind)
			}
		})
	}
}
