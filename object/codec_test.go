package object

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

func TestScalarRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  ctype.Scalar
		vals []any
	}{
		{"u8", ctype.U8, []any{uint64(0), uint64(1), uint64(0xff)}},
		{"u16", ctype.U16, []any{uint64(0), uint64(0xffff)}},
		{"u32", ctype.U32, []any{uint64(0), uint64(0xffffffff)}},
		{"u64", ctype.U64, []any{uint64(0), uint64(math.MaxUint64)}},
		{"s8", ctype.S8, []any{int64(math.MinInt8), int64(-1), int64(0), int64(math.MaxInt8)}},
		{"s16", ctype.S16, []any{int64(math.MinInt16), int64(math.MaxInt16)}},
		{"s32", ctype.S32, []any{int64(math.MinInt32), int64(-1), int64(math.MaxInt32)}},
		{"s64", ctype.S64, []any{int64(math.MinInt64), int64(math.MaxInt64)}},
		{"f32", ctype.F32, []any{float32(0), float32(1.5), float32(-2.25),
			float32(math.Inf(1)), float32(math.Inf(-1))}},
		{"f64", ctype.F64, []any{float64(0), 3.14159, math.Inf(1), math.Inf(-1)}},
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, tc := range tests {
			t.Run(tc.name+"/"+order.String(), func(t *testing.T) {
				cfg := memview.DefaultConfig()
				cfg.ByteOrder = order
				eng := newTestEngine(t, cfg)
				view := eng.View(newFakeSpace(0, make([]byte, 8)), 0, tc.typ)

				for _, val := range tc.vals {
					if err := view.Set(val); err != nil {
						t.Fatalf("Set(%v): %v", val, err)
					}
					got, err := view.Get()
					if err != nil {
						t.Fatalf("Get after Set(%v): %v", val, err)
					}
					if got != val {
						t.Errorf("round trip: got %v (%T), want %v (%T)", got, got, val, val)
					}
				}
			})
		}
	}
}

func TestFloatNaNRoundTrip(t *testing.T) {
	eng := newTestEngine(t, memview.DefaultConfig())

	t.Run("f64", func(t *testing.T) {
		view := eng.View(newFakeSpace(0, make([]byte, 8)), 0, ctype.F64)
		if err := view.Set(math.NaN()); err != nil {
			t.Fatal(err)
		}
		got, err := view.Float()
		if err != nil {
			t.Fatal(err)
		}
		if !math.IsNaN(got) {
			t.Errorf("got %v, want NaN", got)
		}
	})

	t.Run("f32", func(t *testing.T) {
		view := eng.View(newFakeSpace(0, make([]byte, 4)), 0, ctype.F32)
		if err := view.Set(float32(math.NaN())); err != nil {
			t.Fatal(err)
		}
		got, err := view.Get()
		if err != nil {
			t.Fatal(err)
		}
		f, ok := got.(float32)
		if !ok || f == f {
			t.Errorf("got %v (%T), want float32 NaN", got, got)
		}
	})
}

func TestSetCoercion(t *testing.T) {
	eng := newTestEngine(t, memview.DefaultConfig())
	view := eng.View(newFakeSpace(0, make([]byte, 4)), 0, ctype.S32)

	// Plain Go ints are the common caller currency.
	if err := view.Set(42); err != nil {
		t.Fatal(err)
	}
	got, err := view.Int()
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}

	if err := view.Set(uint8(7)); err != nil {
		t.Fatalf("uint8 should coerce into s32: %v", err)
	}
}

func TestSetOverflow(t *testing.T) {
	eng := newTestEngine(t, memview.DefaultConfig())
	space := newFakeSpace(0, make([]byte, 8))

	tests := []struct {
		typ ctype.Scalar
		val any
	}{
		{ctype.U8, 256},
		{ctype.U8, -1},
		{ctype.S8, 128},
		{ctype.S8, -129},
		{ctype.S16, 40000},
		{ctype.U32, uint64(1) << 32},
	}

	for _, tc := range tests {
		err := eng.View(space, 0, tc.typ).Set(tc.val)
		if err == nil {
			t.Errorf("Set(%s, %v): expected failure", tc.typ, tc.val)
			continue
		}
		var e *errors.Error
		if !errorsAs(err, &e) || (e.Kind != errors.KindOverflow && e.Kind != errors.KindTypeMismatch) {
			t.Errorf("Set(%s, %v): got %v", tc.typ, tc.val, err)
		}
	}
	if space.writes != 0 {
		t.Errorf("failed encodes must not write; saw %d writes", space.writes)
	}
}

func TestSetRejectsNonNumeric(t *testing.T) {
	eng := newTestEngine(t, memview.DefaultConfig())
	view := eng.View(newFakeSpace(0, make([]byte, 4)), 0, ctype.U32)

	err := view.Set("forty-two")
	wantKind(t, err, errors.PhaseEncode, errors.KindTypeMismatch)
}

func TestSignExtension(t *testing.T) {
	space := newFakeSpace(0, []byte{0xfe, 0xff})
	eng := newTestEngine(t, memview.DefaultConfig())

	got, err := eng.View(space, 0, ctype.S16).Int()
	if err != nil {
		t.Fatal(err)
	}
	if got != -2 {
		t.Errorf("got %d, want -2", got)
	}

	u, err := eng.View(space, 0, ctype.U16).Uint()
	if err != nil {
		t.Fatal(err)
	}
	if u != 0xfffe {
		t.Errorf("got %#x, want 0xfffe", u)
	}
}

func errorsAs(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}
