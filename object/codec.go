package object

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

// decodeScalar interprets b per the scalar's kind, width, and signedness.
// Signed integers are two's-complement; floats are IEEE754 bit patterns.
// b is already exactly the scalar's size.
func decodeScalar(order binary.ByteOrder, s ctype.Scalar, b []byte) any {
	var u uint64
	switch s.Width {
	case 1:
		u = uint64(b[0])
	case 2:
		u = uint64(order.Uint16(b))
	case 4:
		u = uint64(order.Uint32(b))
	case 8:
		u = order.Uint64(b)
	}

	if s.Kind == ctype.Float {
		if s.Width == 4 {
			return math.Float32frombits(uint32(u))
		}
		return math.Float64frombits(u)
	}

	if s.Signed {
		return signExtend(u, s.Width)
	}
	return u
}

func signExtend(u uint64, width uint32) int64 {
	shift := 64 - width*8
	return int64(u<<shift) >> shift
}

// encodeScalar converts val to the scalar's wire form. Inputs are
// coerced across Go numeric types with range checking.
func encodeScalar(order binary.ByteOrder, s ctype.Scalar, val any, path []string) ([]byte, error) {
	if s.Kind == ctype.Float {
		f, ok := coerceFloat64(val)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, s.String(), "numeric coercion")
		}
		if s.Width == 4 {
			return putUint(order, 4, uint64(math.Float32bits(float32(f)))), nil
		}
		return putUint(order, 8, math.Float64bits(f)), nil
	}

	if s.Signed {
		n, ok := coerceInt64(val)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, s.String(), "numeric coercion")
		}
		lo, hi := signedRange(s.Width)
		if n < lo || n > hi {
			return nil, errors.Overflow(path, val, s.String())
		}
		return putUint(order, s.Width, uint64(n)), nil
	}

	u, ok := coerceUint64(val)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseEncode, path, s.String(), "numeric coercion")
	}
	if s.Width < 8 && u > (uint64(1)<<(s.Width*8))-1 {
		return nil, errors.Overflow(path, val, s.String())
	}
	return putUint(order, s.Width, u), nil
}

func signedRange(width uint32) (int64, int64) {
	hi := int64(1)<<(width*8-1) - 1
	return -hi - 1, hi
}

func putUint(order binary.ByteOrder, width uint32, u uint64) []byte {
	b := make([]byte, width)
	switch width {
	case 1:
		b[0] = byte(u)
	case 2:
		order.PutUint16(b, uint16(u))
	case 4:
		order.PutUint32(b, uint32(u))
	case 8:
		order.PutUint64(b, u)
	}
	return b
}

func coerceInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v <= math.MaxInt64 && v == float64(int64(v)) {
			return int64(v), true
		}
	case float32:
		return coerceInt64(float64(v))
	}
	return 0, false
}

func coerceUint64(val any) (uint64, bool) {
	switch v := val.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uintptr:
		return uint64(v), true
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v <= math.MaxUint64 && v == float64(uint64(v)) {
			return uint64(v), true
		}
	case float32:
		return coerceUint64(float64(v))
	}
	return 0, false
}

func coerceFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
