package object

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

// View is a lazy typed proxy over a byte range: a MemorySpace, a base
// address, and a descriptor. It holds no decoded state; dropping it has
// no effect on the backend.
type View struct {
	eng  *Engine
	mem  memview.MemorySpace
	typ  ctype.Type
	addr uint64
	path []string

	// disp is a pending pointer displacement in elements, accumulated
	// by Add and applied once the pointer value is actually read.
	disp int64
}

// Addr returns the view's base address.
func (v *View) Addr() uint64 {
	return v.addr
}

// Type returns the view's descriptor.
func (v *View) Type() ctype.Type {
	return v.typ
}

// Space returns the MemorySpace the view reads through.
func (v *View) Space() memview.MemorySpace {
	return v.mem
}

func (v *View) String() string {
	return fmt.Sprintf("View(%s, 0x%x)", describe(v.typ), v.addr)
}

// Field returns a child view of the named struct field or union member.
// No memory is read; the child shares the MemorySpace.
func (v *View) Field(name string) (*View, error) {
	switch t := v.typ.(type) {
	case *ctype.Struct:
		f, ok := t.FieldByName(name)
		if !ok {
			return nil, errors.NoSuchField(v.childPath(name), t.String(), name)
		}
		info, err := v.eng.Layout(t)
		if err != nil {
			return nil, err
		}
		off, _ := info.OffsetOf(name)
		return v.child(name, v.addr+uint64(off), f.Type), nil

	case *ctype.Union:
		m, ok := t.MemberByName(name)
		if !ok {
			return nil, errors.NoSuchField(v.childPath(name), t.String(), name)
		}
		// All union members alias the base address.
		return v.child(name, v.addr, m.Type), nil

	default:
		return nil, errors.TypeMismatch(errors.PhaseAccess, v.path, describe(v.typ), "field access")
	}
}

// Index returns a child view of array element i.
func (v *View) Index(i int) (*View, error) {
	t, ok := v.typ.(*ctype.Array)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseAccess, v.path, describe(v.typ), "indexing")
	}
	if i < 0 {
		return nil, errors.InvalidIndex(v.path, i)
	}
	if uint64(i) >= uint64(t.Count) {
		return nil, errors.IndexOutOfRange(v.path, i, t.Count)
	}

	el, err := v.eng.Layout(t.Elem)
	if err != nil {
		return nil, err
	}
	return v.child(fmt.Sprintf("[%d]", i), v.addr+uint64(i)*uint64(el.Size), t.Elem), nil
}

// Get decodes the view's current value with a single backend read.
//
//   - Scalars decode to int64, uint64, float32, or float64 per the
//     configured byte order.
//   - Enums decode their base scalar and map it to a symbolic name;
//     unmatched values come back as the raw integer, as C allows.
//   - Pointers yield their integer value without dereferencing.
//   - Functions yield the view's address; no bytes are read.
//
// Struct, union, and array views cannot be materialized to a single
// value and fail with type_mismatch.
func (v *View) Get() (any, error) {
	switch t := v.typ.(type) {
	case ctype.Scalar:
		return v.readScalar(t)

	case *ctype.Enum:
		raw, err := v.readScalar(t.Base)
		if err != nil {
			return nil, err
		}
		if name, ok := t.NameOf(enumKey(raw)); ok {
			return name, nil
		}
		return raw, nil

	case *ctype.Pointer:
		return v.pointerValue(t)

	case *ctype.Func:
		return v.addr, nil

	default:
		return nil, errors.TypeMismatch(errors.PhaseDecode, v.path, describe(v.typ), "value decode")
	}
}

// Set encodes a value and writes it with a single backend write.
// Integer and float inputs are coerced with range checking; enums also
// accept their symbolic constant names.
func (v *View) Set(val any) error {
	switch t := v.typ.(type) {
	case ctype.Scalar:
		return v.writeScalar(t, val)

	case *ctype.Enum:
		if name, ok := val.(string); ok {
			n, ok := t.ValueOf(name)
			if !ok {
				return errors.New(errors.PhaseEncode, errors.KindInvalidInput).
					Path(v.path...).
					CType(t.String()).
					Detail("unknown constant %q", name).
					Build()
			}
			val = n
		}
		return v.writeScalar(t.Base, val)

	case *ctype.Pointer:
		if v.disp != 0 {
			return errors.InvalidInput(errors.PhaseEncode,
				"cannot write through a displaced pointer view")
		}
		return v.writeScalar(pointerScalar(v.eng.cfg.PointerWidth), val)

	default:
		return errors.TypeMismatch(errors.PhaseEncode, v.path, describe(v.typ), "value encode")
	}
}

// Int returns the value as a signed integer.
func (v *View) Int() (int64, error) {
	val, err := v.Get()
	if err != nil {
		return 0, err
	}
	n, ok := coerceInt64(val)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseDecode, v.path, describe(v.typ), "integer conversion")
	}
	return n, nil
}

// Uint returns the value as an unsigned integer.
func (v *View) Uint() (uint64, error) {
	val, err := v.Get()
	if err != nil {
		return 0, err
	}
	n, ok := coerceUint64(val)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseDecode, v.path, describe(v.typ), "unsigned conversion")
	}
	return n, nil
}

// Float returns the value as a float.
func (v *View) Float() (float64, error) {
	val, err := v.Get()
	if err != nil {
		return 0, err
	}
	f, ok := coerceFloat64(val)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseDecode, v.path, describe(v.typ), "float conversion")
	}
	return f, nil
}

// Bytes reads the view's raw storage, layout size bytes, undecoded.
func (v *View) Bytes() ([]byte, error) {
	info, err := v.eng.Layout(v.typ)
	if err != nil {
		return nil, err
	}
	return v.read(v.addr, info.Size)
}

func (v *View) readScalar(s ctype.Scalar) (any, error) {
	info, err := v.eng.Layout(s)
	if err != nil {
		return nil, err
	}
	b, err := v.read(v.addr, info.Size)
	if err != nil {
		return nil, err
	}
	return decodeScalar(v.eng.cfg.ByteOrder, s, b), nil
}

func (v *View) writeScalar(s ctype.Scalar, val any) error {
	info, err := v.eng.Layout(s)
	if err != nil {
		return err
	}
	b, err := encodeScalar(v.eng.cfg.ByteOrder, s, val, v.path)
	if err != nil {
		return err
	}
	v.eng.log.Debug("write",
		zap.Uint64("addr", v.addr),
		zap.Uint32("size", info.Size),
		zap.String("type", s.String()))
	return v.write(v.addr, b)
}

// read performs the single MemorySpace call behind a decode. Backend
// errors that already carry the taxonomy pass through unchanged; others
// are wrapped as out_of_bounds with the cause preserved.
func (v *View) read(addr uint64, n uint32) ([]byte, error) {
	b, err := v.mem.Read(addr, n)
	if err != nil {
		return nil, wrapBackend(err, addr, n)
	}
	if uint32(len(b)) < n {
		return nil, errors.OutOfBounds(errors.PhaseBackend, addr, n,
			fmt.Errorf("short read: %d of %d bytes", len(b), n))
	}
	return b, nil
}

func (v *View) write(addr uint64, data []byte) error {
	if err := v.mem.Write(addr, data); err != nil {
		return wrapBackend(err, addr, uint32(len(data)))
	}
	return nil
}

func (v *View) child(name string, addr uint64, t ctype.Type) *View {
	return &View{
		eng:  v.eng,
		mem:  v.mem,
		typ:  t,
		addr: addr,
		path: v.childPath(name),
	}
}

func (v *View) childPath(name string) []string {
	path := make([]string, 0, len(v.path)+1)
	path = append(path, v.path...)
	return append(path, name)
}

func wrapBackend(err error, addr uint64, n uint32) error {
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	return errors.OutOfBounds(errors.PhaseBackend, addr, n, err)
}

// enumKey folds a decoded base scalar into the signed constant space
// used by enum value tables.
func enumKey(raw any) int64 {
	switch n := raw.(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	}
	return 0
}

func describe(t ctype.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

func pointerScalar(width uint32) ctype.Scalar {
	return ctype.Scalar{Kind: ctype.Int, Width: width}
}
