package object

import (
	"go.uber.org/zap"

	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

// Deref reads the pointer's value and returns a view of the pointee at
// that address in the same MemorySpace. A value of 0 fails with
// null_dereference before any pointee memory is touched. The pointer
// read is the only backend call.
func (v *View) Deref() (*View, error) {
	t, ok := v.typ.(*ctype.Pointer)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseDeref, v.path, describe(v.typ), "dereference")
	}

	raw, err := v.pointerRaw()
	if err != nil {
		return nil, err
	}
	if raw == 0 {
		return nil, errors.NullDereference(v.path)
	}

	target, err := v.pointerEffective(t, raw)
	if err != nil {
		return nil, err
	}

	v.eng.log.Debug("deref",
		zap.Uint64("addr", v.addr),
		zap.Uint64("target", target),
		zap.String("pointee", describe(t.Pointee)))

	return v.child("*", target, t.Pointee), nil
}

// Add offsets the pointer by n elements of the pointee type, C pointer
// arithmetic. It is pure address computation: no memory is read, and
// the displacement is applied only when the pointer value is eventually
// read by Get or Deref. The result cannot be written through.
func (v *View) Add(n int64) (*View, error) {
	t, ok := v.typ.(*ctype.Pointer)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseAccess, v.path, describe(v.typ), "pointer arithmetic")
	}

	// Surface unsizeable pointees (void*, function pointers) here,
	// where the arithmetic is requested.
	if _, err := v.eng.Layout(t.Pointee); err != nil {
		return nil, err
	}

	nv := *v
	nv.disp += n
	return &nv, nil
}

// pointerRaw reads the pointer-width integer stored at the view's
// address. One backend call.
func (v *View) pointerRaw() (uint64, error) {
	raw, err := v.readScalar(pointerScalar(v.eng.cfg.PointerWidth))
	if err != nil {
		return 0, err
	}
	return raw.(uint64), nil
}

// pointerEffective applies any pending element displacement to a raw
// pointer value. Reads no memory.
func (v *View) pointerEffective(t *ctype.Pointer, raw uint64) (uint64, error) {
	if v.disp == 0 {
		return raw, nil
	}
	el, err := v.eng.Layout(t.Pointee)
	if err != nil {
		return 0, err
	}
	return uint64(int64(raw) + v.disp*int64(el.Size)), nil
}

func (v *View) pointerValue(t *ctype.Pointer) (uint64, error) {
	raw, err := v.pointerRaw()
	if err != nil {
		return 0, err
	}
	return v.pointerEffective(t, raw)
}
