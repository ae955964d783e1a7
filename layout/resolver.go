package layout

import (
	"sync"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

// Info is the derived layout of a descriptor. Size is always a multiple
// of Align for recomputed layouts; explicit sizes from the type database
// are passed through verbatim.
type Info struct {
	Size      uint32
	Align     uint32
	FieldOffs map[string]uint32
}

// OffsetOf returns the byte offset of a struct field or union member.
func (i Info) OffsetOf(name string) (uint32, bool) {
	off, ok := i.FieldOffs[name]
	return off, ok
}

// Resolver computes layouts for one target configuration.
type Resolver struct {
	cfg memview.Config

	mu    sync.RWMutex
	cache map[ctype.Type]Info
}

// NewResolver builds a resolver. The pointer width must be 4 or 8.
func NewResolver(cfg memview.Config) (*Resolver, error) {
	cfg, ok := cfg.Normalize()
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseLayout,
			"pointer width must be 4 or 8")
	}
	return &Resolver{
		cfg:   cfg,
		cache: make(map[ctype.Type]Info),
	}, nil
}

// Config returns the normalized target configuration.
func (r *Resolver) Config() memview.Config {
	return r.cfg
}

// Resolve computes the layout of t.
//
// It fails with not_instantiable for bare function types and void, and
// with unknown_kind for descriptor variants outside the closed set.
func (r *Resolver) Resolve(t ctype.Type) (Info, error) {
	switch typ := t.(type) {
	case ctype.Scalar:
		return r.resolveScalar(typ)
	case *ctype.Pointer:
		return Info{Size: r.cfg.PointerWidth, Align: r.cfg.PointerWidth}, nil
	case *ctype.Struct, *ctype.Union, *ctype.Enum, *ctype.Array:
		return r.resolveComposite(t)
	case *ctype.Func:
		return Info{}, errors.NotInstantiable(typ.String())
	default:
		return Info{}, errors.UnknownKind(errors.PhaseLayout, describe(t))
	}
}

func (r *Resolver) resolveScalar(s ctype.Scalar) (Info, error) {
	switch s.Kind {
	case ctype.Int:
		switch s.Width {
		case 1, 2, 4, 8:
			return Info{Size: s.Width, Align: s.Width}, nil
		}
	case ctype.Float:
		switch s.Width {
		case 4, 8:
			return Info{Size: s.Width, Align: s.Width}, nil
		}
	case ctype.Void:
		return Info{}, errors.NotInstantiable("void")
	default:
		return Info{}, errors.UnknownKind(errors.PhaseLayout, s.String())
	}
	return Info{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
		CType(s.String()).
		Detail("unsupported scalar width %d", s.Width).
		Build()
}

// resolveComposite serves struct, union, enum, and array descriptors
// through the cache. Pointer-identity keys make repeated resolution of
// a shared descriptor graph cheap; scalars and pointers are computed
// directly since they are a table lookup anyway.
func (r *Resolver) resolveComposite(t ctype.Type) (Info, error) {
	r.mu.RLock()
	cached, ok := r.cache[t]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var info Info
	var err error
	switch typ := t.(type) {
	case *ctype.Struct:
		info, err = r.resolveStruct(typ)
	case *ctype.Union:
		info, err = r.resolveUnion(typ)
	case *ctype.Enum:
		info, err = r.resolveScalar(typ.Base)
	case *ctype.Array:
		info, err = r.resolveArray(typ)
	}
	if err != nil {
		return Info{}, err
	}

	r.mu.Lock()
	r.cache[t] = info
	r.mu.Unlock()
	return info, nil
}

func (r *Resolver) resolveStruct(s *ctype.Struct) (Info, error) {
	fieldOffs := make(map[string]uint32, len(s.Fields))
	maxAlign := uint32(1)
	cursor := uint32(0)

	for _, field := range s.Fields {
		fl, err := r.Resolve(field.Type)
		if err != nil {
			return Info{}, err
		}

		var offset uint32
		if field.Offset != nil && r.cfg.TrustExplicitLayout {
			offset = *field.Offset
		} else {
			offset = alignTo(cursor, fl.Align)
		}
		fieldOffs[field.Name] = offset

		if fl.Align > maxAlign {
			maxAlign = fl.Align
		}

		end, ok := safeAdd(offset, fl.Size)
		if !ok {
			return Info{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
				CType(s.String()).
				Detail("field %q ends beyond the address space", field.Name).
				Build()
		}
		if end > cursor {
			cursor = end
		}
	}

	size := alignTo(cursor, maxAlign)
	if s.Size != nil && r.cfg.TrustExplicitLayout {
		// The type database already ran layout; defer to it.
		size = *s.Size
	}

	return Info{Size: size, Align: maxAlign, FieldOffs: fieldOffs}, nil
}

func (r *Resolver) resolveUnion(u *ctype.Union) (Info, error) {
	fieldOffs := make(map[string]uint32, len(u.Members))
	maxAlign := uint32(1)
	maxSize := uint32(0)

	for _, member := range u.Members {
		ml, err := r.Resolve(member.Type)
		if err != nil {
			return Info{}, err
		}
		fieldOffs[member.Name] = 0
		if ml.Align > maxAlign {
			maxAlign = ml.Align
		}
		if ml.Size > maxSize {
			maxSize = ml.Size
		}
	}

	return Info{
		Size:      alignTo(maxSize, maxAlign),
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}, nil
}

func (r *Resolver) resolveArray(a *ctype.Array) (Info, error) {
	el, err := r.Resolve(a.Elem)
	if err != nil {
		return Info{}, err
	}

	size, ok := safeMul(el.Size, a.Count)
	if !ok {
		return Info{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			CType(a.String()).
			Detail("array size overflows").
			Build()
	}

	return Info{Size: size, Align: el.Align}, nil
}

func describe(t ctype.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
