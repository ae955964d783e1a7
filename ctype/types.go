package ctype

import (
	"fmt"
	"strings"
)

// Type is a descriptor for a C type. The set of implementations is
// closed: Scalar, *Struct, *Union, *Enum, *Pointer, *Array, and *Func.
type Type interface {
	isType()

	// String returns a short C-flavored spelling for diagnostics.
	String() string
}

// ScalarKind discriminates the scalar base categories.
type ScalarKind int

const (
	Int ScalarKind = iota
	Float
	Void
)

// Scalar describes an integer, floating-point, or void base type.
type Scalar struct {
	Kind   ScalarKind
	Width  uint32
	Signed bool
}

func (Scalar) isType() {}

func (s Scalar) String() string {
	switch s.Kind {
	case Int:
		if s.Signed {
			return fmt.Sprintf("s%d", s.Width*8)
		}
		return fmt.Sprintf("u%d", s.Width*8)
	case Float:
		return fmt.Sprintf("f%d", s.Width*8)
	case Void:
		return "void"
	}
	return "scalar?"
}

// Canonical scalar descriptors.
var (
	U8  = Scalar{Kind: Int, Width: 1}
	U16 = Scalar{Kind: Int, Width: 2}
	U32 = Scalar{Kind: Int, Width: 4}
	U64 = Scalar{Kind: Int, Width: 8}
	S8  = Scalar{Kind: Int, Width: 1, Signed: true}
	S16 = Scalar{Kind: Int, Width: 2, Signed: true}
	S32 = Scalar{Kind: Int, Width: 4, Signed: true}
	S64 = Scalar{Kind: Int, Width: 8, Signed: true}
	F32 = Scalar{Kind: Float, Width: 4, Signed: true}
	F64 = Scalar{Kind: Float, Width: 8, Signed: true}

	VoidType = Scalar{Kind: Void}
)

// Field is a named member of a struct or union. Offset, when non-nil,
// is an explicit byte offset supplied by the type database.
type Field struct {
	Type   Type
	Name   string
	Offset *uint32
}

// F constructs a field with layout left to the resolver.
func F(name string, t Type) Field {
	return Field{Name: name, Type: t}
}

// FAt constructs a field with an explicit byte offset.
func FAt(name string, t Type, offset uint32) Field {
	return Field{Name: name, Type: t, Offset: &offset}
}

// Struct describes a record with fields laid out in declaration order.
// Size, when non-nil, is the total byte size already computed by the
// type database, padding included.
type Struct struct {
	Name   string
	Fields []Field
	Size   *uint32
}

func (*Struct) isType() {}

func (s *Struct) String() string {
	if s.Name != "" {
		return "struct " + s.Name
	}
	return "struct"
}

// FieldByName returns the named field.
func (s *Struct) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NewStruct builds a struct descriptor from fields in declaration order.
func NewStruct(name string, fields ...Field) *Struct {
	return &Struct{Name: name, Fields: append([]Field(nil), fields...)}
}

// WithSize returns a copy of the struct carrying an explicit total size.
func (s *Struct) WithSize(size uint32) *Struct {
	return &Struct{Name: s.Name, Fields: s.Fields, Size: &size}
}

// Union describes overlapping members that all start at offset 0.
type Union struct {
	Name    string
	Members []Field
}

func (*Union) isType() {}

func (u *Union) String() string {
	if u.Name != "" {
		return "union " + u.Name
	}
	return "union"
}

// MemberByName returns the named member.
func (u *Union) MemberByName(name string) (Field, bool) {
	for _, m := range u.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Field{}, false
}

// NewUnion builds a union descriptor.
func NewUnion(name string, members ...Field) *Union {
	return &Union{Name: name, Members: append([]Field(nil), members...)}
}

// EnumValue is one named constant of an enum.
type EnumValue struct {
	Name  string
	Value int64
}

// Enum describes a named integer type with symbolic constants. The
// underlying storage is Base; values outside the constant table are
// legal, as in C.
type Enum struct {
	Name   string
	Base   Scalar
	Values []EnumValue
}

func (*Enum) isType() {}

func (e *Enum) String() string {
	if e.Name != "" {
		return "enum " + e.Name
	}
	return "enum"
}

// NameOf returns the symbolic name for v, if any constant matches.
func (e *Enum) NameOf(v int64) (string, bool) {
	for _, ev := range e.Values {
		if ev.Value == v {
			return ev.Name, true
		}
	}
	return "", false
}

// ValueOf returns the integer for a symbolic name.
func (e *Enum) ValueOf(name string) (int64, bool) {
	for _, ev := range e.Values {
		if ev.Name == name {
			return ev.Value, true
		}
	}
	return 0, false
}

// NewEnum builds an enum descriptor over the given base scalar.
func NewEnum(name string, base Scalar, values ...EnumValue) *Enum {
	return &Enum{Name: name, Base: base, Values: append([]EnumValue(nil), values...)}
}

// Pointer describes a pointer to Pointee. Its storage is always the
// configured pointer width, irrespective of the pointee.
type Pointer struct {
	Pointee Type
}

func (*Pointer) isType() {}

func (p *Pointer) String() string {
	return p.Pointee.String() + "*"
}

// PointerTo builds a pointer descriptor.
func PointerTo(pointee Type) *Pointer {
	return &Pointer{Pointee: pointee}
}

// Array describes Count contiguous elements. Count 0 is legal and
// occupies no storage.
type Array struct {
	Elem  Type
	Count uint32
}

func (*Array) isType() {}

func (a *Array) String() string {
	return fmt.Sprintf("%s[%d]", a.Elem.String(), a.Count)
}

// ArrayOf builds an array descriptor.
func ArrayOf(elem Type, count uint32) *Array {
	return &Array{Elem: elem, Count: count}
}

// Func describes a function signature. Functions occupy no storage and
// cannot be materialized to a value; only their address is observable,
// and only pointer-to-function is sizeable.
type Func struct {
	Return Type
	Params []Type
}

func (*Func) isType() {}

func (f *Func) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("%s(%s)", ret, strings.Join(params, ", "))
}

// FuncOf builds a function descriptor.
func FuncOf(ret Type, params ...Type) *Func {
	return &Func{Return: ret, Params: append([]Type(nil), params...)}
}
