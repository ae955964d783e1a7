package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLayout   Phase = "layout"   // size/alignment/offset computation
	PhaseAccess   Phase = "access"   // field and element navigation
	PhaseDecode   Phase = "decode"   // memory to Go value
	PhaseEncode   Phase = "encode"   // Go value to memory
	PhaseDeref    Phase = "deref"    // pointer resolution
	PhaseBackend  Phase = "backend"  // MemorySpace read/write
	PhaseRegistry Phase = "registry" // type database operations
	PhaseImport   Phase = "import"   // external type metadata conversion
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds     Kind = "out_of_bounds"
	KindTypeMismatch    Kind = "type_mismatch"
	KindNoSuchField     Kind = "no_such_field"
	KindIndexOutOfRange Kind = "index_out_of_range"
	KindInvalidIndex    Kind = "invalid_index"
	KindNullDereference Kind = "null_dereference"
	KindNotInstantiable Kind = "not_instantiable"
	KindUnknownKind     Kind = "unknown_kind"
	KindOverflow        Kind = "overflow"
	KindUnsupported     Kind = "unsupported"
	KindNotFound        Kind = "not_found"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	CType   string
	Detail  string
	Path    []string
	Addr    uint64
	HasAddr bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.HasAddr {
		fmt.Fprintf(&b, " addr 0x%x", e.Addr)
	}

	if e.CType != "" {
		b.WriteString(": ")
		b.WriteString(e.CType)
	}

	if e.Detail != "" {
		if e.CType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// CType sets the C type name
func (b *Builder) CType(t string) *Builder {
	b.err.CType = t
	return b
}

// Addr sets the faulting address
func (b *Builder) Addr(addr uint64) *Builder {
	b.err.Addr = addr
	b.err.HasAddr = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates an out of bounds error for a memory access.
// Backend-specific failures are wrapped here so callers see one kind
// regardless of which MemorySpace declined the range.
func OutOfBounds(phase Phase, addr uint64, length uint32, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOutOfBounds,
		Addr:    addr,
		HasAddr: true,
		Detail:  fmt.Sprintf("cannot access %d byte(s)", length),
		Cause:   cause,
	}
}

// TypeMismatch creates an error for an operation that does not apply to
// the descriptor's kind, such as indexing a struct.
func TypeMismatch(phase Phase, path []string, ctype, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		CType:  ctype,
		Detail: fmt.Sprintf("%s not supported", op),
	}
}

// NoSuchField creates an unknown field error
func NoSuchField(path []string, ctype, fieldName string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindNoSuchField,
		Path:   path,
		CType:  ctype,
		Detail: fmt.Sprintf("no field %q", fieldName),
	}
}

// IndexOutOfRange creates an error for an index at or past an array's count
func IndexOutOfRange(path []string, index int, count uint32) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindIndexOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of range (count %d)", index, count),
		Value:  index,
	}
}

// InvalidIndex creates an error for a negative array index
func InvalidIndex(path []string, index int) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindInvalidIndex,
		Path:   path,
		Detail: fmt.Sprintf("negative index %d", index),
		Value:  index,
	}
}

// NullDereference creates an error for dereferencing a zero pointer value
func NullDereference(path []string) *Error {
	return &Error{
		Phase:  PhaseDeref,
		Kind:   KindNullDereference,
		Path:   path,
		Detail: "pointer value is 0",
	}
}

// NotInstantiable creates an error for types with no storage layout,
// such as bare function types and void
func NotInstantiable(ctype string) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindNotInstantiable,
		CType:  ctype,
		Detail: "type has no storage layout",
	}
}

// UnknownKind creates an error for an unrecognized descriptor variant
func UnknownKind(phase Phase, ctype string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownKind,
		CType:  ctype,
		Detail: "unrecognized descriptor kind",
	}
}

// Overflow creates an error for a value that does not fit the target type
func Overflow(path []string, value any, ctype string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindOverflow,
		Path:   path,
		CType:  ctype,
		Detail: fmt.Sprintf("value %v overflows %s", value, ctype),
		Value:  value,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}
