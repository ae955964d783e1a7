// Package layout computes size, alignment, and field offsets for C type
// descriptors.
//
// The resolver applies standard C layout rules for a configured target:
//   - Scalars: alignment equals size (u8=1, u32=4, f64=8, ...)
//   - Pointers: size and alignment are the configured pointer width,
//     irrespective of the pointee
//   - Structs: fields laid out in declaration order, each padded to its
//     own alignment; total size rounded up to the struct alignment
//   - Unions: max member size and alignment, every member at offset 0
//   - Arrays: count times element size, element alignment
//   - Enums: the layout of their base scalar
//
// Descriptors carrying explicit offsets or sizes from the type database
// take precedence when the configuration trusts them; the resolver then
// defers instead of recomputing.
//
// Resolution is a pure function of the descriptor and the configuration.
// Results for composite descriptors are cached per descriptor identity,
// which is an optimization only and never observable.
package layout
