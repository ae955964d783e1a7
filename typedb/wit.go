package typedb

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

// FromWIT converts a WIT type into a ctype descriptor, so structures a
// component lays out in guest memory can be viewed with the same engine
// as any other memory. Only types with a fixed guest representation
// convert: primitives, records, tuples, enums, and flags. Types whose
// representation involves guest allocation or runtime tables (string,
// list, option, result, variant, resources) do not.
func FromWIT(t wit.Type) (ctype.Type, error) {
	switch w := t.(type) {
	case wit.Bool, wit.U8:
		return ctype.U8, nil
	case wit.S8:
		return ctype.S8, nil
	case wit.U16:
		return ctype.U16, nil
	case wit.S16:
		return ctype.S16, nil
	case wit.U32:
		return ctype.U32, nil
	case wit.S32:
		return ctype.S32, nil
	case wit.U64:
		return ctype.U64, nil
	case wit.S64:
		return ctype.S64, nil
	case wit.F32:
		return ctype.F32, nil
	case wit.F64:
		return ctype.F64, nil
	case wit.Char:
		// A char is a unicode scalar value stored in 4 bytes.
		return ctype.U32, nil
	case *wit.TypeDef:
		return fromTypeDef(w)
	case nil:
		return nil, errors.InvalidInput(errors.PhaseImport, "nil WIT type")
	default:
		return nil, errors.Unsupported(errors.PhaseImport,
			fmt.Sprintf("WIT type %T", t))
	}
}

func fromTypeDef(td *wit.TypeDef) (ctype.Type, error) {
	name := ""
	if td.Name != nil {
		name = *td.Name
	}

	switch kind := td.Kind.(type) {
	case *wit.Record:
		fields := make([]ctype.Field, 0, len(kind.Fields))
		for _, f := range kind.Fields {
			ft, err := FromWIT(f.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ctype.F(f.Name, ft))
		}
		return ctype.NewStruct(name, fields...), nil

	case *wit.Tuple:
		fields := make([]ctype.Field, 0, len(kind.Types))
		for i, tt := range kind.Types {
			ft, err := FromWIT(tt)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ctype.F(fmt.Sprintf("%d", i), ft))
		}
		return ctype.NewStruct(name, fields...), nil

	case *wit.Enum:
		values := make([]ctype.EnumValue, len(kind.Cases))
		for i, c := range kind.Cases {
			values[i] = ctype.EnumValue{Name: c.Name, Value: int64(i)}
		}
		return ctype.NewEnum(name, discriminantScalar(len(kind.Cases)), values...), nil

	case *wit.Flags:
		base, err := flagsScalar(len(kind.Flags))
		if err != nil {
			return nil, err
		}
		values := make([]ctype.EnumValue, len(kind.Flags))
		for i, f := range kind.Flags {
			values[i] = ctype.EnumValue{Name: f.Name, Value: 1 << i}
		}
		return ctype.NewEnum(name, base, values...), nil

	case nil:
		return nil, errors.InvalidInput(errors.PhaseImport, "WIT typedef without a kind")

	default:
		return nil, errors.Unsupported(errors.PhaseImport,
			fmt.Sprintf("WIT type %T has no fixed memory representation", kind))
	}
}

// discriminantScalar follows the canonical ABI: 1 byte for up to 256
// cases, 2 for up to 65536, 4 beyond.
func discriminantScalar(numCases int) ctype.Scalar {
	switch {
	case numCases <= 256:
		return ctype.U8
	case numCases <= 65536:
		return ctype.U16
	default:
		return ctype.U32
	}
}

// flagsScalar sizes a flags value per the canonical ABI; more than 32
// flags would need multiple words.
func flagsScalar(numFlags int) (ctype.Scalar, error) {
	switch {
	case numFlags <= 8:
		return ctype.U8, nil
	case numFlags <= 16:
		return ctype.U16, nil
	case numFlags <= 32:
		return ctype.U32, nil
	default:
		return ctype.Scalar{}, errors.Unsupported(errors.PhaseImport,
			fmt.Sprintf("flags with %d entries", numFlags))
	}
}

// ImportWIT converts and registers a WIT type under name.
func (db *DB) ImportWIT(name string, t wit.Type) error {
	ct, err := FromWIT(t)
	if err != nil {
		return err
	}
	return db.Register(name, ct)
}
