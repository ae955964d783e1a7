package typedb

import (
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

func TestFromWITPrimitives(t *testing.T) {
	cases := []struct {
		name string
		in   wit.Type
		want ctype.Type
	}{
		{"bool", wit.Bool{}, ctype.U8},
		{"u8", wit.U8{}, ctype.U8},
		{"s8", wit.S8{}, ctype.S8},
		{"u16", wit.U16{}, ctype.U16},
		{"s16", wit.S16{}, ctype.S16},
		{"u32", wit.U32{}, ctype.U32},
		{"s32", wit.S32{}, ctype.S32},
		{"u64", wit.U64{}, ctype.U64},
		{"s64", wit.S64{}, ctype.S64},
		{"f32", wit.F32{}, ctype.F32},
		{"f64", wit.F64{}, ctype.F64},
		{"char", wit.Char{}, ctype.U32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromWIT(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFromWITRecord(t *testing.T) {
	name := "point"
	td := &wit.TypeDef{
		Name: &name,
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "x", Type: wit.F32{}},
				{Name: "y", Type: wit.F32{}},
				{Name: "id", Type: wit.U64{}},
			},
		},
	}

	got, err := FromWIT(td)
	if err != nil {
		t.Fatal(err)
	}
	st, ok := got.(*ctype.Struct)
	if !ok {
		t.Fatalf("expected *ctype.Struct, got %T", got)
	}
	if st.Name != "point" {
		t.Errorf("name: got %q, want point", st.Name)
	}
	if len(st.Fields) != 3 {
		t.Fatalf("fields: got %d, want 3", len(st.Fields))
	}
	if st.Fields[2].Name != "id" || st.Fields[2].Type != ctype.Type(ctype.U64) {
		t.Errorf("third field: got %+v", st.Fields[2])
	}
}

func TestFromWITTuple(t *testing.T) {
	td := &wit.TypeDef{
		Kind: &wit.Tuple{Types: []wit.Type{wit.U32{}, wit.U64{}}},
	}

	got, err := FromWIT(td)
	if err != nil {
		t.Fatal(err)
	}
	st, ok := got.(*ctype.Struct)
	if !ok {
		t.Fatalf("expected *ctype.Struct, got %T", got)
	}
	f, found := st.FieldByName("1")
	if !found {
		t.Fatal("tuple element 1 missing")
	}
	if f.Type != ctype.Type(ctype.U64) {
		t.Errorf("element 1: got %v, want u64", f.Type)
	}
}

func TestFromWITEnum(t *testing.T) {
	name := "mode"
	td := &wit.TypeDef{
		Name: &name,
		Kind: &wit.Enum{Cases: []wit.EnumCase{
			{Name: "idle"}, {Name: "walking"}, {Name: "swimming"},
		}},
	}

	got, err := FromWIT(td)
	if err != nil {
		t.Fatal(err)
	}
	en, ok := got.(*ctype.Enum)
	if !ok {
		t.Fatalf("expected *ctype.Enum, got %T", got)
	}
	if en.Base != ctype.U8 {
		t.Errorf("base: got %v, want u8 for 3 cases", en.Base)
	}
	if v, ok := en.ValueOf("swimming"); !ok || v != 2 {
		t.Errorf("swimming: got %d/%v, want 2", v, ok)
	}
}

func TestFromWITFlags(t *testing.T) {
	td := &wit.TypeDef{
		Kind: &wit.Flags{Flags: []wit.Flag{
			{Name: "read"}, {Name: "write"}, {Name: "exec"},
		}},
	}

	got, err := FromWIT(td)
	if err != nil {
		t.Fatal(err)
	}
	en, ok := got.(*ctype.Enum)
	if !ok {
		t.Fatalf("expected *ctype.Enum, got %T", got)
	}
	if en.Base != ctype.U8 {
		t.Errorf("base: got %v, want u8 for 3 flags", en.Base)
	}
	if v, ok := en.ValueOf("exec"); !ok || v != 4 {
		t.Errorf("exec: got %d/%v, want bit 4", v, ok)
	}
}

func TestFromWITUnsupported(t *testing.T) {
	cases := []struct {
		name string
		in   wit.Type
	}{
		{"string", wit.String{}},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
		{"option", &wit.TypeDef{Kind: &wit.Option{Type: wit.U32{}}}},
		{"result", &wit.TypeDef{Kind: &wit.Result{}}},
		{"variant", &wit.TypeDef{Kind: &wit.Variant{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromWIT(tc.in)
			wantKind(t, err, errors.KindUnsupported)
		})
	}
}

func TestImportWIT(t *testing.T) {
	db := New()
	td := &wit.TypeDef{
		Kind: &wit.Record{Fields: []wit.Field{{Name: "n", Type: wit.U32{}}}},
	}
	if err := db.ImportWIT("counter", td); err != nil {
		t.Fatal(err)
	}
	got, err := db.Lookup("counter")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*ctype.Struct); !ok {
		t.Fatalf("expected struct, got %T", got)
	}
}
