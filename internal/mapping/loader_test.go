package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/plan"
	"accessor-generator/internal/signature"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
strategy: shallow
dialect:
  owned_text: Text
markers:
  accessor: "-"
sources:
  files: src/model.rs
  marker: Accessors
output:
  dir: ./generated
aggregates:
  - name: Person
    visibility: public
    fields:
      - name: name
        visibility: public
        type: String
      - "pub nickname: Option<String>"
      - "tags: Vec<std::string::String>"
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, signature.StrategyShallow, f.Strategy)

	// Unset dialect entries fall back to defaults.
	assert.Equal(t, "Text", f.Dialect.OwnedText)
	assert.Equal(t, "str", f.Dialect.BorrowedText)
	assert.Equal(t, "Option", f.Dialect.Optional)
	assert.Equal(t, "Vec", f.Dialect.Sequence)

	assert.Equal(t, plan.DefaultMarkers().Constructor, f.Markers.Constructor)
	assert.Equal(t, plan.MarkerDisabled, f.Markers.Accessor)

	assert.Equal(t, StringOrArray{"src/model.rs"}, f.Sources.Files)
	assert.Equal(t, "Accessors", f.Sources.Marker)
	assert.Equal(t, "./generated", f.Output.Dir)
	assert.Equal(t, DefaultSuffix, f.Output.Suffix)

	require.Len(t, f.Aggregates, 1)
	agg := f.Aggregates[0]
	assert.Equal(t, "Person", agg.Name)
	require.Len(t, agg.Fields, 3)
	assert.Equal(t, FieldDef{Name: "name", Visibility: "public", Type: "String"}, agg.Fields[0])
	assert.Equal(t, FieldDef{Name: "nickname", Visibility: "pub", Type: "Option<String>"}, agg.Fields[1])
	assert.Equal(t, FieldDef{Name: "tags", Type: "Vec<std::string::String>"}, agg.Fields[2])
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(`version: "1"`))
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, f.Version)
	assert.Equal(t, signature.StrategyFull, f.Strategy)
	assert.Equal(t, signature.DefaultDialect(), f.Dialect)
	assert.Equal(t, plan.DefaultMarkers(), f.Markers)
	assert.True(t, f.Sources.Files.IsEmpty())
	assert.Equal(t, Default(), f)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("aggregates: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse declaration YAML")
}

func TestParse_BadShorthand(t *testing.T) {
	_, err := Parse([]byte(`
aggregates:
  - name: Person
    fields:
      - "no separator here"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field shorthand")
}

func TestStringOrArray(t *testing.T) {
	f, err := Parse([]byte(`
sources:
  files: [a.rs, b.rs]
`))
	require.NoError(t, err)

	assert.Equal(t, StringOrArray{"a.rs", "b.rs"}, f.Sources.Files)
	assert.Equal(t, "a.rs", f.Sources.Files.First())
	assert.True(t, f.Sources.Files.Contains("b.rs"))
	assert.False(t, f.Sources.Files.Contains("c.rs"))
	assert.Empty(t, StringOrArray{}.First())
}

func TestParseFieldShorthand(t *testing.T) {
	tests := []struct {
		in   string
		want FieldDef
	}{
		{"name: String", FieldDef{Name: "name", Type: "String"}},
		{"pub name: String", FieldDef{Name: "name", Visibility: "pub", Type: "String"}},
		{"pub(crate) id: u64", FieldDef{Name: "id", Visibility: "pub(crate)", Type: "u64"}},
		{"pub(in crate::model) id: u64", FieldDef{Name: "id", Visibility: "pub(in crate::model)", Type: "u64"}},
		{"map: std::collections::HashMap<String, u8>", FieldDef{Name: "map", Type: "std::collections::HashMap<String, u8>"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFieldShorthand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFile_Declarations(t *testing.T) {
	f, err := Parse([]byte(`
aggregates:
  - name: Person
    visibility: pub
    fields:
      - "pub name: String"
      - "nickname: Option<String>"
  - name: Marker
    unit: true
  - name: Pair
    generics: "<T>"
    fields:
      - type: T
      - type: T
`))
	require.NoError(t, err)

	decls, err := f.Declarations("people.yaml")
	require.NoError(t, err)
	require.Len(t, decls, 3)

	person := decls[0]
	assert.Equal(t, "Person", person.Name)
	assert.Equal(t, analyze.VisibilityPublic, person.Visibility)
	assert.Equal(t, "people.yaml", person.Source)
	require.Len(t, person.Fields, 2)
	assert.Equal(t, analyze.VisibilityPublic, person.Fields[0].Visibility)
	assert.Equal(t, analyze.VisibilityPrivate, person.Fields[1].Visibility)
	assert.Equal(t, "Option<String>", person.Fields[1].Type.String())
	assert.Equal(t, 1, person.Fields[1].Index)

	assert.True(t, decls[1].Unit)

	pair := decls[2]
	assert.Equal(t, "<T>", pair.Generics)
	assert.False(t, pair.Fields[0].IsNamed())
}

func TestFile_EmptyFieldsVersusUnit(t *testing.T) {
	f, err := Parse([]byte(`
aggregates:
  - name: Empty
    visibility: pub
    fields: []
  - name: Bare
  - name: Marker
    unit: true
  - name: Bounded
    generics: "<T>"
    where: "where T: Clone"
    fields:
      - "value: T"
`))
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	decls, err := f.Declarations("")
	require.NoError(t, err)
	require.Len(t, decls, 4)

	assert.False(t, decls[0].Unit)
	assert.False(t, decls[1].Unit)
	assert.True(t, decls[2].Unit)
	assert.Equal(t, "where T: Clone", decls[3].Where)

	set, err := plan.Synthesize(decls[0], plan.Options{})
	require.NoError(t, err)
	assert.Empty(t, set.Accessors)
	assert.Empty(t, set.Constructor.Params)
	assert.Equal(t, "Empty", set.Constructor.Result.String())

	_, err = plan.Synthesize(decls[2], plan.Options{})
	assert.Error(t, err)
}

func TestFile_ValidateUnitWithFields(t *testing.T) {
	f, err := Parse([]byte(`
aggregates:
  - name: Marker
    unit: true
    fields:
      - "x: u8"
`))
	require.NoError(t, err)

	err = f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit declaration cannot have fields")
}

func TestFile_DeclarationsBadType(t *testing.T) {
	f, err := Parse([]byte(`
aggregates:
  - name: Person
    fields:
      - "name: Option<String"
`))
	require.NoError(t, err)

	_, err = f.Declarations("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Person.name")
}

func TestFile_Validate(t *testing.T) {
	f, err := Parse([]byte(`
strategy: deep
aggregates:
  - visibility: everywhere
    fields:
      - name: x
`))
	require.NoError(t, err)

	err = f.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, `unknown mapping strategy "deep"`)
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, `unknown visibility "everywhere"`)
	assert.Contains(t, msg, "type is required")

	assert.NoError(t, Default().Validate())
}

func TestFile_Options(t *testing.T) {
	f := Default()
	f.Strategy = signature.StrategyShallow

	opts, err := f.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, signature.StrategyShallow, opts.Mapper.Name())
	assert.Equal(t, plan.DefaultMarkers(), opts.Markers)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	f := Default()
	f.Sources.Files = StringOrArray{"model.rs"}
	f.Aggregates = []AggregateDef{{
		Name:   "Person",
		Fields: []FieldDef{{Name: "name", Type: "String"}},
	}}

	path := filepath.Join(t.TempDir(), "decl.yaml")
	require.NoError(t, WriteFile(f, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "files: model.rs")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read declaration file")
}
