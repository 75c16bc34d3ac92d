package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSource = `use std::collections::HashMap;

/// A person.
#[derive(Debug, Clone, Accessors)]
pub struct Person {
    pub name: String,
    pub(crate) nickname: Option<String>,
    tags: Vec<String>,
    scores: HashMap<String, u32>,
    raw: &'static [u8],
    pair: (u8, bool),
    digest: [u8; 32],
    qualified: std::string::String,
}

#[derive(Debug)]
struct Skipped {
    value: u8,
}

mod inner {
    #[Accessors]
    pub struct Nested<'a, T: Clone> {
        pub item: &'a T,
    }
}

#[Accessors(skip_new)]
pub struct Point(pub i32, i32);

#[derive(Accessors)]
pub struct Marker;
`

func loadPerson(t *testing.T, opts ...LoaderOption) []*Aggregate {
	t.Helper()

	aggs, err := NewLoader(opts...).ParseSource(t.Context(), "person.rs", []byte(personSource))
	require.NoError(t, err)

	return aggs
}

func byName(aggs []*Aggregate) map[string]*Aggregate {
	out := make(map[string]*Aggregate, len(aggs))
	for _, a := range aggs {
		out[a.Name] = a
	}

	return out
}

func TestLoader_AllStructs(t *testing.T) {
	aggs := loadPerson(t)

	names := make([]string, 0, len(aggs))
	for _, a := range aggs {
		names = append(names, a.Name)
	}

	assert.Equal(t, []string{"Person", "Skipped", "Nested", "Point", "Marker"}, names)
}

func TestLoader_Marker(t *testing.T) {
	aggs := byName(loadPerson(t, WithMarker("Accessors")))

	assert.Len(t, aggs, 4)
	assert.NotContains(t, aggs, "Skipped")
}

func TestLoader_PersonFields(t *testing.T) {
	person := byName(loadPerson(t))["Person"]
	require.NotNil(t, person)

	assert.Equal(t, VisibilityPublic, person.Visibility)
	assert.Equal(t, "person.rs", person.Source)
	assert.False(t, person.Unit)
	assert.Empty(t, person.Generics)

	want := []struct {
		name string
		vis  Visibility
		typ  string
	}{
		{"name", VisibilityPublic, "String"},
		{"nickname", VisibilityCrate, "Option<String>"},
		{"tags", VisibilityPrivate, "Vec<String>"},
		{"scores", VisibilityPrivate, "HashMap<String, u32>"},
		{"raw", VisibilityPrivate, "&'static [u8]"},
		{"pair", VisibilityPrivate, "(u8, bool)"},
		{"digest", VisibilityPrivate, "[u8; 32]"},
		{"qualified", VisibilityPrivate, "std::string::String"},
	}

	require.Len(t, person.Fields, len(want))

	for i, w := range want {
		f := person.Fields[i]
		assert.Equal(t, w.name, f.Name)
		assert.Equal(t, w.vis, f.Visibility, w.name)
		assert.Equal(t, w.typ, TypeString(f.Type), w.name)
		assert.Equal(t, i, f.Index)
	}

	// The loaded model matches what the type parser builds from text.
	for i, w := range want {
		assert.True(t, Equal(MustParseType(w.typ), person.Fields[i].Type), w.name)
	}
}

func TestLoader_NestedModuleAndGenerics(t *testing.T) {
	nested := byName(loadPerson(t))["Nested"]
	require.NotNil(t, nested)

	assert.Equal(t, "<'a, T: Clone>", nested.Generics)
	assert.Equal(t, "Nested<'a, T>", nested.SelfType().String())
	require.Len(t, nested.Fields, 1)
	assert.Equal(t, "&'a T", TypeString(nested.Fields[0].Type))
}

func TestLoader_PositionalAndUnit(t *testing.T) {
	aggs := byName(loadPerson(t))

	point := aggs["Point"]
	require.NotNil(t, point)
	require.Len(t, point.Fields, 2)
	assert.False(t, point.Fields[0].IsNamed())
	assert.Equal(t, VisibilityPublic, point.Fields[0].Visibility)
	assert.Equal(t, VisibilityPrivate, point.Fields[1].Visibility)
	assert.Equal(t, "i32", TypeString(point.Fields[1].Type))

	marker := aggs["Marker"]
	require.NotNil(t, marker)
	assert.True(t, marker.Unit)
	assert.Empty(t, marker.Fields)
}

func TestLoader_SyntaxError(t *testing.T) {
	_, err := NewLoader().ParseSource(t.Context(), "bad.rs", []byte("pub struct Broken {\n    name: String,\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.rs")
}

func TestLoader_LoadFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.rs")
	b := filepath.Join(dir, "b.rs")

	require.NoError(t, os.WriteFile(a, []byte("pub struct A { pub x: u8 }\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("pub struct B { pub y: Vec<u8> }\n"), 0o644))

	aggs, err := NewLoader().LoadFiles(t.Context(), a, b)
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, "A", aggs[0].Name)
	assert.Equal(t, a, aggs[0].Source)
	assert.Equal(t, "B", aggs[1].Name)

	_, err = NewLoader().LoadFiles(t.Context(), filepath.Join(dir, "missing.rs"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read source file")
}

func TestLoader_ParenthesizedTypes(t *testing.T) {
	src := `pub struct P {
    pub a: (u8),
    pub b: Option<(String)>,
    pub c: (u8,),
    pub d: ((String), bool),
}
`

	aggs, err := NewLoader().ParseSource(t.Context(), "p.rs", []byte(src))
	require.NoError(t, err)
	require.Len(t, aggs, 1)

	fields := aggs[0].Fields
	require.Len(t, fields, 4)

	assert.Equal(t, "u8", fields[0].Type.String())
	assert.Equal(t, "Option<String>", fields[1].Type.String())
	assert.Equal(t, "(u8,)", fields[2].Type.String())
	assert.Equal(t, "(String, bool)", fields[3].Type.String())

	// Both front ends agree on the same text.
	for _, f := range fields {
		parsed, err := ParseType(f.Type.String())
		require.NoError(t, err)
		assert.True(t, Equal(parsed, f.Type), f.Name)
	}
}

func TestLoader_WhereClause(t *testing.T) {
	src := `pub struct Cache<K, V>
where
    K: Eq + std::hash::Hash,
    V: Clone,
{
    pub entries: Vec<(K, V)>,
}

pub struct Wrapper<T>(T) where T: Copy;

pub struct Plain<T> {
    pub value: T,
}
`

	aggs := byNameFrom(t, src)

	assert.Equal(t, "where K: Eq + std::hash::Hash, V: Clone,", aggs["Cache"].Where)
	assert.Equal(t, "<K, V>", aggs["Cache"].Generics)
	assert.Equal(t, "where T: Copy", aggs["Wrapper"].Where)
	assert.Empty(t, aggs["Plain"].Where)
}

func byNameFrom(t *testing.T, src string) map[string]*Aggregate {
	t.Helper()

	aggs, err := NewLoader().ParseSource(t.Context(), "src.rs", []byte(src))
	require.NoError(t, err)

	return byName(aggs)
}
