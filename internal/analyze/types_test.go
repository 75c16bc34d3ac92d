package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in   string
		want Visibility
	}{
		{"", VisibilityPrivate},
		{"private", VisibilityPrivate},
		{"pub(self)", VisibilityPrivate},
		{"crate", VisibilityCrate},
		{"pub(crate)", VisibilityCrate},
		{"pub( crate )", VisibilityCrate},
		{"pub(super)", VisibilityCrate},
		{"pub(in crate::model)", VisibilityCrate},
		{"pub", VisibilityPublic},
		{"public", VisibilityPublic},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVisibility(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseVisibility("everyone")
	assert.Error(t, err)
}

func TestVisibility_String(t *testing.T) {
	assert.Equal(t, "private", VisibilityPrivate.String())
	assert.Equal(t, "crate", VisibilityCrate.String())
	assert.Equal(t, "public", VisibilityPublic.String())
	assert.Equal(t, "Visibility(7)", Visibility(7).String())

	assert.Empty(t, VisibilityPrivate.Modifier())
	assert.Equal(t, "pub(crate)", VisibilityCrate.Modifier())
	assert.Equal(t, "pub", VisibilityPublic.Modifier())
}

func TestPath_Helpers(t *testing.T) {
	p := NewPath("std", "string", "String")
	assert.Equal(t, "String", p.Last().Ident)
	assert.False(t, p.IsPlain())
	assert.True(t, NewPath("String").IsPlain())
	assert.False(t, (&Path{Global: true, Segments: []Segment{{Ident: "String"}}}).IsPlain())
	assert.Equal(t, Segment{}, (&Path{}).Last())
}

func TestAggregate_SelfType(t *testing.T) {
	tests := []struct {
		generics string
		want     string
	}{
		{"", "Foo"},
		{"<T>", "Foo<T>"},
		{"<'a, T: Clone + Send>", "Foo<'a, T>"},
		{"<T: Into<Vec<u8>>, const N: usize>", "Foo<T, N>"},
		{"<K, V = HashMap<K, u8>>", "Foo<K, V>"},
		{"<'a, 'b: 'a>", "Foo<'a, 'b>"},
	}

	for _, tt := range tests {
		t.Run(tt.generics, func(t *testing.T) {
			agg := &Aggregate{Name: "Foo", Generics: tt.generics}
			assert.Equal(t, tt.want, agg.SelfType().String())
		})
	}
}

func TestField_IsNamed(t *testing.T) {
	assert.True(t, (&Field{Name: "x"}).IsNamed())
	assert.False(t, (&Field{}).IsNamed())
}
