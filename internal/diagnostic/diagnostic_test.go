package diagnostic

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_CodesAndSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		code     string
		msg      string
	}{
		{
			name:     "unit declaration",
			err:      &UnsupportedFieldShapeError{Aggregate: "Marker", Index: -1},
			sentinel: ErrUnsupportedFieldShape,
			code:     CodeUnsupportedFieldShape,
			msg:      "Marker: unit declaration has no named fields",
		},
		{
			name:     "positional field",
			err:      &UnsupportedFieldShapeError{Aggregate: "Point", Index: 1},
			sentinel: ErrUnsupportedFieldShape,
			code:     CodeUnsupportedFieldShape,
			msg:      "Point: field 1 is positional; only named fields are supported",
		},
		{
			name:     "unmappable without field",
			err:      &UnmappableTypeError{Type: "&str", Shape: "reference"},
			sentinel: ErrUnmappableType,
			code:     CodeUnmappableType,
			msg:      "no signature mapping for reference type &str",
		},
		{
			name:     "unmappable with field",
			err:      &UnmappableTypeError{Type: "(u8, u8)", Shape: "tuple", FieldPath: "Pair.inner"},
			sentinel: ErrUnmappableType,
			code:     CodeUnmappableType,
			msg:      "Pair.inner: no signature mapping for tuple type (u8, u8)",
		},
		{
			name:     "collision",
			err:      &NameCollisionError{Aggregate: "Clash", Function: "get_x", First: "x", Second: "x"},
			sentinel: ErrNameCollision,
			code:     CodeNameCollision,
			msg:      `Clash: fields "x" and "x" both generate get_x`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.msg)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.code, CodeOf(tt.err))

			wrapped := fmt.Errorf("synthesizing X: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.code, CodeOf(wrapped))
		})
	}
}

func TestErrors_DistinctSentinels(t *testing.T) {
	err := &UnmappableTypeError{Type: "[u8; 4]", Shape: "array"}
	assert.NotErrorIs(t, err, ErrNameCollision)
	assert.NotErrorIs(t, err, ErrUnsupportedFieldShape)
}

func TestCodeOf_Uncoded(t *testing.T) {
	assert.Empty(t, CodeOf(errors.New("plain")))
	assert.Empty(t, CodeOf(nil))
}

func TestDiagnostics_AddAndMerge(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddInfo("", "Person: 5 functions (full)", "person.rs", "")
	d.AddWarning(CodeNearMissType, "looks like Option", "person.rs", "Person.alias", "Option")
	assert.True(t, d.IsValid())
	assert.False(t, d.HasErrors())

	var other Diagnostics
	other.AddFailure("broken.rs", &UnsupportedFieldShapeError{Aggregate: "Unit", Index: -1})
	other.AddError(CodeNameCollision, "dup", "", "Clash.x")

	d.Merge(other)

	require.Len(t, d.Errors, 2)
	require.Len(t, d.Warnings, 1)
	require.Len(t, d.Infos, 1)
	assert.True(t, d.HasErrors())
	assert.Equal(t, CodeUnsupportedFieldShape, d.Errors[0].Code)
	assert.Equal(t, SeverityError, d.Errors[0].Severity)

	assert.EqualError(t, d.Error(),
		"[broken.rs]: [UNSUPPORTED_FIELD_SHAPE] Unit: unit declaration has no named fields; Clash.x: [NAME_COLLISION] dup")
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "message only",
			diag: Diagnostic{Message: "hello"},
			want: "hello",
		},
		{
			name: "full",
			diag: Diagnostic{Code: "C", Message: "m", Source: "a.rs", FieldPath: "A.b"},
			want: "[a.rs] A.b: [C] m",
		},
		{
			name: "suggestions",
			diag: Diagnostic{Code: CodeNearMissType, Message: "m", FieldPath: "A.b", Suggestions: []string{"Option", "Vec"}},
			want: "A.b: [NEAR_MISS_TYPE] m (suggestion: Option, Vec)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(7).String())
}

func TestDiagnostics_Print(t *testing.T) {
	var d Diagnostics
	d.AddError(CodeUnmappableType, "bad", "", "A.b")
	d.AddInfo("", "A: 3 functions (full)", "", "")
	d.AddWarning(CodeNearMissType, "close", "", "A.c", "Vec")

	var quiet bytes.Buffer
	require.NoError(t, d.Print(&quiet, false))
	assert.Equal(t, "A.c: [NEAR_MISS_TYPE] close (suggestion: Vec)\nA.b: [UNMAPPABLE_TYPE] bad\n", quiet.String())

	var loud bytes.Buffer
	require.NoError(t, d.Print(&loud, true))
	assert.Equal(t, "A: 3 functions (full)\n"+quiet.String(), loud.String())
}
