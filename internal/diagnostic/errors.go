package diagnostic

import (
	"errors"
	"fmt"
)

// Diagnostic codes.
const (
	CodeUnsupportedFieldShape = "UNSUPPORTED_FIELD_SHAPE"
	CodeUnmappableType        = "UNMAPPABLE_TYPE"
	CodeNameCollision         = "NAME_COLLISION"

	// CodeNearMissType is a warning: a field type resembles a wrapper or
	// owned text but will be mapped as a plain path.
	CodeNearMissType = "NEAR_MISS_TYPE"
)

// Sentinels matched by the typed errors through errors.Is.
var (
	ErrUnsupportedFieldShape = errors.New("unsupported field shape")
	ErrUnmappableType        = errors.New("unmappable type")
	ErrNameCollision         = errors.New("generated name collision")
)

// UnsupportedFieldShapeError reports an aggregate that is not a named-field
// struct: a positional field, or no fields block at all.
type UnsupportedFieldShapeError struct {
	Aggregate string
	// Index is the offending field position, or -1 for a unit declaration.
	Index int
}

func (e *UnsupportedFieldShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: unit declaration has no named fields", e.Aggregate)
	}

	return fmt.Sprintf("%s: field %d is positional; only named fields are supported", e.Aggregate, e.Index)
}

// Code returns the diagnostic code.
func (e *UnsupportedFieldShapeError) Code() string { return CodeUnsupportedFieldShape }

// Is matches ErrUnsupportedFieldShape.
func (e *UnsupportedFieldShapeError) Is(target error) bool { return target == ErrUnsupportedFieldShape }

// UnmappableTypeError reports a type shape the signature mapper has no rule for.
type UnmappableTypeError struct {
	// Type is the rendered type that could not be mapped.
	Type string
	// Shape names the variant, e.g. "reference" or "tuple".
	Shape string
	// FieldPath is filled in by the synthesizer ("Person.tags").
	FieldPath string
}

func (e *UnmappableTypeError) Error() string {
	msg := fmt.Sprintf("no signature mapping for %s type %s", e.Shape, e.Type)
	if e.FieldPath != "" {
		return e.FieldPath + ": " + msg
	}

	return msg
}

// Code returns the diagnostic code.
func (e *UnmappableTypeError) Code() string { return CodeUnmappableType }

// Is matches ErrUnmappableType.
func (e *UnmappableTypeError) Is(target error) bool { return target == ErrUnmappableType }

// NameCollisionError reports two fields that would produce the same
// generated function name.
type NameCollisionError struct {
	Aggregate string
	Function  string
	First     string
	Second    string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("%s: fields %q and %q both generate %s", e.Aggregate, e.First, e.Second, e.Function)
}

// Code returns the diagnostic code.
func (e *NameCollisionError) Code() string { return CodeNameCollision }

// Is matches ErrNameCollision.
func (e *NameCollisionError) Is(target error) bool { return target == ErrNameCollision }

// Coded is implemented by every error in this package.
type Coded interface {
	error
	Code() string
}

// CodeOf returns the code of the first Coded error in err's chain, or "".
func CodeOf(err error) string {
	var c Coded
	if errors.As(err, &c) {
		return c.Code()
	}

	return ""
}
