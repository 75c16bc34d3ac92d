package signature

import (
	"errors"

	"accessor-generator/internal/analyze"
)

// Dialect names the identifiers the mapper recognizes.
type Dialect struct {
	OwnedText    string `yaml:"owned_text,omitempty"`    // heap-owned text, e.g. String
	BorrowedText string `yaml:"borrowed_text,omitempty"` // text view behind a reference, e.g. str
	Optional     string `yaml:"optional,omitempty"`      // present-or-absent wrapper, e.g. Option
	Sequence     string `yaml:"sequence,omitempty"`      // owned collection wrapper, e.g. Vec
}

// DefaultDialect returns the standard library identifiers.
func DefaultDialect() Dialect {
	return Dialect{
		OwnedText:    "String",
		BorrowedText: "str",
		Optional:     "Option",
		Sequence:     "Vec",
	}
}

// WithDefaults fills empty identifiers from DefaultDialect.
func (d Dialect) WithDefaults() Dialect {
	def := DefaultDialect()

	if d.OwnedText == "" {
		d.OwnedText = def.OwnedText
	}

	if d.BorrowedText == "" {
		d.BorrowedText = def.BorrowedText
	}

	if d.Optional == "" {
		d.Optional = def.Optional
	}

	if d.Sequence == "" {
		d.Sequence = def.Sequence
	}

	return d
}

// Validate checks that every identifier is set.
func (d Dialect) Validate() error {
	var errs []error

	if d.OwnedText == "" {
		errs = append(errs, errors.New("dialect: owned_text is empty"))
	}

	if d.BorrowedText == "" {
		errs = append(errs, errors.New("dialect: borrowed_text is empty"))
	}

	if d.Optional == "" {
		errs = append(errs, errors.New("dialect: optional is empty"))
	}

	if d.Sequence == "" {
		errs = append(errs, errors.New("dialect: sequence is empty"))
	}

	return errors.Join(errs...)
}

// IsOwnedText reports whether t is exactly the owned text type: a single
// unqualified segment with no generic arguments.
func (d Dialect) IsOwnedText(t analyze.TypeExpr) bool {
	p, ok := t.(*analyze.Path)
	if !ok || !p.IsPlain() {
		return false
	}

	seg := p.Segments[0]

	return seg.Ident == d.OwnedText && len(seg.Args) == 0 && len(seg.Lifetimes) == 0
}

// BorrowedTextType returns &<borrowed text>.
func (d Dialect) BorrowedTextType() analyze.TypeExpr {
	return &analyze.Ref{Elem: analyze.NewPath(d.BorrowedText)}
}

// OptionalInner returns the argument of a single-argument optional wrapper.
func (d Dialect) OptionalInner(t analyze.TypeExpr) (analyze.TypeExpr, bool) {
	return wrapperInner(t, d.Optional)
}

// SequenceInner returns the argument of a single-argument sequence wrapper.
func (d Dialect) SequenceInner(t analyze.TypeExpr) (analyze.TypeExpr, bool) {
	return wrapperInner(t, d.Sequence)
}

// wrapperInner matches marker<T>: one unqualified segment named marker with
// exactly one type argument and no lifetime arguments.
func wrapperInner(t analyze.TypeExpr, marker string) (analyze.TypeExpr, bool) {
	p, ok := t.(*analyze.Path)
	if !ok || !p.IsPlain() {
		return nil, false
	}

	seg := p.Segments[0]
	if seg.Ident != marker || len(seg.Args) != 1 || len(seg.Lifetimes) != 0 {
		return nil, false
	}

	// Const arguments and associated type bindings are not types.
	if o, ok := seg.Args[0].(*analyze.Opaque); ok && o.Arg {
		return nil, false
	}

	return seg.Args[0], true
}
