package analyze

import (
	"fmt"
	"strings"
)

// Visibility is the declared visibility of an aggregate or a field.
type Visibility int

const (
	VisibilityPrivate Visibility = iota // no modifier, or pub(self)
	VisibilityCrate                     // pub(crate), pub(super), pub(in path)
	VisibilityPublic                    // pub
)

// String returns the keyword used in declaration files.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityCrate:
		return "crate"
	case VisibilityPublic:
		return "public"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// Modifier returns the source modifier for the visibility, or "" for private.
func (v Visibility) Modifier() string {
	switch v {
	case VisibilityCrate:
		return "pub(crate)"
	case VisibilityPublic:
		return "pub"
	default:
		return ""
	}
}

// ParseVisibility accepts both declaration-file keywords ("public") and
// source modifiers ("pub(crate)").
func ParseVisibility(s string) (Visibility, error) {
	s = strings.Join(strings.Fields(s), "")

	switch s {
	case "", "private", "pub(self)":
		return VisibilityPrivate, nil
	case "crate", "pub(crate)", "pub(super)":
		return VisibilityCrate, nil
	case "public", "pub":
		return VisibilityPublic, nil
	}

	if strings.HasPrefix(s, "pub(in") && strings.HasSuffix(s, ")") {
		return VisibilityCrate, nil
	}

	return VisibilityPrivate, fmt.Errorf("unknown visibility %q", s)
}

// TypeExpr is a stored or generated type. The set of implementations is
// closed: *Path, *Ref, *Slice, *Array, *Tuple and *Opaque.
type TypeExpr interface {
	fmt.Stringer
	typeExpr()
}

// Segment is one element of a Path. Only the last segment of a path is
// expected to carry generic arguments, but any may.
type Segment struct {
	Ident     string
	Lifetimes []string   // lifetime arguments, without the leading quote
	Args      []TypeExpr // type and const arguments in angle-bracket position
}

// Path is a named type such as String, Option<T> or std::collections::HashMap<K, V>.
type Path struct {
	Global   bool // leading "::"
	Segments []Segment
}

// Last returns the last segment of the path.
func (p *Path) Last() Segment {
	if len(p.Segments) == 0 {
		return Segment{}
	}

	return p.Segments[len(p.Segments)-1]
}

// IsPlain reports whether the path is a single unqualified segment.
func (p *Path) IsPlain() bool {
	return !p.Global && len(p.Segments) == 1
}

// Ref is a borrowed view of Elem.
type Ref struct {
	Lifetime string
	Mut      bool
	Elem     TypeExpr
}

// Slice is an unsized sequence view [Elem]. It only appears behind a Ref.
type Slice struct {
	Elem TypeExpr
}

// Array is a fixed size array [Elem; Len]. Len is kept as source text.
type Array struct {
	Elem TypeExpr
	Len  string
}

// Tuple is (A, B, ...). An empty tuple is the unit type.
type Tuple struct {
	Elems []TypeExpr
}

// Opaque is any type syntax the model does not decompose (fn pointers,
// trait objects, impl Trait, raw pointers, qualified self paths, macro
// invocations). Text is the source form.
type Opaque struct {
	Text string
	// Arg marks a generic argument that is not a type: a const value or an
	// associated type binding such as Item = u8.
	Arg bool
}

func (*Path) typeExpr()   {}
func (*Ref) typeExpr()    {}
func (*Slice) typeExpr()  {}
func (*Array) typeExpr()  {}
func (*Tuple) typeExpr()  {}
func (*Opaque) typeExpr() {}

func (t *Path) String() string   { return TypeString(t) }
func (t *Ref) String() string    { return TypeString(t) }
func (t *Slice) String() string  { return TypeString(t) }
func (t *Array) String() string  { return TypeString(t) }
func (t *Tuple) String() string  { return TypeString(t) }
func (t *Opaque) String() string { return TypeString(t) }

// NewPath builds an unqualified path from plain identifiers.
func NewPath(idents ...string) *Path {
	p := &Path{Segments: make([]Segment, 0, len(idents))}
	for _, id := range idents {
		p.Segments = append(p.Segments, Segment{Ident: id})
	}

	return p
}

// Generic builds a single segment path ident<args...>.
func Generic(ident string, args ...TypeExpr) *Path {
	return &Path{Segments: []Segment{{Ident: ident, Args: args}}}
}

// Aggregate is a named-field struct declaration.
type Aggregate struct {
	Name       string
	Visibility Visibility
	// Generics is the parameter list as written ("<'a, T: Clone>"), rendered
	// verbatim on the impl block. Empty for non-generic structs.
	Generics string
	// Where is the where clause as written ("where T: Clone"), or empty.
	Where  string
	Fields []Field
	// Unit is set for field-less declarations (struct Marker;).
	Unit bool
	// Source is the file the declaration came from, if any.
	Source string
}

// Field describes one struct field. An empty Name marks a positional field.
type Field struct {
	Name       string
	Visibility Visibility
	Type       TypeExpr
	Index      int
}

// IsNamed returns true if the field has an identifier.
func (f *Field) IsNamed() bool {
	return f.Name != ""
}

// SelfType returns the aggregate's own type as a path, including generic
// parameter names when the aggregate is generic.
func (a *Aggregate) SelfType() *Path {
	seg := Segment{Ident: a.Name}

	for _, param := range genericParamNames(a.Generics) {
		if strings.HasPrefix(param, "'") {
			seg.Lifetimes = append(seg.Lifetimes, strings.TrimPrefix(param, "'"))
			continue
		}

		seg.Args = append(seg.Args, NewPath(param))
	}

	return &Path{Segments: []Segment{seg}}
}

// genericParamNames extracts parameter names from "<'a, T: Clone, const N: usize>".
func genericParamNames(generics string) []string {
	inner := strings.TrimSpace(generics)
	inner = strings.TrimPrefix(inner, "<")
	inner = strings.TrimSuffix(inner, ">")

	if strings.TrimSpace(inner) == "" {
		return nil
	}

	var names []string

	depth := 0
	start := 0

	flush := func(end int) {
		part := strings.TrimSpace(inner[start:end])
		part = strings.TrimPrefix(part, "const ")

		if i := strings.IndexAny(part, ":="); i >= 0 {
			part = part[:i]
		}

		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}

	for i, r := range inner {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}

	flush(len(inner))

	return names
}
