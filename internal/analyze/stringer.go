package analyze

import (
	"strings"
)

// TypeString renders a type in source syntax.
// Examples:
//   - "String"
//   - "Option<&str>"
//   - "&[&str]"
//   - "std::collections::HashMap<String, Vec<u8>>"
func TypeString(t TypeExpr) string {
	var sb strings.Builder
	writeType(&sb, t)

	return sb.String()
}

func writeType(sb *strings.Builder, t TypeExpr) {
	switch tt := t.(type) {
	case nil:
		sb.WriteString("<nil>")

	case *Path:
		writePath(sb, tt)

	case *Ref:
		sb.WriteByte('&')

		if tt.Lifetime != "" {
			sb.WriteString("'" + tt.Lifetime + " ")
		}

		if tt.Mut {
			sb.WriteString("mut ")
		}

		writeType(sb, tt.Elem)

	case *Slice:
		sb.WriteByte('[')
		writeType(sb, tt.Elem)
		sb.WriteByte(']')

	case *Array:
		sb.WriteByte('[')
		writeType(sb, tt.Elem)
		sb.WriteString("; ")
		sb.WriteString(tt.Len)
		sb.WriteByte(']')

	case *Tuple:
		sb.WriteByte('(')

		for i, e := range tt.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeType(sb, e)
		}

		if len(tt.Elems) == 1 {
			sb.WriteByte(',')
		}

		sb.WriteByte(')')

	case *Opaque:
		sb.WriteString(tt.Text)
	}
}

func writePath(sb *strings.Builder, p *Path) {
	if p.Global {
		sb.WriteString("::")
	}

	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}

		sb.WriteString(seg.Ident)

		if len(seg.Lifetimes) == 0 && len(seg.Args) == 0 {
			continue
		}

		sb.WriteByte('<')

		n := 0
		for _, lt := range seg.Lifetimes {
			if n > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString("'" + lt)
			n++
		}

		for _, arg := range seg.Args {
			if n > 0 {
				sb.WriteString(", ")
			}

			writeType(sb, arg)
			n++
		}

		sb.WriteByte('>')
	}
}

// Equal reports whether two type expressions have the same structure.
func Equal(a, b TypeExpr) bool {
	switch at := a.(type) {
	case nil:
		return b == nil

	case *Path:
		bt, ok := b.(*Path)
		if !ok || at.Global != bt.Global || len(at.Segments) != len(bt.Segments) {
			return false
		}

		for i := range at.Segments {
			if !segmentEqual(at.Segments[i], bt.Segments[i]) {
				return false
			}
		}

		return true

	case *Ref:
		bt, ok := b.(*Ref)
		return ok && at.Mut == bt.Mut && at.Lifetime == bt.Lifetime && Equal(at.Elem, bt.Elem)

	case *Slice:
		bt, ok := b.(*Slice)
		return ok && Equal(at.Elem, bt.Elem)

	case *Array:
		bt, ok := b.(*Array)
		return ok && at.Len == bt.Len && Equal(at.Elem, bt.Elem)

	case *Tuple:
		bt, ok := b.(*Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}

		for i := range at.Elems {
			if !Equal(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}

		return true

	case *Opaque:
		bt, ok := b.(*Opaque)
		return ok && at.Text == bt.Text && at.Arg == bt.Arg
	}

	return false
}

func segmentEqual(a, b Segment) bool {
	if a.Ident != b.Ident || len(a.Lifetimes) != len(b.Lifetimes) || len(a.Args) != len(b.Args) {
		return false
	}

	for i := range a.Lifetimes {
		if a.Lifetimes[i] != b.Lifetimes[i] {
			return false
		}
	}

	for i := range a.Args {
		if !Equal(a.Args[i], b.Args[i]) {
			return false
		}
	}

	return true
}

// FieldPath returns a readable path for a field within an aggregate.
// Example: Person, nickname -> "Person.nickname"
func FieldPath(aggregate string, field string) string {
	if field == "" {
		return aggregate
	}

	return aggregate + "." + field
}
