package analyze

import (
	"fmt"
	"strings"
	"unicode"
)

// opaquePrefixes start type syntax that is kept as raw text.
var opaquePrefixes = []string{"dyn ", "impl ", "fn(", "fn ", "unsafe ", "extern ", "for<", "*const ", "*mut ", "!", "<"}

// ParseType parses a type written in source syntax, as found in declaration
// files: "String", "Option<Vec<u8>>", "&'a str", "[u8; 32]", "(i32, bool)".
func ParseType(src string) (TypeExpr, error) {
	p := &typeParser{src: src}

	t, err := p.parseType()
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", src, err)
	}

	p.skipSpace()

	if !p.eof() {
		return nil, fmt.Errorf("parse type %q: unexpected %q at offset %d", src, p.src[p.pos:], p.pos)
	}

	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for tests
// and static tables.
func MustParseType(src string) TypeExpr {
	t, err := ParseType(src)
	if err != nil {
		panic(err)
	}

	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *typeParser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *typeParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) consume(s string) bool {
	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}

	return false
}

func (p *typeParser) expect(s string) error {
	if !p.consume(s) {
		if p.eof() {
			return fmt.Errorf("expected %q, got end of input", s)
		}

		return fmt.Errorf("expected %q at offset %d", s, p.pos)
	}

	return nil
}

func (p *typeParser) parseType() (TypeExpr, error) {
	p.skipSpace()

	if p.eof() {
		return nil, fmt.Errorf("expected type, got end of input")
	}

	rest := p.src[p.pos:]
	for _, prefix := range opaquePrefixes {
		if strings.HasPrefix(rest, prefix) {
			return &Opaque{Text: p.scanRaw()}, nil
		}
	}

	switch p.peek() {
	case '&':
		return p.parseRef()
	case '[':
		return p.parseBracket()
	case '(':
		return p.parseTuple()
	}

	start := p.pos

	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	// Macro invocation in type position, e.g. my_type!(u8).
	if p.consume("!") {
		p.pos = start

		return &Opaque{Text: p.scanRaw()}, nil
	}

	return path, nil
}

// scanRaw consumes text up to the next top-level delimiter.
func (p *typeParser) scanRaw() string {
	start := p.pos
	depth := 0

	for !p.eof() {
		c := p.src[p.pos]

		switch c {
		case '<', '(', '[':
			depth++
		case '>':
			// "->" in fn pointer return position is not a closing bracket.
			if p.pos > 0 && p.src[p.pos-1] == '-' {
				break
			}

			if depth == 0 {
				return strings.TrimSpace(p.src[start:p.pos])
			}

			depth--
		case ')', ']':
			if depth == 0 {
				return strings.TrimSpace(p.src[start:p.pos])
			}

			depth--
		case ',', ';':
			if depth == 0 {
				return strings.TrimSpace(p.src[start:p.pos])
			}
		}

		p.pos++
	}

	return strings.TrimSpace(p.src[start:p.pos])
}

func (p *typeParser) parseRef() (TypeExpr, error) {
	if err := p.expect("&"); err != nil {
		return nil, err
	}

	ref := &Ref{}

	p.skipSpace()

	if p.peek() == '\'' {
		p.pos++
		ref.Lifetime = p.scanIdent()
	}

	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], "mut") && !isIdentByte(p.at(p.pos+len("mut"))) {
		p.pos += len("mut")
		ref.Mut = true
	}

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}

	ref.Elem = elem

	return ref, nil
}

func (p *typeParser) parseBracket() (TypeExpr, error) {
	if err := p.expect("["); err != nil {
		return nil, err
	}

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.consume(";") {
		p.skipSpace()

		n := p.scanRaw()
		if n == "" {
			return nil, fmt.Errorf("missing array length at offset %d", p.pos)
		}

		if err := p.expect("]"); err != nil {
			return nil, err
		}

		return &Array{Elem: elem, Len: n}, nil
	}

	if err := p.expect("]"); err != nil {
		return nil, err
	}

	return &Slice{Elem: elem}, nil
}

func (p *typeParser) parseTuple() (TypeExpr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}

	tuple := &Tuple{}
	trailingComma := false

	for {
		if p.consume(")") {
			break
		}

		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}

		tuple.Elems = append(tuple.Elems, elem)
		trailingComma = false

		if p.consume(",") {
			trailingComma = true
			continue
		}

		if err := p.expect(")"); err != nil {
			return nil, err
		}

		break
	}

	// A parenthesized single type without a trailing comma is just grouping.
	if len(tuple.Elems) == 1 && !trailingComma {
		return tuple.Elems[0], nil
	}

	return tuple, nil
}

func (p *typeParser) parsePath() (*Path, error) {
	path := &Path{}

	if p.consume("::") {
		path.Global = true
	}

	for {
		p.skipSpace()

		ident := p.scanIdent()
		if ident == "" {
			if p.eof() {
				return nil, fmt.Errorf("expected identifier, got end of input")
			}

			return nil, fmt.Errorf("expected identifier at offset %d, got %q", p.pos, p.src[p.pos:p.pos+1])
		}

		seg := Segment{Ident: ident}

		// Turbofish form Vec::<T> is accepted as well as Vec<T>.
		save := p.pos
		if p.consume("::") {
			p.skipSpace()

			if p.peek() != '<' {
				p.pos = save
			}
		}

		if p.consume("<") {
			if err := p.parseArgs(&seg); err != nil {
				return nil, err
			}
		}

		path.Segments = append(path.Segments, seg)

		if !p.consume("::") {
			return path, nil
		}
	}
}

func (p *typeParser) parseArgs(seg *Segment) error {
	for {
		if p.consume(">") {
			return nil
		}

		p.skipSpace()

		switch {
		case p.peek() == '\'':
			p.pos++
			seg.Lifetimes = append(seg.Lifetimes, p.scanIdent())

		case p.peek() == '{' || unicode.IsDigit(rune(p.peek())) || p.peek() == '-':
			seg.Args = append(seg.Args, &Opaque{Text: p.scanRaw(), Arg: true})

		default:
			arg, err := p.parseType()
			if err != nil {
				return err
			}

			// Associated type binding such as Item = u8.
			if p.consume("=") {
				bound, err := p.parseType()
				if err != nil {
					return err
				}

				arg = &Opaque{Text: TypeString(arg) + " = " + TypeString(bound), Arg: true}
			}

			seg.Args = append(seg.Args, arg)
		}

		if p.consume(",") {
			continue
		}

		return p.expect(">")
	}
}

func (p *typeParser) scanIdent() string {
	start := p.pos

	if strings.HasPrefix(p.src[p.pos:], "r#") {
		p.pos += len("r#")
	}

	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}

	if p.pos == start+len("r#") && strings.HasPrefix(p.src[start:], "r#") {
		p.pos = start
		return ""
	}

	return p.src[start:p.pos]
}

func (p *typeParser) at(i int) byte {
	if i >= len(p.src) {
		return 0
	}

	return p.src[i]
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}
