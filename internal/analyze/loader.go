package analyze

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"go.uber.org/zap"
)

// Loader extracts aggregate declarations from Rust source files.
// A Loader is not safe for concurrent use.
type Loader struct {
	parser *sitter.Parser
	marker string
	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMarker restricts loading to structs annotated with #[marker],
// #[marker(...)] or #[derive(..., marker, ...)]. An empty marker selects
// every struct.
func WithMarker(marker string) LoaderOption {
	return func(l *Loader) {
		l.marker = strings.TrimSpace(marker)
	}
}

// WithLoaderLogger sets the logger used for per-file debug output.
func WithLoaderLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a new Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	l := &Loader{
		parser: parser,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadFiles parses every file and returns the selected aggregates in file
// order, then source order within a file.
func (l *Loader) LoadFiles(ctx context.Context, paths ...string) ([]*Aggregate, error) {
	var all []*Aggregate

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
		}

		aggs, err := l.ParseSource(ctx, path, content)
		if err != nil {
			return nil, err
		}

		all = append(all, aggs...)
	}

	return all, nil
}

// ParseSource extracts aggregates from Rust source held in memory.
// Name is recorded as Aggregate.Source.
func (l *Loader) ParseSource(ctx context.Context, name string, content []byte) ([]*Aggregate, error) {
	tree, err := l.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("failed to parse %s: syntax error near %s", name, firstErrorPos(root))
	}

	w := &walker{src: content, name: name, marker: l.marker}
	if err := w.walk(root); err != nil {
		return nil, err
	}

	l.logger.Debug("parsed source",
		zap.String("file", name),
		zap.Int("aggregates", len(w.out)))

	return w.out, nil
}

func firstErrorPos(n *sitter.Node) string {
	if n.IsError() || n.IsMissing() {
		p := n.StartPoint()
		return fmt.Sprintf("%d:%d", p.Row+1, p.Column+1)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() {
			return firstErrorPos(child)
		}
	}

	return "?"
}

type walker struct {
	src    []byte
	name   string
	marker string
	out    []*Aggregate
}

func (w *walker) text(n *sitter.Node) string {
	return n.Content(w.src)
}

func (w *walker) walk(node *sitter.Node) error {
	var attrs []string

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "attribute_item":
			attrs = append(attrs, w.text(child))
			continue

		case "line_comment", "block_comment":
			// Comments between attributes and the item keep the attributes attached.
			continue

		case "struct_item":
			if w.selected(attrs) {
				agg, err := w.structItem(child)
				if err != nil {
					return err
				}

				w.out = append(w.out, agg)
			}

		case "mod_item":
			if body := child.ChildByFieldName("body"); body != nil {
				if err := w.walk(body); err != nil {
					return err
				}
			}
		}

		attrs = attrs[:0]
	}

	return nil
}

// selected reports whether the outer attributes carry the marker.
func (w *walker) selected(attrs []string) bool {
	if w.marker == "" {
		return true
	}

	for _, attr := range attrs {
		inner := strings.TrimSpace(attr)
		inner = strings.TrimPrefix(inner, "#")
		inner = strings.TrimSpace(inner)
		inner = strings.TrimPrefix(inner, "[")
		inner = strings.TrimSuffix(inner, "]")
		inner = strings.TrimSpace(inner)

		head, args, _ := strings.Cut(inner, "(")
		head = strings.TrimSpace(head)

		if head == w.marker {
			return true
		}

		if head == "derive" {
			for _, d := range strings.Split(strings.TrimSuffix(args, ")"), ",") {
				d = strings.TrimSpace(d)
				if d == w.marker || strings.HasSuffix(d, "::"+w.marker) {
					return true
				}
			}
		}
	}

	return false
}

func (w *walker) structItem(node *sitter.Node) (*Aggregate, error) {
	agg := &Aggregate{
		Visibility: w.visibility(node),
		Source:     w.name,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		agg.Name = w.text(name)
	}

	if params := node.ChildByFieldName("type_parameters"); params != nil {
		agg.Generics = w.text(params)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "where_clause" {
			agg.Where = strings.Join(strings.Fields(w.text(child)), " ")
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		agg.Unit = true
		return agg, nil
	}

	switch body.Type() {
	case "field_declaration_list":
		for i := 0; i < int(body.NamedChildCount()); i++ {
			decl := body.NamedChild(i)
			if decl.Type() != "field_declaration" {
				continue
			}

			f, err := w.namedField(decl, len(agg.Fields))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", FieldPath(agg.Name, f.Name), err)
			}

			agg.Fields = append(agg.Fields, f)
		}

	case "ordered_field_declaration_list":
		vis := VisibilityPrivate

		for i := 0; i < int(body.NamedChildCount()); i++ {
			child := body.NamedChild(i)

			switch child.Type() {
			case "attribute_item", "line_comment", "block_comment":
				continue
			case "visibility_modifier":
				v, err := ParseVisibility(w.text(child))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", agg.Name, err)
				}

				vis = v

				continue
			}

			t, err := w.convertType(child)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", agg.Name, err)
			}

			agg.Fields = append(agg.Fields, Field{
				Visibility: vis,
				Type:       t,
				Index:      len(agg.Fields),
			})
			vis = VisibilityPrivate
		}
	}

	return agg, nil
}

func (w *walker) namedField(decl *sitter.Node, index int) (Field, error) {
	f := Field{
		Visibility: w.visibility(decl),
		Index:      index,
	}

	if name := decl.ChildByFieldName("name"); name != nil {
		f.Name = w.text(name)
	}

	typ := decl.ChildByFieldName("type")
	if typ == nil {
		return f, fmt.Errorf("field without type")
	}

	t, err := w.convertType(typ)
	if err != nil {
		return f, err
	}

	f.Type = t

	return f, nil
}

func (w *walker) visibility(node *sitter.Node) Visibility {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "visibility_modifier" {
			v, err := ParseVisibility(w.text(child))
			if err != nil {
				return VisibilityPrivate
			}

			return v
		}
	}

	return VisibilityPrivate
}

// convertType maps a tree-sitter type node onto the TypeExpr model. Node
// kinds without a dedicated case go through ParseType on their source text.
func (w *walker) convertType(node *sitter.Node) (TypeExpr, error) {
	switch node.Type() {
	case "type_identifier", "primitive_type":
		return NewPath(w.text(node)), nil

	case "generic_type":
		base := node.ChildByFieldName("type")
		if base == nil {
			return nil, fmt.Errorf("generic type without base: %s", w.text(node))
		}

		bt, err := w.convertType(base)
		if err != nil {
			return nil, err
		}

		path, ok := bt.(*Path)
		if !ok || len(path.Segments) == 0 {
			return &Opaque{Text: w.text(node)}, nil
		}

		last := &path.Segments[len(path.Segments)-1]

		if args := node.ChildByFieldName("type_arguments"); args != nil {
			if err := w.typeArgs(args, last); err != nil {
				return nil, err
			}
		}

		return path, nil

	case "reference_type":
		ref := &Ref{}

		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)

			switch child.Type() {
			case "lifetime":
				ref.Lifetime = strings.TrimPrefix(w.text(child), "'")
			case "mutable_specifier":
				ref.Mut = true
			}
		}

		elem := node.ChildByFieldName("type")
		if elem == nil {
			return nil, fmt.Errorf("reference without element type: %s", w.text(node))
		}

		et, err := w.convertType(elem)
		if err != nil {
			return nil, err
		}

		ref.Elem = et

		return ref, nil

	case "array_type":
		elem := node.ChildByFieldName("element")
		if elem == nil {
			return nil, fmt.Errorf("array without element type: %s", w.text(node))
		}

		et, err := w.convertType(elem)
		if err != nil {
			return nil, err
		}

		if n := node.ChildByFieldName("length"); n != nil {
			return &Array{Elem: et, Len: w.text(n)}, nil
		}

		return &Slice{Elem: et}, nil

	case "tuple_type":
		tuple := &Tuple{}
		commas := 0

		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)

			if !child.IsNamed() {
				if child.Type() == "," {
					commas++
				}

				continue
			}

			if child.Type() == "line_comment" || child.Type() == "block_comment" {
				continue
			}

			et, err := w.convertType(child)
			if err != nil {
				return nil, err
			}

			tuple.Elems = append(tuple.Elems, et)
		}

		// (T) is T in parentheses; only (T,) is a one-element tuple.
		if len(tuple.Elems) == 1 && commas == 0 {
			return tuple.Elems[0], nil
		}

		return tuple, nil

	case "unit_type":
		return &Tuple{}, nil

	case "function_type", "dynamic_type", "abstract_type", "pointer_type",
		"never_type", "macro_invocation", "bounded_type", "bracketed_type":
		return &Opaque{Text: w.text(node)}, nil

	default:
		// scoped_type_identifier and anything newer in the grammar.
		return ParseType(w.text(node))
	}
}

func (w *walker) typeArgs(args *sitter.Node, seg *Segment) error {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)

		switch child.Type() {
		case "lifetime":
			seg.Lifetimes = append(seg.Lifetimes, strings.TrimPrefix(w.text(child), "'"))

		case "type_binding", "block", "integer_literal", "string_literal",
			"char_literal", "boolean_literal", "negative_literal", "float_literal":
			seg.Args = append(seg.Args, &Opaque{Text: w.text(child), Arg: true})

		default:
			t, err := w.convertType(child)
			if err != nil {
				return err
			}

			seg.Args = append(seg.Args, t)
		}
	}

	return nil
}
