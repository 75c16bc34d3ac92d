package signature

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/match"
)

// Strategy names accepted by ByName.
const (
	StrategyFull    = "full"
	StrategyShallow = "shallow"
)

// Mapper derives the accessor signature type for a stored field type.
// Implementations never mutate their argument.
type Mapper interface {
	// Map returns the type used for both the setter parameter and the getter
	// result of a field stored as t.
	Map(t analyze.TypeExpr) (analyze.TypeExpr, error)
	// Name returns the strategy name.
	Name() string
}

// Option configures a mapper.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger traces wrapper resolution at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Full is the recursive mapping strategy.
type Full struct {
	dialect Dialect
	logger  *zap.Logger
}

// NewFull creates a Full mapper for the dialect.
func NewFull(d Dialect, opts ...Option) *Full {
	o := buildOptions(opts)

	return &Full{dialect: d, logger: o.logger}
}

// Name returns StrategyFull.
func (m *Full) Name() string { return StrategyFull }

// Map applies, first match wins:
//  1. owned text -> &borrowed text
//  2. optional<T> -> optional<Map(T)>
//  3. sequence<T> -> &[Map(T)]
//  4. any other path -> its last segment's bare identifier
//
// Every non-path shape yields a *diagnostic.UnmappableTypeError.
func (m *Full) Map(t analyze.TypeExpr) (analyze.TypeExpr, error) {
	if m.dialect.IsOwnedText(t) {
		return m.dialect.BorrowedTextType(), nil
	}

	if inner, ok := m.dialect.OptionalInner(t); ok {
		mapped, err := m.Map(inner)
		if err != nil {
			return nil, err
		}

		m.logger.Debug("resolved optional wrapper",
			zap.Stringer("type", t),
			zap.Stringer("inner", mapped))

		return analyze.Generic(m.dialect.Optional, mapped), nil
	}

	if inner, ok := m.dialect.SequenceInner(t); ok {
		mapped, err := m.Map(inner)
		if err != nil {
			return nil, err
		}

		m.logger.Debug("resolved sequence wrapper",
			zap.Stringer("type", t),
			zap.Stringer("inner", mapped))

		return &analyze.Ref{Elem: &analyze.Slice{Elem: mapped}}, nil
	}

	if p, ok := t.(*analyze.Path); ok && len(p.Segments) > 0 {
		return analyze.NewPath(p.Last().Ident), nil
	}

	return nil, &diagnostic.UnmappableTypeError{
		Type:  analyze.TypeString(t),
		Shape: ShapeName(t),
	}
}

// Shallow rewrites owned text only and returns every other type unchanged.
type Shallow struct {
	dialect Dialect
}

// NewShallow creates a Shallow mapper for the dialect.
func NewShallow(d Dialect) *Shallow {
	return &Shallow{dialect: d}
}

// Name returns StrategyShallow.
func (m *Shallow) Name() string { return StrategyShallow }

// Map returns &borrowed text for owned text and t otherwise. It never fails.
func (m *Shallow) Map(t analyze.TypeExpr) (analyze.TypeExpr, error) {
	if m.dialect.IsOwnedText(t) {
		return m.dialect.BorrowedTextType(), nil
	}

	return t, nil
}

var strategies = map[string]func(Dialect, []Option) Mapper{
	StrategyFull:    func(d Dialect, opts []Option) Mapper { return NewFull(d, opts...) },
	StrategyShallow: func(d Dialect, _ []Option) Mapper { return NewShallow(d) },
}

// Strategies returns the known strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ByName returns the mapper for a strategy name. Empty selects StrategyFull.
func ByName(name string, d Dialect, opts ...Option) (Mapper, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = StrategyFull
	}

	ctor, ok := strategies[name]
	if !ok {
		if guess, found := match.Closest(name, Strategies(), match.DefaultThreshold); found {
			return nil, fmt.Errorf("unknown mapping strategy %q (want one of %s); did you mean %q?",
				name, strings.Join(Strategies(), ", "), guess)
		}

		return nil, fmt.Errorf("unknown mapping strategy %q (want one of %s)", name, strings.Join(Strategies(), ", "))
	}

	return ctor(d, opts), nil
}

// ShapeName names the variant of t for diagnostics.
func ShapeName(t analyze.TypeExpr) string {
	switch tt := t.(type) {
	case *analyze.Path:
		return "path"
	case *analyze.Ref:
		return "reference"
	case *analyze.Slice:
		return "slice"
	case *analyze.Array:
		return "array"
	case *analyze.Tuple:
		if len(tt.Elems) == 0 {
			return "unit"
		}

		return "tuple"
	case *analyze.Opaque:
		return "opaque"
	default:
		return "nil"
	}
}
