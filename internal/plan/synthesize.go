package plan

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/signature"
)

// Generated function naming.
const (
	ConstructorName = "new"
	SetterPrefix    = "set_"
	GetterPrefix    = "get_"
)

// MarkerDisabled as a MarkerSet value suppresses that marker.
const MarkerDisabled = "-"

// Options configures Synthesize.
type Options struct {
	// Mapper selects the signature strategy. Nil means the full strategy
	// with the default dialect.
	Mapper signature.Mapper
	// Markers are attached to generated functions. Empty values fall back to
	// DefaultMarkers.
	Markers MarkerSet
	Logger  *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Mapper == nil {
		o.Mapper = signature.NewFull(signature.DefaultDialect())
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	o.Markers = o.Markers.WithDefaults()

	return o
}

// Synthesize builds the constructor and the per-field setters and getters
// for decl.
func Synthesize(decl *analyze.Aggregate, opts Options) (*AccessorSet, error) {
	if decl == nil {
		return nil, errors.New("nil aggregate declaration")
	}

	opts = opts.withDefaults()

	if err := checkShape(decl); err != nil {
		return nil, err
	}

	if err := checkNames(decl); err != nil {
		return nil, err
	}

	mapped := make([]analyze.TypeExpr, len(decl.Fields))

	for i := range decl.Fields {
		f := &decl.Fields[i]

		t, err := opts.Mapper.Map(f.Type)
		if err != nil {
			var unmappable *diagnostic.UnmappableTypeError
			if errors.As(err, &unmappable) {
				unmappable.FieldPath = analyze.FieldPath(decl.Name, f.Name)
				return nil, err
			}

			return nil, fmt.Errorf("%s: %w", analyze.FieldPath(decl.Name, f.Name), err)
		}

		mapped[i] = t
	}

	set := &AccessorSet{
		Aggregate: decl,
		Strategy:  opts.Mapper.Name(),
		Constructor: Function{
			Kind:       KindConstructor,
			Name:       ConstructorName,
			Visibility: decl.Visibility,
			Result:     decl.SelfType(),
			Markers:    markers(opts.Markers.Constructor),
		},
		Accessors: make([]AccessorPair, 0, len(decl.Fields)),
	}

	for i := range decl.Fields {
		f := &decl.Fields[i]
		param := Param{Name: f.Name, Type: mapped[i]}

		set.Constructor.Params = append(set.Constructor.Params, param)

		set.Accessors = append(set.Accessors, AccessorPair{
			Setter: Function{
				Kind:       KindSetter,
				Name:       SetterName(f.Name),
				Visibility: f.Visibility,
				Receiver:   ReceiverMut,
				Params:     []Param{param},
				Field:      f.Name,
				Markers:    markers(opts.Markers.Accessor),
			},
			Getter: Function{
				Kind:       KindGetter,
				Name:       GetterName(f.Name),
				Visibility: f.Visibility,
				Receiver:   ReceiverRef,
				Result:     mapped[i],
				Field:      f.Name,
				Markers:    markers(opts.Markers.Accessor),
			},
		})
	}

	opts.Logger.Debug("synthesized accessors",
		zap.String("aggregate", decl.Name),
		zap.String("strategy", set.Strategy),
		zap.Int("fields", len(decl.Fields)))

	return set, nil
}

// SetterName returns the setter name for a field.
func SetterName(field string) string {
	return SetterPrefix + field
}

// GetterName returns the getter name for a field.
func GetterName(field string) string {
	return GetterPrefix + field
}

func checkShape(decl *analyze.Aggregate) error {
	if decl.Unit {
		return &diagnostic.UnsupportedFieldShapeError{Aggregate: decl.Name, Index: -1}
	}

	for i := range decl.Fields {
		if !decl.Fields[i].IsNamed() {
			return &diagnostic.UnsupportedFieldShapeError{Aggregate: decl.Name, Index: i}
		}
	}

	return nil
}

// checkNames rejects any two fields whose generated functions share a name.
func checkNames(decl *analyze.Aggregate) error {
	owners := map[string]string{ConstructorName: ""}

	for i := range decl.Fields {
		name := decl.Fields[i].Name

		for _, fn := range []string{SetterName(name), GetterName(name)} {
			if prev, taken := owners[fn]; taken {
				return &diagnostic.NameCollisionError{
					Aggregate: decl.Name,
					Function:  fn,
					First:     prev,
					Second:    name,
				}
			}

			owners[fn] = name
		}
	}

	return nil
}

func markers(m string) []string {
	if m == "" || m == MarkerDisabled {
		return nil
	}

	return []string{m}
}
