package plan

import (
	"accessor-generator/internal/analyze"
	"accessor-generator/internal/common"
)

// FunctionKind identifies the role of a generated function.
type FunctionKind int

const (
	KindConstructor FunctionKind = iota
	KindSetter
	KindGetter
)

// String returns a human-readable kind name.
func (k FunctionKind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindSetter:
		return "setter"
	case KindGetter:
		return "getter"
	default:
		return common.UnknownStr
	}
}

// Receiver is the implicit self parameter of a generated function.
type Receiver int

const (
	ReceiverNone Receiver = iota
	ReceiverRef           // &self
	ReceiverMut           // &mut self
)

// String returns the receiver as written in a parameter list.
func (r Receiver) String() string {
	switch r {
	case ReceiverRef:
		return "&self"
	case ReceiverMut:
		return "&mut self"
	default:
		return ""
	}
}

// Param is one explicit parameter of a generated function.
type Param struct {
	Name string
	Type analyze.TypeExpr
}

// Function is one synthesized function.
type Function struct {
	Kind       FunctionKind
	Name       string
	Visibility analyze.Visibility
	Receiver   Receiver
	Params     []Param
	// Result is nil for functions returning nothing.
	Result analyze.TypeExpr
	// Field is the field a setter or getter touches; empty for the constructor.
	Field string
	// Markers are attribute bodies attached to the function, e.g.
	// "generate_interface".
	Markers []string
}

// AccessorPair holds the setter and getter generated for one field.
type AccessorPair struct {
	Setter Function
	Getter Function
}

// AccessorSet is the complete synthesis output for one aggregate.
type AccessorSet struct {
	// Aggregate is the declaration the set was derived from.
	Aggregate *analyze.Aggregate
	// Strategy is the name of the signature mapper that produced the types.
	Strategy    string
	Constructor Function
	// Accessors are in field declaration order.
	Accessors []AccessorPair
}

// Functions returns the constructor followed by each setter and getter, in
// emission order.
func (s *AccessorSet) Functions() []Function {
	fns := make([]Function, 0, 1+2*len(s.Accessors))
	fns = append(fns, s.Constructor)

	for _, pair := range s.Accessors {
		fns = append(fns, pair.Setter, pair.Getter)
	}

	return fns
}

// MarkerSet names the generated markers attached to synthesized functions.
type MarkerSet struct {
	Constructor string `yaml:"constructor,omitempty"`
	Accessor    string `yaml:"accessor,omitempty"`
}

// DefaultMarkers returns the interface-exposure markers.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		Constructor: "generate_interface(constructor)",
		Accessor:    "generate_interface",
	}
}

// WithDefaults fills empty markers from DefaultMarkers.
func (m MarkerSet) WithDefaults() MarkerSet {
	def := DefaultMarkers()

	if m.Constructor == "" {
		m.Constructor = def.Constructor
	}

	if m.Accessor == "" {
		m.Accessor = def.Accessor
	}

	return m
}
