package mapping

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/plan"
	"accessor-generator/internal/signature"
)

// File represents the root of a YAML declaration file.
type File struct {
	// Version of the schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Strategy is the signature mapping strategy name.
	Strategy string `yaml:"strategy,omitempty"`

	// Dialect overrides the recognized text/optional/sequence identifiers.
	Dialect signature.Dialect `yaml:"dialect,omitempty"`

	// Markers attached to generated functions.
	Markers plan.MarkerSet `yaml:"markers,omitempty"`

	// Sources lists Rust files to scan for declarations.
	Sources SourceConfig `yaml:"sources,omitempty"`

	// Output controls where rendered files go.
	Output OutputConfig `yaml:"output,omitempty"`

	// Aggregates declared inline.
	Aggregates []AggregateDef `yaml:"aggregates,omitempty"`
}

// SourceConfig selects source files and the structs within them.
type SourceConfig struct {
	Files StringOrArray `yaml:"files,omitempty"`
	// Marker is the attribute or derive name that opts a struct in.
	// Empty selects every struct.
	Marker string `yaml:"marker,omitempty"`
}

// OutputConfig controls rendered file placement.
type OutputConfig struct {
	Dir    string `yaml:"dir,omitempty"`
	Suffix string `yaml:"suffix,omitempty"`
}

// AggregateDef declares one aggregate. An empty or missing field list is an
// empty named-field struct; Unit declares `struct Name;` instead.
type AggregateDef struct {
	Name       string     `yaml:"name"`
	Visibility string     `yaml:"visibility,omitempty"`
	Generics   string     `yaml:"generics,omitempty"`
	Where      string     `yaml:"where,omitempty"`
	Unit       bool       `yaml:"unit,omitempty"`
	Fields     []FieldDef `yaml:"fields,omitempty"`
}

// FieldDef declares one field. Name may be empty to declare a positional
// field, which synthesis rejects.
type FieldDef struct {
	Name       string `yaml:"name,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
	Type       string `yaml:"type"`
}

// Validate checks the file for structural errors. Type syntax errors are
// reported by Declarations.
func (f *File) Validate() error {
	var errs []error

	if err := f.Dialect.Validate(); err != nil {
		errs = append(errs, err)
	}

	if _, err := signature.ByName(f.Strategy, signature.DefaultDialect()); err != nil {
		errs = append(errs, err)
	}

	for i, agg := range f.Aggregates {
		if agg.Name == "" {
			errs = append(errs, fmt.Errorf("aggregates[%d]: name is required", i))
		}

		if _, err := analyze.ParseVisibility(agg.Visibility); err != nil {
			errs = append(errs, fmt.Errorf("aggregates[%d] %s: %w", i, agg.Name, err))
		}

		if agg.Unit && len(agg.Fields) > 0 {
			errs = append(errs, fmt.Errorf("aggregates[%d] %s: unit declaration cannot have fields", i, agg.Name))
		}

		for j, fd := range agg.Fields {
			if fd.Type == "" {
				errs = append(errs, fmt.Errorf("aggregates[%d] %s: fields[%d]: type is required", i, agg.Name, j))
			}

			if _, err := analyze.ParseVisibility(fd.Visibility); err != nil {
				errs = append(errs, fmt.Errorf("aggregates[%d] %s: fields[%d]: %w", i, agg.Name, j, err))
			}
		}
	}

	return errors.Join(errs...)
}

// Declarations converts the inline aggregates to the declaration model.
// Source is recorded on every aggregate.
func (f *File) Declarations(source string) ([]*analyze.Aggregate, error) {
	out := make([]*analyze.Aggregate, 0, len(f.Aggregates))

	for _, def := range f.Aggregates {
		agg, err := def.toAggregate(source)
		if err != nil {
			return nil, err
		}

		out = append(out, agg)
	}

	return out, nil
}

func (d AggregateDef) toAggregate(source string) (*analyze.Aggregate, error) {
	vis, err := analyze.ParseVisibility(d.Visibility)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	agg := &analyze.Aggregate{
		Name:       d.Name,
		Visibility: vis,
		Generics:   d.Generics,
		Where:      d.Where,
		Unit:       d.Unit,
		Source:     source,
	}

	for i, fd := range d.Fields {
		fvis, err := analyze.ParseVisibility(fd.Visibility)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", analyze.FieldPath(d.Name, fd.Name), err)
		}

		t, err := analyze.ParseType(fd.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", analyze.FieldPath(d.Name, fd.Name), err)
		}

		agg.Fields = append(agg.Fields, analyze.Field{
			Name:       fd.Name,
			Visibility: fvis,
			Type:       t,
			Index:      i,
		})
	}

	return agg, nil
}

// Mapper builds the signature mapper selected by the file.
func (f *File) Mapper(logger *zap.Logger) (signature.Mapper, error) {
	return signature.ByName(f.Strategy, f.Dialect, signature.WithLogger(logger))
}

// Options returns synthesis options for the file's strategy and markers.
func (f *File) Options(logger *zap.Logger) (plan.Options, error) {
	m, err := f.Mapper(logger)
	if err != nil {
		return plan.Options{}, err
	}

	return plan.Options{
		Mapper:  m,
		Markers: f.Markers,
		Logger:  logger,
	}, nil
}
