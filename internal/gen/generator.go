package gen

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"accessor-generator/internal/plan"
)

// GeneratedHeader opens every generated file.
const GeneratedHeader = "// Code generated by accessor-generator. DO NOT EDIT.\n"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Suffix replaces the source file extension in output file names.
	Suffix string
	// DefaultName is the base name for sets without a source file.
	DefaultName string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:   "./generated",
		Suffix:      "_accessors.rs",
		DefaultName: "accessors",
	}
}

// Generator renders accessor sets.
type Generator struct {
	config GeneratorConfig
	logger *zap.Logger
}

// NewGenerator creates a new Generator with the given configuration.
// Empty config values fall back to DefaultGeneratorConfig.
func NewGenerator(config GeneratorConfig, logger *zap.Logger) *Generator {
	def := DefaultGeneratorConfig()

	if config.Suffix == "" {
		config.Suffix = def.Suffix
	}

	if config.DefaultName == "" {
		config.DefaultName = def.DefaultName
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{config: config, logger: logger}
}

// Config returns the effective configuration.
func (g *Generator) Config() GeneratorConfig {
	return g.config
}

// GeneratedFile represents a generated source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "model_accessors.rs").
	Filename string
	// Source is the input file the impl blocks were derived from.
	Source string
	// Aggregates lists the rendered aggregates in output order.
	Aggregates []string
	// Content is the rendered source.
	Content []byte
}

// Render renders one accessor set as an impl block.
func (g *Generator) Render(set *plan.AccessorSet) ([]byte, error) {
	if set == nil || set.Aggregate == nil {
		return nil, errors.New("nil accessor set")
	}

	decl := set.Aggregate
	data := &implData{
		Name:        decl.Name,
		Generics:    decl.Generics,
		Where:       decl.Where,
		SelfType:    decl.SelfType().String(),
		Constructor: set.Constructor,
		Accessors:   set.Accessors,
	}

	var buf bytes.Buffer
	if err := implTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", decl.Name, err)
	}

	return buf.Bytes(), nil
}

// Generate renders every set and groups the impl blocks into one file per
// source. Files appear in order of their source's first set.
func (g *Generator) Generate(sets []*plan.AccessorSet) ([]GeneratedFile, error) {
	var (
		files   []*fileBuilder
		bySrc   = make(map[string]*fileBuilder)
		byName  = make(map[string]bool)
		builder *fileBuilder
	)

	for _, set := range sets {
		if set == nil || set.Aggregate == nil {
			return nil, errors.New("nil accessor set")
		}

		source := set.Aggregate.Source

		builder = bySrc[source]
		if builder == nil {
			name := g.filename(source)
			if byName[name] {
				name = g.uniqueFilename(source, byName)
			}

			byName[name] = true
			builder = &fileBuilder{file: GeneratedFile{Filename: name, Source: source}}
			bySrc[source] = builder
			files = append(files, builder)
		}

		block, err := g.Render(set)
		if err != nil {
			return nil, err
		}

		builder.add(set.Aggregate.Name, block)
	}

	out := make([]GeneratedFile, 0, len(files))

	for _, b := range files {
		f := b.finish()

		g.logger.Debug("rendered file",
			zap.String("file", f.Filename),
			zap.Strings("aggregates", f.Aggregates))

		out = append(out, f)
	}

	return out, nil
}

// filename derives the output name from a source path.
// Example: "src/model.rs" -> "model_accessors.rs"
func (g *Generator) filename(source string) string {
	if source == "" {
		return g.config.DefaultName + g.config.Suffix
	}

	base := filepath.Base(source)

	return strings.TrimSuffix(base, filepath.Ext(base)) + g.config.Suffix
}

// uniqueFilename keeps the directory in the name to separate sources that
// share a base name, and appends a counter while the name is still taken.
// Example: "src/a/model.rs" -> "src_a_model_accessors.rs", then
// "src_a_model_2_accessors.rs"
func (g *Generator) uniqueFilename(source string, taken map[string]bool) string {
	clean := filepath.ToSlash(filepath.Clean(source))
	clean = strings.TrimSuffix(clean, filepath.Ext(clean))
	clean = strings.ReplaceAll(strings.TrimLeft(clean, "./"), "/", "_")

	name := clean + g.config.Suffix
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s_%d%s", clean, n, g.config.Suffix)
	}

	return name
}

type fileBuilder struct {
	file GeneratedFile
	buf  bytes.Buffer
}

func (b *fileBuilder) add(name string, block []byte) {
	if b.buf.Len() == 0 {
		b.buf.WriteString(GeneratedHeader)

		if b.file.Source != "" {
			b.buf.WriteString("// Source: " + filepath.ToSlash(b.file.Source) + "\n")
		}
	}

	b.buf.WriteByte('\n')
	b.buf.Write(block)
	b.file.Aggregates = append(b.file.Aggregates, name)
}

func (b *fileBuilder) finish() GeneratedFile {
	b.file.Content = b.buf.Bytes()
	return b.file
}
