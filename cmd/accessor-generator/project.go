package main

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/mapping"
	"accessor-generator/internal/plan"
)

// project is the resolved input of one run.
type project struct {
	file  *mapping.File
	decls []*analyze.Aggregate
	opts  plan.Options
}

func getLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

// loadConfig reads the config file, or the defaults when none is given, and
// applies flag overrides.
func loadConfig() (*mapping.File, error) {
	f := mapping.Default()

	if configPath != "" {
		var err error

		f, err = mapping.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
	}

	if strategy != "" {
		f.Strategy = strategy
	}

	if markerAttr != "" {
		f.Sources.Marker = markerAttr
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return f, nil
}

// loadProject resolves the config, the inline declarations and the
// declarations found in source files. Config-listed sources are relative to
// the config file.
func loadProject(ctx context.Context, sources []string) (*project, error) {
	f, err := loadConfig()
	if err != nil {
		return nil, err
	}

	decls, err := f.Declarations(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading declarations: %w", err)
	}

	paths := sourcePaths(f, sources)

	if len(paths) > 0 {
		loader := analyze.NewLoader(
			analyze.WithMarker(f.Sources.Marker),
			analyze.WithLoaderLogger(getLogger()),
		)

		loaded, err := loader.LoadFiles(ctx, paths...)
		if err != nil {
			return nil, err
		}

		decls = append(decls, loaded...)
	}

	if len(decls) == 0 {
		return nil, fmt.Errorf("no declarations found: pass source files or declare aggregates in a config")
	}

	opts, err := f.Options(getLogger())
	if err != nil {
		return nil, err
	}

	getLogger().Debug("loaded project",
		zap.String("config", configPath),
		zap.Strings("sources", paths),
		zap.Int("aggregates", len(decls)),
		zap.String("strategy", f.Strategy))

	return &project{file: f, decls: decls, opts: opts}, nil
}

// sourcePaths returns the config-listed sources, resolved against the config
// directory, followed by the positional arguments.
func sourcePaths(f *mapping.File, args []string) []string {
	paths := make([]string, 0, len(f.Sources.Files)+len(args))

	for _, p := range f.Sources.Files {
		if configPath != "" && !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(configPath), p)
		}

		paths = append(paths, p)
	}

	return append(paths, args...)
}
