package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"accessor-generator/internal/gen"
	"accessor-generator/internal/plan"
)

var (
	outDir    string
	toStdout  bool
	watchMode bool
)

var genCmd = &cobra.Command{
	Use:   "gen [source.rs...]",
	Short: "Render accessor impl blocks",
	Long: `Synthesizes every selected declaration and writes one file of impl blocks
per source. The run is atomic: if any aggregate fails, nothing is written.

With --watch the command keeps running and regenerates whenever the config
or one of the source files changes. Failed runs are logged and the previous
output is left in place.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory, overrides the config")
	genCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print generated files instead of writing them")
	genCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Regenerate when the config or a source file changes")
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func runGen(cmd *cobra.Command, args []string) error {
	if !watchMode {
		return generate(cmd, args)
	}

	if err := generate(cmd, args); err != nil {
		getLogger().Error("generation failed", zap.Error(err))
	}

	targets, err := watchTargets(args)
	if err != nil {
		return err
	}

	return watchLoop(cmdContext(cmd), targets, defaultDebounce, func() error {
		return generate(cmd, args)
	})
}

// generate runs one load, synthesize and render pass.
func generate(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	p, err := loadProject(ctx, args)
	if err != nil {
		return err
	}

	sets, err := plan.SynthesizeAll(ctx, p.decls, p.opts, workers)
	if err != nil {
		return err
	}

	dir := outputDir(p)
	g := gen.NewGenerator(gen.GeneratorConfig{
		OutputDir: dir,
		Suffix:    p.file.Output.Suffix,
	}, getLogger())

	files, err := g.Generate(sets)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if toStdout {
		for _, f := range files {
			fmt.Fprintf(out, "// ===== %s =====\n%s", f.Filename, f.Content)
		}

		return nil
	}

	n, err := gen.WriteFiles(files, dir)
	if err != nil {
		return err
	}

	getLogger().Info("generation complete",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("written", n))

	fmt.Fprintf(out, "wrote %d of %d files to %s\n", n, len(files), dir)

	return nil
}

// outputDir resolves the output directory: flag, then config (relative to
// the config file), then the generator default.
func outputDir(p *project) string {
	if outDir != "" {
		return outDir
	}

	if dir := p.file.Output.Dir; dir != "" {
		if configPath != "" && !filepath.IsAbs(dir) {
			return filepath.Join(filepath.Dir(configPath), dir)
		}

		return dir
	}

	return gen.DefaultGeneratorConfig().OutputDir
}
