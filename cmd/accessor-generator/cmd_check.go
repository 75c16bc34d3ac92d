package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/plan"
)

var checkCmd = &cobra.Command{
	Use:   "check [source.rs...]",
	Short: "Validate that every declaration can be synthesized",
	Long: `Synthesizes every selected declaration without writing anything and reports
each failing aggregate with its diagnostic code:

  UNSUPPORTED_FIELD_SHAPE  unit declaration or positional field
  UNMAPPABLE_TYPE          field type the strategy has no rule for
  NAME_COLLISION           two fields generate the same function name

Field types that look like a misspelled or qualified wrapper (Optional<T>,
string, std::option::Option<T>) are reported as NEAR_MISS_TYPE warnings.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	p, err := loadProject(ctx, args)
	if err != nil {
		return err
	}

	sets, errs := plan.SynthesizeEach(ctx, p.decls, p.opts, workers)
	diags := collectDiagnostics(p.decls, sets, errs)

	for _, decl := range p.decls {
		diags.Merge(plan.Lint(decl, p.file.Dialect, p.opts.Mapper.Name()))
	}

	out := cmd.OutOrStdout()

	if err := diags.Print(out, verbose); err != nil {
		return err
	}

	if diags.HasErrors() {
		return fmt.Errorf("%d of %d aggregates failed", len(diags.Errors), len(p.decls))
	}

	fmt.Fprintf(out, "ok: %d aggregates\n", len(p.decls))

	return nil
}

func collectDiagnostics(decls []*analyze.Aggregate, sets []*plan.AccessorSet, errs []error) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for i, decl := range decls {
		if errs[i] != nil {
			diags.AddFailure(decl.Source, errs[i])
			continue
		}

		diags.AddInfo("",
			fmt.Sprintf("%s: %d functions (%s)", decl.Name, len(sets[i].Functions()), sets[i].Strategy),
			decl.Source, "")
	}

	return diags
}
