package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"accessor-generator/internal/gen"
	"accessor-generator/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan [source.rs...]",
	Short: "Dump the synthesized accessor sets",
	RunE:  runPlan,
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	p, err := loadProject(ctx, args)
	if err != nil {
		return err
	}

	sets, err := plan.SynthesizeAll(ctx, p.decls, p.opts, workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, set := range sets {
		fmt.Fprintf(out, "# %s (%s)\n", set.Aggregate.Name, set.Strategy)

		for _, fn := range set.Functions() {
			fmt.Fprintf(out, "%-11s %s\n", fn.Kind, gen.Signature(fn))
		}

		if verbose {
			dumper.Fdump(out, set)
		}
	}

	return nil
}
