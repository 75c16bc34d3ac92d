package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"accessor-generator/internal/analyze"
)

var mapCmd = &cobra.Command{
	Use:   "map <type>...",
	Short: "Show the signature type for stored field types",
	Example: `  accessor-generator map String 'Option<Vec<String>>'
  accessor-generator map --strategy shallow 'Vec<String>'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMap,
}

func runMap(cmd *cobra.Command, args []string) error {
	f, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := f.Mapper(getLogger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var errs []error

	for _, arg := range args {
		t, err := analyze.ParseType(arg)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		mapped, err := m.Map(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		fmt.Fprintf(out, "%s -> %s\n", t, mapped)
	}

	return errors.Join(errs...)
}
