// Package cmd provides the root command and CLI setup for locov.
package cmd

import (
	"fmt"
	"os"

	"github.com/mouse-blink/locov/internal/adapter"
	"github.com/mouse-blink/locov/internal/controller"
	"github.com/mouse-blink/locov/internal/domain"
	m "github.com/mouse-blink/locov/internal/model"
	"github.com/spf13/cobra"
)

var workflow domain.Workflow

func init() {
	workflow = domain.NewWorkflow(adapter.NewLocalObjectFileAdapter())
}

var onlyFormalParamsFlag bool
var onlyVariablesFlag bool
var ignoreInlinedFlag bool
var ignoreEntryValuesFlag bool
var outFileFlag string
var parallelFlag int
var interactiveFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locov [flags] <binary> [binary...]",
		Short: "Debug location coverage calculator",
		Long: `Locov calculates debug location coverage on compiled binaries: for every
variable and formal parameter in the debug information it measures what
fraction of the enclosing scope's byte range is covered by a location
description, then reports the results as a coverage histogram.

Accepts ELF, Mach-O and PE binaries. Passing several binaries produces one
histogram per binary plus a summary table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts := m.Options{
				OnlyFormalParameters: onlyFormalParamsFlag,
				OnlyVariables:        onlyVariablesFlag,
				IgnoreInlined:        ignoreInlinedFlag,
				IgnoreEntryValues:    ignoreEntryValuesFlag,
			}

			paths := make([]m.Path, 0, len(args))
			for _, arg := range args {
				paths = append(paths, m.Path(arg))
			}

			reports, err := workflow.Analyze(domain.AnalyzeArgs{
				Paths:   paths,
				Options: opts,
				Threads: parallelFlag,
			})
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			interactive := interactiveFlag

			if outFileFlag != "" && outFileFlag != "-" {
				f, err := os.Create(outFileFlag)
				if err != nil {
					return fmt.Errorf("unable to open output file %s: %w", outFileFlag, err)
				}
				defer f.Close()

				out = f
				interactive = false
			}

			return controller.NewUI(out, interactive).DisplayReports(reports)
		},
	}

	cmd.Flags().BoolVar(&onlyFormalParamsFlag, "only-formal-parameters", false,
		"calculate the location statistics only for formal parameters")
	cmd.Flags().BoolVar(&onlyVariablesFlag, "only-variables", false,
		"calculate the location statistics only for local variables")
	cmd.Flags().BoolVar(&ignoreInlinedFlag, "ignore-inlined", false,
		"ignore the location statistics on inlined instances")
	cmd.Flags().BoolVar(&ignoreEntryValuesFlag, "ignore-entry-values", false,
		"ignore the location statistics on locations with entry values")
	cmd.Flags().StringVarP(&outFileFlag, "out-file", "o", "",
		"redirect output to the specified file")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1,
		"number of binaries analyzed in parallel")
	cmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false,
		"browse the histograms interactively (requires a terminal)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
