package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/solbind/solbind/internal/cli/config"
	"github.com/solbind/solbind/internal/cli/ui"
)

var checkVerbose bool

func init() {
	checkCmd.Flags().BoolVar(&checkVerbose, "verbose", false, "Show detailed check output")
}

var checkCmd = &cobra.Command{
	Use:   "check [directive files]",
	Short: "Validate directives and their IDL documents without emitting",
	Long: `Run the full pipeline - directive parsing, document loading, binding
synthesis - and report the module surface each directive would produce,
without writing any files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		files := args
		if len(files) == 0 {
			files, err = filepath.Glob("*.directive")
			if err != nil {
				return fmt.Errorf("failed to find directive files: %w", err)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no .directive files found")
		}

		logger := newLogger(checkVerbose)
		defer logger.Sync()

		failed := 0
		for _, file := range files {
			gen, err := runPipeline(file, cfg.IDL.DefaultVersion, logger)
			if err != nil {
				ui.RenderError(os.Stderr, err)
				failed++
				continue
			}

			id := gen.Directive.ID
			if id == "" {
				id = "(unassigned)"
			}
			ui.Success(os.Stdout, "%s", file)

			summary := ui.NewKeyValueTable(os.Stdout, false)
			summary.AddRow("module", gen.Directive.Name)
			summary.AddRow("program id", id)
			summary.AddRow("instructions", strconv.Itoa(len(gen.Bindings)))
			summary.Render()

			if checkVerbose {
				table := ui.NewTable(os.Stdout, []string{"DISC", "INSTRUCTION", "ACCOUNTS", "ARGS"}, false)
				for _, binding := range gen.Bindings {
					table.AddRow(
						strconv.Itoa(int(binding.Discriminant)),
						binding.Name,
						strconv.Itoa(len(binding.Accounts)),
						strconv.Itoa(len(binding.Args)))
				}
				table.Render()
			}
		}

		if failed > 0 {
			return fmt.Errorf("check failed for %d of %d directive(s)", failed, len(files))
		}
		return nil
	},
}
