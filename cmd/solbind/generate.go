package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solbind/solbind/generator/codegen"
	"github.com/solbind/solbind/internal/cli/config"
	"github.com/solbind/solbind/internal/cli/ui"

	generr "github.com/solbind/solbind/generator/errors"
)

var (
	generateJSON    bool
	generateVerbose bool
	generateOut     string
)

func init() {
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Output errors in JSON format")
	generateCmd.Flags().BoolVar(&generateVerbose, "verbose", false, "Show detailed generation output")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory (overrides config)")
}

var generateCmd = &cobra.Command{
	Use:   "generate [directive files]",
	Short: "Generate binding packages from directive files",
	Long: `Read each directive file, load the IDL document it names, and emit one
Go binding package per directive. With no arguments, all *.directive
files in the current directory are processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		outDir := cfg.Output
		if generateOut != "" {
			outDir = generateOut
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

		logger := newLogger(generateVerbose)
		defer logger.Sync()

		var bar *ui.ProgressBar
		if !generateJSON && !generateVerbose {
			bar = ui.NewProgressBar(os.Stdout, len(files), 0, "generating bindings", false)
		}

		// Directives are independent; a failing one never blocks the
		// others, and a failing stage never emits a partial module.
		var failures []error
		emitted := 0
		for _, file := range files {
			err := generateOne(file, outDir, cfg.IDL.DefaultVersion, logger)
			if bar != nil {
				bar.Add(1)
			}
			if err != nil {
				failures = append(failures, err)
				continue
			}
			emitted++
		}
		if bar != nil {
			bar.Clear()
		}

		if len(failures) > 0 {
			if generateJSON {
				outputErrorsJSON(failures)
			} else {
				for _, failure := range failures {
					ui.RenderError(os.Stderr, failure)
				}
			}
			return fmt.Errorf("generation failed for %d of %d directive(s)", len(failures), len(files))
		}

		elapsed := time.Since(startTime)
		ui.Success(os.Stdout, "Generated %d binding package(s) in %.2fs", emitted, elapsed.Seconds())
		ui.Info(os.Stdout, "  Output: %s", outDir)
		return nil
	},
}

// generateOne runs the full pipeline for one directive file and writes
// the emitted module under outDir.
func generateOne(file, outDir string, defaultVersion int, logger *zap.Logger) error {
	gen, err := runPipeline(file, defaultVersion, logger)
	if err != nil {
		return err
	}

	source, err := codegen.NewGenerator().GenerateModule(gen.Directive, instructionNames(gen.Program), gen.Bindings)
	if err != nil {
		return generr.Wrap(generr.PhaseEmit, generr.ErrWriteFailed,
			fmt.Sprintf("failed to emit module '%s'", gen.Directive.Name),
			generr.SourceLocation{File: file, Line: 1, Column: 1}, err)
	}

	fullPath := filepath.Join(outDir, codegen.FileName(gen.Directive))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return generr.Wrap(generr.PhaseEmit, generr.ErrWriteFailed,
			fmt.Sprintf("failed to create directory for %s", fullPath),
			generr.SourceLocation{File: file, Line: 1, Column: 1}, err)
	}
	if err := os.WriteFile(fullPath, []byte(source), 0644); err != nil {
		return generr.Wrap(generr.PhaseEmit, generr.ErrWriteFailed,
			fmt.Sprintf("failed to write %s", fullPath),
			generr.SourceLocation{File: file, Line: 1, Column: 1}, err)
	}

	logger.Debug("module emitted", zap.String("path", fullPath))
	return nil
}

// outputErrorsJSON mirrors the terminal rendering as machine-readable
// output for build tooling.
func outputErrorsJSON(failures []error) {
	genErrors := make([]generr.GenerateError, 0, len(failures))
	for _, failure := range failures {
		var genErr generr.GenerateError
		if errors.As(failure, &genErr) {
			genErrors = append(genErrors, genErr)
			continue
		}
		genErrors = append(genErrors, generr.New(generr.PhaseEmit, generr.ErrWriteFailed,
			failure.Error(), generr.SourceLocation{}))
	}

	output := struct {
		Success bool                   `json:"success"`
		Errors  []generr.GenerateError `json:"errors"`
	}{
		Success: false,
		Errors:  genErrors,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}
