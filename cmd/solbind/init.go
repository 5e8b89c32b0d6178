package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/solbind/solbind/internal/cli/ui"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing directive file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively scaffold a directive file",
	Long: `Prompt for the module name, IDL path, optional program id, and schema
version, then write a <name>.directive file in the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var moduleName string
		prompt := &survey.Input{
			Message: "Module name:",
			Help:    "Becomes the generated package name, e.g. spl_token",
		}
		if err := survey.AskOne(prompt, &moduleName, survey.WithValidator(survey.Required)); err != nil {
			return err
		}

		var idlPath string
		pathPrompt := &survey.Input{
			Message: "IDL document path:",
			Help:    "Relative paths resolve against the directive file",
		}
		if err := survey.AskOne(pathPrompt, &idlPath, survey.WithValidator(survey.Required)); err != nil {
			return err
		}

		var programID string
		idPrompt := &survey.Input{
			Message: "Program id (leave empty for unassigned):",
		}
		if err := survey.AskOne(idPrompt, &programID); err != nil {
			return err
		}

		var version string
		versionPrompt := &survey.Select{
			Message: "IDL schema version:",
			Options: []string{"1", "2"},
			Default: "1",
		}
		if err := survey.AskOne(versionPrompt, &version); err != nil {
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "// Binding directive for %s\n", moduleName)
		fmt.Fprintf(&b, "name = %q\n", moduleName)
		if programID != "" {
			fmt.Fprintf(&b, "id = %q\n", programID)
		}
		fmt.Fprintf(&b, "idl_path = %q\n", idlPath)
		fmt.Fprintf(&b, "idl_version = %s\n", version)

		fileName := moduleName + ".directive"
		if _, err := os.Stat(fileName); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", fileName)
		}
		if err := os.WriteFile(fileName, []byte(b.String()), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", fileName, err)
		}

		ui.Success(os.Stdout, "Wrote %s", fileName)
		ui.Info(os.Stdout, "  Generate bindings with: solbind generate %s", fileName)
		return nil
	},
}
