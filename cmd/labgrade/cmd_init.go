package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jslab/labgrade/internal/projectconfig"
	"github.com/jslab/labgrade/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var (
		useDefaults bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .labgrade.yaml for a lab",
		Long: `Create a .labgrade.yaml in a directory (default: current directory).

Runs a short wizard for the lab name, deadline, time zone and submission
marks. Use --yes to accept the built-in lab's defaults without prompting.

An existing .labgrade.yaml is left untouched unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return initCommandE(cmd, dir, useDefaults, force)
		},
	}

	cmd.Flags().BoolVarP(&useDefaults, "yes", "y", false, "Write the defaults without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .labgrade.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, useDefaults, force bool) error {
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Fprintf(out, "%s already exists (use --force to overwrite)\n", configPath) //nolint:errcheck
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", configPath, err)
	}

	spec := wizard.DefaultSpec()
	if !useDefaults {
		var err error
		spec, err = wizard.RunInitWizard(cmd.InOrStdin(), out, spec)
		if err != nil {
			return err
		}
	} else if err := spec.Validate(); err != nil {
		return err
	}

	content, err := wizard.GenerateConfig(spec)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", projectconfig.FileName, err)
	}
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	fmt.Fprintf(out, "Created %s\n", configPath) //nolint:errcheck

	fmt.Fprintf(out, "\nNext: run 'labgrade grade %s' to grade the submission\n", dir) //nolint:errcheck
	return nil
}
