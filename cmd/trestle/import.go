package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zulandar/trestle/internal/importer"
)

func newImportCmd() *cobra.Command {
	var (
		configPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a project from a CSV, JSON or XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, configPath, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "file format (csv, json, xml; default from extension)")
	return cmd
}

func runImport(cmd *cobra.Command, configPath, path, format string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if format == "" {
		format = importer.FormatForFile(path)
		if format == "" {
			return fmt.Errorf("cannot guess format of %s, pass --format", path)
		}
	}

	staged, err := importer.Parse(format, data)
	if err != nil {
		return err
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	project, skipped, err := importer.Import(gormDB, staged)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported project %d: %s (%d tasks, %d relationships)\n",
		project.ID, project.Title, len(staged.Tasks), len(staged.Relationships)-skipped)
	if skipped > 0 {
		fmt.Fprintf(out, "Skipped %d relationships with unknown task references\n", skipped)
	}
	return nil
}
