package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/trestle/internal/models"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectCreateCmd())
	return cmd
}

func newProjectListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	return cmd
}

func runProjectList(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var projects []models.Project
	if err := gormDB.Order("id ASC").Find(&projects).Error; err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, p.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func newProjectCreateCmd() *cobra.Command {
	var (
		configPath  string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectCreate(cmd, configPath, args[0], description)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	cmd.Flags().StringVarP(&description, "description", "D", "", "project description")
	return cmd
}

func runProjectCreate(cmd *cobra.Command, configPath, title, description string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	project := models.Project{
		Title:       title,
		Description: description,
		Status:      "planning",
	}
	if err := gormDB.Create(&project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %d: %s\n", project.ID, project.Title)
	return nil
}
