package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/trestle/internal/baseline"
	"github.com/zulandar/trestle/internal/calendar"
)

func newBaselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Schedule baseline commands",
	}

	cmd.AddCommand(newBaselineCreateCmd())
	cmd.AddCommand(newBaselineListCmd())
	cmd.AddCommand(newBaselineCompareCmd())
	return cmd
}

func newBaselineCreateCmd() *cobra.Command {
	var (
		configPath  string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <project-id> <name>",
		Short: "Snapshot a project's current schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], "project id")
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			bl, err := baseline.Create(gormDB, projectID, args[1], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created baseline %d: %s\n", bl.ID, bl.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	cmd.Flags().StringVarP(&description, "description", "D", "", "baseline description")
	return cmd
}

func newBaselineListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's baselines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], "project id")
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			baselines, err := baseline.List(gormDB, projectID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, bl := range baselines {
				fmt.Fprintf(w, "%d\t%s\t%s\n", bl.ID, bl.Name, bl.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	return cmd
}

func newBaselineCompareCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "compare <project-id> <baseline-id>",
		Short: "Diff the current schedule against a baseline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], "project id")
			if err != nil {
				return err
			}
			baselineID, err := parseID(args[1], "baseline id")
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			variances, err := baseline.Compare(gormDB, calendar.Default(), projectID, baselineID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK\tTITLE\tSTART VAR (h)\tFINISH VAR (h)\tFLOAT CHANGE (h)")
			for _, v := range variances {
				fmt.Fprintf(w, "%d\t%s\t%+.1f\t%+.1f\t%+.1f\n",
					v.TaskID, v.Title, v.StartVarianceHours, v.FinishVarianceHours, v.FloatChange)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	return cmd
}

func parseID(arg, what string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return uint(id), nil
}
