package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/trestle/internal/schedule"
)

func newScheduleCmd() *cobra.Command {
	var (
		configPath string
		dataDate   string
	)

	cmd := &cobra.Command{
		Use:   "schedule <project-id>",
		Short: "Run a CPM scheduling pass for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, configPath, args[0], dataDate)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	cmd.Flags().StringVarP(&dataDate, "data-date", "d", "", "data date (RFC3339 or YYYY-MM-DD; default now)")
	return cmd
}

func runSchedule(cmd *cobra.Command, configPath, projectArg, dataDateArg string) error {
	out := cmd.OutOrStdout()

	projectID, err := strconv.ParseUint(projectArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid project id %q", projectArg)
	}

	var dataDate time.Time
	if dataDateArg != "" {
		dataDate, err = parseDataDate(dataDateArg)
		if err != nil {
			return err
		}
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	sched := schedule.NewService(gormDB, nil)
	summary, err := sched.Run(uint(projectID), dataDate)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Scheduled %q: %d tasks, data date %s\n",
		summary.ProjectTitle, summary.TaskCount, summary.DataDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Project finish: %s\n", summary.ProjectFinish.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Critical tasks: %v\n", summary.CriticalTaskIDs)
	if summary.DroppedEdges > 0 {
		fmt.Fprintf(out, "Skipped %d dangling relationships\n", summary.DroppedEdges)
	}
	for _, tf := range summary.NegativeFloat {
		fmt.Fprintf(out, "WARNING: %q misses its constraint by %.1f working hours\n", tf.Title, -tf.TotalFloat)
	}
	return nil
}

// parseDataDate accepts RFC3339 or a bare date (anchored at midnight local).
func parseDataDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid data date %q (want RFC3339 or YYYY-MM-DD)", v)
}
