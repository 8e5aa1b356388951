package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/zulandar/trestle/internal/api"
	"github.com/zulandar/trestle/internal/notify"
	"github.com/zulandar/trestle/internal/schedule"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		Long:  "Serves the project scheduling API and, when configured, reschedules active projects on a cron interval.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trestle.yaml", "path to trestle config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	slackCfg := notify.Config{WebhookURL: cfg.Slack.WebhookURL}

	// Periodic recalculation: the engine itself never decides when to run,
	// so the trigger lives out here.
	if cfg.Schedule.Cron != "" {
		sched := schedule.NewService(gormDB, nil)
		c := cron.New()
		_, err := c.AddFunc(cfg.Schedule.Cron, func() {
			rescheduleActive(sched, slackCfg)
		})
		if err != nil {
			return fmt.Errorf("serve: invalid schedule.cron %q: %w", cfg.Schedule.Cron, err)
		}
		c.Start()
		defer c.Stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Rescheduling active projects on %q\n", cfg.Schedule.Cron)
	}

	return api.Start(ctx, api.StartOpts{
		DB:    gormDB,
		Port:  port,
		Out:   cmd.OutOrStdout(),
		Slack: slackCfg,
	})
}

// rescheduleActive runs a scheduling pass for every active project.
// Best-effort: a cycle in one project must not stop the others.
func rescheduleActive(sched *schedule.Service, slackCfg notify.Config) {
	ids, err := sched.ActiveProjectIDs()
	if err != nil {
		log.Printf("serve: reschedule: %v", err)
		return
	}
	for _, id := range ids {
		summary, err := sched.Run(id, time.Now())
		if err != nil {
			log.Printf("serve: reschedule project %d: %v", id, err)
			continue
		}
		notify.ScheduleCompleted(slackCfg, summary)
	}
}
