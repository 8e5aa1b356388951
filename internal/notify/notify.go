// Package notify delivers best-effort Slack alerts after scheduling runs.
// Delivery failures are logged, never returned: an unreachable webhook must
// not fail a schedule calculation.
package notify

import (
	"fmt"
	"log"
	"strings"

	slackapi "github.com/slack-go/slack"
	"github.com/zulandar/trestle/internal/schedule"
)

// Config controls alert delivery. An empty WebhookURL disables alerts.
type Config struct {
	WebhookURL string
}

// ScheduleCompleted posts a run summary to the configured webhook, with a
// warning line per negative-float task.
func ScheduleCompleted(cfg Config, summary *schedule.RunSummary) {
	if cfg.WebhookURL == "" || summary == nil {
		return
	}
	msg := &slackapi.WebhookMessage{Text: FormatSummary(summary)}
	if err := slackapi.PostWebhook(cfg.WebhookURL, msg); err != nil {
		log.Printf("notify: post webhook: %v", err)
	}
}

// FormatSummary renders the alert text for a run summary.
func FormatSummary(s *schedule.RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule updated for %q: %d tasks, %d critical, finish %s",
		s.ProjectTitle, s.TaskCount, len(s.CriticalTaskIDs),
		s.ProjectFinish.Format("2006-01-02 15:04"))
	if s.DroppedEdges > 0 {
		fmt.Fprintf(&b, " (%d dangling relationships skipped)", s.DroppedEdges)
	}
	for _, tf := range s.NegativeFloat {
		fmt.Fprintf(&b, "\n:warning: %q misses its constraint by %.1f working hours", tf.Title, -tf.TotalFloat)
	}
	return b.String()
}
