package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coachdesk/internal/adapters/email"
	"coachdesk/internal/application/projections"
)

// EmailSummaryInput carries input for the summary email.
type EmailSummaryInput struct {
	To      string
	Summary projections.Summary
	Trend   []projections.TrendPoint
}

// EmailSummaryDeps holds dependencies for the summary email.
type EmailSummaryDeps struct {
	Sender  email.Sender
	From    string
	ReplyTo string
}

// ErrNoRecipient is returned when no signed-in address is available.
var ErrNoRecipient = errors.New("no recipient address")

// ExecuteEmailSummary mails the current dashboard summary to the
// signed-in user.
// PRE: input.Summary is computed over the view the user is looking at
// POST: One email is queued; failures propagate to the caller
func ExecuteEmailSummary(ctx context.Context, input EmailSummaryInput, deps EmailSummaryDeps) error {
	if input.To == "" {
		return ErrNoRecipient
	}

	html := summaryHTML(input)
	_, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{input.To},
		From:    deps.From,
		ReplyTo: deps.ReplyTo,
		Subject: fmt.Sprintf("Coaching summary for %s", time.Now().Format("2 Jan 2006")),
		HTML:    html,
	})
	if err != nil {
		return err
	}
	slog.Info("summary_email_sent", "to", input.To)
	return nil
}

func summaryHTML(input EmailSummaryInput) string {
	s := input.Summary
	html := "<h2>Coaching summary</h2><ul>"
	html += fmt.Sprintf("<li>Employees: %d</li>", s.EmployeeCount)
	html += fmt.Sprintf("<li>Total sessions: %d</li>", s.SessionCount)
	html += fmt.Sprintf("<li>Completed: %d</li>", s.Completed)
	html += fmt.Sprintf("<li>No-shows: %d</li>", s.NoShow)
	html += fmt.Sprintf("<li>Utilization: %d%%</li>", s.Utilization)
	html += fmt.Sprintf("<li>Avg sessions per employee: %s</li>", s.AvgSessions)
	html += "</ul>"

	if len(input.Trend) > 0 {
		html += "<h3>Completed sessions by month</h3><ul>"
		for _, p := range input.Trend {
			html += fmt.Sprintf("<li>%s: %d</li>", p.Label, p.Count)
		}
		html += "</ul>"
	}
	return html
}
