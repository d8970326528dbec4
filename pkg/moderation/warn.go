package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/PancyStudios/PancyCasesGo/pkg/models"
)

// WarnOutcome is the discriminated result of filing a warning event
type WarnOutcome int

const (
	// WarnOutcomeWarned means a plain warning was recorded
	WarnOutcomeWarned WarnOutcome = iota
	// WarnOutcomeEscalated means the warning threshold was met and the
	// event escalated into a ban
	WarnOutcomeEscalated
)

// WarnResult describes what happened to a warning event. BanOutcome is only
// meaningful when Outcome is WarnOutcomeEscalated.
type WarnResult struct {
	Outcome    WarnOutcome
	BanOutcome BanOutcome
	Warning    *models.Warning
}

// Message returns a short moderator-facing description of the result
func (r WarnResult) Message() string {
	if r.Outcome == WarnOutcomeEscalated {
		return "Warning threshold reached. " + r.BanOutcome.Message()
	}
	return "The user has been warned."
}

// FileWarning persists the report and either records a warning or, when the
// user's most recent WarningsThresh warnings all fall inside the rolling
// WarningsRangeDays window, escalates to a ban through the same path as a
// direct ban. A single older warning among the sample prevents escalation.
//
// The notification to the warned user is fire and forget: its failure never
// rolls back the warning record.
func (s *Service) FileWarning(ctx context.Context, report *models.Report) (WarnResult, error) {
	if err := s.persistReport(ctx, report); err != nil {
		return WarnResult{}, err
	}

	recent, err := s.store.RecentWarnings(ctx, report.GuildID, report.UserID, s.cfg.WarningsThresh)
	if err != nil {
		return WarnResult{}, &StoreError{Op: "find recent warnings", Err: err}
	}

	windowStart := s.now().UTC().Add(-time.Duration(s.cfg.WarningsRangeDays) * 24 * time.Hour)
	if s.shouldEscalate(recent, windowStart) {
		banOutcome, err := s.FileBan(ctx, report)
		if err != nil {
			return WarnResult{}, err
		}
		return WarnResult{Outcome: WarnOutcomeEscalated, BanOutcome: banOutcome}, nil
	}

	warning := &models.Warning{
		GuildID:  report.GuildID,
		UserID:   report.UserID,
		Date:     s.now().UTC(),
		ReportID: report.ID,
	}

	warningID, err := s.store.InsertWarning(ctx, warning)
	if err != nil {
		return WarnResult{}, &StoreError{Op: "insert warning", Err: err}
	}
	warning.ID = warningID

	s.publish(events.TypeWarningIssued, report.GuildID, report.UserID, map[string]interface{}{
		"warningId": warningID.Hex(),
		"reportId":  report.ID.Hex(),
	})

	s.notifyWarned(ctx, report)

	return WarnResult{Outcome: WarnOutcomeWarned, Warning: warning}, nil
}

// shouldEscalate reports whether the sampled warnings meet the threshold and
// all fall inside the rolling window
func (s *Service) shouldEscalate(recent []models.Warning, windowStart time.Time) bool {
	if len(recent) < s.cfg.WarningsThresh {
		return false
	}
	for _, w := range recent {
		if w.Date.Before(windowStart) {
			return false
		}
	}
	return true
}

// notifyWarned sends the best-effort direct message for a recorded warning
func (s *Service) notifyWarned(ctx context.Context, report *models.Report) {
	text := "You have received a warning."
	if report.Description != "" {
		text = fmt.Sprintf("You have received a warning: %s", report.Description)
	}

	gctx, cancel := s.gatewayCtx(ctx)
	defer cancel()
	if err := s.notifier.SendDirectMessage(gctx, report.UserID, text); err != nil {
		gerr := &GatewayError{Op: "warn notification", Err: err}
		logger.Warn(fmt.Sprintf("Could not notify user %s about the warning: %v", report.UserID, gerr), "Moderation")
	}
}
