package moderation

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/PancyStudios/PancyCasesGo/pkg/models"
)

// NoLinkedReport is the placeholder used when the latest warning has no
// resolvable report attached
const NoLinkedReport = "none"

// Summary is a read-only aggregation of a user's moderation history
type Summary struct {
	UserID            string
	Reports           int64
	Warnings          int64
	Banned            bool
	LastBan           *models.Ban
	LastWarning       *models.Warning
	LastWarningReport string
}

// BuildSummary aggregates counts and most recent records for a user. Every
// sub-query is independent and best effort: a failed count or a missing
// linked report yields a zero value or placeholder, never a failed summary.
// Only an unresolvable handle is an error.
func (s *Service) BuildSummary(ctx context.Context, guildID, userHandle string) (*Summary, error) {
	gctx, cancel := s.gatewayCtx(ctx)
	userID, err := s.directory.Resolve(gctx, guildID, userHandle)
	cancel()
	if err != nil || userID == "" {
		return nil, ErrUserNotResolved
	}

	summary := &Summary{
		UserID:            userID,
		LastWarningReport: NoLinkedReport,
	}

	if reports, err := s.store.CountReports(ctx, guildID, userID); err != nil {
		logger.Debug(fmt.Sprintf("Summary: report count unavailable for %s: %v", userID, err), "Moderation")
	} else {
		summary.Reports = reports
	}

	if warnings, err := s.store.CountWarnings(ctx, guildID, userID); err != nil {
		logger.Debug(fmt.Sprintf("Summary: warning count unavailable for %s: %v", userID, err), "Moderation")
	} else {
		summary.Warnings = warnings
	}

	if ban, err := s.store.LatestBan(ctx, guildID, userID); err != nil {
		logger.Debug(fmt.Sprintf("Summary: latest ban unavailable for %s: %v", userID, err), "Moderation")
	} else if ban != nil {
		summary.LastBan = ban
		summary.Banned = ban.Active
	}

	warning, err := s.store.LatestWarning(ctx, guildID, userID)
	if err != nil {
		logger.Debug(fmt.Sprintf("Summary: latest warning unavailable for %s: %v", userID, err), "Moderation")
		return summary, nil
	}
	if warning == nil {
		return summary, nil
	}
	summary.LastWarning = warning

	report, err := s.store.ReportByID(ctx, warning.ReportID)
	if err != nil || report == nil {
		return summary, nil
	}
	if report.Description != "" {
		summary.LastWarningReport = report.Description
	}

	return summary, nil
}
