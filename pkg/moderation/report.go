package moderation

import (
	"context"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/models"
)

// CreateReport validates and constructs a report for the given user handle.
// The handle is resolved through the user directory; the report must carry a
// description or at least one attachment. The returned report is in-memory
// only: persisting it is the caller's job.
func (s *Service) CreateReport(ctx context.Context, guildID, userHandle, description string, attachments []string) (*models.Report, error) {
	gctx, cancel := s.gatewayCtx(ctx)
	userID, err := s.directory.Resolve(gctx, guildID, userHandle)
	cancel()
	if err != nil || userID == "" {
		return nil, ErrUserNotResolved
	}

	if description == "" && len(attachments) == 0 {
		return nil, ErrEmptyReport
	}

	return &models.Report{
		GuildID:     guildID,
		UserID:      userID,
		Description: description,
		Attachments: attachments,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}, nil
}

// FileReport persists a standalone report that carries no warning or ban.
// The report must come from CreateReport or be otherwise filled in.
func (s *Service) FileReport(ctx context.Context, report *models.Report) error {
	if err := s.persistReport(ctx, report); err != nil {
		return err
	}

	s.publish(events.TypeReportFiled, report.GuildID, report.UserID, map[string]interface{}{
		"reportId": report.ID.Hex(),
	})
	return nil
}

// persistReport writes the report if it has not been written yet and fills
// in its generated id
func (s *Service) persistReport(ctx context.Context, report *models.Report) error {
	if !report.ID.IsZero() {
		return nil
	}
	id, err := s.store.InsertReport(ctx, report)
	if err != nil {
		return &StoreError{Op: "insert report", Err: err}
	}
	report.ID = id
	return nil
}
