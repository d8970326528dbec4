package moderation

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/PancyStudios/PancyCasesGo/pkg/models"
)

// BanOutcome is the discriminated result of a ban attempt
type BanOutcome int

const (
	// BanOutcomeBanned means the ban was recorded and enforced
	BanOutcomeBanned BanOutcome = iota
	// BanOutcomeAlreadyBanned means an active ban already existed; nothing was done
	BanOutcomeAlreadyBanned
	// BanOutcomeActionFailed means the ban was recorded but the platform
	// enforcement call failed
	BanOutcomeActionFailed
)

// Message returns a short moderator-facing description of the outcome
func (o BanOutcome) Message() string {
	switch o {
	case BanOutcomeBanned:
		return "The user has been banned."
	case BanOutcomeAlreadyBanned:
		return "The user already has an active ban."
	case BanOutcomeActionFailed:
		return "The ban was recorded, but enforcing it on the platform failed."
	default:
		return "Unknown ban outcome."
	}
}

// FileBan records and enforces a ban driven by the given report.
//
// An existing active ban short-circuits with no side effects. Otherwise the
// report and the ban record are durably written before the platform call is
// attempted, so a crash mid-operation leaves an auditable ban rather than
// silent enforcement with no record. A failed platform call therefore yields
// BanOutcomeActionFailed with the record already in place.
//
// The active-ban check is best effort: nothing at the storage layer enforces
// one active ban per user, so concurrent calls can race past it.
func (s *Service) FileBan(ctx context.Context, report *models.Report) (BanOutcome, error) {
	existing, err := s.store.ActiveBan(ctx, report.GuildID, report.UserID)
	if err != nil {
		return 0, &StoreError{Op: "find active ban", Err: err}
	}
	if existing != nil {
		return BanOutcomeAlreadyBanned, nil
	}

	if err := s.persistReport(ctx, report); err != nil {
		return 0, err
	}

	reason := report.Description
	if reason == "" {
		reason = "<none>"
	}

	ban := &models.Ban{
		GuildID:  report.GuildID,
		UserID:   report.UserID,
		Date:     s.now().UTC(),
		Active:   true,
		Reason:   reason,
		ReportID: report.ID,
	}

	banID, err := s.store.InsertBan(ctx, ban)
	if err != nil {
		return 0, &StoreError{Op: "insert ban", Err: err}
	}
	ban.ID = banID

	s.publish(events.TypeBanIssued, report.GuildID, report.UserID, map[string]interface{}{
		"banId":  banID.Hex(),
		"reason": reason,
	})

	gctx, cancel := s.gatewayCtx(ctx)
	err = s.access.PlatformBan(gctx, report.GuildID, report.UserID, reason)
	cancel()
	if err != nil {
		gerr := &GatewayError{Op: "platform ban", Err: err}
		logger.Error(fmt.Sprintf("Ban recorded but not enforced for user %s: %v", report.UserID, gerr), "Moderation")
		return BanOutcomeActionFailed, nil
	}

	return BanOutcomeBanned, nil
}
