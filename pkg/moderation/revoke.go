package moderation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/PancyStudios/PancyCasesGo/pkg/models"
)

// ChannelRef identifies a channel targeted by an access revocation
type ChannelRef struct {
	ID   string
	Name string
}

// RevokeChannelAccess denies read and send access for the user on every
// given channel and files a summary report naming the channels where the
// revocation succeeded.
//
// The per-channel calls run concurrently and are joined before results are
// compiled; one failed channel never cancels its siblings. The returned
// slice holds exactly the channels whose revocation call succeeded, in input
// order, regardless of whether the summary report could be filed.
func (s *Service) RevokeChannelAccess(ctx context.Context, guildID, userHandle string, channels []ChannelRef) []ChannelRef {
	gctx, cancel := s.gatewayCtx(ctx)
	userID, err := s.directory.Resolve(gctx, guildID, userHandle)
	cancel()
	if err != nil || userID == "" {
		logger.Warn(fmt.Sprintf("Channel revocation skipped: could not resolve %q in guild %s", userHandle, guildID), "Moderation")
		return nil
	}

	succeeded := make([]bool, len(channels))
	var wg sync.WaitGroup

	for i, ch := range channels {
		wg.Add(1)
		go func(i int, ch ChannelRef) {
			defer wg.Done()

			gctx, cancel := s.gatewayCtx(ctx)
			defer cancel()

			if err := s.access.DenyChannelAccess(gctx, guildID, userID, ch.ID); err != nil {
				gerr := &GatewayError{Op: "deny channel " + ch.ID, Err: err}
				logger.Warn(fmt.Sprintf("Channel revocation failed for %s: %v", ch.Name, gerr), "Moderation")
				return
			}
			succeeded[i] = true
		}(i, ch)
	}
	wg.Wait()

	var revoked []ChannelRef
	for i, ok := range succeeded {
		if ok {
			revoked = append(revoked, channels[i])
		}
	}

	s.fileRevocationReport(ctx, guildID, userID, revoked)

	return revoked
}

// fileRevocationReport persists the summary report for a revocation run.
// Failures are logged; they never change the revocation result.
func (s *Service) fileRevocationReport(ctx context.Context, guildID, userID string, revoked []ChannelRef) {
	names := make([]string, 0, len(revoked))
	for _, ch := range revoked {
		names = append(names, ch.Name)
	}

	description := "Channel access revoked: none"
	if len(names) > 0 {
		description = "Channel access revoked: " + strings.Join(names, ", ")
	}

	report := &models.Report{
		GuildID:     guildID,
		UserID:      userID,
		Description: description,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}

	if err := s.persistReport(ctx, report); err != nil {
		logger.Warn(fmt.Sprintf("Could not file revocation summary for user %s: %v", userID, err), "Moderation")
		return
	}

	s.publish(events.TypeChannelAccessRevoked, guildID, userID, map[string]interface{}{
		"channels": names,
		"reportId": report.ID.Hex(),
	})
}
