package moderation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SweepResult summarizes one expired-bans sweep for a guild
type SweepResult struct {
	// Matched is how many active bans were past the retention period
	Matched int
	// Lifted is how many platform unban calls succeeded
	Lifted int
	// Errors holds the per-ban unban failures; one failed unban never
	// blocks the others
	Errors []error
}

// NothingToDo reports whether the sweep found no expired bans (or had no
// store to look in). This is distinct from an error.
func (r SweepResult) NothingToDo() bool {
	return r.Matched == 0
}

// SweepExpiredBans lifts active bans that are at or past the retention
// period. Every matched ban is marked inactive in one batched update even
// when its platform unban call failed; the record is treated as processed so
// the sweep does not retry it forever.
//
// Sweeps for the same guild are serialized within the process.
func (s *Service) SweepExpiredBans(ctx context.Context, guildID string) (SweepResult, error) {
	lock := s.guildSweepLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	if !s.store.Available() {
		logger.Debug(fmt.Sprintf("Ban sweep for guild %s skipped: store unavailable", guildID), "Sweep")
		return SweepResult{}, nil
	}

	cutoff := s.now().UTC().Add(-time.Duration(s.cfg.RetentionDays) * 24 * time.Hour)
	expired, err := s.store.ExpiredActiveBans(ctx, guildID, cutoff)
	if err != nil {
		return SweepResult{}, &StoreError{Op: "find expired bans", Err: err}
	}

	if len(expired) == 0 {
		return SweepResult{}, nil
	}

	result := SweepResult{Matched: len(expired)}
	processed := make([]primitive.ObjectID, 0, len(expired))

	for _, ban := range expired {
		gctx, cancel := s.gatewayCtx(ctx)
		err := s.access.PlatformUnban(gctx, ban.GuildID, ban.UserID)
		cancel()
		if err != nil {
			gerr := &GatewayError{Op: "platform unban " + ban.UserID, Err: err}
			logger.Error(fmt.Sprintf("Unban failed during sweep for guild %s: %v", guildID, gerr), "Sweep")
			result.Errors = append(result.Errors, gerr)
		} else {
			result.Lifted++
		}
		// attempted bans are marked processed either way
		processed = append(processed, ban.ID)
	}

	if err := s.store.DeactivateBans(ctx, processed); err != nil {
		return result, &StoreError{Op: "deactivate bans", Err: err}
	}

	s.publish(events.TypeSweepCompleted, guildID, "", map[string]interface{}{
		"matched": result.Matched,
		"lifted":  result.Lifted,
		"errors":  len(result.Errors),
	})

	logger.Info(fmt.Sprintf("Ban sweep for guild %s: %d matched, %d lifted, %d errors",
		guildID, result.Matched, result.Lifted, len(result.Errors)), "Sweep")

	return result, nil
}

// guildSweepLock returns the mutex serializing sweeps for one guild
func (s *Service) guildSweepLock(guildID string) *sync.Mutex {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()

	lock, ok := s.sweepLocks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		s.sweepLocks[guildID] = lock
	}
	return lock
}
