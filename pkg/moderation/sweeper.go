package moderation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/errors"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
)

// GuildLister supplies the guilds the sweeper should cover
type GuildLister interface {
	GuildIDs() []string
}

// Sweeper runs the expired-bans sweep on a recurring schedule
type Sweeper struct {
	service  *Service
	guilds   GuildLister
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool
	stopOnce sync.Once
}

// NewSweeper creates a sweeper for the given service and guild source
func NewSweeper(service *Service, guilds GuildLister, interval time.Duration) *Sweeper {
	return &Sweeper{
		service:  service,
		guilds:   guilds,
		interval: interval,
		done:     make(chan bool),
	}
}

// Start begins the periodic sweep goroutine
func (sw *Sweeper) Start() {
	sw.ticker = time.NewTicker(sw.interval)

	go func() {
		for {
			select {
			case <-sw.done:
				return
			case <-sw.ticker.C:
				sw.RunOnce()
			}
		}
	}()

	logger.System(fmt.Sprintf("Ban lifecycle sweeper started (every %s)", sw.interval), "Sweep")
}

// Stop halts the periodic sweep goroutine
func (sw *Sweeper) Stop() {
	sw.stopOnce.Do(func() {
		if sw.ticker != nil {
			sw.ticker.Stop()
		}
		close(sw.done)
	})
}

// RunOnce sweeps every known guild a single time
func (sw *Sweeper) RunOnce() {
	defer errors.RecoverMiddleware()()

	for _, guildID := range sw.guilds.GuildIDs() {
		result, err := sw.service.SweepExpiredBans(context.Background(), guildID)
		if err != nil {
			logger.Error(fmt.Sprintf("Ban sweep failed for guild %s: %v", guildID, err), "Sweep")
			continue
		}
		if result.NothingToDo() {
			logger.Debug(fmt.Sprintf("Ban sweep for guild %s: nothing to do", guildID), "Sweep")
		}
	}
}
