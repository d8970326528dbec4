// Package moderation implements the case-management core: filing reports,
// escalating repeated warnings into bans, lifting expired bans, and revoking
// channel access. Everything that talks to Discord or the database goes
// through the Store and gateway interfaces so the decision logic stays
// testable on its own.
package moderation

import (
	"context"
	"sync"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Config holds the escalation and retention settings.
// WarningsThresh must be >= 1; that is a configuration precondition,
// not something the engine checks per call.
type Config struct {
	WarningsThresh    int
	WarningsRangeDays int
	RetentionDays     int
}

// Store is the persistence contract for the three case collections
type Store interface {
	Available() bool
	InsertReport(ctx context.Context, r *models.Report) (primitive.ObjectID, error)
	InsertWarning(ctx context.Context, w *models.Warning) (primitive.ObjectID, error)
	InsertBan(ctx context.Context, b *models.Ban) (primitive.ObjectID, error)
	RecentWarnings(ctx context.Context, guildID, userID string, limit int) ([]models.Warning, error)
	ActiveBan(ctx context.Context, guildID, userID string) (*models.Ban, error)
	ExpiredActiveBans(ctx context.Context, guildID string, cutoff time.Time) ([]models.Ban, error)
	DeactivateBans(ctx context.Context, ids []primitive.ObjectID) error
	CountReports(ctx context.Context, guildID, userID string) (int64, error)
	CountWarnings(ctx context.Context, guildID, userID string) (int64, error)
	LatestBan(ctx context.Context, guildID, userID string) (*models.Ban, error)
	LatestWarning(ctx context.Context, guildID, userID string) (*models.Warning, error)
	ReportByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
}

// UserDirectory resolves a human-readable handle to a stable user id
type UserDirectory interface {
	Resolve(ctx context.Context, guildID, handle string) (string, error)
}

// NotificationGateway delivers a direct message to a sanctioned user.
// Failures are logged by callers, never fatal.
type NotificationGateway interface {
	SendDirectMessage(ctx context.Context, userID, text string) error
}

// AccessControlGateway applies platform-level sanctions
type AccessControlGateway interface {
	DenyChannelAccess(ctx context.Context, guildID, userID, channelID string) error
	PlatformBan(ctx context.Context, guildID, userID, reason string) error
	PlatformUnban(ctx context.Context, guildID, userID string) error
}

// Service is the moderation case-management engine
type Service struct {
	cfg       Config
	store     Store
	directory UserDirectory
	notifier  NotificationGateway
	access    AccessControlGateway
	bus       *events.Bus

	gatewayTimeout time.Duration
	now            func() time.Time

	// serializes sweeps per guild
	sweepMu    sync.Mutex
	sweepLocks map[string]*sync.Mutex
}

var (
	service     *Service
	serviceOnce sync.Once
)

// Init initializes the global moderation service
func Init(cfg Config, store Store, directory UserDirectory, notifier NotificationGateway, access AccessControlGateway, bus *events.Bus) *Service {
	serviceOnce.Do(func() {
		service = NewService(cfg, store, directory, notifier, access, bus)
	})
	return service
}

// Get returns the global moderation service
func Get() *Service {
	return service
}

// NewService creates a moderation service. bus may be nil to disable
// case-event publishing.
func NewService(cfg Config, store Store, directory UserDirectory, notifier NotificationGateway, access AccessControlGateway, bus *events.Bus) *Service {
	return &Service{
		cfg:            cfg,
		store:          store,
		directory:      directory,
		notifier:       notifier,
		access:         access,
		bus:            bus,
		gatewayTimeout: 10 * time.Second,
		now:            time.Now,
		sweepLocks:     make(map[string]*sync.Mutex),
	}
}

// Config returns the service configuration
func (s *Service) Config() Config {
	return s.cfg
}

// publish emits a case event when a bus is attached
func (s *Service) publish(t events.Type, guildID, userID string, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.New(t, guildID, userID, data))
}

// gatewayCtx bounds an external gateway call; an expired timeout is handled
// like any other failure of that call
func (s *Service) gatewayCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.gatewayTimeout)
}
