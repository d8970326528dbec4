// Package events provides the in-process case-event bus.
// Moderation operations publish events here; the MQTT publisher and the
// web live feed subscribe to it.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type identifies the kind of case event
type Type string

const (
	TypeReportFiled          Type = "report_filed"
	TypeWarningIssued        Type = "warning_issued"
	TypeBanIssued            Type = "ban_issued"
	TypeSweepCompleted       Type = "sweep_completed"
	TypeChannelAccessRevoked Type = "channel_access_revoked"
)

// Event is a single case event
type Event struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	GuildID   string                 `json:"guildId"`
	UserID    string                 `json:"userId,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// New creates an event with a fresh id and the current time
func New(t Type, guildID, userID string, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		GuildID:   guildID,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Bus fans events out to subscribers. Publishing never blocks: slow
// subscribers miss events instead of stalling moderation operations.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
}

var (
	bus     *Bus
	busOnce sync.Once
)

// Init initializes the global event bus
func Init() *Bus {
	busOnce.Do(func() {
		bus = NewBus()
	})
	return bus
}

// Get returns the global event bus
func Get() *Bus {
	busOnce.Do(func() {
		bus = NewBus()
	})
	return bus
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Publish delivers an event to every subscriber
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The buffer bounds how far a subscriber may lag.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan Event, buffer)
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
