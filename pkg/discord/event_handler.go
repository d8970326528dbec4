// Package discord provides the event handler for managing Discord events.
package discord

import (
	"sync"

	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// EventHandler manages event loading and registration
type EventHandler struct {
	client *ExtendedClient
	events []interface{}
	mu     sync.RWMutex
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(client *ExtendedClient) *EventHandler {
	return &EventHandler{
		client: client,
		events: make([]interface{}, 0),
	}
}

// RegisterEvent adds an event handler to the Discord session
func (eh *EventHandler) RegisterEvent(handler interface{}) {
	eh.client.Session.AddHandler(handler)
	eh.mu.Lock()
	eh.events = append(eh.events, handler)
	eh.mu.Unlock()
	logger.Debug("Event registered", "EventHandler")
}

// Count returns how many event handlers have been registered
func (eh *EventHandler) Count() int {
	eh.mu.RLock()
	defer eh.mu.RUnlock()
	return len(eh.events)
}

// Event handler types for common Discord events

// ReadyHandler is called when the bot is ready
type ReadyHandler func(s *discordgo.Session, r *discordgo.Ready)

// GuildCreateHandler is called when the bot joins a guild
type GuildCreateHandler func(s *discordgo.Session, g *discordgo.GuildCreate)

// GuildDeleteHandler is called when the bot leaves a guild
type GuildDeleteHandler func(s *discordgo.Session, g *discordgo.GuildDelete)

// GuildBanRemoveHandler is called when a ban is lifted on the platform
type GuildBanRemoveHandler func(s *discordgo.Session, b *discordgo.GuildBanRemove)

// InteractionCreateHandler is called when an interaction is created
type InteractionCreateHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Helper functions to register common event types. The handlers are
// converted to their plain function signatures because discordgo's
// AddHandler type-switches on those exact types.

// OnReady registers a ready event handler
func (eh *EventHandler) OnReady(handler ReadyHandler) {
	eh.RegisterEvent((func(s *discordgo.Session, r *discordgo.Ready))(handler))
	logger.Debug("Event 'Ready' registered", "EventHandler")
}

// OnGuildCreate registers a guild create event handler
func (eh *EventHandler) OnGuildCreate(handler GuildCreateHandler) {
	eh.RegisterEvent((func(s *discordgo.Session, g *discordgo.GuildCreate))(handler))
	logger.Debug("Event 'GuildCreate' registered", "EventHandler")
}

// OnGuildDelete registers a guild delete event handler
func (eh *EventHandler) OnGuildDelete(handler GuildDeleteHandler) {
	eh.RegisterEvent((func(s *discordgo.Session, g *discordgo.GuildDelete))(handler))
	logger.Debug("Event 'GuildDelete' registered", "EventHandler")
}

// OnGuildBanRemove registers a guild ban remove event handler
func (eh *EventHandler) OnGuildBanRemove(handler GuildBanRemoveHandler) {
	eh.RegisterEvent((func(s *discordgo.Session, b *discordgo.GuildBanRemove))(handler))
	logger.Debug("Event 'GuildBanRemove' registered", "EventHandler")
}

// OnInteractionCreate registers an interaction create event handler
func (eh *EventHandler) OnInteractionCreate(handler InteractionCreateHandler) {
	eh.RegisterEvent((func(s *discordgo.Session, i *discordgo.InteractionCreate))(handler))
	logger.Debug("Event 'InteractionCreate' registered", "EventHandler")
}
