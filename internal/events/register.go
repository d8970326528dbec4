// Package events provides a registry for organizing bot events.
package events

import (
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registering bot events...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Ban events (out-of-band unbans)
	RegisterBanEvents(client)

	// Shard events (disconnect/resume)
	RegisterShardEvents(client)

	logger.Success(fmt.Sprintf("✅ %d event handlers registered", client.EventHandler.Count()), "Events")
}
