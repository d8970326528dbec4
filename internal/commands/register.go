// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (util, mod, etc.)
package commands

import (
	"github.com/PancyStudios/PancyCasesGo/internal/commands/mod"
	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands
	RegisterUtilCommands(client)

	// Moderation case commands (/mod report, /mod warn, /mod ban, /mod revoke, /mod summary)
	mod.RegisterModCommands(client)
}
