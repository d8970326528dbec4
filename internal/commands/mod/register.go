// Package mod provides the moderation case commands organized as
// subcommands under /mod. Each command is in its own file.
package mod

import (
	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
)

// RegisterModCommands registers all case management commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	reportCmd := createReportCommand()
	warnCmd := createWarnCommand()
	banCmd := createBanCommand()
	revokeCmd := createRevokeCommand()
	summaryCmd := createSummaryCommand()

	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Moderation case commands",
		reportCmd,
		warnCmd,
		banCmd,
		revokeCmd,
		summaryCmd,
	)

	client.CommandHandler.AddGlobalCommand(modGroup)
}
