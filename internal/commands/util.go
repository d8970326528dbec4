// Package commands provides utility commands for the bot.
package commands

import (
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/database"
	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
)

// RegisterUtilCommands registers all utility commands
func RegisterUtilCommands(client *discord.ExtendedClient) {
	// Ping command
	pingCmd := discord.NewCommand(
		"ping",
		"Check the bot latency",
		"util",
		func(ctx *discord.CommandContext) error {
			latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
			return ctx.Reply(fmt.Sprintf("🏓 Pong! Latency: %dms", latency))
		},
	)
	client.CommandHandler.RegisterCommand(pingCmd)
	client.CommandHandler.AddGlobalCommand(pingCmd.ToApplicationCommand())

	// Status command
	statusCmd := discord.NewCommand(
		"status",
		"Show the bot status",
		"util",
		func(ctx *discord.CommandContext) error {
			db := database.Get()
			dbStatus, _ := db.GetStatus()

			return ctx.Reply(fmt.Sprintf(
				"📊 **Bot status**\n"+
					"• Bot: 🟢 Online\n"+
					"• Database: %s\n"+
					"• Guilds: %d",
				dbStatus,
				ctx.Client.GuildCount(),
			))
		},
	)
	client.CommandHandler.RegisterCommand(statusCmd)
	client.CommandHandler.AddGlobalCommand(statusCmd.ToApplicationCommand())

	// Help command
	helpCmd := discord.NewCommand(
		"help",
		"Show help information",
		"util",
		func(ctx *discord.CommandContext) error {
			return ctx.Reply(
				"📖 **PancyCases Go help**\n\n" +
					"**Available commands:**\n" +
					"• `/ping` - Check the latency\n" +
					"• `/status` - Bot and database status\n" +
					"• `/mod report <user>` - File a report\n" +
					"• `/mod warn <user> <reason>` - Warn a user\n" +
					"• `/mod ban <user> [reason]` - Ban a user\n" +
					"• `/mod revoke <user> <channel>` - Revoke channel access\n" +
					"• `/mod summary <user>` - Moderation history",
			)
		},
	)
	client.CommandHandler.RegisterCommand(helpCmd)
	client.CommandHandler.AddGlobalCommand(helpCmd.ToApplicationCommand())
}
