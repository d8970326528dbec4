// Package mod - /mod ban command
package mod

import (
	"context"
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the /mod ban subcommand
func createBanCommand() *discord.Command {
	return discord.NewCommand(
		"ban",
		"Ban a user, recording the case before enforcement",
		"mod",
		banHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to ban",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the ban",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// banHandler handles the /mod ban command
func banHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	reason := ctx.GetStringOption("reason")
	if reason == "" {
		reason = "<none>"
	}

	svc := moderation.Get()
	report, err := svc.CreateReport(context.Background(), ctx.Interaction.GuildID, user.ID, reason, nil)
	if err != nil {
		if errors.Is(err, moderation.ErrUserNotResolved) {
			return ctx.EditReply("❌ Could not resolve that user in this server.")
		}
		return ctx.EditReply(fmt.Sprintf("❌ Could not create the report: %v", err))
	}

	outcome, err := svc.FileBan(context.Background(), report)
	if err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Could not record the ban: %v", err))
	}

	icon := "🔨"
	if outcome != moderation.BanOutcomeBanned {
		icon = "ℹ️"
	}

	return ctx.EditReply(fmt.Sprintf("%s **%s**: %s", icon, user.Username, outcome.Message()))
}
