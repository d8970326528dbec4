// Package mod - /mod warn command
package mod

import (
	"context"
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Warn a user, escalating to a ban when the threshold is met",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to warn",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the warning",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// warnHandler handles the /mod warn command
func warnHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	reason := ctx.GetStringOption("reason")
	if reason == "" {
		return ctx.ReplyEphemeral("❌ You must specify a reason.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	svc := moderation.Get()
	report, err := svc.CreateReport(context.Background(), ctx.Interaction.GuildID, user.ID, reason, nil)
	if err != nil {
		if errors.Is(err, moderation.ErrUserNotResolved) {
			return ctx.EditReply("❌ Could not resolve that user in this server.")
		}
		return ctx.EditReply(fmt.Sprintf("❌ Could not create the report: %v", err))
	}

	result, err := svc.FileWarning(context.Background(), report)
	if err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Could not record the warning: %v", err))
	}

	icon := "⚠️"
	if result.Outcome == moderation.WarnOutcomeEscalated {
		icon = "🔨"
	}

	return ctx.EditReply(fmt.Sprintf("%s **%s**: %s\n**Reason:** %s\n**Moderator:** %s",
		icon,
		user.Username,
		result.Message(),
		reason,
		ctx.User().Username,
	))
}
