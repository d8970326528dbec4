// Package mod - /mod report command
package mod

import (
	"context"
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createReportCommand creates the /mod report subcommand
func createReportCommand() *discord.Command {
	return discord.NewCommand(
		"report",
		"File a report against a user",
		"mod",
		reportHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User being reported",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "description",
			Description: "What happened",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionAttachment,
			Name:        "evidence",
			Description: "Screenshot or other evidence",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// reportHandler handles the /mod report command
func reportHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	description := ctx.GetStringOption("description")

	var attachments []string
	if att := ctx.GetAttachmentOption("evidence"); att != nil {
		attachments = append(attachments, att.URL)
	}

	svc := moderation.Get()
	report, err := svc.CreateReport(context.Background(), ctx.Interaction.GuildID, user.ID, description, attachments)
	if err != nil {
		if errors.Is(err, moderation.ErrEmptyReport) {
			return ctx.EditReply("❌ A report needs a description or at least one attachment.")
		}
		if errors.Is(err, moderation.ErrUserNotResolved) {
			return ctx.EditReply("❌ Could not resolve that user in this server.")
		}
		return ctx.EditReply(fmt.Sprintf("❌ Could not create the report: %v", err))
	}

	if err := svc.FileReport(context.Background(), report); err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Could not save the report: %v", err))
	}

	return ctx.EditReply(fmt.Sprintf("📋 Report filed against **%s**.", user.Username))
}
