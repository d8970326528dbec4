// Package mod - /mod summary command
package mod

import (
	"context"
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createSummaryCommand creates the /mod summary subcommand
func createSummaryCommand() *discord.Command {
	return discord.NewCommand(
		"summary",
		"Show a user's moderation history",
		"mod",
		summaryHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to look up",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// summaryHandler handles the /mod summary command
func summaryHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	svc := moderation.Get()
	summary, err := svc.BuildSummary(context.Background(), ctx.Interaction.GuildID, user.ID)
	if err != nil {
		if errors.Is(err, moderation.ErrUserNotResolved) {
			return ctx.EditReply("❌ Could not resolve that user in this server.")
		}
		return ctx.EditReply(fmt.Sprintf("❌ Could not build the summary: %v", err))
	}

	banStatus := "No"
	if summary.Banned {
		banStatus = "Yes"
	}

	embed := &discordgo.MessageEmbed{
		Title: "Moderation summary: " + user.Username,
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reports", Value: fmt.Sprintf("%d", summary.Reports), Inline: true},
			{Name: "Warnings", Value: fmt.Sprintf("%d", summary.Warnings), Inline: true},
			{Name: "Banned", Value: banStatus, Inline: true},
			{Name: "Last warning report", Value: summary.LastWarningReport},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "PancyCases Go",
		},
	}

	if summary.LastWarning != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Last warning",
			Value:  summary.LastWarning.Date.Format("2006-01-02 15:04 UTC"),
			Inline: true,
		})
	}
	if summary.LastBan != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Last ban",
			Value:  summary.LastBan.Date.Format("2006-01-02 15:04 UTC") + " (" + summary.LastBan.Reason + ")",
			Inline: true,
		})
	}

	return ctx.EditReplyEmbed(embed)
}
