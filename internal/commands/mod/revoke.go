// Package mod - /mod revoke command
package mod

import (
	"context"
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createRevokeCommand creates the /mod revoke subcommand
func createRevokeCommand() *discord.Command {
	return discord.NewCommand(
		"revoke",
		"Revoke a user's access to one or more channels",
		"mod",
		revokeHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User losing access",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: "Channel to revoke",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel2",
			Description: "Additional channel to revoke",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel3",
			Description: "Additional channel to revoke",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageChannels).
		RequiresDatabase()
}

// revokeHandler handles the /mod revoke command
func revokeHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	var channels []moderation.ChannelRef
	for _, opt := range []string{"channel", "channel2", "channel3"} {
		if ch := ctx.GetChannelOption(opt); ch != nil {
			channels = append(channels, moderation.ChannelRef{ID: ch.ID, Name: ch.Name})
		}
	}
	if len(channels) == 0 {
		return ctx.ReplyEphemeral("❌ You must specify at least one channel.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	svc := moderation.Get()
	revoked := svc.RevokeChannelAccess(context.Background(), ctx.Interaction.GuildID, user.ID, channels)

	if len(revoked) == 0 {
		return ctx.EditReply(fmt.Sprintf("❌ Could not revoke any channel access for **%s**.", user.Username))
	}

	names := make([]string, 0, len(revoked))
	for _, ch := range revoked {
		names = append(names, "#"+ch.Name)
	}

	msg := fmt.Sprintf("🔒 Access revoked for **%s**: %s", user.Username, strings.Join(names, ", "))
	if len(revoked) < len(channels) {
		msg += fmt.Sprintf(" (%d of %d channels failed)", len(channels)-len(revoked), len(channels))
	}
	return ctx.EditReply(msg)
}
