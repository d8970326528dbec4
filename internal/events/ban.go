// Package events provides event handlers for platform ban changes
package events

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/database"
	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterBanEvents registers handlers that reconcile the case store when a
// ban changes outside the bot
func RegisterBanEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildBanRemove(onGuildBanRemove)
}

// onGuildBanRemove marks stored ban records inactive when a moderator lifts
// a ban directly on the platform
func onGuildBanRemove(s *discordgo.Session, b *discordgo.GuildBanRemove) {
	store := database.GetCaseStore()
	if store == nil {
		return
	}

	ctx := context.Background()
	ban, err := store.ActiveBan(ctx, b.GuildID, b.User.ID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Could not look up active ban for %s: %v", b.User.ID, err), "BanEvents")
		return
	}
	if ban == nil {
		return
	}

	if err := store.DeactivateBans(ctx, []primitive.ObjectID{ban.ID}); err != nil {
		logger.Warn(fmt.Sprintf("Could not deactivate ban %s: %v", ban.ID.Hex(), err), "BanEvents")
		return
	}

	logger.Info(fmt.Sprintf("🔓 Ban lifted on the platform, record %s deactivated", ban.ID.Hex()), "BanEvents")
}
