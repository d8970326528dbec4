package events

import (
	"fmt"

	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

func RegisterShardEvents(client *discord.ExtendedClient) {
	client.EventHandler.RegisterEvent(onShardDisconnect)
	client.EventHandler.RegisterEvent(onShardResumed)
}

func onShardDisconnect(s *discordgo.Session, event *discordgo.Disconnect) {
	var shardID = s.ShardID
	logger.Info(fmt.Sprintf("🔌 Shard %d disconnected.", shardID), "Shard")
}

func onShardResumed(s *discordgo.Session, event *discordgo.Resumed) {
	var shardID = s.ShardID
	logger.Success(fmt.Sprintf("✅ Shard %d resumed.", shardID), "Shard")
}
