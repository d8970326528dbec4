// Gateway implementations that back the moderation service with discordgo.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// allow/deny bits removed from a user when channel access is revoked
const revokedPermissions = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages

// UserDirectory resolves user handles against guild membership.
type UserDirectory struct {
	client *ExtendedClient
}

// NewUserDirectory creates a directory backed by the given client
func NewUserDirectory(client *ExtendedClient) *UserDirectory {
	return &UserDirectory{client: client}
}

// Resolve maps a handle (mention, raw id or username) to a stable user id.
// Returns an empty id without error when no member matches.
func (d *UserDirectory) Resolve(ctx context.Context, guildID, handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", nil
	}

	// Mentions arrive as <@123> or <@!123>
	if strings.HasPrefix(handle, "<@") && strings.HasSuffix(handle, ">") {
		id := strings.TrimSuffix(strings.TrimPrefix(handle, "<@"), ">")
		id = strings.TrimPrefix(id, "!")
		handle = id
	}

	// Numeric handles are treated as ids and verified against the guild
	if isSnowflake(handle) {
		member, err := d.client.Session.GuildMember(guildID, handle, discordgo.WithContext(ctx))
		if err != nil {
			if isNotFound(err) {
				return "", nil
			}
			return "", err
		}
		return member.User.ID, nil
	}

	members, err := d.client.Session.GuildMembersSearch(guildID, handle, 1, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "", nil
	}
	return members[0].User.ID, nil
}

func isSnowflake(s string) bool {
	if len(s) < 15 || len(s) > 21 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if ok := asRESTError(err, &restErr); ok && restErr.Response != nil {
		return restErr.Response.StatusCode == 404
	}
	return false
}

func asRESTError(err error, target **discordgo.RESTError) bool {
	for err != nil {
		if re, ok := err.(*discordgo.RESTError); ok {
			*target = re
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Notifier delivers direct messages to users.
type Notifier struct {
	client *ExtendedClient
}

// NewNotifier creates a notifier backed by the given client
func NewNotifier(client *ExtendedClient) *Notifier {
	return &Notifier{client: client}
}

// SendDirectMessage opens (or reuses) the DM channel and sends the text.
func (n *Notifier) SendDirectMessage(ctx context.Context, userID, text string) error {
	channel, err := n.client.Session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("opening DM channel for %s: %w", userID, err)
	}

	_, err = n.client.Session.ChannelMessageSendEmbed(channel.ID, &discordgo.MessageEmbed{
		Description: text,
		Color:       0xED4245,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "PancyCases Go",
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("sending DM to %s: %w", userID, err)
	}
	return nil
}

// AccessControl applies bans, unbans and channel permission overrides.
type AccessControl struct {
	client *ExtendedClient
}

// NewAccessControl creates an access controller backed by the given client
func NewAccessControl(client *ExtendedClient) *AccessControl {
	return &AccessControl{client: client}
}

// DenyChannelAccess sets a member permission override hiding the channel.
func (a *AccessControl) DenyChannelAccess(ctx context.Context, guildID, userID, channelID string) error {
	err := a.client.Session.ChannelPermissionSet(
		channelID,
		userID,
		discordgo.PermissionOverwriteTypeMember,
		0,
		revokedPermissions,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("denying access to channel %s for %s: %w", channelID, userID, err)
	}
	logger.Debug("Channel access denied: "+channelID+" user "+userID, "AccessControl")
	return nil
}

// PlatformBan bans the user from the guild without pruning messages.
func (a *AccessControl) PlatformBan(ctx context.Context, guildID, userID, reason string) error {
	err := a.client.Session.GuildBanCreateWithReason(guildID, userID, reason, 0, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("banning %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

// PlatformUnban removes the guild ban for the user.
func (a *AccessControl) PlatformUnban(ctx context.Context, guildID, userID string) error {
	err := a.client.Session.GuildBanDelete(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			// Ban already gone on the platform, nothing to lift
			return nil
		}
		return fmt.Errorf("unbanning %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}
