// Summary queries over MQTT.
package mqtt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
)

// summaryTopic is the request topic pattern for summary queries; the '+'
// level carries the guild id.
const summaryTopic = "guilds/+/summary"

const queryTimeout = 10 * time.Second

// SummaryBuilder is the slice of the moderation service the responder needs
type SummaryBuilder interface {
	BuildSummary(ctx context.Context, guildID, userHandle string) (*moderation.Summary, error)
}

// RegisterSummaryResponder answers summary queries published to
// pancycases/request/guilds/<guildId>/summary with a {"user": "..."} payload.
func RegisterSummaryResponder(mc *MqttCommunicator, svc SummaryBuilder) {
	mc.On(summaryTopic, func(payload map[string]interface{}) (interface{}, error) {
		return handleSummaryQuery(svc, payload)
	})
	logger.System("Summary query responder registered", "MQTT")
}

// handleSummaryQuery resolves one summary request payload
func handleSummaryQuery(svc SummaryBuilder, payload map[string]interface{}) (interface{}, error) {
	topic, _ := payload["_topic"].(string)
	if !topicMatch(summaryTopic, topic) {
		return nil, fmt.Errorf("unexpected topic %q", topic)
	}
	guildID := strings.Split(topic, "/")[1]

	user, _ := payload["user"].(string)
	if user == "" {
		return nil, fmt.Errorf("missing 'user' field")
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	summary, err := svc.BuildSummary(ctx, guildID, user)
	if err != nil {
		return nil, err
	}

	resp := map[string]interface{}{
		"userId":            summary.UserID,
		"reports":           summary.Reports,
		"warnings":          summary.Warnings,
		"banned":            summary.Banned,
		"lastWarningReport": summary.LastWarningReport,
	}
	if summary.LastBan != nil {
		resp["lastBan"] = map[string]interface{}{
			"date":   summary.LastBan.Date,
			"reason": summary.LastBan.Reason,
			"active": summary.LastBan.Active,
		}
	}
	return resp, nil
}
