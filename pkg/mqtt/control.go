// Remote sweep trigger over MQTT.
package mqtt

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyCasesGo/pkg/errors"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	json "github.com/goccy/go-json"
)

// sweepControlTopic receives {"guildId": "..."} messages from external
// tooling to run a ban sweep outside the ticker schedule.
const sweepControlTopic = "pancycases/control/sweep"

const sweepTimeout = 60 * time.Second

// SweepRunner is the slice of the moderation service the control topic needs
type SweepRunner interface {
	SweepExpiredBans(ctx context.Context, guildID string) (moderation.SweepResult, error)
}

type sweepCommand struct {
	GuildID string `json:"guildId"`
}

// RegisterSweepControl subscribes to the sweep control topic. The returned
// function unsubscribes.
func RegisterSweepControl(mc *MqttCommunicator, svc SweepRunner) func() {
	err := mc.Subscribe(sweepControlTopic, func(topic string, payload []byte) {
		guildID, err := parseSweepCommand(payload)
		if err != nil {
			logger.Warn(fmt.Sprintf("Ignoring sweep command: %v", err), "MQTT")
			return
		}
		go runRequestedSweep(svc, guildID)
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Could not subscribe to %s: %v", sweepControlTopic, err), "MQTT")
	} else {
		logger.System("Sweep control topic registered", "MQTT")
	}

	return func() {
		if err := mc.Unsubscribe(sweepControlTopic); err != nil {
			logger.Warn(fmt.Sprintf("Could not unsubscribe from %s: %v", sweepControlTopic, err), "MQTT")
		}
	}
}

// parseSweepCommand decodes a control message and validates the guild id
func parseSweepCommand(payload []byte) (string, error) {
	var cmd sweepCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return "", err
	}
	if cmd.GuildID == "" {
		return "", fmt.Errorf("missing 'guildId' field")
	}
	return cmd.GuildID, nil
}

// runRequestedSweep runs one sweep for the requested guild
func runRequestedSweep(svc SweepRunner, guildID string) {
	defer errors.RecoverMiddleware()()

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	result, err := svc.SweepExpiredBans(ctx, guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Requested sweep for guild %s failed: %v", guildID, err), "MQTT")
		return
	}
	logger.Info(fmt.Sprintf("Requested sweep for guild %s: %d matched, %d lifted, %d errors",
		guildID, result.Matched, result.Lifted, len(result.Errors)), "MQTT")
}
