// Case event publishing over MQTT.
package mqtt

import (
	"fmt"
	"sync"

	"github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
)

// CaseEventPublisher forwards case events from the in-process bus to the
// MQTT broker so external tooling can follow moderation activity.
type CaseEventPublisher struct {
	communicator *MqttCommunicator
	bus          *events.Bus
	cancel       func()
	quit         chan struct{}
	done         chan struct{}
	stopOnce     sync.Once
}

// NewCaseEventPublisher creates a publisher bound to the given bus
func NewCaseEventPublisher(communicator *MqttCommunicator, bus *events.Bus) *CaseEventPublisher {
	return &CaseEventPublisher{
		communicator: communicator,
		bus:          bus,
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start subscribes to the bus and forwards events until Stop is called
func (p *CaseEventPublisher) Start() {
	ch, cancel := p.bus.Subscribe(64)
	p.cancel = cancel

	go func() {
		defer close(p.done)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				p.forward(event)
			case <-p.quit:
				return
			}
		}
	}()

	logger.System("Case event publisher started", "MQTT")
}

// forward publishes one event to its per-guild topic
func (p *CaseEventPublisher) forward(event events.Event) {
	if !p.communicator.IsConnected() {
		return
	}

	topic := fmt.Sprintf("pancycases/%s/events", event.GuildID)
	if err := p.communicator.Publish(topic, event); err != nil {
		logger.Warn(fmt.Sprintf("Could not publish case event %s: %v", event.ID, err), "MQTT")
	}
}

// Stop unsubscribes from the bus and waits for the forward loop to exit
func (p *CaseEventPublisher) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		if p.cancel == nil {
			return
		}
		p.cancel()
		<-p.done
	})
}
