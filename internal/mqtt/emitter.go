package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/denwilliams/go-wakeuplight/internal/light"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, retained bool) error
}

// StateEmitter publishes state records, retained, to the state topic.
type StateEmitter struct {
	publisher Publisher
	topic     string
}

func NewMqttStateEmitter(mc *MQTTClient) *StateEmitter {
	return &StateEmitter{publisher: mc, topic: mc.topics.State}
}

func (e *StateEmitter) EmitState(ctx context.Context, state light.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return e.publisher.Publish(ctx, e.topic, payload, true)
}
