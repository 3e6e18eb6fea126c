package mqtt

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	pm "github.com/eclipse/paho.mqtt.golang"

	"github.com/denwilliams/go-wakeuplight/internal/light"
	"github.com/denwilliams/go-wakeuplight/internal/logging"
)

const disconnectQuiesce = 250 // ms

var ErrNotConnected = errors.New("mqtt client not connected")

type CommandHandler interface {
	HandleCommand(command *light.Command) error
}

type Topics struct {
	Set   string
	State string
	Debug string
}

type MQTTClient struct {
	opts   *pm.ClientOptions
	client pm.Client
	topics Topics
}

func NewMQTTClient(uri *url.URL, clientID string, topics Topics) *MQTTClient {
	broker := *uri
	broker.User = nil

	opts := pm.NewClientOptions().
		AddBroker(broker.String()).
		SetClientID(clientID + "_" + uniuri.New()).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(time.Minute).
		SetConnectionLostHandler(onConnectionLostHandler)
	if uri.User != nil {
		opts.SetUsername(uri.User.Username())
		if pw, ok := uri.User.Password(); ok {
			opts.SetPassword(pw)
		}
	}

	return &MQTTClient{opts: opts, topics: topics}
}

// Publish sends payload with QoS 1 and waits for the broker or ctx.
func (mc *MQTTClient) Publish(ctx context.Context, topic string, payload []byte, retained bool) error {
	if mc.client == nil {
		return ErrNotConnected
	}

	token := mc.client.Publish(topic, 1, retained, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", topic, ctx.Err())
	}
}

// Connect connects to the broker and routes set commands to h. The set topic
// is subscribed from the connect handler so it survives reconnects.
func (mc *MQTTClient) Connect(h CommandHandler) error {
	mc.opts.SetOnConnectHandler(mc.onConnectHandler(mc.messageHandler(h)))
	mc.client = pm.NewClient(mc.opts)

	if token := mc.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to mqtt: %w", token.Error())
	}
	return nil
}

func (mc *MQTTClient) Disconnect() {
	if mc.client == nil {
		return
	}
	logging.Info("Disconnecting from MQTT")

	// Unsubscribe from the topic
	if mc.client.IsConnectionOpen() {
		if token := mc.client.Unsubscribe(mc.topics.Set); token.Wait() && token.Error() != nil {
			logging.Warn("Failed to unsubscribe from %s: %s", mc.topics.Set, token.Error())
		}
	}

	// Disconnect from the MQTT broker
	mc.client.Disconnect(disconnectQuiesce)
}

func (mc *MQTTClient) onConnectHandler(handler pm.MessageHandler) pm.OnConnectHandler {
	return func(c pm.Client) {
		logging.Info("Connected to MQTT")

		// Subscribe to the topic with a QoS of 1
		if token := c.Subscribe(mc.topics.Set, 1, handler); token.Wait() && token.Error() != nil {
			logging.Error("Failed to subscribe to %s: %s", mc.topics.Set, token.Error())
			return
		}
		logging.Info("Subscribed to %s", mc.topics.Set)

		if mc.topics.Debug != "" {
			if token := c.Publish(mc.topics.Debug, 0, false, "alive"); token.Wait() && token.Error() != nil {
				logging.Warn("Failed to publish to %s: %s", mc.topics.Debug, token.Error())
			}
		}
	}
}

// messageHandler decodes set payloads and hands them to h in arrival order.
// Undecodable payloads are logged and dropped.
func (mc *MQTTClient) messageHandler(h CommandHandler) pm.MessageHandler {
	wildcard := strings.HasSuffix(mc.topics.Set, "#")
	prefix := strings.TrimSuffix(mc.topics.Set, "#")

	return func(client pm.Client, msg pm.Message) {
		topic := msg.Topic()
		if topic != mc.topics.Set && !(wildcard && strings.HasPrefix(topic, prefix)) {
			return
		}

		payload := msg.Payload()
		command, err := light.ParseCommand(payload)
		if err != nil {
			logging.Warn("Error unmarshalling JSON: %s %v", err, string(payload))
			return
		}
		logging.Debug("Received message on topic %s: %s", topic, command.String())

		if err := h.HandleCommand(command); err != nil {
			logging.Warn("Command on %s dropped: %s", topic, err)
		}
	}
}

func onConnectionLostHandler(c pm.Client, err error) {
	logging.Warn("Lost MQTT connection, reconnecting: %s", err)
}
