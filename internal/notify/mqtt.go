package notify

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is where reminders are published when no topic is configured.
const DefaultTopic = "imsakiyah/notifikasi"

// publisher is the part of mqtt.Client the notifier needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT publishes each notification as JSON on a topic.
type MQTT struct {
	client publisher
	topic  string
	close  func()
}

// DialMQTT connects to broker (e.g. "tcp://localhost:1883") and returns a
// notifier publishing on topic.
func DialMQTT(broker, clientID, topic string) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	m := NewMQTT(client, topic)
	m.close = func() { client.Disconnect(250) }
	return m, nil
}

// NewMQTT wraps an already connected client.
func NewMQTT(client publisher, topic string) *MQTT {
	if topic == "" {
		topic = DefaultTopic
	}
	return &MQTT{client: client, topic: topic}
}

func (m *MQTT) Notify(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	token := m.client.Publish(m.topic, 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", m.topic, err)
	}
	return nil
}

// Close disconnects from the broker if DialMQTT opened the connection.
func (m *MQTT) Close() {
	if m.close != nil {
		m.close()
	}
}
