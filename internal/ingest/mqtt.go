package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig holds the connection settings for the subscription channel.
type MQTTConfig struct {
	BrokerURL string
	ClientID  string
	Topic     string // e.g. signals/+, last segment is the device routing key
	Username  string
	Password  string
}

// MQTTSource adapts an MQTT subscription to the Source contract. Messages
// are consumed at QoS 1 on a persistent session with auto-ack disabled, so a
// message whose Ack is never called is redelivered after reconnect.
type MQTTSource struct {
	client mqtt.Client
	topic  string
}

// NewMQTTSource connects to the broker. A broker that cannot be reached is a
// startup failure for the caller to treat as fatal.
func NewMQTTSource(cfg MQTTConfig) (*MQTTSource, error) {
	o := mqtt.NewClientOptions()
	o.AddBroker(cfg.BrokerURL)
	o.SetClientID(cfg.ClientID)
	o.SetCleanSession(false)
	o.SetAutoAckDisabled(true)
	o.SetOrderMatters(false)
	o.SetConnectRetry(true)
	o.SetConnectRetryInterval(2 * time.Second)
	if cfg.Username != "" {
		o.SetUsername(cfg.Username)
		o.SetPassword(cfg.Password)
	}

	c := mqtt.NewClient(o)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.BrokerURL, token.Error())
	}
	return &MQTTSource{client: c, topic: cfg.Topic}, nil
}

// Subscribe delivers messages to the handler until ctx is done, then
// disconnects. Handlers run on the paho callback goroutines.
func (s *MQTTSource) Subscribe(ctx context.Context, handler func(Message)) error {
	token := s.client.Subscribe(s.topic, 1, func(_ mqtt.Client, m mqtt.Message) {
		handler(&mqttMessage{msg: m})
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", s.topic, token.Error())
	}

	<-ctx.Done()
	s.client.Disconnect(250)
	return nil
}

// mqttMessage exposes the device routing key, carried in the last topic
// segment, as the deviceId attribute.
type mqttMessage struct{ msg mqtt.Message }

func (m *mqttMessage) Attribute(key string) string {
	if key != AttrDeviceID {
		return ""
	}
	topic := m.msg.Topic()
	return topic[strings.LastIndexByte(topic, '/')+1:]
}

func (m *mqttMessage) Body() []byte { return m.msg.Payload() }

func (m *mqttMessage) Ack() { m.msg.Ack() }
