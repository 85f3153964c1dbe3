// Command devicesim publishes a signal event the way a registered device would.
package main

import (
	"encoding/json"
	"flag"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

func main() {
	broker := flag.String("broker", "", "MQTT broker URL (required)")
	device := flag.String("device", "", "external device id (required)")
	eventUUID := flag.String("uuid", "", "event uuid (random when empty)")
	signalJSON := flag.String("signal", `{"strength":1}`, "signal payload (JSON)")
	topicPrefix := flag.String("topic-prefix", "signals", "topic prefix")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	if *broker == "" || *device == "" {
		logger.Fatal("both --broker and --device are required")
	}
	if !json.Valid([]byte(*signalJSON)) {
		logger.Fatal("--signal is not valid JSON")
	}
	if *eventUUID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			logger.Fatal("uuid", zap.Error(err))
		}
		*eventUUID = id.String()
	}

	body, err := json.Marshal(struct {
		UUID   string          `json:"uuid"`
		Signal json.RawMessage `json:"signal"`
	}{UUID: *eventUUID, Signal: json.RawMessage(*signalJSON)})
	if err != nil {
		logger.Fatal("marshal", zap.Error(err))
	}

	o := mqtt.NewClientOptions()
	o.AddBroker(*broker)
	o.SetClientID("devicesim-" + *device)
	c := mqtt.NewClient(o)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		logger.Fatal("mqtt connect", zap.Error(token.Error()))
	}
	defer c.Disconnect(250)

	topic := fmt.Sprintf("%s/%s", *topicPrefix, *device)
	if token := c.Publish(topic, 1, false, body); token.Wait() && token.Error() != nil {
		logger.Fatal("mqtt publish", zap.Error(token.Error()))
	}

	logger.Info("published",
		zap.String("topic", topic),
		zap.String("uuid", *eventUUID),
	)
}
