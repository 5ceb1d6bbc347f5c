// Package ingest feeds sensor readings published over MQTT into the shell.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"predixaai-alerts/internal/sensor"
)

// ReadingHandler receives every decoded reading. deviceID is the topic
// segment matched by the first "+" wildcard, or empty.
type ReadingHandler func(ctx context.Context, deviceID string, reading sensor.Reading)

type ClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string // e.g. "sensors/+/reading"
}

type Subscriber struct {
	client  mqtt.Client
	topic   string
	handler ReadingHandler
	logger  *slog.Logger
}

func NewSubscriber(cfg ClientConfig, handler ReadingHandler, logger *slog.Logger) (*Subscriber, error) {
	if cfg.Topic == "" {
		return nil, fmt.Errorf("mqtt topic is required")
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", slog.String("error", err.Error()))
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", token.Error())
	}
	logger.Info("connected to mqtt broker", slog.String("broker", cfg.Broker))
	return &Subscriber{client: client, topic: cfg.Topic, handler: handler, logger: logger}, nil
}

// Start subscribes to the reading topic. Messages are handled until ctx is
// done or Close is called.
func (s *Subscriber) Start(ctx context.Context) error {
	token := s.client.Subscribe(s.topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		if ctx.Err() != nil {
			return
		}
		deviceID, reading, err := decodeMessage(s.topic, msg.Topic(), msg.Payload())
		if err != nil {
			s.logger.Warn("dropping mqtt reading", slog.String("topic", msg.Topic()), slog.String("error", err.Error()))
			return
		}
		s.handler(ctx, deviceID, reading)
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", s.topic, token.Error())
	}
	s.logger.Info("subscribed to readings", slog.String("topic", s.topic))
	return nil
}

func (s *Subscriber) Close() {
	s.client.Disconnect(250)
}

func decodeMessage(pattern, topic string, payload []byte) (string, sensor.Reading, error) {
	reading, err := sensor.Decode(payload)
	if err != nil {
		return "", nil, err
	}
	return deviceFromTopic(pattern, topic), reading, nil
}

func deviceFromTopic(pattern, topic string) string {
	patternParts := strings.Split(pattern, "/")
	topicParts := strings.Split(topic, "/")
	for i, part := range patternParts {
		if part == "+" && i < len(topicParts) {
			return topicParts[i]
		}
	}
	return ""
}
