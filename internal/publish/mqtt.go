package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/oshokin/alarm-relay/internal/config"
	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// disconnectQuiesce is how long Close lets in-flight work finish, in milliseconds.
const disconnectQuiesce = 250

// errMQTTTimeout is returned when the broker does not acknowledge in time.
var errMQTTTimeout = errors.New("mqtt operation timed out")

// topicReplacer strips MQTT wildcards, which are not allowed in topic names.
//
//nolint:gochecknoglobals // Stateless and safe for concurrent use.
var topicReplacer = strings.NewReplacer("+", "_", "#", "_")

// MQTT publishes encoded events to `<prefix>/<alarm name>` topics.
type MQTT struct {
	client   mqtt.Client
	prefix   string
	qos      byte
	retained bool
	format   wire.Format
	timeout  time.Duration
}

// DialMQTT connects to the broker described by cfg.
func DialMQTT(cfg config.MQTTConfig, format wire.Format, timeout time.Duration) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}

	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(timeout)

	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, errMQTTTimeout)
	}

	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}

	return NewMQTT(client, cfg, format, timeout), nil
}

// NewMQTT wraps an already connected client.
func NewMQTT(client mqtt.Client, cfg config.MQTTConfig, format wire.Format, timeout time.Duration) *MQTT {
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return &MQTT{
		client:   client,
		prefix:   cfg.TopicPrefix,
		qos:      cfg.QoS,
		retained: cfg.Retained,
		format:   format,
		timeout:  timeout,
	}
}

// Topic returns the topic an alarm is published to.
func Topic(prefix, name string) string {
	name = topicReplacer.Replace(name)

	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return name
	}

	return prefix + "/" + strings.TrimPrefix(name, "/")
}

// Publish encodes the event and waits for the broker to accept it.
func (m *MQTT) Publish(ctx context.Context, event alarm.Event) error {
	payload, err := wire.Marshal(wire.FromEvent(event), m.format)
	if err != nil {
		return err
	}

	topic := Topic(m.prefix, event.Name())

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	token := m.client.Publish(topic, m.qos, m.retained, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("publish to %s: %w", topic, errMQTTTimeout)
		}

		return ctx.Err()
	}

	if err = token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(disconnectQuiesce)

	return nil
}
