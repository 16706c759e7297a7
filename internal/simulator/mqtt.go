// Package simulator publishes synthetic temperature telemetry over MQTT.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aiot_brain/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	DefaultTopic = "v1/devices/me/telemetry"

	defaultKeepAlive      = 60 * time.Second
	defaultConnectTimeout = 10 * time.Second
	disconnectQuiesceMs   = 250
)

var ErrNoAccessToken = errors.New("mqtt access token is required")

// Publisher sends one JSON payload to the telemetry topic.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// MQTTConfig describes the broker connection. The device access token is sent
// as the MQTT username, as the telemetry platform expects.
type MQTTConfig struct {
	Broker         string
	AccessToken    string
	Topic          string
	ClientID       string
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
}

// MQTTPublisher publishes with QoS 0 over a paho client.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	log    *logger.Logger
}

// Connect dials the broker and blocks until the session is up.
func Connect(cfg MQTTConfig, log *logger.Logger) (*MQTTPublisher, error) {
	if cfg.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "brain-sim-" + uuid.NewString()
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = defaultKeepAlive
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.AccessToken).
		SetKeepAlive(cfg.KeepAlive).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetAutoReconnect(true)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		if log != nil {
			log.Infow("mqtt_connected", "broker", cfg.Broker, "client_id", cfg.ClientID)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		if log != nil {
			log.Warnw("mqtt_connection_lost", "err", err)
		}
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect to %s: timed out after %s", cfg.Broker, cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}

	return &MQTTPublisher{client: client, topic: cfg.Topic, log: log}, nil
}

// Publish sends payload and waits for the client to hand it off or ctx to end.
func (p *MQTTPublisher) Publish(ctx context.Context, payload []byte) error {
	token := p.client.Publish(p.topic, 0, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending work for up to 250ms and disconnects.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(disconnectQuiesceMs)
}
