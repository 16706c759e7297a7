package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"aiot_brain/internal/config"
	"aiot_brain/internal/logger"
	"aiot_brain/internal/simulator"
)

func main() {
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleEncoding).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level, cfg.Log.Encoding).Named("sensor")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pub, err := simulator.Connect(simulator.MQTTConfig{
		Broker:      cfg.MQTT.Broker,
		AccessToken: cfg.MQTT.AccessToken,
		Topic:       cfg.MQTT.Topic,
		ClientID:    cfg.MQTT.ClientID,
		KeepAlive:   cfg.MQTT.KeepAlive,
	}, log)
	if err != nil {
		log.Fatalw("failed to connect to broker", "err", err)
	}
	defer pub.Close()

	log.Infow("sensor simulator started", "broker", cfg.MQTT.Broker, "interval", cfg.Simulator.Interval)
	simulator.NewLive(pub, nil, log).Run(ctx, cfg.Simulator.Interval)
	log.Infow("sensor simulator stopped")
}
