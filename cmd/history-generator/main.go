package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aiot_brain/internal/config"
	"aiot_brain/internal/logger"
	"aiot_brain/internal/simulator"
)

func main() {
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleEncoding).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level, cfg.Log.Encoding).Named("history")
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

	bf := simulator.NewBackfill(pub, simulator.BackfillConfig{
		Days:   cfg.Simulator.Days,
		PerDay: cfg.Simulator.PerDay,
		Pause:  cfg.Simulator.Pause,
	}, nil, log)

	sent, err := bf.Run(ctx, time.Now().In(cfg.Location()))
	if err != nil {
		log.Warnw("history generation interrupted", "sent", sent, "err", err)
		return
	}
	log.Infow("history generation finished", "sent", sent)
}
