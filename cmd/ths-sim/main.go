// Command ths-sim publishes simulated temperature and humidity readings over MQTT
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/segmole/sensor"
)

func main() {
	broker := flag.String("broker", envOr("SEGMOLE_MQTT_BROKER", "tcp://localhost:1883"), "MQTT broker URL")
	topic := flag.String("topic", envOr("SEGMOLE_THS_TOPIC", sensor.DefaultTopic), "topic to publish readings on")
	interval := flag.Duration("interval", time.Second, "publish interval")
	id := flag.String("id", "ths-"+uuid.NewString()[:8], "sensor id carried in each reading")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random walk seed")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *interval <= 0 {
		logger.Fatal("interval must be positive", zap.Duration("interval", *interval))
	}

	client, err := sensor.Connect(*broker, *id)
	if err != nil {
		logger.Fatal("connect failed", zap.String("broker", *broker), zap.Error(err))
	}

	pub := sensor.NewPublisher(client, sensor.NewSimulated(*id, *seed), *topic, *interval, logger)
	pub.Start()
	logger.Info("publishing readings",
		zap.String("broker", *broker),
		zap.String("topic", *topic),
		zap.String("sensor", *id),
		zap.Duration("interval", *interval))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	pub.Stop()
	logger.Info("stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
