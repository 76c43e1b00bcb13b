package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/segmole/audio"
	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/challenge"
	"github.com/lixenwraith/segmole/config"
	"github.com/lixenwraith/segmole/console"
	"github.com/lixenwraith/segmole/metrics"
	"github.com/lixenwraith/segmole/sensor"
	"github.com/lixenwraith/segmole/service"
	"github.com/lixenwraith/segmole/session"
)

// bootWindow is how long a key press at startup counts as a held key
const bootWindow = 500 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	cards, _ := cfg.Cards()

	logger, logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			logger.Error("crashed", zap.Any("panic", r))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSEGMOLE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	con := console.New(screen, console.WithLogger(logger.Named("console")), console.WithCards(cards))
	go con.Run(ctx)
	go func() {
		select {
		case <-con.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	services := service.NewGroup(logger.Named("service"))
	defer services.StopAll()

	b := con.Board(board.RealClock{})
	b.Sensor = openSensor(cfg, services, logger.Named("sensor"))

	opts := []session.Option{
		session.WithTick(cfg.Tick),
		session.WithGenerator(challenge.NewGenerator(challenge.WithMaxRedraws(cfg.MaxRedraws))),
		session.WithCards(cards),
		session.WithAbsentCardPenalty(cfg.AbsentCardPenalty),
		session.WithLogger(logger.Named("session")),
	}

	if cfg.Sound {
		sm := audio.NewSoundManager()
		if err := services.Start(sm); err == nil {
			opts = append(opts, session.WithSound(sm))
		}
	}

	if cfg.MetricsAddr != "" {
		rec := metrics.New()
		if err := services.Start(metrics.NewServer(cfg.MetricsAddr, rec, logger.Named("metrics"))); err == nil {
			opts = append(opts, session.WithMetrics(rec))
		}
	}

	runner := session.New(b, opts...)

	if cfg.Probe || heldAtBoot(b) {
		err = runner.ProbeCards(ctx)
	} else {
		err = runner.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("game stopped", zap.Error(err))
	}
}

// heldAtBoot reports whether a key arrived during the boot window
func heldAtBoot(b board.Board) bool {
	b.Clock.Sleep(bootWindow)
	return b.Keys.ReadKey() != board.KeyNone
}

// openSensor returns the MQTT sensor when a broker is configured, the simulated one otherwise
// A broker that cannot be reached degrades to the simulated sensor
func openSensor(cfg config.Config, services *service.Group, log *zap.Logger) board.Entropy {
	sim := sensor.NewSimulated("local", time.Now().UnixNano())
	if cfg.MQTTBroker == "" {
		return sim
	}

	client, err := sensor.Connect(cfg.MQTTBroker, "segmole-"+uuid.NewString())
	if err != nil {
		log.Warn("mqtt unavailable, using simulated sensor", zap.String("broker", cfg.MQTTBroker), zap.Error(err))
		return sim
	}
	src := sensor.NewMQTTSource(client, cfg.THSTopic, log)
	if err := services.Start(src); err != nil {
		client.Disconnect(250)
		return sim
	}
	return src
}
