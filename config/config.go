// Package config loads runtime settings from .env, the environment and flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lixenwraith/segmole/card"
	"github.com/lixenwraith/segmole/challenge"
	"github.com/lixenwraith/segmole/sensor"
)

// ErrInvalid marks a configuration that fails validation
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the game binary
type Config struct {
	Tick              time.Duration
	MaxRedraws        int
	Card0             string
	Card1             string
	AbsentCardPenalty bool
	MQTTBroker        string
	THSTopic          string
	MetricsAddr       string
	Sound             bool
	Debug             bool
	Probe             bool
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Tick:       200 * time.Millisecond,
		MaxRedraws: challenge.DefaultMaxRedraws,
		Card0:      card.Card0.String(),
		Card1:      card.Card1.String(),
		THSTopic:   sensor.DefaultTopic,
		Sound:      true,
	}
}

// Load reads the optional env files (default ".env") and then the process environment
// A missing env file is not an error
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	d := Default()
	c := Config{
		Tick:              time.Duration(getEnvInt("SEGMOLE_TICK_MS", int(d.Tick/time.Millisecond))) * time.Millisecond,
		MaxRedraws:        getEnvInt("SEGMOLE_MAX_REDRAWS", d.MaxRedraws),
		Card0:             getEnv("SEGMOLE_CARD0", d.Card0),
		Card1:             getEnv("SEGMOLE_CARD1", d.Card1),
		AbsentCardPenalty: getEnvBool("SEGMOLE_ABSENT_CARD_PENALTY", d.AbsentCardPenalty),
		MQTTBroker:        getEnv("SEGMOLE_MQTT_BROKER", d.MQTTBroker),
		THSTopic:          getEnv("SEGMOLE_THS_TOPIC", d.THSTopic),
		MetricsAddr:       getEnv("SEGMOLE_METRICS_ADDR", d.MetricsAddr),
		Sound:             getEnvBool("SEGMOLE_SOUND", d.Sound),
		Debug:             getEnvBool("SEGMOLE_DEBUG", d.Debug),
	}
	return c, c.Validate()
}

// BindFlags registers flags on fs that override the loaded values
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging to logs/segmole.log")
	fs.BoolVar(&c.Probe, "probe", c.Probe, "start in the card probe screen")
	fs.DurationVar(&c.Tick, "tick", c.Tick, "game tick interval")
	fs.StringVar(&c.MQTTBroker, "mqtt", c.MQTTBroker, "MQTT broker for temperature/humidity readings (empty uses the simulated sensor)")
	fs.StringVar(&c.MetricsAddr, "metrics", c.MetricsAddr, "address to serve prometheus metrics on (empty disables)")
	fs.Var(invertedBool{&c.Sound}, "mute", "disable sound")
}

// invertedBool is a boolean flag that stores its negation
type invertedBool struct{ v *bool }

func (b invertedBool) String() string {
	if b.v == nil {
		return "false"
	}
	return strconv.FormatBool(!*b.v)
}

func (b invertedBool) Set(s string) error {
	x, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b.v = !x
	return nil
}

func (b invertedBool) IsBoolFlag() bool { return true }

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive, got %s", ErrInvalid, c.Tick)
	}
	if c.MaxRedraws < 0 {
		return fmt.Errorf("%w: max redraws must not be negative, got %d", ErrInvalid, c.MaxRedraws)
	}
	if _, err := c.Cards(); err != nil {
		return err
	}
	if c.MQTTBroker != "" && strings.TrimSpace(c.THSTopic) == "" {
		return fmt.Errorf("%w: mqtt broker set without a topic", ErrInvalid)
	}
	return nil
}

// Cards builds the card table from Card0 and Card1
func (c Config) Cards() (*card.Table, error) {
	c0, err := card.ParseID(c.Card0)
	if err != nil {
		return nil, fmt.Errorf("%w: card0: %w", ErrInvalid, err)
	}
	c1, err := card.ParseID(c.Card1)
	if err != nil {
		return nil, fmt.Errorf("%w: card1: %w", ErrInvalid, err)
	}
	t, err := card.NewTable(c0, c1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return t, nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}
