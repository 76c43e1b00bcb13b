package sensor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// DefaultTopic carries temperature/humidity readings
const DefaultTopic = "segmole/ths"

const brokerTimeout = 5 * time.Second

// ErrBrokerTimeout is returned when the broker does not answer in time
var ErrBrokerTimeout = errors.New("mqtt broker timeout")

// Connect opens a client to broker with auto-reconnect
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(brokerTimeout)
	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(brokerTimeout) {
		return nil, fmt.Errorf("connect %s: %w", broker, ErrBrokerTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, err)
	}
	return c, nil
}

// MQTTSource keeps the latest reading published on a topic
// Until the first valid reading arrives ReadEntropy returns zeros
type MQTTSource struct {
	client mqtt.Client
	topic  string
	log    *zap.Logger

	mu       sync.RWMutex
	last     Reading
	have     bool
	received int
	dropped  int
}

// NewMQTTSource binds a source to client and topic
func NewMQTTSource(client mqtt.Client, topic string, log *zap.Logger) *MQTTSource {
	if topic == "" {
		topic = DefaultTopic
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MQTTSource{client: client, topic: topic, log: log}
}

// Name identifies the source as a service
func (s *MQTTSource) Name() string { return "sensor" }

// Start subscribes to the topic
func (s *MQTTSource) Start() error {
	token := s.client.Subscribe(s.topic, 0, s.handle)
	if !token.WaitTimeout(brokerTimeout) {
		return fmt.Errorf("subscribe %s: %w", s.topic, ErrBrokerTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.topic, err)
	}
	s.log.Info("sensor subscribed", zap.String("topic", s.topic))
	return nil
}

// Stop unsubscribes and disconnects the client
func (s *MQTTSource) Stop() {
	s.client.Unsubscribe(s.topic).WaitTimeout(brokerTimeout)
	s.client.Disconnect(250)
}

func (s *MQTTSource) handle(_ mqtt.Client, msg mqtt.Message) {
	var r Reading
	if err := json.Unmarshal(msg.Payload(), &r); err != nil || !r.Valid() {
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
		s.log.Debug("sensor payload dropped", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}
	s.mu.Lock()
	s.last = r
	s.have = true
	s.received++
	s.mu.Unlock()
}

// Latest returns the last valid reading
func (s *MQTTSource) Latest() (Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.have
}

// Stats returns received and dropped payload counts
func (s *MQTTSource) Stats() (received, dropped int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.received, s.dropped
}

// ReadEntropy implements board.Entropy
func (s *MQTTSource) ReadEntropy() (float64, float64) {
	r, _ := s.Latest()
	return r.TempC, r.Humidity
}

// Publisher publishes simulated readings at a fixed interval
type Publisher struct {
	sim      *Simulated
	client   mqtt.Client
	topic    string
	interval time.Duration
	log      *zap.Logger
	quit     chan struct{}
	done     chan struct{}
}

// NewPublisher creates a publisher for sim on topic
func NewPublisher(client mqtt.Client, sim *Simulated, topic string, interval time.Duration, log *zap.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{
		sim:      sim,
		client:   client,
		topic:    topic,
		interval: interval,
		log:      log,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Publish sends one reading
func (p *Publisher) Publish(r Reading) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(brokerTimeout) {
		return fmt.Errorf("publish %s: %w", p.topic, ErrBrokerTimeout)
	}
	return token.Error()
}

// Start begins publishing in a goroutine
func (p *Publisher) Start() {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.quit:
				return
			case <-ticker.C:
				r := p.sim.Next()
				if err := p.Publish(r); err != nil {
					p.log.Warn("publish failed", zap.Error(err))
					continue
				}
				p.log.Debug("reading published",
					zap.Float64("temp", r.TempC),
					zap.Float64("humidity", r.Humidity))
			}
		}
	}()
}

// Stop halts publishing and disconnects
func (p *Publisher) Stop() {
	close(p.quit)
	<-p.done
	p.client.Disconnect(250)
}
