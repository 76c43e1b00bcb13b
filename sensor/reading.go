package sensor

import (
	"math"
	"math/rand"
	"time"
)

// Reading is a single temperature/humidity sample
type Reading struct {
	SensorID  string    `json:"sensorId"`
	Timestamp time.Time `json:"timestamp"`
	TempC     float64   `json:"temperatureC"`
	Humidity  float64   `json:"humidityPct"`
}

// Valid reports whether both values are finite
func (r Reading) Valid() bool {
	return !math.IsNaN(r.TempC) && !math.IsInf(r.TempC, 0) &&
		!math.IsNaN(r.Humidity) && !math.IsInf(r.Humidity, 0)
}

// Simulation bounds, matching a heated indoor room
const (
	MinTempC    = 18.0
	MaxTempC    = 28.0
	MinHumidity = 30.0
	MaxHumidity = 70.0
)

// Simulated is a bounded random-walk sensor
type Simulated struct {
	id   string
	rng  *rand.Rand
	temp float64
	humi float64
	now  func() time.Time
}

// NewSimulated creates a simulated sensor starting at a random point in range
func NewSimulated(id string, seed int64) *Simulated {
	rng := rand.New(rand.NewSource(seed))
	return &Simulated{
		id:   id,
		rng:  rng,
		temp: MinTempC + rng.Float64()*(MaxTempC-MinTempC),
		humi: MinHumidity + rng.Float64()*(MaxHumidity-MinHumidity),
		now:  time.Now,
	}
}

// Next advances the walk and returns the new sample
func (s *Simulated) Next() Reading {
	s.temp = clamp(s.temp+(s.rng.Float64()-0.5)*0.6, MinTempC, MaxTempC)
	s.humi = clamp(s.humi+(s.rng.Float64()-0.5)*2.0, MinHumidity, MaxHumidity)
	return Reading{
		SensorID:  s.id,
		Timestamp: s.now(),
		TempC:     s.temp,
		Humidity:  s.humi,
	}
}

// ReadEntropy implements board.Entropy
func (s *Simulated) ReadEntropy() (float64, float64) {
	r := s.Next()
	return r.TempC, r.Humidity
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
