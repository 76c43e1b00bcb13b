// Package metrics exposes game counters over prometheus
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects game metrics. A nil *Recorder is valid and records nothing
type Recorder struct {
	registry *prometheus.Registry

	sessions *prometheus.CounterVec
	rounds   *prometheus.CounterVec
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	cards    *prometheus.CounterVec
	score    *prometheus.GaugeVec
	winners  *prometheus.CounterVec
	redraws  prometheus.Histogram
}

// New creates a Recorder on its own registry
func New() *Recorder {
	m := &Recorder{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "segmole_sessions_total",
			Help: "Game sessions started by mode.",
		}, []string{"mode"}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "segmole_rounds_total",
			Help: "Rounds cleared by mode.",
		}, []string{"mode"}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "segmole_hits_total",
			Help: "Targets hit by mode and player.",
		}, []string{"mode", "player"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "segmole_misses_total",
			Help: "Wrong keys by mode and player.",
		}, []string{"mode", "player"}),
		cards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "segmole_card_verdicts_total",
			Help: "Card verdicts observed while the card target was open.",
		}, []string{"verdict"}),
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "segmole_score",
			Help: "Current score by mode.",
		}, []string{"mode"}),
		winners: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "segmole_duel_winner_total",
			Help: "Decided duels by winning player.",
		}, []string{"player"}),
		redraws: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "segmole_challenge_redraws",
			Help:    "Generator redraws needed per challenge.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.sessions,
		m.rounds,
		m.hits,
		m.misses,
		m.cards,
		m.score,
		m.winners,
		m.redraws,
	)
	return m
}

// Handler serves the registry in the prometheus text format
func (m *Recorder) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SessionStarted counts a session of mode
func (m *Recorder) SessionStarted(mode string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(mode).Inc()
}

// RoundCleared counts a cleared round
func (m *Recorder) RoundCleared(mode string) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(mode).Inc()
}

// Hit counts a target hit by player
func (m *Recorder) Hit(mode, player string) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(mode, player).Inc()
}

// Miss counts a wrong key by player
func (m *Recorder) Miss(mode, player string) {
	if m == nil {
		return
	}
	m.misses.WithLabelValues(mode, player).Inc()
}

// CardVerdict counts a card verdict
func (m *Recorder) CardVerdict(verdict string) {
	if m == nil {
		return
	}
	m.cards.WithLabelValues(verdict).Inc()
}

// Score sets the current score of mode
func (m *Recorder) Score(mode string, score int) {
	if m == nil {
		return
	}
	m.score.WithLabelValues(mode).Set(float64(score))
}

// DuelWinner counts a decided duel
func (m *Recorder) DuelWinner(player string) {
	if m == nil {
		return
	}
	m.winners.WithLabelValues(player).Inc()
}

// Redraws observes the redraws one challenge needed
func (m *Recorder) Redraws(n int) {
	if m == nil {
		return
	}
	m.redraws.Observe(float64(n))
}
