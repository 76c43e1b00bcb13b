// Package service runs the long-lived subsystems of the station
package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Service is a subsystem owning background resources: audio backend, sensor link, metrics endpoint
//
// Lifecycle:
//  1. Construction
//  2. Start() - acquire resources, launch goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name identifies the service in logs
	Name() string

	// Start begins operation, a failed start leaves nothing to stop
	Start() error

	// Stop releases everything Start acquired
	Stop()
}

// Group tracks started services and stops them in reverse order
type Group struct {
	log *zap.Logger

	mu      sync.Mutex
	started []Service
	stopped bool
}

// NewGroup creates an empty group
func NewGroup(log *zap.Logger) *Group {
	if log == nil {
		log = zap.NewNop()
	}
	return &Group{log: log}
}

// Start starts s and records it for StopAll
// A failing service is logged and not recorded; the caller decides whether to continue without it
func (g *Group) Start(s Service) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return fmt.Errorf("start %s: group stopped", s.Name())
	}
	if err := s.Start(); err != nil {
		g.log.Warn("service unavailable", zap.String("service", s.Name()), zap.Error(err))
		return fmt.Errorf("start %s: %w", s.Name(), err)
	}
	g.log.Info("service started", zap.String("service", s.Name()))
	g.started = append(g.started, s)
	return nil
}

// Running returns the names of started services in start order
func (g *Group) Running() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, len(g.started))
	for i, s := range g.started {
		names[i] = s.Name()
	}
	return names
}

// StopAll stops every started service, last started first
// Safe to call more than once
func (g *Group) StopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	g.stopped = true
	for i := len(g.started) - 1; i >= 0; i-- {
		s := g.started[i]
		s.Stop()
		g.log.Info("service stopped", zap.String("service", s.Name()))
	}
	g.started = nil
}
