package metrics

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestServerLifecycle(t *testing.T) {
	m := New()
	m.SessionStarted("solo")

	s := NewServer("127.0.0.1:0", m, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `segmole_sessions_total{mode="solo"} 1`) {
		t.Errorf("sessions metric missing:\n%s", body)
	}

	resp, err = http.Get("http://" + s.Addr() + "/other")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServerStartFailsOnBadAddr(t *testing.T) {
	s := NewServer("256.0.0.1:bad", New(), nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected listen error")
	}
	s.Stop()
}
