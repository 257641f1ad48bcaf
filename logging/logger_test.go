package logging

import (
	"testing"
	"time"
)

func newTestStatistics() *Statistics {
	return &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		LastPersisted:  time.Now(),
	}
}

func TestTrackVisitor(t *testing.T) {
	s := newTestStatistics()

	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.2")
	s.TrackVisitor("10.0.0.1") // repeat visit

	if got := s.GetUniqueVisitorsCount(); got != 2 {
		t.Errorf("Expected 2 unique visitors, got %d", got)
	}
}

func TestStaleVisitorsExcluded(t *testing.T) {
	s := newTestStatistics()

	s.UniqueVisitors["10.0.0.1"] = time.Now().Add(-25 * time.Hour)
	s.TrackVisitor("10.0.0.2")

	if got := s.GetUniqueVisitorsCount(); got != 1 {
		t.Errorf("Expected only visitors from the last 24h, got %d", got)
	}
}

func TestTrackAnalysis(t *testing.T) {
	s := newTestStatistics()

	s.TrackAnalysis(10, false)
	s.TrackAnalysis(20, true)

	if s.TotalRequests() != 2 {
		t.Errorf("Expected 2 requests, got %d", s.TotalRequests())
	}
	if s.AverageLatency != 15 {
		t.Errorf("Expected average latency 15, got %v", s.AverageLatency)
	}
	if got := s.GetErrorRate(); got != 50 {
		t.Errorf("Expected 50%% error rate, got %v", got)
	}
}

func TestErrorRateWithoutRequests(t *testing.T) {
	s := newTestStatistics()

	if got := s.GetErrorRate(); got != 0 {
		t.Errorf("Expected 0 error rate with no requests, got %v", got)
	}
}

func TestGetStatisticsRedactsOutsideDevMode(t *testing.T) {
	s := newTestStatistics()
	s.TrackVisitor("10.0.0.1")
	s.TrackAnalysis(5, false)

	t.Setenv(ENV_DEV_MODE, "")
	public := s.GetStatistics()
	if _, ok := public["totalUniqueVisitors"]; ok {
		t.Error("All-time visitor count must not leak outside dev mode")
	}
	if public["totalRequests"] != 1 {
		t.Errorf("Expected totalRequests 1, got %v", public["totalRequests"])
	}

	t.Setenv(ENV_DEV_MODE, "true")
	dev := s.GetStatistics()
	if _, ok := dev["totalUniqueVisitors"]; !ok {
		t.Error("Expected all-time visitor count in dev mode")
	}
	if _, ok := dev["lastPersisted"]; !ok {
		t.Error("Expected lastPersisted in dev mode")
	}
}
