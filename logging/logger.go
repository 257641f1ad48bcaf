package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected runtime statistics
type Statistics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"` // IP -> Last Visit Time
	AnalysisRequests int                  `json:"analysisRequests"`
	ErrorCount       int                  `json:"errorCount"`
	AverageLatency   float64              `json:"averageLatency"` // milliseconds
	TotalLatency     float64              `json:"-"`              // Used to calculate average
	RequestCount     int                  `json:"-"`              // Used to calculate average
	LastPersisted    time.Time            `json:"lastPersisted"`
	mutex            sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			LastPersisted:  time.Now(),
		}

		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// TrackAnalysis records an analysis request and its processing time
func (s *Statistics) TrackAnalysis(latency float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRequests++

	if hasError {
		s.ErrorCount++
	}

	s.TotalLatency += latency
	s.RequestCount++
	s.AverageLatency = s.TotalLatency / float64(s.RequestCount)
}

// TotalRequests returns the number of analysis requests tracked so far
func (s *Statistics) TotalRequests() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.AnalysisRequests
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.uniqueVisitorsLocked()
}

func (s *Statistics) uniqueVisitorsLocked() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.errorRateLocked()
}

func (s *Statistics) errorRateLocked() float64 {
	if s.AnalysisRequests == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.AnalysisRequests)) * 100
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns a snapshot of the current statistics. Outside of
// development mode only aggregate numbers are exposed.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if os.Getenv(ENV_DEV_MODE) != "true" {
		return map[string]interface{}{
			"uniqueVisitors24h": s.uniqueVisitorsLocked(),
			"totalRequests":     s.AnalysisRequests,
			"errorRate":         s.errorRateLocked(),
			"averageLatency":    s.AverageLatency,
		}
	}

	return map[string]interface{}{
		"uniqueVisitors24h":   s.uniqueVisitorsLocked(),
		"totalUniqueVisitors": len(s.UniqueVisitors), // all-time, dev mode only
		"totalRequests":       s.AnalysisRequests,
		"errorRate":           s.errorRateLocked(),
		"averageLatency":      s.AverageLatency,
		"lastPersisted":       s.LastPersisted,
	}
}
