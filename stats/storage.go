package stats

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Analysis kinds tracked per month.
const (
	KindReadability = "readability"
	KindSentiment   = "sentiment"
	KindSEO         = "seo"
	KindEngagement  = "engagement"
	KindFull        = "full"
	KindURL         = "url"
)

// MonthlyStats represents usage counters for a specific month
type MonthlyStats struct {
	ReadabilityRequests int       `json:"readability_requests"`
	SentimentRequests   int       `json:"sentiment_requests"`
	SEORequests         int       `json:"seo_requests"`
	EngagementRequests  int       `json:"engagement_requests"`
	FullRequests        int       `json:"full_requests"`
	URLRequests         int       `json:"url_requests"`
	FetchCacheHits      int       `json:"fetch_hits"`
	FetchCacheMisses    int       `json:"fetch_misses"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Storage handles persistent storage of usage statistics
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
}

// NewStorage creates a new statistics storage instance
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1), // Buffer for write requests
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

// load reads statistics from file
func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to file
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	// Write to temporary file first, then rename (atomic operation)
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// backgroundWriter handles periodic writes to disk
func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			// Immediate write requested
			s.save()
		case <-ticker.C:
			// Periodic write
			s.save()
		}
	}
}

// getCurrentMonth returns the current month key in YYYY-MM format
func getCurrentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
		// Write requested
	default:
		// Buffer full, write already pending
	}
}

// monthLocked returns the stats bucket for a month, creating it if needed.
// Caller must hold the write lock.
func (s *Storage) monthLocked(month string) *MonthlyStats {
	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}
	return stats
}

// IncrementAnalysis records one analysis request of the given kind.
func (s *Storage) IncrementAnalysis(kind string) {
	month := getCurrentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.monthLocked(month)
	switch kind {
	case KindReadability:
		stats.ReadabilityRequests++
	case KindSentiment:
		stats.SentimentRequests++
	case KindSEO:
		stats.SEORequests++
	case KindEngagement:
		stats.EngagementRequests++
	case KindFull:
		stats.FullRequests++
	case KindURL:
		stats.URLRequests++
	}
	stats.LastUpdated = time.Now()

	s.maybeRequestWriteLocked()
}

// IncrementFetch records page-fetch cache hits and misses.
func (s *Storage) IncrementFetch(hits, misses int) {
	month := getCurrentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.monthLocked(month)
	stats.FetchCacheHits += hits
	stats.FetchCacheMisses += misses
	stats.LastUpdated = time.Now()

	s.maybeRequestWriteLocked()
}

// maybeRequestWriteLocked requests a disk write if enough time has passed.
// Caller must hold the write lock.
func (s *Storage) maybeRequestWriteLocked() {
	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := getCurrentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// Cleanup removes statistics older than the current and previous month
func (s *Storage) Cleanup() {
	currentTime := time.Now()
	currentMonth := currentTime.Format("2006-01")
	previousMonth := currentTime.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.stats {
		if key != currentMonth && key != previousMonth {
			delete(s.stats, key)
		}
	}

	s.requestWrite()

	log.Printf("Retained statistics for months: %s, %s", currentMonth, previousMonth)
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns a sorted list of all months that have statistics
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	// Newest first
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Shutdown flushes statistics to disk.
func (s *Storage) Shutdown() error {
	return s.save()
}
