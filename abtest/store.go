package abtest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a test id does not exist.
	ErrNotFound = errors.New("ab test not found")
	// ErrAlreadyDecided is returned when recording a winner twice.
	ErrAlreadyDecided = errors.New("ab test already has a winner")
	// ErrInvalidWinner is returned for winners other than "A" or "B".
	ErrInvalidWinner = errors.New("winner must be A or B")
)

// Test is one A/B comparison between two copy variants.
type Test struct {
	ID           string     `json:"id"`
	VariantA     string     `json:"variant_a"`
	VariantB     string     `json:"variant_b"`
	Winner       string     `json:"winner,omitempty"` // "A" or "B"
	WinnerReason string     `json:"winner_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

// Stats aggregates outcomes across all recorded tests.
type Stats struct {
	TotalTests           int     `json:"total_tests"`
	DecidedTests         int     `json:"decided_tests"`
	VariantAWins         int     `json:"variant_a_wins"`
	VariantBWins         int     `json:"variant_b_wins"`
	UndecidedTests       int     `json:"undecided_tests"`
	AvgDecisionTimeHours float64 `json:"avg_decision_time_hours"`
}

// Store keeps A/B tests in memory and mirrors them to a JSON file so they
// survive restarts.
type Store struct {
	mutex    sync.RWMutex
	tests    map[string]*Test
	filePath string
}

// NewStore creates a store backed by the given file, loading any existing
// tests from it.
func NewStore(filePath string) *Store {
	s := &Store{
		tests:    make(map[string]*Test),
		filePath: filePath,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Could not load existing A/B tests: %v\n", err)
	}

	return s
}

// load reads tests from the backing file
func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.tests)
}

// save writes tests to the backing file via a temp-file rename
func (s *Store) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.tests)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal ab tests: %w", err)
	}

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

// Create records a new undecided test for the two variants.
func (s *Store) Create(variantA, variantB string) (Test, error) {
	if variantA == "" || variantB == "" {
		return Test{}, errors.New("both variants are required")
	}

	test := &Test{
		ID:        uuid.NewString(),
		VariantA:  variantA,
		VariantB:  variantB,
		CreatedAt: time.Now().UTC(),
	}

	s.mutex.Lock()
	s.tests[test.ID] = test
	s.mutex.Unlock()

	s.save()

	return *test, nil
}

// Get returns the test with the given id.
func (s *Store) Get(id string) (Test, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	test, found := s.tests[id]
	if !found {
		return Test{}, ErrNotFound
	}
	return *test, nil
}

// List returns tests sorted newest first, optionally only decided ones,
// capped at limit.
func (s *Store) List(decidedOnly bool, limit int) []Test {
	s.mutex.RLock()
	tests := make([]Test, 0, len(s.tests))
	for _, t := range s.tests {
		if decidedOnly && t.Winner == "" {
			continue
		}
		tests = append(tests, *t)
	}
	s.mutex.RUnlock()

	sort.Slice(tests, func(i, j int) bool {
		return tests[i].CreatedAt.After(tests[j].CreatedAt)
	})

	if limit > 0 && len(tests) > limit {
		tests = tests[:limit]
	}
	return tests
}

// Decide records the winning variant. A test can only be decided once.
func (s *Store) Decide(id, winner, reason string) (Test, error) {
	if winner != "A" && winner != "B" {
		return Test{}, ErrInvalidWinner
	}

	s.mutex.Lock()
	test, found := s.tests[id]
	if !found {
		s.mutex.Unlock()
		return Test{}, ErrNotFound
	}
	if test.Winner != "" {
		s.mutex.Unlock()
		return Test{}, ErrAlreadyDecided
	}

	now := time.Now().UTC()
	test.Winner = winner
	test.WinnerReason = reason
	test.DecidedAt = &now
	result := *test
	s.mutex.Unlock()

	s.save()

	return result, nil
}

// Delete removes a test.
func (s *Store) Delete(id string) error {
	s.mutex.Lock()
	if _, found := s.tests[id]; !found {
		s.mutex.Unlock()
		return ErrNotFound
	}
	delete(s.tests, id)
	s.mutex.Unlock()

	s.save()

	return nil
}

// Stats summarizes wins and decision latency across all tests.
func (s *Store) Stats() Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats := Stats{TotalTests: len(s.tests)}

	totalDecisionHours := 0.0
	for _, t := range s.tests {
		if t.Winner == "" {
			continue
		}
		stats.DecidedTests++
		switch t.Winner {
		case "A":
			stats.VariantAWins++
		case "B":
			stats.VariantBWins++
		}
		if t.DecidedAt != nil {
			totalDecisionHours += t.DecidedAt.Sub(t.CreatedAt).Hours()
		}
	}

	stats.UndecidedTests = stats.TotalTests - stats.DecidedTests
	if stats.DecidedTests > 0 {
		avg := totalDecisionHours / float64(stats.DecidedTests)
		stats.AvgDecisionTimeHours = math.Round(avg*10) / 10
	}

	return stats
}
