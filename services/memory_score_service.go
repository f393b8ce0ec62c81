package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"puzzle-scoreboard-go/models"
)

// MemoryScoreService implements the score service in memory. It backs the
// no-database fallback mode and the handler tests.
type MemoryScoreService struct {
	mu     sync.RWMutex
	scores models.ScoreSnapshot
	roster []string
}

// NewMemoryScoreService creates an empty in-memory score service
func NewMemoryScoreService() *MemoryScoreService {
	return &MemoryScoreService{
		scores: make(models.ScoreSnapshot),
	}
}

// NewDemoScoreService creates an in-memory score service pre-filled with a
// small roster and a week of sample scores, for running without a database
func NewDemoScoreService() *MemoryScoreService {
	s := NewMemoryScoreService()
	s.roster = []string{"Ana", "Bruno", "Carla"}

	// a recent Monday through Sunday of sample times
	monday := startOfWeek(time.Now()).AddDate(0, 0, -7)
	sample := [][3]int{
		{95, 120, 0},
		{110, 88, 140},
		{0, 130, 101},
		{76, 0, 99},
		{123, 115, 108},
		{90, 92, 0},
		{150, 135, 160},
	}
	for i, day := range sample {
		date := monday.AddDate(0, 0, i)
		times := map[string]models.TimeInput{
			"Ana":   {Time: day[0]},
			"Bruno": {Time: day[1]},
			"Carla": {Time: day[2]},
		}
		if record := BuildDayRecord(date.Format("2006-01-02"), int(date.Weekday()), s.roster, times); record != nil {
			s.scores[record.Date] = *record
		}
	}

	return s
}

// GetSnapshot returns a copy of the stored scores
func (s *MemoryScoreService) GetSnapshot(ctx context.Context) (models.ScoreSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(models.ScoreSnapshot, len(s.scores))
	for date, record := range s.scores {
		snapshot[date] = record
	}
	return snapshot, nil
}

// GetDayRecord returns one day's record, or nil when absent
func (s *MemoryScoreService) GetDayRecord(ctx context.Context, date string) (*models.DayRecord, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.scores[date]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// SubmitScores stores a submission the same way the database service does
func (s *MemoryScoreService) SubmitScores(ctx context.Context, date string, times map[string]models.TimeInput) (*models.DayRecord, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.roster) == 0 {
		return nil, ErrNoRoster
	}

	record := BuildDayRecord(date, int(parsed.Weekday()), s.roster, times)
	if record == nil {
		return nil, ErrEmptySubmission
	}

	s.scores[date] = *record
	return record, nil
}

// GetRoster returns the active player names, nil when not yet set up
func (s *MemoryScoreService) GetRoster(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.roster == nil {
		return nil, nil
	}
	names := make([]string, len(s.roster))
	copy(names, s.roster)
	return names, nil
}

// SaveRoster replaces the active player list
func (s *MemoryScoreService) SaveRoster(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("roster cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = make([]string, len(names))
	copy(s.roster, names)
	return nil
}
