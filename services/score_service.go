package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"puzzle-scoreboard-go/database"
	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/models"
)

// Sentinel errors for the write path. Handlers map these to status codes.
var (
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNoRoster        = errors.New("no player roster configured")
	ErrEmptySubmission = errors.New("at least one player needs a time")
)

// DatabaseScoreService is the Mongo-backed score service. The ranking
// functions stay pure; this service only moves data in and out of the
// store and assembles the submitted day records.
type DatabaseScoreService struct {
	scoreRepo  *database.MongoScoreRepository
	rosterRepo *database.MongoRosterRepository
	logger     *logging.Logger
}

func NewDatabaseScoreService(scoreRepo *database.MongoScoreRepository, rosterRepo *database.MongoRosterRepository) *DatabaseScoreService {
	return &DatabaseScoreService{
		scoreRepo:  scoreRepo,
		rosterRepo: rosterRepo,
		logger:     logging.WithPrefix("ScoreService"),
	}
}

// GetSnapshot returns the full stored score snapshot
func (s *DatabaseScoreService) GetSnapshot(ctx context.Context) (models.ScoreSnapshot, error) {
	return s.scoreRepo.GetAllScores(ctx)
}

// GetDayRecord returns one day's record, or nil when none is stored
func (s *DatabaseScoreService) GetDayRecord(ctx context.Context, date string) (*models.DayRecord, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.scoreRepo.GetDayRecord(ctx, date)
}

// SubmitScores builds a DayRecord for the date from the roster and the
// submitted times and stores it, replacing any previous record for that
// date. Bonus times are zeroed outside Sundays, an all-zero submission is
// rejected, and dayOfWeek is computed once here and stored with the record.
func (s *DatabaseScoreService) SubmitScores(ctx context.Context, date string, times map[string]models.TimeInput) (*models.DayRecord, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	roster, err := s.rosterRepo.GetRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if roster == nil || len(roster.Names) == 0 {
		return nil, ErrNoRoster
	}

	record := BuildDayRecord(date, int(parsed.Weekday()), roster.Names, times)
	if record == nil {
		return nil, ErrEmptySubmission
	}

	if err := s.scoreRepo.UpsertDayRecord(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Infof("Stored scores for %s (%d players)", date, len(record.Results))
	return record, nil
}

// GetRoster returns the active player names, nil when not yet set up
func (s *DatabaseScoreService) GetRoster(ctx context.Context) ([]string, error) {
	roster, err := s.rosterRepo.GetRoster(ctx)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, nil
	}
	return roster.Names, nil
}

// SaveRoster replaces the active player list
func (s *DatabaseScoreService) SaveRoster(ctx context.Context, names []string) error {
	return s.rosterRepo.SaveRoster(ctx, &models.Roster{Names: names})
}

// BuildDayRecord assembles the stored record for a submission: one result
// per roster player, bonus counted only on Sundays, totals precomputed.
// Returns nil when no player carries a positive total, mirroring the
// ValidateTimes predicate.
func BuildDayRecord(date string, dayOfWeek int, rosterNames []string, times map[string]models.TimeInput) *models.DayRecord {
	isSunday := dayOfWeek == sundayDayOfWeek

	results := make([]models.PlayerResult, 0, len(rosterNames))
	anyPlayed := false
	for _, name := range rosterNames {
		input := times[name]
		bonus := 0
		if isSunday {
			bonus = input.BonusTime
		}
		result := models.PlayerResult{
			Name:      name,
			Time:      input.Time,
			BonusTime: bonus,
			TotalTime: input.Time + bonus,
		}
		if result.TotalTime > 0 {
			anyPlayed = true
		}
		results = append(results, result)
	}

	if !anyPlayed {
		return nil
	}

	return &models.DayRecord{
		Date:      date,
		DayOfWeek: dayOfWeek,
		Results:   results,
	}
}
