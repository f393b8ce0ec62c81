package interfaces

import (
	"context"

	"puzzle-scoreboard-go/models"
)

// ScoreService defines the score data operations used by handlers,
// abstracting over the Mongo-backed and in-memory implementations.
type ScoreService interface {
	GetSnapshot(ctx context.Context) (models.ScoreSnapshot, error)
	GetDayRecord(ctx context.Context, date string) (*models.DayRecord, error)
	SubmitScores(ctx context.Context, date string, times map[string]models.TimeInput) (*models.DayRecord, error)
	GetRoster(ctx context.Context) ([]string, error)
	SaveRoster(ctx context.Context, names []string) error
}
