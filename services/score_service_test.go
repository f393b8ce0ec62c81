package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puzzle-scoreboard-go/models"
)

func TestBuildDayRecord_ZeroesBonusOutsideSundays(t *testing.T) {
	times := map[string]models.TimeInput{
		"Ana":   {Time: 100, BonusTime: 40},
		"Bruno": {Time: 0, BonusTime: 0},
	}

	// Wednesday: bonus is discarded
	record := BuildDayRecord("2025-03-05", 3, []string{"Ana", "Bruno"}, times)
	require.NotNil(t, record)
	assert.Equal(t, 3, record.DayOfWeek)
	require.Len(t, record.Results, 2)
	assert.Equal(t, models.PlayerResult{Name: "Ana", Time: 100, BonusTime: 0, TotalTime: 100}, record.Results[0])
	assert.Equal(t, models.PlayerResult{Name: "Bruno", Time: 0, BonusTime: 0, TotalTime: 0}, record.Results[1])

	// Sunday: bonus counts toward the total
	record = BuildDayRecord("2025-03-09", 0, []string{"Ana", "Bruno"}, times)
	require.NotNil(t, record)
	assert.Equal(t, models.PlayerResult{Name: "Ana", Time: 100, BonusTime: 40, TotalTime: 140}, record.Results[0])
}

func TestBuildDayRecord_RejectsEmptySubmission(t *testing.T) {
	times := map[string]models.TimeInput{
		"Ana": {Time: 0, BonusTime: 30},
	}

	// weekday bonus does not make the submission valid
	assert.Nil(t, BuildDayRecord("2025-03-05", 3, []string{"Ana"}, times))

	// on a Sunday it does
	assert.NotNil(t, BuildDayRecord("2025-03-09", 0, []string{"Ana"}, times))
}

func TestBuildDayRecord_CoversWholeRoster(t *testing.T) {
	// players without a submitted time still get a zero result entry
	times := map[string]models.TimeInput{"Ana": {Time: 90}}

	record := BuildDayRecord("2025-03-05", 3, []string{"Ana", "Bruno", "Carla"}, times)
	require.NotNil(t, record)
	require.Len(t, record.Results, 3)
	assert.Equal(t, 0, record.Results[1].TotalTime)
	assert.Equal(t, 0, record.Results[2].TotalTime)
}

func TestMemoryScoreService_SubmitFlow(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryScoreService()

	// no roster yet
	_, err := svc.SubmitScores(ctx, "2025-03-05", map[string]models.TimeInput{"Ana": {Time: 90}})
	assert.ErrorIs(t, err, ErrNoRoster)

	require.NoError(t, svc.SaveRoster(ctx, []string{"Ana", "Bruno"}))

	_, err = svc.SubmitScores(ctx, "not-a-date", map[string]models.TimeInput{"Ana": {Time: 90}})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.SubmitScores(ctx, "2025-03-05", map[string]models.TimeInput{})
	assert.ErrorIs(t, err, ErrEmptySubmission)

	record, err := svc.SubmitScores(ctx, "2025-03-05", map[string]models.TimeInput{"Ana": {Time: 90}})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-05", record.Date)

	stored, err := svc.GetDayRecord(ctx, "2025-03-05")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, record.Results, stored.Results)

	// resubmission replaces the day wholesale
	record, err = svc.SubmitScores(ctx, "2025-03-05", map[string]models.TimeInput{"Bruno": {Time: 70}})
	require.NoError(t, err)
	snapshot, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, record.Results, snapshot["2025-03-05"].Results)
}

func TestMemoryScoreService_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryScoreService()
	require.NoError(t, svc.SaveRoster(ctx, []string{"Ana"}))

	_, err := svc.SubmitScores(ctx, "2025-03-05", map[string]models.TimeInput{"Ana": {Time: 90}})
	require.NoError(t, err)

	snapshot, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	delete(snapshot, "2025-03-05")

	again, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestDemoScoreService_SeedsPlayableData(t *testing.T) {
	ctx := context.Background()
	svc := NewDemoScoreService()

	roster, err := svc.GetRoster(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, roster)

	snapshot, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, snapshot)

	for _, name := range roster {
		stats := CalculatePlayerStats(name, snapshot)
		require.NotNil(t, stats)
		assert.NotEmpty(t, stats.TimeHistory)
	}
}
