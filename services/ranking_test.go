package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puzzle-scoreboard-go/models"
)

func result(name string, time, bonus int) models.PlayerResult {
	return models.PlayerResult{Name: name, Time: time, BonusTime: bonus, TotalTime: time + bonus}
}

func day(date string, dayOfWeek int, results ...models.PlayerResult) models.DayRecord {
	return models.DayRecord{Date: date, DayOfWeek: dayOfWeek, Results: results}
}

func TestCalculateDailyPodium_NilAndEmptyCases(t *testing.T) {
	assert.Nil(t, CalculateDailyPodium(nil))

	empty := day("2025-03-03", 1)
	assert.Nil(t, CalculateDailyPodium(&empty))

	allZero := day("2025-03-03", 1, result("Ana", 0, 0), result("Bruno", 0, 0))
	assert.Nil(t, CalculateDailyPodium(&allZero))
}

func TestCalculateDailyPodium_Ordering(t *testing.T) {
	record := day("2025-03-03", 1,
		result("Zara", 0, 0),
		result("Bruno", 150, 0),
		result("Ana", 90, 0),
		result("Carla", 0, 0),
		result("Diego", 120, 0),
	)

	podium := CalculateDailyPodium(&record)
	require.Len(t, podium, 5)

	names := make([]string, len(podium))
	for i, p := range podium {
		names[i] = p.Name
	}
	// timed players ascending by time, then zero-time players alphabetically
	assert.Equal(t, []string{"Ana", "Diego", "Bruno", "Carla", "Zara"}, names)
}

func TestCalculateDailyPodium_IsPermutationOfInput(t *testing.T) {
	record := day("2025-03-03", 1,
		result("Ana", 90, 0),
		result("Bruno", 0, 0),
		result("Carla", 200, 0),
	)

	podium := CalculateDailyPodium(&record)
	require.Len(t, podium, len(record.Results))
	assert.ElementsMatch(t, record.Results, podium)

	// input order untouched
	assert.Equal(t, "Ana", record.Results[0].Name)
	assert.Equal(t, "Bruno", record.Results[1].Name)
}

func TestCalculateDailyPodium_EqualTimesBreakAlphabetically(t *testing.T) {
	record := day("2025-03-03", 1,
		result("Bruno", 100, 0),
		result("Ana", 100, 0),
	)

	podium := CalculateDailyPodium(&record)
	require.Len(t, podium, 2)
	assert.Equal(t, "Ana", podium[0].Name)
	assert.Equal(t, "Bruno", podium[1].Name)
}

func TestCalculateDailyPodium_SundayBonusCountsTowardTotal(t *testing.T) {
	record := day("2025-03-09", 0,
		result("Ana", 100, 50),
		result("Bruno", 120, 0),
	)

	podium := CalculateDailyPodium(&record)
	require.Len(t, podium, 2)
	// Bruno's 120 beats Ana's 150 once her bonus is included
	assert.Equal(t, "Bruno", podium[0].Name)
	assert.Equal(t, 150, podium[1].TotalTime)
}

func TestCalculateWeeklyPodium_NilPlayers(t *testing.T) {
	assert.Nil(t, CalculateWeeklyPodium(nil, models.ScoreSnapshot{}, time.Now()))
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestCalculateWeeklyPodium_SundayWinWeighsTriple(t *testing.T) {
	// week of Monday 2025-03-03 through Sunday 2025-03-09
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0), result("B", 120, 0)),
		"2025-03-09": day("2025-03-09", 0, result("A", 120, 0), result("B", 100, 0)),
	}

	podium := CalculateWeeklyPodium([]string{"A", "B"}, scores, mustDate(t, "2025-03-05"))
	require.Len(t, podium, 2)

	assert.Equal(t, "B", podium[0].Name)
	assert.Equal(t, 3, podium[0].Wins)
	assert.Equal(t, 220, podium[0].TotalTime)
	assert.Equal(t, 2, podium[0].GamesPlayed)

	assert.Equal(t, "A", podium[1].Name)
	assert.Equal(t, 1, podium[1].Wins)
	assert.Equal(t, 220, podium[1].TotalTime)
}

func TestCalculateWeeklyPodium_AlphabeticalDailyTieGivesWins(t *testing.T) {
	// identical times both days: Ana takes both daily wins alphabetically
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("Bruno", 100, 0), result("Ana", 100, 0)),
		"2025-03-04": day("2025-03-04", 2, result("Bruno", 120, 0), result("Ana", 120, 0)),
	}

	podium := CalculateWeeklyPodium([]string{"Ana", "Bruno"}, scores, mustDate(t, "2025-03-03"))
	require.Len(t, podium, 2)

	assert.Equal(t, "Ana", podium[0].Name)
	assert.Equal(t, 2, podium[0].Wins)
	assert.Equal(t, "Bruno", podium[1].Name)
	assert.Equal(t, 0, podium[1].Wins)
	assert.Equal(t, 220, podium[0].TotalTime)
	assert.Equal(t, 220, podium[1].TotalTime)
}

func TestCalculateWeeklyPodium_GamesPlayedBeatsTotalTime(t *testing.T) {
	// everyone wins exactly once; A played twice with a larger combined
	// time, B and C played once. Games played ranks A first anyway, then
	// combined time separates B and C.
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0)),
		"2025-03-04": day("2025-03-04", 2, result("B", 90, 0)),
		"2025-03-05": day("2025-03-05", 3, result("C", 50, 0), result("A", 300, 0)),
	}

	podium := CalculateWeeklyPodium([]string{"A", "B", "C"}, scores, mustDate(t, "2025-03-06"))
	require.Len(t, podium, 3)

	assert.Equal(t, "A", podium[0].Name)
	assert.Equal(t, 1, podium[0].Wins)
	assert.Equal(t, 2, podium[0].GamesPlayed)
	assert.Equal(t, 400, podium[0].TotalTime)

	assert.Equal(t, "C", podium[1].Name)
	assert.Equal(t, 50, podium[1].TotalTime)

	assert.Equal(t, "B", podium[2].Name)
	assert.Equal(t, 1, podium[2].GamesPlayed)
	assert.Equal(t, 90, podium[2].TotalTime)
}

func TestCalculateWeeklyPodium_AbsentPlayersDropped(t *testing.T) {
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0), result("B", 0, 0)),
	}

	podium := CalculateWeeklyPodium([]string{"A", "B", "C"}, scores, mustDate(t, "2025-03-03"))
	require.Len(t, podium, 2)

	// B appeared with a zero time: active, but with empty accumulators
	assert.Equal(t, "B", podium[1].Name)
	assert.Equal(t, 0, podium[1].Wins)
	assert.Equal(t, 0, podium[1].TotalTime)
	assert.Equal(t, 0, podium[1].GamesPlayed)

	for _, entry := range podium {
		assert.NotEqual(t, "C", entry.Name)
	}
}

func TestCalculateWeeklyPodium_SundayAnchorsToPrecedingMonday(t *testing.T) {
	// selecting the Sunday must pick up the Monday six days earlier,
	// not the Monday of the following week
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0)),
		"2025-03-10": day("2025-03-10", 1, result("B", 50, 0)),
	}

	podium := CalculateWeeklyPodium([]string{"A", "B"}, scores, mustDate(t, "2025-03-09"))
	require.Len(t, podium, 1)
	assert.Equal(t, "A", podium[0].Name)
	assert.Equal(t, 1, podium[0].Wins)
}

func TestCalculateWeeklyPodium_WeightInvariant(t *testing.T) {
	// each day contributes 0, 1, or 3 wins to exactly one player
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0), result("B", 110, 0)),
		"2025-03-04": day("2025-03-04", 2, result("A", 0, 0), result("B", 0, 0)),
		"2025-03-06": day("2025-03-06", 4, result("B", 80, 0)),
		"2025-03-09": day("2025-03-09", 0, result("A", 70, 20), result("B", 95, 0)),
	}

	podium := CalculateWeeklyPodium([]string{"A", "B"}, scores, mustDate(t, "2025-03-07"))
	require.NotNil(t, podium)

	totalWins := 0
	for _, entry := range podium {
		totalWins += entry.Wins
	}
	// Monday win (1) + Thursday win (1) + Sunday win (3); Tuesday all-zero
	assert.Equal(t, 5, totalWins)
}

func TestCalculateWeeklyPodium_Idempotent(t *testing.T) {
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0), result("B", 120, 0)),
	}

	first := CalculateWeeklyPodium([]string{"A", "B"}, scores, mustDate(t, "2025-03-03"))
	second := CalculateWeeklyPodium([]string{"A", "B"}, scores, mustDate(t, "2025-03-03"))
	assert.Equal(t, first, second)
}

func TestCalculateMonthlyPodium_NilPlayers(t *testing.T) {
	assert.Nil(t, CalculateMonthlyPodium(nil, models.ScoreSnapshot{}, time.Now()))
}

func TestCalculateMonthlyPodium_IncludesFullRoster(t *testing.T) {
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0)),
	}

	podium := CalculateMonthlyPodium([]string{"A", "B", "C"}, scores, mustDate(t, "2025-03-15"))
	require.Len(t, podium, 3)

	assert.Equal(t, "A", podium[0].Name)
	assert.Equal(t, 1, podium[0].Wins)

	// B and C never played but still appear, tied and alphabetical
	assert.Equal(t, "B", podium[1].Name)
	assert.Equal(t, "C", podium[2].Name)
	assert.Zero(t, podium[1].Wins)
	assert.Zero(t, podium[2].GamesPlayed)
}

func TestCalculateMonthlyPodium_IgnoresOtherMonths(t *testing.T) {
	scores := models.ScoreSnapshot{
		"2025-02-28": day("2025-02-28", 5, result("A", 50, 0)),
		"2025-03-01": day("2025-03-01", 6, result("B", 60, 0)),
		"2025-04-01": day("2025-04-01", 2, result("A", 70, 0)),
	}

	podium := CalculateMonthlyPodium([]string{"A", "B"}, scores, mustDate(t, "2025-03-15"))
	require.Len(t, podium, 2)

	assert.Equal(t, "B", podium[0].Name)
	assert.Equal(t, 1, podium[0].Wins)
	assert.Equal(t, "A", podium[1].Name)
	assert.Equal(t, 0, podium[1].Wins)
	assert.Equal(t, 0, podium[1].TotalTime)
}

func TestCalculateMonthlyPodium_SundayWeight(t *testing.T) {
	scores := models.ScoreSnapshot{
		"2025-03-02": day("2025-03-02", 0, result("A", 100, 30), result("B", 150, 0)),
		"2025-03-03": day("2025-03-03", 1, result("A", 200, 0), result("B", 90, 0)),
	}

	podium := CalculateMonthlyPodium([]string{"A", "B"}, scores, mustDate(t, "2025-03-20"))
	require.Len(t, podium, 2)

	assert.Equal(t, "A", podium[0].Name)
	assert.Equal(t, 3, podium[0].Wins)
	assert.Equal(t, "B", podium[1].Name)
	assert.Equal(t, 1, podium[1].Wins)
}

func TestCalculateMonthlyPodium_WeeklySubsetProperty(t *testing.T) {
	roster := []string{"A", "B", "C", "D"}
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0), result("B", 110, 0)),
	}
	ref := mustDate(t, "2025-03-05")

	monthly := CalculateMonthlyPodium(roster, scores, ref)
	weekly := CalculateWeeklyPodium(roster, scores, ref)

	assert.Len(t, monthly, len(roster))
	assert.LessOrEqual(t, len(weekly), len(roster))
}

func TestCalculatePlayerStats_NilInputs(t *testing.T) {
	assert.Nil(t, CalculatePlayerStats("", models.ScoreSnapshot{}))
	assert.Nil(t, CalculatePlayerStats("A", nil))
}

func TestCalculatePlayerStats_EmptyHistory(t *testing.T) {
	stats := CalculatePlayerStats("X", models.ScoreSnapshot{})
	require.NotNil(t, stats)

	assert.Equal(t, "X", stats.Name)
	assert.Zero(t, stats.Wins)
	assert.Zero(t, stats.Podiums)
	assert.Equal(t, "N/A", stats.BestTime)
	assert.Equal(t, "N/A", stats.AvgTime)
	assert.Empty(t, stats.TimeHistory)
}

func TestCalculatePlayerStats_Aggregates(t *testing.T) {
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0), result("B", 120, 0)),
		"2025-03-04": day("2025-03-04", 2, result("A", 200, 0), result("B", 90, 0)),
		"2025-03-05": day("2025-03-05", 3, result("A", 0, 0), result("B", 80, 0)),
	}

	stats := CalculatePlayerStats("A", scores)
	require.NotNil(t, stats)

	assert.Equal(t, 1, stats.Wins)    // won the 3rd only
	assert.Equal(t, 2, stats.Podiums) // ranked 1st and 2nd; zero-time day excluded
	assert.Equal(t, "100", stats.BestTime)
	assert.Equal(t, "150", stats.AvgTime)

	require.Len(t, stats.TimeHistory, 2)
	assert.Equal(t, models.TimeEntry{Date: "03/03", Time: 100}, stats.TimeHistory[0])
	assert.Equal(t, models.TimeEntry{Date: "04/03", Time: 200}, stats.TimeHistory[1])
}

func TestCalculatePlayerStats_AverageRounds(t *testing.T) {
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("A", 100, 0)),
		"2025-03-04": day("2025-03-04", 2, result("A", 101, 0)),
	}

	stats := CalculatePlayerStats("A", scores)
	require.NotNil(t, stats)
	// 100.5 rounds up
	assert.Equal(t, "101", stats.AvgTime)
}

func TestCalculatePlayerStats_HistoryChronologicalAcrossYears(t *testing.T) {
	// the DD/MM display strings would sort 05/01 before 28/12:
	// ordering must follow the underlying dates instead
	scores := models.ScoreSnapshot{
		"2026-01-05": day("2026-01-05", 1, result("A", 100, 0)),
		"2025-12-28": day("2025-12-28", 0, result("A", 90, 10)),
	}

	stats := CalculatePlayerStats("A", scores)
	require.NotNil(t, stats)
	require.Len(t, stats.TimeHistory, 2)

	assert.Equal(t, "28/12", stats.TimeHistory[0].Date)
	assert.Equal(t, "05/01", stats.TimeHistory[1].Date)
}

func TestCalculatePlayerStats_TiesUseStoredOrder(t *testing.T) {
	// stats ranking keeps ties in stored order: B is listed before A,
	// so with equal times B takes the win even though A sorts first
	// alphabetically under the daily-podium rules
	scores := models.ScoreSnapshot{
		"2025-03-03": day("2025-03-03", 1, result("B", 100, 0), result("A", 100, 0)),
	}

	statsA := CalculatePlayerStats("A", scores)
	statsB := CalculatePlayerStats("B", scores)
	require.NotNil(t, statsA)
	require.NotNil(t, statsB)

	assert.Equal(t, 0, statsA.Wins)
	assert.Equal(t, 1, statsB.Wins)
	assert.Equal(t, 1, statsA.Podiums)
	assert.Equal(t, 1, statsB.Podiums)
}

func TestValidateTimes(t *testing.T) {
	tests := []struct {
		name     string
		times    map[string]models.TimeInput
		isSunday bool
		want     bool
	}{
		{
			name:     "empty map",
			times:    map[string]models.TimeInput{},
			isSunday: false,
			want:     false,
		},
		{
			name:     "all zero",
			times:    map[string]models.TimeInput{"A": {Time: 0, BonusTime: 0}},
			isSunday: false,
			want:     false,
		},
		{
			name:     "bonus ignored on weekdays",
			times:    map[string]models.TimeInput{"A": {Time: 0, BonusTime: 30}},
			isSunday: false,
			want:     false,
		},
		{
			name:     "bonus counts on sundays",
			times:    map[string]models.TimeInput{"A": {Time: 0, BonusTime: 30}},
			isSunday: true,
			want:     true,
		},
		{
			name:     "one positive time",
			times:    map[string]models.TimeInput{"A": {Time: 0}, "B": {Time: 45}},
			isSunday: false,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateTimes(tt.times, tt.isSunday))
		})
	}
}

func TestGetWeekRange(t *testing.T) {
	assert.Equal(t, "", GetWeekRange(time.Time{}))

	// Wednesday 2025-03-05 lives in the 03/03–09/03 week
	assert.Equal(t, "03/03 - 09/03", GetWeekRange(mustDate(t, "2025-03-05")))

	// Sunday belongs to the week that started six days earlier
	assert.Equal(t, "03/03 - 09/03", GetWeekRange(mustDate(t, "2025-03-09")))

	// Monday is its own week start
	assert.Equal(t, "03/03 - 09/03", GetWeekRange(mustDate(t, "2025-03-03")))

	// week spanning a month boundary
	assert.Equal(t, "31/03 - 06/04", GetWeekRange(mustDate(t, "2025-04-02")))
}

func TestGetMonthName(t *testing.T) {
	assert.Equal(t, "", GetMonthName(time.Time{}))
	assert.Equal(t, "março de 2025", GetMonthName(mustDate(t, "2025-03-15")))
	assert.Equal(t, "dezembro de 2026", GetMonthName(mustDate(t, "2026-12-01")))
}
