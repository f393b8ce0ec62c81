package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"puzzle-scoreboard-go/models"
)

// Ranking rules for the puzzle scoreboard. Everything in this file is a
// pure function over an immutable score snapshot: the handlers recompute
// podiums on every request and the SSE path recomputes on every change
// stream event, so nothing here may hold or mutate state.

const (
	sundayDayOfWeek = 0
	sundayWinWeight = 3
	weekdayWeight   = 1
	daysInWeek      = 7
)

// dateKeyLayout is the canonical YYYY-MM-DD form used as the scores
// collection key.
const dateKeyLayout = "2006-01-02"

// displayDateLayout is the DD/MM form the UI shows (pt-BR day-first order)
const displayDateLayout = "02/01"

// portugueseMonths indexes time.Month values to pt-BR month names.
// The standard library carries no locale data, so the table is explicit.
var portugueseMonths = [...]string{
	time.January:   "janeiro",
	time.February:  "fevereiro",
	time.March:     "março",
	time.April:     "abril",
	time.May:       "maio",
	time.June:      "junho",
	time.July:      "julho",
	time.August:    "agosto",
	time.September: "setembro",
	time.October:   "outubro",
	time.November:  "novembro",
	time.December:  "dezembro",
}

// lessDaily is the full daily-podium ordering:
//  1. players with a time come before players without one
//  2. among players with a time, faster first
//  3. among players without a time, alphabetical
//  4. fallback: alphabetical
//
// It is a single comparator rather than filter-and-concatenate so the
// resulting order is total and deterministic.
func lessDaily(a, b models.PlayerResult) bool {
	if a.TotalTime > 0 && b.TotalTime == 0 {
		return true
	}
	if a.TotalTime == 0 && b.TotalTime > 0 {
		return false
	}
	if a.TotalTime > 0 && b.TotalTime > 0 {
		if a.TotalTime != b.TotalTime {
			return a.TotalTime < b.TotalTime
		}
		return a.Name < b.Name
	}
	if a.TotalTime == 0 && b.TotalTime == 0 {
		return a.Name < b.Name
	}
	return a.Name < b.Name
}

// sortDay returns a copy of results ordered by the daily-podium rules
func sortDay(results []models.PlayerResult) []models.PlayerResult {
	sorted := make([]models.PlayerResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessDaily(sorted[i], sorted[j])
	})
	return sorted
}

// allZero reports whether every result in a day has no recorded time
func allZero(results []models.PlayerResult) bool {
	for _, r := range results {
		if r.TotalTime > 0 {
			return false
		}
	}
	return true
}

// CalculateDailyPodium ranks the players of a single day. It returns nil
// when the day is absent, has no results, or nobody recorded a time; a
// totalTime of 0 always means "did not play", never a zero-second win.
func CalculateDailyPodium(day *models.DayRecord) []models.PlayerResult {
	if day == nil || len(day.Results) == 0 || allZero(day.Results) {
		return nil
	}
	return sortDay(day.Results)
}

// sortPodium orders aggregated weekly/monthly entries: wins first, then
// number of games played, then combined time (lower is better), then name.
func sortPodium(entries []models.PodiumEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed > b.GamesPlayed
		}
		if a.TotalTime != b.TotalTime {
			return a.TotalTime < b.TotalTime
		}
		return a.Name < b.Name
	})
}

// startOfWeek returns the Monday of the week containing t. Weeks run
// Monday through Sunday, so a Sunday belongs to the week that started
// six days earlier.
func startOfWeek(t time.Time) time.Time {
	daysBack := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		daysBack = 6
	}
	return t.AddDate(0, 0, -daysBack)
}

// CalculateWeeklyPodium aggregates the Monday–Sunday week containing
// selectedDate into one podium entry per active player. Each day's winner
// (by the daily-podium order) earns 3 points on Sundays and 1 otherwise;
// every recorded time contributes to the player's combined time and games
// count. Players on the roster who never appear in the week's records are
// left out entirely. Returns nil when players is nil.
func CalculateWeeklyPodium(players []string, scores models.ScoreSnapshot, selectedDate time.Time) []models.PodiumEntry {
	if players == nil {
		return nil
	}

	weekStart := startOfWeek(selectedDate)

	wins := make(map[string]int, len(players))
	times := make(map[string]int, len(players))
	games := make(map[string]int, len(players))
	for _, name := range players {
		wins[name] = 0
		times[name] = 0
		games[name] = 0
	}
	active := make(map[string]bool)

	for i := 0; i < daysInWeek; i++ {
		key := weekStart.AddDate(0, 0, i).Format(dateKeyLayout)
		day, ok := scores[key]
		if !ok || len(day.Results) == 0 || allZero(day.Results) {
			continue
		}

		sorted := sortDay(day.Results)
		if winner := sorted[0]; winner.TotalTime > 0 {
			// winner earns the day's weight; Sundays count triple.
			// DayOfWeek is the stored field, not recomputed from the key.
			weight := weekdayWeight
			if day.DayOfWeek == sundayDayOfWeek {
				weight = sundayWinWeight
			}
			wins[winner.Name] += weight
		}

		for _, result := range day.Results {
			if result.TotalTime > 0 {
				times[result.Name] += result.TotalTime
				games[result.Name]++
			}
			// a zero-time entry still marks the player as active this week
			active[result.Name] = true
		}
	}

	entries := make([]models.PodiumEntry, 0, len(players))
	for _, name := range players {
		if !active[name] {
			continue
		}
		entries = append(entries, models.PodiumEntry{
			Name:        name,
			Wins:        wins[name],
			TotalTime:   times[name],
			GamesPlayed: games[name],
		})
	}

	sortPodium(entries)
	return entries
}

// recordInMonth reports whether a day record's date falls in the given
// year and month. The date key is anchored to midday UTC before comparing
// so the calendar day never shifts across a timezone boundary.
func recordInMonth(date string, year int, month time.Month) bool {
	parsed, err := time.Parse(time.RFC3339, date+"T12:00:00Z")
	if err != nil {
		return false
	}
	return parsed.Year() == year && parsed.Month() == month
}

// CalculateMonthlyPodium aggregates the calendar month containing
// selectedDate with the same weighting and ordering as the weekly podium.
// Unlike the weekly podium, every roster player appears in the result,
// including those with no games that month. Returns nil when players is nil.
func CalculateMonthlyPodium(players []string, scores models.ScoreSnapshot, selectedDate time.Time) []models.PodiumEntry {
	if players == nil {
		return nil
	}

	year, month := selectedDate.Year(), selectedDate.Month()

	wins := make(map[string]int, len(players))
	times := make(map[string]int, len(players))
	games := make(map[string]int, len(players))
	for _, name := range players {
		wins[name] = 0
		times[name] = 0
		games[name] = 0
	}

	for date, day := range scores {
		if !recordInMonth(date, year, month) {
			continue
		}
		if len(day.Results) == 0 || allZero(day.Results) {
			continue
		}

		sorted := sortDay(day.Results)
		if winner := sorted[0]; winner.TotalTime > 0 {
			weight := weekdayWeight
			if day.DayOfWeek == sundayDayOfWeek {
				weight = sundayWinWeight
			}
			wins[winner.Name] += weight
		}

		for _, result := range day.Results {
			if result.TotalTime > 0 {
				times[result.Name] += result.TotalTime
				games[result.Name]++
			}
		}
	}

	entries := make([]models.PodiumEntry, 0, len(players))
	for _, name := range players {
		entries = append(entries, models.PodiumEntry{
			Name:        name,
			Wins:        wins[name],
			TotalTime:   times[name],
			GamesPlayed: games[name],
		})
	}

	sortPodium(entries)
	return entries
}

// CalculatePlayerStats scans the full snapshot and returns the named
// player's lifetime aggregates, or nil when either argument is absent.
//
// Ranks here come from a plain ascending sort on totalTime with ties left
// in stored order. That is intentionally not the daily-podium comparator:
// historical wins and podium counts were accumulated under this simpler
// order, and switching comparators would rewrite them.
func CalculatePlayerStats(playerName string, scores models.ScoreSnapshot) *models.PlayerStats {
	if playerName == "" || scores == nil {
		return nil
	}

	stats := &models.PlayerStats{
		Name:        playerName,
		BestTime:    "N/A",
		AvgTime:     "N/A",
		TimeHistory: []models.TimeEntry{},
	}

	bestTime := math.MaxInt
	totalTime := 0
	gameCount := 0

	type historyPoint struct {
		date string // YYYY-MM-DD, used only for ordering
		time int
	}
	var history []historyPoint

	for _, day := range scores {
		if len(day.Results) == 0 {
			continue
		}

		sorted := make([]models.PlayerResult, len(day.Results))
		copy(sorted, day.Results)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TotalTime < sorted[j].TotalTime
		})

		rank := 0
		var playerResult models.PlayerResult
		for i, r := range sorted {
			if r.Name == playerName {
				rank = i + 1
				playerResult = r
				break
			}
		}
		if rank == 0 || playerResult.TotalTime == 0 {
			continue
		}

		if rank == 1 {
			stats.Wins++
		}
		if rank <= 3 {
			stats.Podiums++
		}

		if playerResult.TotalTime < bestTime {
			bestTime = playerResult.TotalTime
		}
		totalTime += playerResult.TotalTime
		gameCount++
		history = append(history, historyPoint{date: day.Date, time: playerResult.TotalTime})
	}

	if gameCount > 0 {
		stats.BestTime = fmt.Sprintf("%d", bestTime)
		stats.AvgTime = fmt.Sprintf("%d", int(math.Round(float64(totalTime)/float64(gameCount))))
	}

	// chronological by the underlying date, not the DD/MM display string
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].date < history[j].date
	})
	for _, point := range history {
		stats.TimeHistory = append(stats.TimeHistory, models.TimeEntry{
			Date: formatDisplayDate(point.date),
			Time: point.time,
		})
	}

	return stats
}

// formatDisplayDate turns a YYYY-MM-DD key into the DD/MM display form,
// anchored to midday to keep the calendar day stable
func formatDisplayDate(date string) string {
	parsed, err := time.Parse(time.RFC3339, date+"T12:00:00Z")
	if err != nil {
		return date
	}
	return parsed.Format(displayDateLayout)
}

// ValidateTimes reports whether at least one submitted entry carries a
// positive total. Bonus time only counts on Sundays; the write path uses
// this to reject entirely empty submissions.
func ValidateTimes(times map[string]models.TimeInput, isSunday bool) bool {
	for _, input := range times {
		total := input.Time
		if isSunday {
			total += input.BonusTime
		}
		if total > 0 {
			return true
		}
	}
	return false
}

// GetWeekRange formats the Monday–Sunday window containing selectedDate
// as "DD/MM - DD/MM". Returns "" for the zero time.
func GetWeekRange(selectedDate time.Time) string {
	if selectedDate.IsZero() {
		return ""
	}
	monday := startOfWeek(selectedDate)
	sunday := monday.AddDate(0, 0, daysInWeek-1)
	return fmt.Sprintf("%s - %s", monday.Format(displayDateLayout), sunday.Format(displayDateLayout))
}

// GetMonthName formats selectedDate's month and year the way the UI
// displays them ("agosto de 2025"). Returns "" for the zero time.
func GetMonthName(selectedDate time.Time) string {
	if selectedDate.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s de %d", portugueseMonths[selectedDate.Month()], selectedDate.Year())
}
