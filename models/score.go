package models

// PlayerResult represents one player's submitted times for a single day
type PlayerResult struct {
	Name      string `json:"name" bson:"name"`
	Time      int    `json:"time" bson:"time"`           // seconds, 0 = no time recorded
	BonusTime int    `json:"bonusTime" bson:"bonusTime"` // Sunday bonus puzzle only, 0 otherwise
	TotalTime int    `json:"totalTime" bson:"totalTime"` // time + bonusTime; 0 means did not play
}

// DayRecord represents one day's full set of submitted results.
// DayOfWeek is written once at submission time and trusted by the ranking
// logic afterwards; it is never recomputed from Date.
type DayRecord struct {
	Date      string         `json:"date" bson:"_id"`
	DayOfWeek int            `json:"dayOfWeek" bson:"dayOfWeek"` // 0 = Sunday
	Results   []PlayerResult `json:"results" bson:"results"`
}

// ScoreSnapshot is the full set of stored scores keyed by YYYY-MM-DD date string
type ScoreSnapshot map[string]DayRecord

// PodiumEntry represents a player's aggregated standing in a weekly or monthly podium
type PodiumEntry struct {
	Name        string `json:"name"`
	Wins        int    `json:"wins"`
	TotalTime   int    `json:"totalTime"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// TimeEntry is one point in a player's time history, with a display-formatted date
type TimeEntry struct {
	Date string `json:"date"` // DD/MM
	Time int    `json:"time"`
}

// PlayerStats represents a player's lifetime aggregates across the whole snapshot.
// BestTime and AvgTime are display strings so the "N/A" sentinel for players
// with no recorded games survives serialization unchanged.
type PlayerStats struct {
	Name        string      `json:"name"`
	Wins        int         `json:"wins"`
	Podiums     int         `json:"podiums"`
	BestTime    string      `json:"bestTime"`
	AvgTime     string      `json:"avgTime"`
	TimeHistory []TimeEntry `json:"timeHistory"`
}

// TimeInput holds the raw per-player form values for a submission.
// Absent or empty form fields parse to 0.
type TimeInput struct {
	Time      int `json:"time"`
	BonusTime int `json:"bonusTime"`
}

// SubmitScoreRequest is the write-path payload for a day's scores
type SubmitScoreRequest struct {
	Times map[string]TimeInput `json:"times"`
}

// Roster is the players config document: the ordered list of currently
// active player names. Historical results may reference names no longer
// on the roster.
type Roster struct {
	Names []string `json:"names" bson:"names"`
}
