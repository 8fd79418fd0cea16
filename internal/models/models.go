package models

import "time"

// Continent is one of the six fixed geographic partitions used to scope
// quizzes and stats.
type Continent string

const (
	Africa       Continent = "Africa"
	Asia         Continent = "Asia"
	Europe       Continent = "Europe"
	NorthAmerica Continent = "North America"
	SouthAmerica Continent = "South America"
	Oceania      Continent = "Oceania"
)

// Continents lists every supported continent in display order.
var Continents = []Continent{Africa, Asia, Europe, NorthAmerica, SouthAmerica, Oceania}

// Valid reports whether c is one of the six supported continents.
func (c Continent) Valid() bool {
	switch c {
	case Africa, Asia, Europe, NorthAmerica, SouthAmerica, Oceania:
		return true
	}
	return false
}

// GameMode selects how answers are submitted and judged.
type GameMode string

const (
	ModeMultipleChoice GameMode = "multiple-choice"
	ModeSpelling       GameMode = "spelling"
)

// Valid reports whether m is a supported game mode.
func (m GameMode) Valid() bool {
	return m == ModeMultipleChoice || m == ModeSpelling
}

// Country is an immutable record derived from the REST Countries API.
// Code (ISO 3166-1 alpha-2) is the unique key.
type Country struct {
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Continent Continent `json:"continent"`
	FlagURL   string    `json:"flag_url"`
}

// Question pairs a target country with the options it must be identified
// among. The target is always present in the options.
type Question struct {
	TargetCountry Country   `json:"target_country"`
	Options       []Country `json:"options"`
}

// HistoryEntry is one answered question. Entries are append-only and never
// mutated after creation.
type HistoryEntry struct {
	Question   Question `json:"question"`
	UserAnswer Country  `json:"user_answer"`
	Correct    bool     `json:"correct"`
	Timestamp  int64    `json:"timestamp"` // unix milliseconds
}

// CountryStats tracks attempt counts and the spaced-repetition level for a
// single country. Timestamps are unix milliseconds; zero means "never".
type CountryStats struct {
	Correct       int   `json:"correct"`
	Incorrect     int   `json:"incorrect"`
	LastAttempt   int64 `json:"last_attempt"`
	NextReviewDue int64 `json:"next_review_due"`
	Level         int   `json:"level"`
}

// ContinentStats aggregates per-country stats under one continent.
type ContinentStats struct {
	Continent      Continent               `json:"continent"`
	TotalAttempts  int                     `json:"total_attempts"`
	CorrectAnswers int                     `json:"correct_answers"`
	HighScore      int                     `json:"high_score"`
	CountryStats   map[string]CountryStats `json:"country_stats"`
}

// UserStats is the single persisted root object for one profile. All six
// continents are always present.
type UserStats struct {
	Continents map[Continent]ContinentStats `json:"continents"`
	LastPlayed int64                        `json:"last_played"`
}

// Profile identifies one local player.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AnswerRecord is one row of the append-only attempt log.
type AnswerRecord struct {
	ID          int64     `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	Continent   Continent `json:"continent"`
	CountryCode string    `json:"country_code"`
	Correct     bool      `json:"correct"`
	AnsweredAt  time.Time `json:"answered_at"`
}

// AnswerFilter narrows attempt-log listings.
type AnswerFilter struct {
	ProfileID int64
	Continent Continent
	Correct   *bool
	Limit     int
	Offset    int
}
