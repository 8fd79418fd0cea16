package stats

import (
	"time"

	"github.com/smomoh/flagquiz/internal/models"
)

// MaxLevel caps the spaced-repetition level, bounding the review interval
// at 32 days.
const MaxLevel = 5

// baseInterval is one day in milliseconds.
const baseInterval = int64(24 * time.Hour / time.Millisecond)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func defaultCountryStats() models.CountryStats {
	return models.CountryStats{}
}

func defaultContinentStats(continent models.Continent) models.ContinentStats {
	return models.ContinentStats{
		Continent:    continent,
		CountryStats: map[string]models.CountryStats{},
	}
}

// Default returns a zeroed store with all six continents present.
func Default() models.UserStats {
	continents := make(map[models.Continent]models.ContinentStats, len(models.Continents))
	for _, c := range models.Continents {
		continents[c] = defaultContinentStats(c)
	}
	return models.UserStats{Continents: continents}
}

// MergeDefaults backfills any continent missing from a loaded store, so a
// blob persisted by an older schema still yields all six keys.
func MergeDefaults(store models.UserStats) models.UserStats {
	if store.Continents == nil {
		store.Continents = map[models.Continent]models.ContinentStats{}
	}
	for _, c := range models.Continents {
		cs, ok := store.Continents[c]
		if !ok {
			store.Continents[c] = defaultContinentStats(c)
			continue
		}
		if cs.CountryStats == nil {
			cs.CountryStats = map[string]models.CountryStats{}
		}
		cs.Continent = c
		store.Continents[c] = cs
	}
	return store
}

// NextReview returns the unix-millisecond timestamp when a country at the
// given level should be reviewed again: now + 1 day doubled per level.
func NextReview(level int) int64 {
	return nowMillis() + baseInterval*(1<<level)
}

// Update applies one answer to the store and returns a new store. The top
// level is copied; substructure may be shared with the input.
func Update(store models.UserStats, continent models.Continent, countryCode string, correct bool, currentScore int) models.UserStats {
	out := store
	out.Continents = make(map[models.Continent]models.ContinentStats, len(store.Continents))
	for k, v := range store.Continents {
		out.Continents[k] = v
	}

	cs, ok := out.Continents[continent]
	if !ok {
		cs = defaultContinentStats(continent)
	}

	cs.TotalAttempts++
	if correct {
		cs.CorrectAnswers++
	}
	if currentScore > cs.HighScore {
		cs.HighScore = currentScore
	}

	if cs.CountryStats == nil {
		cs.CountryStats = map[string]models.CountryStats{}
	}
	country, ok := cs.CountryStats[countryCode]
	if !ok {
		country = defaultCountryStats()
	}

	if correct {
		country.Correct++
		country.Level = min(MaxLevel, country.Level+1)
	} else {
		country.Incorrect++
		country.Level = 0
	}
	country.LastAttempt = nowMillis()
	country.NextReviewDue = NextReview(country.Level)

	cs.CountryStats[countryCode] = country
	out.Continents[continent] = cs
	out.LastPlayed = nowMillis()
	return out
}

// DueForReview returns the codes of countries in the continent that were
// never attempted or whose review is due.
func DueForReview(store models.UserStats, continent models.Continent) []string {
	cs, ok := store.Continents[continent]
	if !ok {
		return nil
	}

	now := nowMillis()
	var due []string
	for code, country := range cs.CountryStats {
		if country.NextReviewDue == 0 || country.NextReviewDue <= now {
			due = append(due, code)
		}
	}
	return due
}
