package countries

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/restcountries"
)

// DefaultOptionsCount is the number of options a question carries when the
// continent has enough countries.
const DefaultOptionsCount = 6

// regionToContinent maps API region names to continents. Americas is split
// into North and South by mapRecord.
var regionToContinent = map[string]models.Continent{
	"Africa":   models.Africa,
	"Americas": models.NorthAmerica,
	"Asia":     models.Asia,
	"Europe":   models.Europe,
	"Oceania":  models.Oceania,
}

// southAmericaCodes whitelists countries whose subregion field cannot be
// trusted to place them in South America.
var southAmericaCodes = map[string]bool{
	"BR": true, "AR": true, "CL": true, "CO": true, "PE": true, "VE": true,
	"EC": true, "BO": true, "UY": true, "PY": true, "SR": true, "GY": true,
}

// Provider is the lazily-initialized owner of the country list. The list is
// fetched once per process lifetime and cached; a failed fetch is not cached
// so a later call retries.
type Provider struct {
	source restcountries.Source
	log    *logger.Logger

	mu     sync.Mutex
	cache  []models.Country
	loaded bool
}

// NewProvider creates a Provider over the given source.
func NewProvider(source restcountries.Source) *Provider {
	return &Provider{
		source: source,
		log:    logger.Default().WithPrefix("countries"),
	}
}

// All returns the cached country list, fetching it on first use. On fetch or
// decode failure it logs the error and returns an empty list; it never
// returns an error to the caller.
func (p *Provider) All(ctx context.Context) []models.Country {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded {
		return p.cache
	}

	raw, err := p.source.FetchAll(ctx)
	if err != nil {
		p.log.Error("failed to fetch countries: %v", err)
		return nil
	}

	countries := make([]models.Country, 0, len(raw))
	for _, r := range raw {
		c, ok := mapRecord(r)
		if !ok {
			continue
		}
		countries = append(countries, c)
	}

	p.cache = countries
	p.loaded = true
	p.log.Info("cached %d countries from %d records", len(countries), len(raw))
	return p.cache
}

// mapRecord converts one API record, rejecting records missing region, code,
// common name, or flag image.
func mapRecord(r restcountries.RawCountry) (models.Country, bool) {
	if r.Region == "" || r.CCA2 == "" || r.Name.Common == "" || r.Flags.PNG == "" {
		return models.Country{}, false
	}

	continent, ok := regionToContinent[r.Region]
	if !ok {
		// Unknown regions default to Oceania.
		continent = models.Oceania
	}
	if r.Region == "Americas" {
		if r.Subregion == "South America" || southAmericaCodes[r.CCA2] {
			continent = models.SouthAmerica
		} else {
			continent = models.NorthAmerica
		}
	}

	return models.Country{
		Name:      r.Name.Common,
		Code:      r.CCA2,
		Continent: continent,
		FlagURL:   r.Flags.PNG,
	}, true
}

// ByContinent returns all cached countries belonging to the continent.
func (p *Provider) ByContinent(ctx context.Context, continent models.Continent) []models.Country {
	all := p.All(ctx)
	var out []models.Country
	for _, c := range all {
		if c.Continent == continent {
			out = append(out, c)
		}
	}
	return out
}

// RandomSample returns min(count, available) countries from the continent,
// sampled uniformly without replacement in a fresh random order.
func (p *Provider) RandomSample(ctx context.Context, continent models.Continent, count int) []models.Country {
	pool := p.ByContinent(ctx, continent)
	shuffled := make([]models.Country, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// NewQuestion builds a question for the continent, with the target picked
// uniformly from the options so it is always present among them. It returns
// nil when fewer than 2 countries are available; the caller decides how to
// surface that.
func (p *Provider) NewQuestion(ctx context.Context, continent models.Continent, optionsCount int) *models.Question {
	available := p.ByContinent(ctx, continent)
	if len(available) < 2 {
		p.log.Warn("not enough countries for continent %s: have %d", continent, len(available))
		return nil
	}

	if optionsCount <= 0 {
		optionsCount = DefaultOptionsCount
	}
	if optionsCount > len(available) {
		optionsCount = len(available)
	}

	options := p.RandomSample(ctx, continent, optionsCount)
	target := options[rand.IntN(len(options))]

	return &models.Question{
		TargetCountry: target,
		Options:       options,
	}
}
