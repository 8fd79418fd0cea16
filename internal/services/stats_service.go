package services

import (
	"context"
	"encoding/json"

	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/repository"
	"github.com/smomoh/flagquiz/internal/stats"
)

// StatsService loads and persists the per-profile stats store. Persistence
// failures are logged and swallowed at this boundary; callers always get a
// usable store.
type StatsService interface {
	Load(ctx context.Context, profileID int64) models.UserStats
	Save(ctx context.Context, profileID int64, store models.UserStats)
	Continent(ctx context.Context, profileID int64, continent models.Continent) models.ContinentStats
	DueForReview(ctx context.Context, profileID int64, continent models.Continent) []string
}

type statsService struct {
	repo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) Load(ctx context.Context, profileID int64) models.UserStats {
	log := logger.FromContext(ctx)

	payload, err := s.repo.Load(ctx, profileID)
	if err != nil {
		log.Error("failed to load stats, using defaults: %v", err)
		return stats.Default()
	}
	if payload == nil {
		return stats.Default()
	}

	var store models.UserStats
	if err := json.Unmarshal(payload, &store); err != nil {
		log.Warn("corrupt stats payload, using defaults: %v", err)
		return stats.Default()
	}
	// Blobs written before a continent existed get it backfilled here.
	return stats.MergeDefaults(store)
}

func (s *statsService) Save(ctx context.Context, profileID int64, store models.UserStats) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(store)
	if err != nil {
		log.Error("failed to encode stats: %v", err)
		return
	}
	if err := s.repo.Save(ctx, profileID, payload); err != nil {
		log.Error("failed to save stats: %v", err)
	}
}

func (s *statsService) Continent(ctx context.Context, profileID int64, continent models.Continent) models.ContinentStats {
	return s.Load(ctx, profileID).Continents[continent]
}

func (s *statsService) DueForReview(ctx context.Context, profileID int64, continent models.Continent) []string {
	return stats.DueForReview(s.Load(ctx, profileID), continent)
}
