package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/repository"
)

// statsKey is the fixed storage key the stats blob lives under, one per
// profile.
const statsKey = "user_stats"

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Load(ctx context.Context, profileID int64) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("loading stats blob: profile_id=%d", profileID)

	var payload []byte
	err := r.db.QueryRowContext(ctx, `
SELECT payload FROM stat_blobs WHERE profile_id = ? AND key = ?
`, profileID, statsKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stats blob for profile %d", profileID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load stats blob: %v", err)
		return nil, err
	}
	return payload, nil
}

func (r *statsRepository) Save(ctx context.Context, profileID int64, payload []byte) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("saving stats blob: profile_id=%d, size=%d", profileID, len(payload))

	_, err := r.db.ExecContext(ctx, `
INSERT INTO stat_blobs (profile_id, key, payload, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(profile_id, key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
`, profileID, statsKey, payload)
	if err != nil {
		log.Error("failed to save stats blob: %v", err)
	}
	return err
}
