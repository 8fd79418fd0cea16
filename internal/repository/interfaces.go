package repository

import (
	"context"

	"github.com/smomoh/flagquiz/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	// Upsert creates or refreshes a profile and reports whether it was
	// newly created (used to trigger the welcome email exactly once).
	Upsert(ctx context.Context, username, email string) (*models.Profile, bool, error)
	Delete(ctx context.Context, id int64) error
}

// StatsRepository stores one opaque stats payload per profile under a fixed
// key. Load returns nil when no payload exists.
type StatsRepository interface {
	Load(ctx context.Context, profileID int64) ([]byte, error)
	Save(ctx context.Context, profileID int64, payload []byte) error
}

// AnswerRepository handles the append-only attempt log
type AnswerRepository interface {
	Insert(ctx context.Context, rec models.AnswerRecord) (int64, error)
	List(ctx context.Context, filter models.AnswerFilter) ([]models.AnswerRecord, error)
	Count(ctx context.Context, filter models.AnswerFilter) (int, error)
}
