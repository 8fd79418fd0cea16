package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, email, created_at
FROM profiles
WHERE id = ?
`, id).Scan(&p.ID, &p.Username, &p.Email, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, email, created_at
FROM profiles
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.CreatedAt); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}
	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Upsert(ctx context.Context, username, email string) (*models.Profile, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile for username: %s", username)

	var existing models.Profile
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, email, created_at FROM profiles WHERE username = ?
`, username).Scan(&existing.ID, &existing.Username, &existing.Email, &existing.CreatedAt)
	switch {
	case err == nil:
		if email != "" && email != existing.Email {
			if _, err := r.db.ExecContext(ctx, `UPDATE profiles SET email = ? WHERE id = ?`, email, existing.ID); err != nil {
				log.Error("failed to update profile email: %v", err)
				return nil, false, err
			}
			existing.Email = email
		}
		log.Debug("profile refreshed: id=%d", existing.ID)
		return &existing, false, nil
	case errors.Is(err, sql.ErrNoRows):
		// fall through to insert
	default:
		log.Error("failed to query profile: %v", err)
		return nil, false, err
	}

	var p models.Profile
	err = r.db.QueryRowContext(ctx, `
INSERT INTO profiles (username, email)
VALUES (?, ?)
RETURNING id, username, email, created_at
`, username, email).Scan(&p.ID, &p.Username, &p.Email, &p.CreatedAt)
	if err != nil {
		log.Error("failed to insert profile: %v", err)
		return nil, false, err
	}
	log.Debug("profile created: id=%d", p.ID)
	return &p, true, nil
}

func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete profile: %v", err)
	}
	return err
}
