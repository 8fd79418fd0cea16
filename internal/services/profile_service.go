package services

import (
	"context"
	"strings"

	"github.com/smomoh/flagquiz/internal/apperr"
	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/repository"
)

// ProfileService handles profile-related business logic
type ProfileService interface {
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	// UpsertProfile creates or refreshes a profile; created reports whether
	// this is a first sign-in.
	UpsertProfile(ctx context.Context, username, email string) (profile *models.Profile, created bool, err error)
	DeleteProfile(ctx context.Context, id int64) error
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if profile == nil {
		return nil, apperr.NotFound("profile", id)
	}
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return profiles, nil
}

func (s *profileService) UpsertProfile(ctx context.Context, username, email string) (*models.Profile, bool, error) {
	log := logger.FromContext(ctx)

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, false, apperr.Validation("username", "must not be empty")
	}
	email = strings.TrimSpace(email)

	profile, created, err := s.repo.Upsert(ctx, username, email)
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, false, apperr.Internal(err)
	}
	if created {
		log.Info("new profile created: id=%d, username=%s", profile.ID, profile.Username)
	}
	return profile, created, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
