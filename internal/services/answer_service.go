package services

import (
	"context"

	"github.com/smomoh/flagquiz/internal/apperr"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/repository"
)

// AnswerService exposes the attempt log.
type AnswerService interface {
	ListAnswers(ctx context.Context, filter models.AnswerFilter) ([]models.AnswerRecord, int, error)
}

type answerService struct {
	repo repository.AnswerRepository
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(repo repository.AnswerRepository) AnswerService {
	return &answerService{repo: repo}
}

func (s *answerService) ListAnswers(ctx context.Context, filter models.AnswerFilter) ([]models.AnswerRecord, int, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return records, total, nil
}
