package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/repository"
	"github.com/smomoh/flagquiz/internal/repository/sqlite"
	"github.com/smomoh/flagquiz/internal/testutil"
)

type AnswerRepositorySuite struct {
	suite.Suite
	repo      repository.AnswerRepository
	profiles  repository.ProfileRepository
	ctx       context.Context
	profileID int64
	otherID   int64
}

func (s *AnswerRepositorySuite) SetupTest() {
	database := testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAnswerRepository(database.DB)
	s.profiles = sqlite.NewProfileRepository(database.DB)
	s.ctx = context.Background()

	profiles := s.profiles
	ada, _, err := profiles.Upsert(s.ctx, "ada", "")
	s.Require().NoError(err)
	grace, _, err := profiles.Upsert(s.ctx, "grace", "")
	s.Require().NoError(err)
	s.profileID = ada.ID
	s.otherID = grace.ID
}

func (s *AnswerRepositorySuite) insert(profileID int64, continent models.Continent, code string, correct bool) int64 {
	s.T().Helper()
	id, err := s.repo.Insert(s.ctx, models.AnswerRecord{
		ProfileID:   profileID,
		Continent:   continent,
		CountryCode: code,
		Correct:     correct,
	})
	s.Require().NoError(err)
	return id
}

func (s *AnswerRepositorySuite) TestInsertAndList() {
	id := s.insert(s.profileID, models.Europe, "FR", true)
	s.NotZero(id)

	records, err := s.repo.List(s.ctx, models.AnswerFilter{ProfileID: s.profileID})

	s.Require().NoError(err)
	s.Require().Len(records, 1)
	rec := records[0]
	s.Equal(id, rec.ID)
	s.Equal(models.Europe, rec.Continent)
	s.Equal("FR", rec.CountryCode)
	s.True(rec.Correct)
	s.False(rec.AnsweredAt.IsZero())
}

func (s *AnswerRepositorySuite) TestListFilters() {
	s.insert(s.profileID, models.Europe, "FR", true)
	s.insert(s.profileID, models.Europe, "DE", false)
	s.insert(s.profileID, models.Asia, "JP", true)
	s.insert(s.otherID, models.Europe, "IT", true)

	byProfile, err := s.repo.List(s.ctx, models.AnswerFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Len(byProfile, 3)

	byContinent, err := s.repo.List(s.ctx, models.AnswerFilter{ProfileID: s.profileID, Continent: models.Europe})
	s.Require().NoError(err)
	s.Len(byContinent, 2)

	correct := true
	byCorrect, err := s.repo.List(s.ctx, models.AnswerFilter{ProfileID: s.profileID, Correct: &correct})
	s.Require().NoError(err)
	s.Len(byCorrect, 2)

	incorrect := false
	byIncorrect, err := s.repo.List(s.ctx, models.AnswerFilter{ProfileID: s.profileID, Continent: models.Europe, Correct: &incorrect})
	s.Require().NoError(err)
	s.Require().Len(byIncorrect, 1)
	s.Equal("DE", byIncorrect[0].CountryCode)
}

func (s *AnswerRepositorySuite) TestListOrderAndPaging() {
	first := s.insert(s.profileID, models.Europe, "FR", true)
	second := s.insert(s.profileID, models.Europe, "DE", true)
	third := s.insert(s.profileID, models.Europe, "IT", true)

	page, err := s.repo.List(s.ctx, models.AnswerFilter{ProfileID: s.profileID, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	// Newest first.
	s.Equal(third, page[0].ID)
	s.Equal(second, page[1].ID)

	rest, err := s.repo.List(s.ctx, models.AnswerFilter{ProfileID: s.profileID, Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal(first, rest[0].ID)
}

func (s *AnswerRepositorySuite) TestCount() {
	s.insert(s.profileID, models.Europe, "FR", true)
	s.insert(s.profileID, models.Asia, "JP", false)

	total, err := s.repo.Count(s.ctx, models.AnswerFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Equal(2, total)

	europe, err := s.repo.Count(s.ctx, models.AnswerFilter{ProfileID: s.profileID, Continent: models.Europe})
	s.Require().NoError(err)
	s.Equal(1, europe)

	none, err := s.repo.Count(s.ctx, models.AnswerFilter{ProfileID: s.otherID, Continent: models.Asia})
	s.Require().NoError(err)
	s.Zero(none)
}

func (s *AnswerRepositorySuite) TestDeleteCascadesFromProfile() {
	s.insert(s.profileID, models.Europe, "FR", true)
	s.insert(s.profileID, models.Asia, "JP", false)

	s.Require().NoError(s.profiles.Delete(s.ctx, s.profileID))

	count, err := s.repo.Count(s.ctx, models.AnswerFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Zero(count)
}

func TestAnswerRepositorySuite(t *testing.T) {
	suite.Run(t, new(AnswerRepositorySuite))
}
