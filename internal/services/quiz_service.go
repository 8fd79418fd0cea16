package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/smomoh/flagquiz/internal/apperr"
	"github.com/smomoh/flagquiz/internal/countries"
	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/quiz"
	"github.com/smomoh/flagquiz/internal/repository"
	"github.com/smomoh/flagquiz/internal/stats"
)

// AnswerInput carries one submitted answer. Code is used in multiple-choice
// mode, Name in spelling mode.
type AnswerInput struct {
	Code string
	Name string
}

// QuizService orchestrates quiz sessions: it dispatches actions into the
// pure reducer and performs the surrounding I/O (question fetching, stats
// persistence, attempt logging). One session per profile, in memory,
// discarded on reset.
type QuizService struct {
	provider     *countries.Provider
	statsService StatsService
	answers      repository.AnswerRepository
	optionsCount int

	mu       sync.Mutex
	sessions map[int64]*session
}

type session struct {
	mu    sync.Mutex
	state quiz.State
}

// NewQuizService creates a new QuizService. optionsCount <= 0 selects the
// provider default.
func NewQuizService(provider *countries.Provider, statsService StatsService, answers repository.AnswerRepository, optionsCount int) *QuizService {
	if optionsCount <= 0 {
		optionsCount = countries.DefaultOptionsCount
	}
	return &QuizService{
		provider:     provider,
		statsService: statsService,
		answers:      answers,
		optionsCount: optionsCount,
		sessions:     map[int64]*session{},
	}
}

func (s *QuizService) session(profileID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[profileID]
	if !ok {
		sess = &session{state: quiz.Initial()}
		s.sessions[profileID] = sess
	}
	return sess
}

// State returns a snapshot of the profile's current session.
func (s *QuizService) State(profileID int64) quiz.State {
	sess := s.session(profileID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// Start begins a fresh session for the continent and mode. When fewer than
// two countries are available the session is reset to idle and an
// insufficient-data error returned.
func (s *QuizService) Start(ctx context.Context, profileID int64, continent models.Continent, mode models.GameMode) (quiz.State, error) {
	log := logger.FromContext(ctx)

	if !continent.Valid() {
		return quiz.Initial(), apperr.Validation("continent", fmt.Sprintf("unknown continent %q", continent))
	}
	if !mode.Valid() {
		return quiz.Initial(), apperr.Validation("mode", fmt.Sprintf("unknown game mode %q", mode))
	}

	total := len(s.provider.ByContinent(ctx, continent))

	sess := s.session(profileID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state = quiz.Reduce(sess.state, quiz.StartQuiz{
		Continent:      continent,
		Mode:           mode,
		TotalCountries: total,
	})

	question := s.provider.NewQuestion(ctx, continent, s.optionsCount)
	if question == nil {
		log.Warn("cannot start quiz for %s: not enough countries", continent)
		sess.state = quiz.Reduce(sess.state, quiz.Reset{})
		return sess.state, apperr.InsufficientData(fmt.Sprintf("not enough countries available for %s", continent))
	}

	sess.state = quiz.Reduce(sess.state, quiz.SetQuestion{
		Question:      question,
		UsedCountries: []string{question.TargetCountry.Code},
	})
	log.Info("quiz started: continent=%s, mode=%s, total_countries=%d", continent, mode, total)
	return sess.state, nil
}

// Submit records an answer for the current question, updates the stats
// store, and persists it. Stats or attempt-log write failures are logged and
// swallowed; the session still advances to feedback.
func (s *QuizService) Submit(ctx context.Context, profileID int64, input AnswerInput) (quiz.State, string, error) {
	log := logger.FromContext(ctx)

	sess := s.session(profileID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.state
	if state.Status != quiz.StatusActive || state.CurrentQuestion == nil {
		return state, "", apperr.BadRequest("no active question to answer")
	}

	answer, err := resolveAnswer(state, input)
	if err != nil {
		return state, "", err
	}

	sess.state = quiz.Reduce(state, quiz.SubmitAnswer{Answer: answer})

	entry := sess.state.History[len(sess.state.History)-1]
	target := entry.Question.TargetCountry

	// Stats update is colocated with answer handling rather than hanging off
	// a state observer, so ordering is explicit.
	store := s.statsService.Load(ctx, profileID)
	store = stats.Update(store, state.Continent, target.Code, entry.Correct, sess.state.Score)
	s.statsService.Save(ctx, profileID, store)

	if _, err := s.answers.Insert(ctx, models.AnswerRecord{
		ProfileID:   profileID,
		Continent:   state.Continent,
		CountryCode: target.Code,
		Correct:     entry.Correct,
	}); err != nil {
		log.Warn("failed to record answer: %v", err)
	}

	notice := fmt.Sprintf("Correct! You identified %s.", target.Name)
	if !entry.Correct {
		notice = fmt.Sprintf("Incorrect. The correct answer was %s.", target.Name)
	}
	return sess.state, notice, nil
}

// resolveAnswer turns the submitted input into a Country for the reducer.
// Multiple-choice answers must name one of the question's options; spelling
// answers are judged by case-insensitive name comparison against the target.
func resolveAnswer(state quiz.State, input AnswerInput) (models.Country, error) {
	question := state.CurrentQuestion

	switch state.GameMode {
	case models.ModeSpelling:
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return models.Country{}, apperr.Validation("name", "must not be empty")
		}
		if strings.EqualFold(name, question.TargetCountry.Name) {
			return question.TargetCountry, nil
		}
		return models.Country{Name: name}, nil

	default:
		code := strings.ToUpper(strings.TrimSpace(input.Code))
		if code == "" {
			return models.Country{}, apperr.Validation("code", "must not be empty")
		}
		for _, opt := range question.Options {
			if opt.Code == code {
				return opt, nil
			}
		}
		return models.Country{}, apperr.Validation("code", fmt.Sprintf("%s is not one of the options", code))
	}
}

// Next advances to the next question. It ends the quiz when every country of
// the continent has already appeared, and on fetch failure (single attempt,
// no retry). Dispatching without a bound continent is a no-op.
func (s *QuizService) Next(ctx context.Context, profileID int64) (quiz.State, string, error) {
	log := logger.FromContext(ctx)

	sess := s.session(profileID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state.Continent == "" {
		return sess.state, "", nil
	}

	sess.state = quiz.Reduce(sess.state, quiz.NextQuestion{})

	if sess.state.TotalCountries > 0 && len(sess.state.UsedCountries) >= sess.state.TotalCountries {
		sess.state = quiz.Reduce(sess.state, quiz.EndQuiz{})
		log.Info("quiz completed: all %d countries seen", sess.state.TotalCountries)
		return sess.state, fmt.Sprintf("Quiz complete! You have seen every country in %s.", sess.state.Continent), nil
	}

	question := s.provider.NewQuestion(ctx, sess.state.Continent, s.optionsCount)
	if question == nil {
		log.Warn("failed to build next question for %s, ending quiz", sess.state.Continent)
		sess.state = quiz.Reduce(sess.state, quiz.EndQuiz{})
		return sess.state, "Could not load the next question. Quiz ended.", nil
	}

	used := sess.state.UsedCountries
	if !sess.state.Used(question.TargetCountry.Code) {
		used = append(append([]string(nil), used...), question.TargetCountry.Code)
	}
	sess.state = quiz.Reduce(sess.state, quiz.SetQuestion{
		Question:      question,
		UsedCountries: used,
	})
	return sess.state, "", nil
}

// End completes the session.
func (s *QuizService) End(profileID int64) quiz.State {
	sess := s.session(profileID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.state = quiz.Reduce(sess.state, quiz.EndQuiz{})
	return sess.state
}

// Reset discards the session and returns to idle.
func (s *QuizService) Reset(profileID int64) quiz.State {
	sess := s.session(profileID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.state = quiz.Reduce(sess.state, quiz.Reset{})
	return sess.state
}
