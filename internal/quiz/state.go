package quiz

import (
	"time"

	"github.com/smomoh/flagquiz/internal/models"
)

// Status is the lifecycle phase of a quiz session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusActive    Status = "active"
	StatusFeedback  Status = "feedback"
	StatusCompleted Status = "completed"
)

// State is one quiz session. It is a value; Reduce never mutates its input.
// CurrentQuestion is non-nil exactly when Status is active or feedback.
type State struct {
	Continent       models.Continent      `json:"continent,omitempty"`
	CurrentQuestion *models.Question      `json:"current_question,omitempty"`
	Score           int                   `json:"score"`
	QuestionsAsked  int                   `json:"questions_asked"`
	History         []models.HistoryEntry `json:"history"`
	Status          Status                `json:"status"`
	UsedCountries   []string              `json:"used_countries"`
	GameMode        models.GameMode       `json:"game_mode,omitempty"`
	TotalCountries  int                   `json:"total_countries"`
}

// Initial returns a fresh idle session.
func Initial() State {
	return State{Status: StatusIdle}
}

// Used reports whether a country code has already appeared as a target.
func (s State) Used(code string) bool {
	for _, c := range s.UsedCountries {
		if c == code {
			return true
		}
	}
	return false
}

// Action is a quiz state transition request. The set of implementations is
// closed: StartQuiz, SetQuestion, SubmitAnswer, NextQuestion, EndQuiz, Reset.
type Action interface {
	isAction()
}

// StartQuiz resets to a fresh loading session bound to a continent and mode.
type StartQuiz struct {
	Continent      models.Continent
	Mode           models.GameMode
	TotalCountries int
}

// SetQuestion stores the fetched question (nil sends the session back to
// idle) and, when non-nil, replaces the used-country set.
type SetQuestion struct {
	Question      *models.Question
	UsedCountries []string
}

// SubmitAnswer records the answer for the current question.
type SubmitAnswer struct {
	Answer models.Country
}

// NextQuestion moves to loading while the caller fetches the next question.
type NextQuestion struct{}

// EndQuiz completes the session.
type EndQuiz struct{}

// Reset returns to the initial idle state.
type Reset struct{}

func (StartQuiz) isAction()    {}
func (SetQuestion) isAction()  {}
func (SubmitAnswer) isAction() {}
func (NextQuestion) isAction() {}
func (EndQuiz) isAction()      {}
func (Reset) isAction()        {}

// Reduce is the pure transition function of the session state machine. All
// I/O (question and country fetching) lives in the orchestration layer,
// which dispatches follow-up actions with the results.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case StartQuiz:
		next := Initial()
		next.Continent = a.Continent
		next.GameMode = a.Mode
		next.TotalCountries = a.TotalCountries
		next.Status = StatusLoading
		return next

	case SetQuestion:
		s.CurrentQuestion = a.Question
		if a.Question != nil {
			s.Status = StatusActive
			if a.UsedCountries != nil {
				s.UsedCountries = a.UsedCountries
			}
		} else {
			s.Status = StatusIdle
		}
		return s

	case SubmitAnswer:
		if s.Status != StatusActive || s.CurrentQuestion == nil {
			return s
		}
		correct := a.Answer.Code == s.CurrentQuestion.TargetCountry.Code
		entry := models.HistoryEntry{
			Question:   *s.CurrentQuestion,
			UserAnswer: a.Answer,
			Correct:    correct,
			Timestamp:  time.Now().UnixMilli(),
		}
		history := make([]models.HistoryEntry, 0, len(s.History)+1)
		history = append(history, s.History...)
		s.History = append(history, entry)
		if correct {
			s.Score++
		}
		s.Status = StatusFeedback
		return s

	case NextQuestion:
		if s.Continent == "" {
			return s
		}
		s.Status = StatusLoading
		s.CurrentQuestion = nil
		s.QuestionsAsked++
		return s

	case EndQuiz:
		s.Status = StatusCompleted
		s.CurrentQuestion = nil
		return s

	case Reset:
		return Initial()
	}

	return s
}
