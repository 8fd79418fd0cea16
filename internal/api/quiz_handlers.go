package api

import (
	"net/http"

	"github.com/smomoh/flagquiz/internal/apperr"
	"github.com/smomoh/flagquiz/internal/models"
	"github.com/smomoh/flagquiz/internal/quiz"
	"github.com/smomoh/flagquiz/internal/services"
)

type quizResponse struct {
	State  quiz.State `json:"state"`
	Notice string     `json:"notice,omitempty"`
}

type startQuizRequest struct {
	Continent models.Continent `json:"continent"`
	Mode      models.GameMode  `json:"mode"`
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req startQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeMultipleChoice
	}

	state, err := s.QuizService.Start(r.Context(), profile.ID, req.Continent, req.Mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{State: state})
}

func (s *Server) handleQuizState(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	writeJSON(w, http.StatusOK, quizResponse{State: s.QuizService.State(profile.ID)})
}

type submitAnswerRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Code == "" && req.Name == "" {
		writeError(w, r, apperr.BadRequest("either code or name is required"))
		return
	}

	state, notice, err := s.QuizService.Submit(r.Context(), profile.ID, services.AnswerInput{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{State: state, Notice: notice})
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	state, notice, err := s.QuizService.Next(r.Context(), profile.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{State: state, Notice: notice})
}

func (s *Server) handleEndQuiz(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	writeJSON(w, http.StatusOK, quizResponse{State: s.QuizService.End(profile.ID)})
}

func (s *Server) handleResetQuiz(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	writeJSON(w, http.StatusOK, quizResponse{State: s.QuizService.Reset(profile.ID)})
}
