package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.profileMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/continents", s.handleContinents)
	r.Get("/continents/{continent}/countries", s.handleContinentCountries)

	r.Get("/profiles", s.handleListProfiles)
	r.Post("/profiles", s.handleCreateProfile)
	r.Post("/profiles/{id}/select", s.handleSelectProfile)
	r.Post("/profiles/{id}/delete", s.handleDeleteProfile)

	r.Post("/quiz/start", s.handleStartQuiz)
	r.Get("/quiz", s.handleQuizState)
	r.Post("/quiz/answer", s.handleSubmitAnswer)
	r.Post("/quiz/next", s.handleNextQuestion)
	r.Post("/quiz/end", s.handleEndQuiz)
	r.Post("/quiz/reset", s.handleResetQuiz)

	r.Get("/stats", s.handleStats)
	r.Get("/stats/{continent}", s.handleContinentStats)
	r.Get("/stats/{continent}/due", s.handleDueForReview)

	r.Get("/answers", s.handleListAnswers)

	return r
}
