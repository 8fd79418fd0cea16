package api

import (
	"net/http"
	"strconv"

	"github.com/smomoh/flagquiz/internal/models"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	writeJSON(w, http.StatusOK, s.StatsService.Load(r.Context(), profile.ID))
}

func (s *Server) handleContinentStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	continent, err := continentParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.StatsService.Continent(r.Context(), profile.ID, continent))
}

func (s *Server) handleDueForReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	continent, err := continentParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	due := s.StatsService.DueForReview(r.Context(), profile.ID, continent)
	if due == nil {
		due = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"continent": continent,
		"due":       due,
	})
}

func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	filter := models.AnswerFilter{ProfileID: profile.ID}
	q := r.URL.Query()
	if c := q.Get("continent"); c != "" {
		filter.Continent = models.Continent(c)
	}
	if v := q.Get("correct"); v != "" {
		correct := v == "true" || v == "1"
		filter.Correct = &correct
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}

	records, total, err := s.AnswerService.ListAnswers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []models.AnswerRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"answers": records,
		"total":   total,
	})
}
