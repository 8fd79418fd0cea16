package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/smomoh/flagquiz/internal/apperr"
	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/worker"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

type createProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	profile, created, err := s.ProfileService.UpsertProfile(r.Context(), req.Username, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if created {
		log.Debug("enqueueing welcome email for %s", profile.Username)
		s.MailPool.Submit(&worker.WelcomeEmailJob{
			Sender:   s.Mailer,
			From:     s.MailFrom,
			To:       profile.Email,
			Username: profile.Username,
		})
	}

	setProfileCookie(w, profile.ID)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, profile)
}

func profileIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, apperr.Validation("id", "must be an integer")
	}
	return id, nil
}

func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setProfileCookie(w, profile.ID)
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	if current := profileFromContext(r.Context()); current != nil && current.ID == id {
		clearProfileCookie(w)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
