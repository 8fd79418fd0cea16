package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smomoh/flagquiz/internal/apperr"
	"github.com/smomoh/flagquiz/internal/logger"
)

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	if appErr.Status >= 500 {
		log.Error("request failed: %v", err)
	} else {
		log.Debug("request rejected: %v", err)
	}

	var resp errorResponse
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	writeJSON(w, appErr.Status, resp)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.BadRequest("invalid JSON body")
	}
	return nil
}
