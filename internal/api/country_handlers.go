package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smomoh/flagquiz/internal/apperr"
	"github.com/smomoh/flagquiz/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type continentSummary struct {
	Continent    models.Continent `json:"continent"`
	CountryCount int              `json:"country_count"`
}

func (s *Server) handleContinents(w http.ResponseWriter, r *http.Request) {
	out := make([]continentSummary, 0, len(models.Continents))
	for _, c := range models.Continents {
		out = append(out, continentSummary{
			Continent:    c,
			CountryCount: len(s.Provider.ByContinent(r.Context(), c)),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"continents": out})
}

func continentParam(r *http.Request) (models.Continent, error) {
	c := models.Continent(chi.URLParam(r, "continent"))
	if !c.Valid() {
		return "", apperr.Validation("continent", "unknown continent")
	}
	return c, nil
}

func (s *Server) handleContinentCountries(w http.ResponseWriter, r *http.Request) {
	continent, err := continentParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list := s.Provider.ByContinent(r.Context(), continent)
	writeJSON(w, http.StatusOK, map[string]any{
		"continent": continent,
		"countries": list,
	})
}
