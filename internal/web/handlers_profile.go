package web

import (
	"net/http"

	"github.com/JonMunkholm/stringanalyzer/internal/logging"
)

type profileUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Stack string `json:"stack"`
}

type profileResponse struct {
	Status    string       `json:"status"`
	User      *profileUser `json:"user,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
	Fact      string       `json:"fact,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// handleMe returns the configured profile with a cat fact.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p := s.cfg.Profile
	if !p.Complete() {
		writeJSON(w, http.StatusInternalServerError, profileResponse{
			Status: "error",
			Error:  "Environment variables not found",
		})
		return
	}

	resp := profileResponse{
		User:      &profileUser{Email: p.Email, Name: p.Name, Stack: p.Stack},
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}

	if s.facts == nil {
		resp.Status = "error"
		resp.Error = "API URL not found"
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	fact, err := s.facts.Fact(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("cat fact fetch failed", "error", err)
		resp.Status = "error"
		resp.Error = err.Error()
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp.Status = "success"
	resp.Fact = fact
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness and the number of registered strings.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"strings": s.registry.Len(),
	})
}
