package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/stringanalyzer/internal/audit"
	"github.com/JonMunkholm/stringanalyzer/internal/core"
	"github.com/JonMunkholm/stringanalyzer/internal/logging"
	"github.com/go-chi/chi/v5"
)

type createStringRequest struct {
	Value json.RawMessage `json:"value"`
}

type interpretedQuery struct {
	Original      string        `json:"original"`
	ParsedFilters core.Criteria `json:"parsed_filters"`
}

type naturalLanguageResponse struct {
	Data             []core.StringRecord `json:"data"`
	Count            int                 `json:"count"`
	InterpretedQuery interpretedQuery    `json:"interpreted_query"`
}

// handleCreateString analyzes and registers a new string.
func (s *Server) handleCreateString(w http.ResponseWriter, r *http.Request) {
	var req createStringRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, core.ErrInvalidBody)
		return
	}

	value, err := core.DecodeValue(req.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rec, err := s.registry.Insert(value)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("string created", "id", rec.ID, "length", rec.Properties.Length)
	s.recordAudit(r, audit.Params{Action: audit.ActionCreate, Value: rec.Value, RecordID: rec.ID})

	writeJSON(w, http.StatusCreated, rec)
}

// handleGetString returns one registered string.
func (s *Server) handleGetString(w http.ResponseWriter, r *http.Request) {
	value, err := pathValue(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rec, err := s.registry.Get(value)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleListStrings filters registered strings by query parameters.
func (s *Server) handleListStrings(w http.ResponseWriter, r *http.Request) {
	criteria, err := core.ParseCriteria(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.registry.Filter(criteria)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleNaturalLanguageFilter filters by one of the supported phrases.
func (s *Server) handleNaturalLanguageFilter(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, r, core.ErrMissingQuery)
		return
	}

	result, err := s.registry.FilterNaturalLanguage(query)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, naturalLanguageResponse{
		Data:  result.Data,
		Count: result.Count,
		InterpretedQuery: interpretedQuery{
			Original:      result.Original,
			ParsedFilters: result.ParsedFilters,
		},
	})
}

// handleDeleteString removes a registered string.
func (s *Server) handleDeleteString(w http.ResponseWriter, r *http.Request) {
	value, err := pathValue(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.registry.Delete(value); err != nil {
		respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("string deleted", "length", len(value))
	s.recordAudit(r, audit.Params{Action: audit.ActionDelete, Value: value})

	w.WriteHeader(http.StatusNoContent)
}

// pathValue returns the {value} URL parameter, unescaped.
// chi matches against RawPath when it is set, so the parameter is only
// still escaped in that case.
func pathValue(r *http.Request) (string, error) {
	value := chi.URLParam(r, "value")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(value)
		if err != nil {
			return "", core.ErrNotFound
		}
		value = unescaped
	}
	return value, nil
}

func (s *Server) recordAudit(r *http.Request, params audit.Params) {
	if s.audit == nil {
		return
	}
	s.audit.Record(withRequestMetadata(r), params)
}
