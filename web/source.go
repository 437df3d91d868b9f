package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/robinvdvleuten/sie/charset"
	sieerrors "github.com/robinvdvleuten/sie/errors"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type SourceResponse struct {
	Filepath string                `json:"filepath"`
	Source   string                `json:"source"`
	Errors   []sieerrors.ErrorJSON `json:"errors"`
}

// ErrorsResponse lists the problems found in the served file.
type ErrorsResponse struct {
	Errors []sieerrors.ErrorJSON `json:"errors"`
}

// jsonErrors converts the current problems for a response.
// Must be called with s.mu held for reading.
func (s *Server) jsonErrors() []sieerrors.ErrorJSON {
	return sieerrors.NewJSONFormatter().FormatAllToSlice(s.errs)
}

// handleGetSource handles GET requests to /api/source.
// Returns the decoded file content and the parse problems as JSON.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	file := s.file
	s.mu.RUnlock()

	content, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	enc, err := charset.Lookup(s.Encoding)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	source, err := charset.Decode(content, enc)
	if err != nil {
		http.Error(w, "Failed to decode file", http.StatusInternalServerError)
		return
	}

	s.mu.RLock()
	response := &SourceResponse{Filepath: file, Source: source, Errors: s.jsonErrors()}
	s.mu.RUnlock()

	writeJSONResponse(w, response)
}

// handlePutSource handles PUT requests to /api/source.
// Writes the provided content to the file in its encoding, reloads it and
// returns the parse problems.
func (s *Server) handlePutSource(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Source string `json:"source"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	enc, err := charset.Lookup(s.Encoding)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	cw := charset.NewWriter(&buf, enc)
	text := strings.TrimSuffix(strings.ReplaceAll(request.Source, "\r\n", "\n"), "\n")
	for _, line := range strings.Split(text, "\n") {
		if err := cw.WriteLine(line); err != nil {
			http.Error(w, "Failed to encode source", http.StatusBadRequest)
			return
		}
	}
	if err := cw.Flush(); err != nil {
		http.Error(w, "Failed to encode source", http.StatusInternalServerError)
		return
	}

	s.mu.RLock()
	file := s.file
	s.mu.RUnlock()

	if err := os.WriteFile(file, buf.Bytes(), 0600); err != nil {
		http.Error(w, "Failed to write file", http.StatusInternalServerError)
		return
	}

	if err := s.reloadLedger(r.Context()); err != nil {
		http.Error(w, "Failed to reload file", http.StatusInternalServerError)
		return
	}

	s.mu.RLock()
	response := &SourceResponse{Filepath: file, Source: request.Source, Errors: s.jsonErrors()}
	s.mu.RUnlock()

	writeJSONResponse(w, response)
}

// handleGetErrors handles GET requests to /api/errors.
func (s *Server) handleGetErrors(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	response := &ErrorsResponse{Errors: s.jsonErrors()}
	s.mu.RUnlock()

	writeJSONResponse(w, response)
}
