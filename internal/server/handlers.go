package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
	"github.com/Swarup012/Github-Manager-Backend/internal/version"
)

// maxBodyBytes bounds the /mcp request body.
const maxBodyBytes = 1 << 20

type mcpRequest struct {
	Input       string `json:"input"`
	Repo        string `json:"repo"`
	GitHubToken string `json:"github_token"`
	GeminiKey   string `json:"gemini_key"`
}

type mcpResponse struct {
	Response string `json:"response"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version.Version})
}

// mcp answers 200 for every request it can decode, domain failures included.
func (s *Server) mcp(w http.ResponseWriter, r *http.Request) {
	var req mcpRequest
	if err := readJSON(w, r, &req); err != nil {
		logger.Warn(r.Context(), "rejected request body", "error", err)
		writeJSON(w, http.StatusBadRequest, mcpResponse{Response: s.trans.GetMessage("invalid_request_body", 0, nil)})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout())
	defer cancel()

	result := s.dispatcher.Dispatch(ctx, models.DispatchRequest{
		Input: req.Input,
		Repo:  req.Repo,
		Credentials: models.Credentials{
			GitHubToken: req.GitHubToken,
			AIKey:       req.GeminiKey,
		},
	})

	writeJSON(w, http.StatusOK, mcpResponse{Response: result.Response})
}
