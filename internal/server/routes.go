package server

import "net/http"

func (s *Server) registerRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	mux.Handle("POST /mcp", s.rateLimit(http.HandlerFunc(s.mcp)))

	return mux
}
