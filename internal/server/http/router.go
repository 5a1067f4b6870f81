package httpserver

import "net/http"

// Server is the complete HTTP surface: the JSON API under /api/ and the
// static client everywhere else.
type Server struct {
	mux *http.ServeMux
}

func NewServer(api *Handler, webDir string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	RegisterStaticRoutes(mux, webDir)
	return &Server{mux: mux}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
