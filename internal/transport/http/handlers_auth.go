package http

import (
	"net/http"

	"github.com/mvaleed/personnel/internal/service"
	"github.com/mvaleed/personnel/internal/transport/payload"
)

// Health check

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.authService.Login(r.Context(), service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: getClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, payload.NewLoginResponse(result))
}
