package http

import (
	"net/http"

	"github.com/mvaleed/personnel/internal/transport/payload"
)

func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.referenceService.ListDepartments(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, payload.NewDepartmentsResponse(departments))
}

func (s *Server) handleListCertifications(w http.ResponseWriter, r *http.Request) {
	certifications, err := s.referenceService.ListCertifications(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, payload.NewCertificationsResponse(certifications))
}
