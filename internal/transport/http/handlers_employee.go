package http

import (
	"log/slog"
	"net/http"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/transport/payload"
)

func (s *Server) handleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := s.employeeService.Search(r.Context(), domain.SearchRequest{
		Name:          query.Get("name"),
		DepartmentID:  query.Get("departmentId"),
		SortName:      query.Get("sortName"),
		SortCertLevel: query.Get("sortCertLevel"),
		SortEndDate:   query.Get("sortEndDate"),
		Offset:        query.Get("offset"),
		Limit:         query.Get("limit"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, payload.NewSearchResponse(result))
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := parseEmployeeID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.employeeService.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, payload.NewDetailResponse(view))
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var form domain.EmployeeForm
	if err := s.readJSON(r, &form); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.employeeService.Create(r.Context(), &form)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logMutation(r, "employee created", id)
	s.writeJSON(w, http.StatusOK, payload.NewMutationResponse(id, domain.MsgEmployeeCreated))
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := parseEmployeeID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var form domain.EmployeeForm
	if err = s.readJSON(r, &form); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err = s.employeeService.Update(r.Context(), id, &form)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logMutation(r, "employee updated", id)
	s.writeJSON(w, http.StatusOK, payload.NewMutationResponse(id, domain.MsgEmployeeUpdated))
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := parseEmployeeID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err = s.employeeService.Delete(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logMutation(r, "employee deleted", id)
	s.writeJSON(w, http.StatusOK, payload.NewMutationResponse(id, domain.MsgEmployeeDeleted))
}

func (s *Server) logMutation(r *http.Request, msg string, employeeID int64) {
	attrs := []any{slog.Int64("employee_id", employeeID)}
	if claims := getEmployeeClaims(r.Context()); claims != nil {
		attrs = append(attrs, slog.Int64("actor_id", claims.EmployeeID))
	}
	s.logger.InfoContext(r.Context(), msg, attrs...)
}
