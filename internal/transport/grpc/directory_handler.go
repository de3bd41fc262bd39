package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/service"
	"github.com/mvaleed/personnel/internal/transport/payload"
)

type directoryHandler struct {
	employeeService  *service.EmployeeService
	authService      *service.AuthService
	referenceService *service.ReferenceService
	logger           *slog.Logger
}

func newDirectoryHandler(s *Server) DirectoryServer {
	return &directoryHandler{
		employeeService:  s.employeeService,
		authService:      s.authService,
		referenceService: s.referenceService,
		logger:           s.logger,
	}
}

func (h *directoryHandler) SearchEmployees(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	result, err := h.employeeService.Search(ctx, domain.SearchRequest{
		Name:          stringField(req, "name"),
		DepartmentID:  stringField(req, "departmentId"),
		SortName:      stringField(req, "sortName"),
		SortCertLevel: stringField(req, "sortCertLevel"),
		SortEndDate:   stringField(req, "sortEndDate"),
		Offset:        stringField(req, "offset"),
		Limit:         stringField(req, "limit"),
	})
	if err != nil {
		return nil, mapDomainError(err)
	}
	return toStruct(payload.NewSearchResponse(result))
}

func (h *directoryHandler) GetEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := employeeID(req)
	if err != nil {
		return nil, mapDomainError(err)
	}

	view, err := h.employeeService.Get(ctx, id)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return toStruct(payload.NewDetailResponse(view))
}

func (h *directoryHandler) CreateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var form domain.EmployeeForm
	if err := fromStruct(req, &form); err != nil {
		return nil, mapDomainError(err)
	}

	id, err := h.employeeService.Create(ctx, &form)
	if err != nil {
		return nil, mapDomainError(err)
	}
	h.logMutation(ctx, "employee created", id)
	return toStruct(payload.NewMutationResponse(id, domain.MsgEmployeeCreated))
}

// UpdateEmployee takes the employee form fields plus employeeId in one message.
func (h *directoryHandler) UpdateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := employeeID(req)
	if err != nil {
		return nil, mapDomainError(err)
	}

	var form domain.EmployeeForm
	if err = fromStruct(req, &form); err != nil {
		return nil, mapDomainError(err)
	}

	id, err = h.employeeService.Update(ctx, id, &form)
	if err != nil {
		return nil, mapDomainError(err)
	}
	h.logMutation(ctx, "employee updated", id)
	return toStruct(payload.NewMutationResponse(id, domain.MsgEmployeeUpdated))
}

func (h *directoryHandler) DeleteEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := employeeID(req)
	if err != nil {
		return nil, mapDomainError(err)
	}

	id, err = h.employeeService.Delete(ctx, id)
	if err != nil {
		return nil, mapDomainError(err)
	}
	h.logMutation(ctx, "employee deleted", id)
	return toStruct(payload.NewMutationResponse(id, domain.MsgEmployeeDeleted))
}

func (h *directoryHandler) ListDepartments(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	departments, err := h.referenceService.ListDepartments(ctx)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return toStruct(payload.NewDepartmentsResponse(departments))
}

func (h *directoryHandler) ListCertifications(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	certifications, err := h.referenceService.ListCertifications(ctx)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return toStruct(payload.NewCertificationsResponse(certifications))
}

func (h *directoryHandler) logMutation(ctx context.Context, msg string, employeeID int64) {
	attrs := []any{slog.Int64("employee_id", employeeID)}
	if claims, ok := ClaimsFromContext(ctx); ok {
		attrs = append(attrs, slog.Int64("actor_id", claims.EmployeeID))
	}
	h.logger.InfoContext(ctx, msg, attrs...)
}
