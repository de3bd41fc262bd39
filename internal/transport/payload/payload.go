// Package payload defines the wire shapes shared by the HTTP and gRPC
// transports. Dates are rendered as yyyy/MM/dd.
package payload

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    int      `json:"status"`
	ErrorCode string   `json:"errorCode"`
	Params    []string `json:"params"`
}

// EmployeeItem is one row of a search response.
type EmployeeItem struct {
	EmployeeID           int64            `json:"employeeId"`
	FullName             string           `json:"fullName"`
	BirthDate            string           `json:"birthDate"`
	DepartmentName       string           `json:"departmentName"`
	Email                string           `json:"email"`
	Phone                string           `json:"phone"`
	CertificationName    *string          `json:"certificationName"`
	CertificationEndDate *string          `json:"certificationEndDate"`
	Score                *decimal.Decimal `json:"score"`
}

type SearchResponse struct {
	Status       int            `json:"status"`
	TotalRecords int64          `json:"totalRecords"`
	Employees    []EmployeeItem `json:"employees"`
}

type CertificationItem struct {
	CertificationID   int64           `json:"certificationId"`
	CertificationName string          `json:"certificationName"`
	Level             int             `json:"level"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	Score             decimal.Decimal `json:"score"`
}

type DetailResponse struct {
	Status         int                 `json:"status"`
	EmployeeID     int64               `json:"employeeId"`
	FullName       string              `json:"fullName"`
	PhoneticName   string              `json:"phoneticName"`
	BirthDate      string              `json:"birthDate"`
	DepartmentID   int64               `json:"departmentId"`
	DepartmentName string              `json:"departmentName"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Username       string              `json:"username"`
	Certifications []CertificationItem `json:"certifications"`
}

// MutationResponse acknowledges a create, update or delete.
type MutationResponse struct {
	Status      int    `json:"status"`
	EmployeeID  int64  `json:"employeeId"`
	MessageCode string `json:"messageCode"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status      int    `json:"status"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type DepartmentItem struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
}

type DepartmentsResponse struct {
	Status      int              `json:"status"`
	Departments []DepartmentItem `json:"departments"`
}

type CertificationTypeItem struct {
	CertificationID   int64  `json:"certificationId"`
	CertificationName string `json:"certificationName"`
	Level             int    `json:"level"`
}

type CertificationsResponse struct {
	Status         int                     `json:"status"`
	Certifications []CertificationTypeItem `json:"certifications"`
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindBusinessLogic:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse renders de with the status its kind maps to.
func NewErrorResponse(de *domain.Error) ErrorResponse {
	params := de.Params
	if params == nil {
		params = []string{}
	}
	return ErrorResponse{
		Status:    HTTPStatus(de.Kind),
		ErrorCode: de.Code,
		Params:    params,
	}
}

func NewSearchResponse(r *service.SearchResult) SearchResponse {
	items := make([]EmployeeItem, len(r.Employees))
	for i, e := range r.Employees {
		items[i] = EmployeeItem{
			EmployeeID:        e.EmployeeID,
			FullName:          e.FullName,
			BirthDate:         domain.FormatDate(e.BirthDate),
			DepartmentName:    e.DepartmentName,
			Email:             e.Email,
			Phone:             e.Phone,
			CertificationName: e.CertificationName,
			Score:             e.Score,
		}
		if e.CertificationEndDate != nil {
			end := domain.FormatDate(*e.CertificationEndDate)
			items[i].CertificationEndDate = &end
		}
	}
	return SearchResponse{
		Status:       http.StatusOK,
		TotalRecords: r.TotalRecords,
		Employees:    items,
	}
}

func NewDetailResponse(v *service.EmployeeView) DetailResponse {
	certs := make([]CertificationItem, len(v.Certifications))
	for i, c := range v.Certifications {
		certs[i] = CertificationItem{
			CertificationID:   c.CertificationID,
			CertificationName: c.CertificationName,
			Level:             c.Level,
			StartDate:         domain.FormatDate(c.StartDate),
			EndDate:           domain.FormatDate(c.EndDate),
			Score:             c.Score,
		}
	}
	return DetailResponse{
		Status:         http.StatusOK,
		EmployeeID:     v.EmployeeID,
		FullName:       v.FullName,
		PhoneticName:   v.PhoneticName,
		BirthDate:      domain.FormatDate(v.BirthDate),
		DepartmentID:   v.DepartmentID,
		DepartmentName: v.DepartmentName,
		Email:          v.Email,
		Phone:          v.Phone,
		Username:       v.Username,
		Certifications: certs,
	}
}

func NewMutationResponse(employeeID int64, messageCode string) MutationResponse {
	return MutationResponse{
		Status:      http.StatusOK,
		EmployeeID:  employeeID,
		MessageCode: messageCode,
	}
}

func NewLoginResponse(r *service.LoginResult) LoginResponse {
	return LoginResponse{
		Status:      http.StatusOK,
		AccessToken: r.AccessToken,
		ExpiresIn:   r.ExpiresInSeconds,
	}
}

func NewDepartmentsResponse(departments []domain.Department) DepartmentsResponse {
	items := make([]DepartmentItem, len(departments))
	for i, d := range departments {
		items[i] = DepartmentItem{DepartmentID: d.ID, DepartmentName: d.Name}
	}
	return DepartmentsResponse{Status: http.StatusOK, Departments: items}
}

func NewCertificationsResponse(certifications []domain.Certification) CertificationsResponse {
	items := make([]CertificationTypeItem, len(certifications))
	for i, c := range certifications {
		items[i] = CertificationTypeItem{
			CertificationID:   c.ID,
			CertificationName: c.Name,
			Level:             c.Level,
		}
	}
	return CertificationsResponse{Status: http.StatusOK, Certifications: items}
}
