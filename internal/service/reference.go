package service

import (
	"context"
	"time"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/storage"
)

// ReferenceService lists the departments and certifications a form may refer to.
type ReferenceService struct {
	departments    storage.DepartmentRepository
	certifications storage.CertificationRepository
	timeout        time.Duration
}

func NewReferenceService(repos *storage.Repositories, timeout time.Duration) *ReferenceService {
	return &ReferenceService{
		departments:    repos.Departments,
		certifications: repos.Certifications,
		timeout:        timeout,
	}
}

func (s *ReferenceService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, domain.NewSystemError(domain.CodeStoreFailure, err)
	}
	return departments, nil
}

func (s *ReferenceService) ListCertifications(ctx context.Context) ([]domain.Certification, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	certifications, err := s.certifications.List(ctx)
	if err != nil {
		return nil, domain.NewSystemError(domain.CodeStoreFailure, err)
	}
	return certifications, nil
}
