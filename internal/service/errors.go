package service

import (
	"errors"

	"github.com/mvaleed/personnel/internal/domain"
)

// storeError translates a repository failure into the error taxonomy.
// Typed errors raised inside a transaction pass through unchanged.
func storeError(err error) error {
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}

	if errors.Is(err, domain.ErrNotFound) {
		return employeeNotFound()
	}

	return domain.NewSystemError(domain.CodeStoreFailure, err)
}

func employeeNotFound() *domain.Error {
	return domain.NewNotFoundError(domain.CodeEmployeeNotFound, domain.FieldEmployeeID)
}
