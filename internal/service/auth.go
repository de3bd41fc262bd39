package service

import (
	"context"
	"errors"

	"github.com/mvaleed/personnel/internal/auth"
	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/event"
	"github.com/mvaleed/personnel/internal/storage"
)

// AuthService handles authentication operations.
type AuthService struct {
	employees storage.EmployeeRepository
	hasher    PasswordHasher
	jwt       *auth.JWTManager
	publisher event.Publisher
}

func NewAuthService(
	employees storage.EmployeeRepository,
	hasher PasswordHasher,
	jwt *auth.JWTManager,
	publisher event.Publisher,
) *AuthService {
	return &AuthService{
		employees: employees,
		hasher:    hasher,
		jwt:       jwt,
		publisher: publisher,
	}
}

// LoginInput contains the credentials for login.
type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResult contains the access token and employee after successful login.
type LoginResult struct {
	AccessToken      string
	ExpiresInSeconds int64
	Employee         *domain.Employee
}

// Login authenticates an employee and returns an access token.
// Unknown usernames and wrong passwords both yield ErrInvalidCredential.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredential
	}

	employee, err := s.employees.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredential
		}
		return nil, domain.NewSystemError(domain.CodeStoreFailure, err)
	}

	if err = s.hasher.CheckPassword(input.Password, employee.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredential
	}

	token, _, err := s.jwt.GenerateAccessToken(employee.ID, employee.Username)
	if err != nil {
		return nil, domain.NewSystemError(domain.CodeSystemError, err)
	}

	if err = s.publisher.Publish(ctx, domain.EmployeeLoggedInEvent(employee.ID, input.IPAddress, input.UserAgent)); err != nil {
		return nil, domain.NewSystemError(domain.CodeSystemError, err)
	}

	return &LoginResult{
		AccessToken:      token,
		ExpiresInSeconds: int64(s.jwt.AccessTokenTTL().Seconds()),
		Employee:         employee,
	}, nil
}
