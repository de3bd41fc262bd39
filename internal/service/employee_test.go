package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvaleed/personnel/internal/auth"
	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/event"
	"github.com/mvaleed/personnel/internal/storage"
	"github.com/mvaleed/personnel/internal/storage/memory"
	"github.com/mvaleed/personnel/internal/validation"
)

// failingHoldings fails every Create once armed.
type failingHoldings struct {
	storage.EmployeeCertificationRepository
	fail bool
}

var errInjected = errors.New("injected failure")

func (f *failingHoldings) Create(ctx context.Context, ec *domain.EmployeeCertification) error {
	if f.fail {
		return errInjected
	}
	return f.EmployeeCertificationRepository.Create(ctx, ec)
}

type testEnv struct {
	svc       *EmployeeService
	store     *memory.Store
	repos     *storage.Repositories
	hasher    *auth.PasswordHasher
	publisher *event.RecordingPublisher
	holdings  *failingHoldings
	dept      domain.Department
	certs     []domain.Certification
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	dept, err := store.AddDepartment(ctx, "Engineering")
	require.NoError(t, err)
	var certs []domain.Certification
	for level := 1; level <= 3; level++ {
		c, err := store.AddCertification(ctx, fmt.Sprintf("Level %d", level), level)
		require.NoError(t, err)
		certs = append(certs, c)
	}

	repos := store.Repositories()
	holdings := &failingHoldings{EmployeeCertificationRepository: repos.EmployeeCertifications}
	repos.EmployeeCertifications = holdings

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	publisher := event.NewRecordingPublisher()
	pipeline := validation.NewPipeline(validation.NewFields(), repos.Employees, repos.Departments, repos.Certifications)

	return &testEnv{
		svc:       NewEmployeeService(repos, store, pipeline, hasher, publisher, DefaultTimeouts()),
		store:     store,
		repos:     repos,
		hasher:    hasher,
		publisher: publisher,
		holdings:  holdings,
		dept:      dept,
		certs:     certs,
	}
}

func ptr[T any](v T) *T { return &v }

func (e *testEnv) form(username string, certIdx ...int) *domain.EmployeeForm {
	f := &domain.EmployeeForm{
		Username:       username,
		FullName:       "Employee " + username,
		PhoneticName:   "ｼｬｲﾝ",
		BirthDate:      "1990/04/01",
		Email:          username + "@example.com",
		Phone:          "090-1234-5678",
		Password:       "password1",
		DepartmentID:   ptr(e.dept.ID),
		Certifications: []domain.CertificationForm{},
	}
	for _, i := range certIdx {
		f.Certifications = append(f.Certifications, domain.CertificationForm{
			CertificationID: ptr(e.certs[i].ID),
			StartDate:       "2020/01/01",
			EndDate:         "2023/01/01",
			Score:           ptr(decimal.RequireFromString("75.5")),
		})
	}
	return f
}

func requireKind(t *testing.T, err error, kind domain.Kind, code string) *domain.Error {
	t.Helper()
	require.Error(t, err)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, kind, de.Kind)
	assert.Equal(t, code, de.Code)
	return de
}

func TestEmployeeService_CreateThenSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.svc.Create(ctx, env.form("tanaka", 2, 0, 1))
	require.NoError(t, err)
	assert.Positive(t, id)

	result, err := env.svc.Search(ctx, domain.SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalRecords)
	require.Len(t, result.Employees, 1)

	item := result.Employees[0]
	assert.Equal(t, id, item.EmployeeID)
	assert.Equal(t, "Engineering", item.DepartmentName)
	require.NotNil(t, item.CertificationName)
	assert.Equal(t, "Level 1", *item.CertificationName)
	assert.True(t, decimal.RequireFromString("75.5").Equal(*item.Score))

	assert.Equal(t, []string{domain.EventEmployeeCreated}, env.publisher.Types())
}

func TestEmployeeService_SearchEmpty(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Search(context.Background(), domain.SearchRequest{Name: "nobody"})
	require.NoError(t, err)
	assert.Zero(t, result.TotalRecords)
	assert.NotNil(t, result.Employees)
	assert.Empty(t, result.Employees)
}

func TestEmployeeService_SearchInvalidRequest(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Search(context.Background(), domain.SearchRequest{SortName: "sideways"})
	de := requireKind(t, err, domain.KindValidation, domain.CodeInvalidOrder)
	assert.Equal(t, []string{domain.FieldSortName}, de.Params)
}

func TestEmployeeService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.form("ab cd"))
	requireKind(t, err, domain.KindValidation, domain.CodeUsernameFormat)

	_, err = env.svc.Create(ctx, env.form("abcd"))
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, env.form("abcd"))
	requireKind(t, err, domain.KindDuplicate, domain.CodeDuplicate)

	f := env.form("sato", 0)
	f.Certifications[0].StartDate = "2024/05/01"
	f.Certifications[0].EndDate = "2024/01/01"
	_, err = env.svc.Create(ctx, f)
	requireKind(t, err, domain.KindBusinessLogic, domain.CodeEndBeforeStart)
}

func TestEmployeeService_CreateRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.holdings.fail = true

	_, err := env.svc.Create(ctx, env.form("tanaka", 0))
	de := requireKind(t, err, domain.KindSystem, domain.CodeStoreFailure)
	assert.ErrorIs(t, de, errInjected)

	result, err := env.svc.Search(ctx, domain.SearchRequest{})
	require.NoError(t, err)
	assert.Zero(t, result.TotalRecords)
	assert.Empty(t, env.publisher.Types())
}

func TestEmployeeService_Get(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.svc.Create(ctx, env.form("tanaka", 2, 0))
	require.NoError(t, err)

	view, err := env.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "tanaka", view.Username)
	assert.Equal(t, "Engineering", view.DepartmentName)
	require.Len(t, view.Certifications, 2)
	assert.Equal(t, 1, view.Certifications[0].Level)
	assert.Equal(t, 3, view.Certifications[1].Level)

	_, err = env.svc.Get(ctx, id+100)
	de := requireKind(t, err, domain.KindNotFound, domain.CodeEmployeeNotFound)
	assert.Equal(t, []string{domain.FieldEmployeeID}, de.Params)
}

func TestEmployeeService_UpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.svc.Create(ctx, env.form("tanaka"))
	require.NoError(t, err)
	before, err := env.repos.Employees.GetByID(ctx, id)
	require.NoError(t, err)

	t.Run("omitted password keeps hash", func(t *testing.T) {
		f := env.form("tanaka")
		f.Password = ""
		f.FullName = "Renamed"
		_, err := env.svc.Update(ctx, id, f)
		require.NoError(t, err)

		after, err := env.repos.Employees.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before.PasswordHash, after.PasswordHash)
		assert.Equal(t, "Renamed", after.FullName)
	})

	t.Run("new password replaces hash", func(t *testing.T) {
		f := env.form("tanaka")
		f.Password = "0123456789"
		_, err := env.svc.Update(ctx, id, f)
		require.NoError(t, err)

		after, err := env.repos.Employees.GetByID(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
		assert.NoError(t, env.hasher.CheckPassword("0123456789", after.PasswordHash))
	})
}

func TestEmployeeService_UpdateCertifications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.svc.Create(ctx, env.form("tanaka", 0, 1))
	require.NoError(t, err)

	held := func() int {
		list, err := env.repos.EmployeeCertifications.ListByEmployee(ctx, id)
		require.NoError(t, err)
		return len(list)
	}

	f := env.form("tanaka")
	f.Certifications = nil
	_, err = env.svc.Update(ctx, id, f)
	require.NoError(t, err)
	assert.Equal(t, 2, held(), "nil list keeps certifications")

	_, err = env.svc.Update(ctx, id, env.form("tanaka", 2))
	require.NoError(t, err)
	assert.Equal(t, 1, held(), "list replaces certifications")

	_, err = env.svc.Update(ctx, id, env.form("tanaka"))
	require.NoError(t, err)
	assert.Equal(t, 0, held(), "empty list clears certifications")
}

func TestEmployeeService_UpdateRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.svc.Create(ctx, env.form("tanaka", 0))
	require.NoError(t, err)

	env.holdings.fail = true
	f := env.form("tanaka", 1, 2)
	f.FullName = "Changed"
	_, err = env.svc.Update(ctx, id, f)
	requireKind(t, err, domain.KindSystem, domain.CodeStoreFailure)

	view, err := env.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Employee tanaka", view.FullName)
	require.Len(t, view.Certifications, 1)
	assert.Equal(t, env.certs[0].ID, view.Certifications[0].CertificationID)
}

func TestEmployeeService_UpdateMissingAndDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.form("tanaka"))
	require.NoError(t, err)
	satoID, err := env.svc.Create(ctx, env.form("sato"))
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, 999, env.form("nobody"))
	requireKind(t, err, domain.KindNotFound, domain.CodeEmployeeNotFound)

	f := env.form("sato")
	f.Email = "tanaka@example.com"
	_, err = env.svc.Update(ctx, satoID, f)
	de := requireKind(t, err, domain.KindDuplicate, domain.CodeDuplicate)
	assert.Equal(t, []string{domain.FieldEmail}, de.Params)
}

func TestEmployeeService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.svc.Create(ctx, env.form("tanaka", 0))
	require.NoError(t, err)

	deleted, err := env.svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, deleted)

	held, err := env.repos.EmployeeCertifications.ListByEmployee(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, held)

	_, err = env.svc.Delete(ctx, id)
	requireKind(t, err, domain.KindNotFound, domain.CodeEmployeeNotFound)

	assert.Equal(t, []string{domain.EventEmployeeCreated, domain.EventEmployeeDeleted}, env.publisher.Types())
}

func TestStoreError(t *testing.T) {
	assert.Nil(t, storeError(nil))

	v := domain.NewValidationError(domain.CodeRequired, domain.FieldEmail)
	assert.Same(t, v, storeError(fmt.Errorf("wrapped: %w", v)))

	requireKind(t, storeError(domain.ErrNotFound), domain.KindNotFound, domain.CodeEmployeeNotFound)
	requireKind(t, storeError(context.DeadlineExceeded), domain.KindSystem, domain.CodeStoreFailure)
}
