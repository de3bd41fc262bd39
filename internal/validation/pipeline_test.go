package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaleed/personnel/internal/domain"
)

type fakeLookups struct {
	usernames map[string]int64
	emails    map[string]int64
	depts     map[int64]bool
	certs     map[int64]bool
	err       error
	calls     []string
}

func newFakeLookups() *fakeLookups {
	return &fakeLookups{
		usernames: map[string]int64{"taken": 7},
		emails:    map[string]int64{"taken@example.com": 7},
		depts:     map[int64]bool{1: true},
		certs:     map[int64]bool{1: true, 2: true},
	}
}

func (f *fakeLookups) UsernameTaken(_ context.Context, username string, excludeID int64) (bool, error) {
	f.calls = append(f.calls, "username")
	if f.err != nil {
		return false, f.err
	}
	id, ok := f.usernames[username]
	return ok && id != excludeID, nil
}

func (f *fakeLookups) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	f.calls = append(f.calls, "email")
	id, ok := f.emails[email]
	return ok && id != excludeID, nil
}

func (f *fakeLookups) DepartmentExists(_ context.Context, id int64) (bool, error) {
	f.calls = append(f.calls, "department")
	return f.depts[id], nil
}

func (f *fakeLookups) CertificationExists(_ context.Context, id int64) (bool, error) {
	f.calls = append(f.calls, "certification")
	return f.certs[id], nil
}

func ptr[T any](v T) *T { return &v }

func validForm() *domain.EmployeeForm {
	return &domain.EmployeeForm{
		Username:     "tanaka",
		FullName:     "Tanaka Taro",
		PhoneticName: "ﾀﾅｶ ﾀﾛｳ",
		BirthDate:    "1990/04/01",
		Email:        "tanaka@example.com",
		Phone:        "090-1234-5678",
		Password:     "password1",
		DepartmentID: ptr(int64(1)),
		Certifications: []domain.CertificationForm{
			{
				CertificationID: ptr(int64(1)),
				StartDate:       "2020/01/01",
				EndDate:         "2023/01/01",
				Score:           ptr(decimal.RequireFromString("90")),
			},
		},
	}
}

func newTestPipeline(l *fakeLookups) *Pipeline {
	return NewPipeline(NewFields(), l, l, l)
}

func TestPipeline_ValidateCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid form", func(t *testing.T) {
		l := newFakeLookups()
		require.NoError(t, newTestPipeline(l).ValidateCreate(ctx, validForm()))
		assert.Equal(t, []string{"username", "email", "department", "certification"}, l.calls)
	})

	t.Run("first violation wins", func(t *testing.T) {
		form := validForm()
		form.Username = ""
		form.Email = "broken"
		form.DepartmentID = nil

		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindValidation, domain.CodeRequired, domain.FieldUsername)
	})

	t.Run("duplicate username", func(t *testing.T) {
		form := validForm()
		form.Username = "taken"
		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindDuplicate, domain.CodeDuplicate, domain.FieldUsername)
	})

	t.Run("duplicate email checked after names and birth date", func(t *testing.T) {
		form := validForm()
		form.Email = "taken@example.com"
		form.BirthDate = "1990/13/01"
		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindValidation, domain.CodeInvalidDate, domain.FieldBirthDate)

		form.BirthDate = "1990/12/01"
		err = newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindDuplicate, domain.CodeDuplicate, domain.FieldEmail)
	})

	t.Run("password required", func(t *testing.T) {
		form := validForm()
		form.Password = ""
		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindValidation, domain.CodeRequired, domain.FieldPassword)
	})

	t.Run("unknown department", func(t *testing.T) {
		form := validForm()
		form.DepartmentID = ptr(int64(99))
		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindValidation, domain.CodeNotExists, domain.FieldDepartment)
	})

	t.Run("unknown certification", func(t *testing.T) {
		form := validForm()
		form.Certifications[0].CertificationID = ptr(int64(42))
		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindValidation, domain.CodeNotExists, domain.FieldCertification)
	})

	t.Run("end date not after start", func(t *testing.T) {
		form := validForm()
		form.Certifications[0].EndDate = "2019/12/31"
		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindBusinessLogic, domain.CodeEndBeforeStart, domain.FieldCertEndDate)
	})

	t.Run("score checked before date order", func(t *testing.T) {
		form := validForm()
		form.Certifications[0].EndDate = "2019/12/31"
		form.Certifications[0].Score = nil
		err := newTestPipeline(newFakeLookups()).ValidateCreate(ctx, form)
		assertCode(t, err, domain.KindValidation, domain.CodeRequired, domain.FieldScore)
	})

	t.Run("lookup failure is a system error", func(t *testing.T) {
		l := newFakeLookups()
		l.err = errors.New("connection reset")
		err := newTestPipeline(l).ValidateCreate(ctx, validForm())
		assertCode(t, err, domain.KindSystem, domain.CodeStoreFailure)
		assert.ErrorIs(t, err, l.err)
	})
}

func TestPipeline_ValidateUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("own username and email are not duplicates", func(t *testing.T) {
		form := validForm()
		form.Username = "taken"
		form.Email = "taken@example.com"
		form.Password = ""
		assert.NoError(t, newTestPipeline(newFakeLookups()).ValidateUpdate(ctx, 7, form))
	})

	t.Run("another employee's username is a duplicate", func(t *testing.T) {
		form := validForm()
		form.Username = "taken"
		err := newTestPipeline(newFakeLookups()).ValidateUpdate(ctx, 8, form)
		assertCode(t, err, domain.KindDuplicate, domain.CodeDuplicate, domain.FieldUsername)
	})

	t.Run("short password still rejected", func(t *testing.T) {
		form := validForm()
		form.Password = "abc"
		err := newTestPipeline(newFakeLookups()).ValidateUpdate(ctx, 7, form)
		assertCode(t, err, domain.KindValidation, domain.CodeLengthRange,
			domain.FieldPassword, domain.PasswordMinDisplay, domain.PasswordMaxDisplay)
	})
}

func TestPipeline_ValidateSearch(t *testing.T) {
	p := newTestPipeline(newFakeLookups())

	t.Run("defaults", func(t *testing.T) {
		c, err := p.ValidateSearch(domain.SearchRequest{})
		require.NoError(t, err)
		assert.Equal(t, domain.NewSearchCriteria(), c)
	})

	t.Run("all fields", func(t *testing.T) {
		c, err := p.ValidateSearch(domain.SearchRequest{
			Name:          "tan",
			DepartmentID:  "3",
			SortName:      "asc",
			SortCertLevel: "DESC",
			SortEndDate:   "",
			Offset:        "10",
			Limit:         "20",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.SearchCriteria{
			Name:          "tan",
			DepartmentID:  3,
			SortName:      domain.SortAsc,
			SortCertLevel: domain.SortDesc,
			Offset:        10,
			Limit:         20,
		}, c)
	})

	t.Run("department checked first", func(t *testing.T) {
		_, err := p.ValidateSearch(domain.SearchRequest{DepartmentID: "x", SortName: "bad", Limit: "-1"})
		assertCode(t, err, domain.KindValidation, domain.CodeNotPositiveNumber, domain.FieldDepartment)
	})

	t.Run("offset checked before limit", func(t *testing.T) {
		_, err := p.ValidateSearch(domain.SearchRequest{Offset: "-1", Limit: "-1"})
		assertCode(t, err, domain.KindValidation, domain.CodeNotPositiveNumber, domain.FieldOffset)
	})
}
