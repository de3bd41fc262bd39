// Package validation implements the per-field checks and the ordered
// validation pipelines that gate every employee mutation and listing.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mvaleed/personnel/internal/domain"
)

// Length limits, counted in characters.
const (
	maxUsernameLength = 50
	maxNameLength     = 125
	maxEmailLength    = 125
	maxPhoneLength    = 50
	minPasswordLength = 8
	maxPasswordLength = 50
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	// Half-width katakana block plus whitespace.
	halfKanaPattern   = regexp.MustCompile(`^[\x{FF65}-\x{FF9F}\s]+$`)
	singleBytePattern = regexp.MustCompile(`^[\x01-\x7E]+$`)
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	// Checked after a successful parse so lenient parsers cannot let
	// non-padded input through.
	datePattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
)

// Fields holds the individual field checks. Each check either returns nil or
// a *domain.Error naming the field.
type Fields struct {
	validate *validator.Validate
}

// NewFields creates the field checks with the directory's custom tags registered.
func NewFields() *Fields {
	validate := validator.New()

	_ = validate.RegisterValidation("username", matchTag(usernamePattern))
	_ = validate.RegisterValidation("halfkana", matchTag(halfKanaPattern))
	_ = validate.RegisterValidation("singlebyte", matchTag(singleBytePattern))
	_ = validate.RegisterValidation("basicemail", matchTag(emailPattern))
	_ = validate.RegisterValidation("datepattern", matchTag(datePattern))

	return &Fields{validate: validate}
}

func matchTag(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // Empty values handled by 'required' tag
		}
		return re.MatchString(value)
	}
}

// rule pairs a validator tag with the error raised when it fails.
type rule struct {
	tag string
	err *domain.Error
}

func (f *Fields) run(value any, rules ...rule) error {
	for _, r := range rules {
		if err := f.validate.Var(value, r.tag); err != nil {
			return r.err
		}
	}
	return nil
}

// Username is limited to the login charset.
func (f *Fields) Username(username string) error {
	return f.run(username,
		rule{"required", domain.NewValidationError(domain.CodeRequired, domain.FieldUsername)},
		rule{"max=" + strconv.Itoa(maxUsernameLength), domain.NewValidationError(domain.CodeMaxLength, domain.FieldUsername)},
		rule{"username", domain.NewValidationError(domain.CodeUsernameFormat, domain.FieldUsername)},
	)
}

// FullName checks a required display name.
func (f *Fields) FullName(name string) error {
	return f.run(name,
		rule{"required", domain.NewValidationError(domain.CodeRequired, domain.FieldFullName)},
		rule{"max=" + strconv.Itoa(maxNameLength), domain.NewValidationError(domain.CodeMaxLength, domain.FieldFullName)},
	)
}

// PhoneticName requires half-width katakana.
func (f *Fields) PhoneticName(name string) error {
	return f.run(name,
		rule{"required", domain.NewValidationError(domain.CodeRequired, domain.FieldPhoneticName)},
		rule{"max=" + strconv.Itoa(maxNameLength), domain.NewValidationError(domain.CodeMaxLength, domain.FieldPhoneticName)},
		rule{"halfkana", domain.NewValidationError(domain.CodeKana, domain.FieldPhoneticName)},
	)
}

// Date checks a required yyyy/MM/dd value: presence, parseability, then the
// literal digit pattern.
func (f *Fields) Date(value, field string) error {
	return f.run(value,
		rule{"required", domain.NewValidationError(domain.CodeRequired, field)},
		rule{"datetime=" + domain.DateLayout, domain.NewValidationError(domain.CodeInvalidDate, field)},
		rule{"datepattern", domain.NewValidationError(domain.CodeDateFormat, field, domain.DateLayoutDisplay)},
	)
}

// Email requires a basic local@domain shape.
func (f *Fields) Email(email string) error {
	return f.run(email,
		rule{"required", domain.NewValidationError(domain.CodeRequired, domain.FieldEmail)},
		rule{"max=" + strconv.Itoa(maxEmailLength), domain.NewValidationError(domain.CodeMaxLength, domain.FieldEmail)},
		rule{"basicemail", domain.NewValidationError(domain.CodeEmailFormat, domain.FieldEmail)},
	)
}

// Phone accepts printable 7-bit characters only.
func (f *Fields) Phone(phone string) error {
	return f.run(phone,
		rule{"required", domain.NewValidationError(domain.CodeRequired, domain.FieldPhone)},
		rule{"max=" + strconv.Itoa(maxPhoneLength), domain.NewValidationError(domain.CodeMaxLength, domain.FieldPhone)},
		rule{"singlebyte", domain.NewValidationError(domain.CodeSingleByte, domain.FieldPhone)},
	)
}

// Password is required on create. On update an empty value means "keep the
// stored password" and passes.
func (f *Fields) Password(password string, required bool) error {
	if password == "" {
		if required {
			return domain.NewValidationError(domain.CodeRequired, domain.FieldPassword)
		}
		return nil
	}
	return f.run(password,
		rule{
			"min=" + strconv.Itoa(minPasswordLength) + ",max=" + strconv.Itoa(maxPasswordLength),
			domain.NewValidationError(domain.CodeLengthRange, domain.FieldPassword, domain.PasswordMinDisplay, domain.PasswordMaxDisplay),
		},
	)
}

// DepartmentID checks the format of a department reference. Existence is
// checked by the pipeline.
func (f *Fields) DepartmentID(id *int64) error {
	if id == nil {
		return domain.NewValidationError(domain.CodeNotSelected, domain.FieldDepartment)
	}
	return f.run(*id, rule{"gt=0", domain.NewValidationError(domain.CodeNotPositiveNumber, domain.FieldDepartment)})
}

// CertificationID checks the format of a certification reference.
func (f *Fields) CertificationID(id *int64) error {
	if id == nil {
		return domain.NewValidationError(domain.CodeRequired, domain.FieldCertification)
	}
	return f.run(*id, rule{"gt=0", domain.NewValidationError(domain.CodeNotPositiveNumber, domain.FieldCertification)})
}

// Score must be present and strictly positive. Precision is not limited.
func (f *Fields) Score(score *decimal.Decimal) error {
	if score == nil {
		return domain.NewValidationError(domain.CodeRequired, domain.FieldScore)
	}
	if !score.IsPositive() {
		return domain.NewValidationError(domain.CodeNotPositiveNumber, domain.FieldScore)
	}
	return nil
}

// DateOrder requires end to be strictly after start. Both must already have
// passed Date.
func (f *Fields) DateOrder(start, end string) error {
	s, err := domain.ParseDate(start)
	if err != nil {
		return domain.NewValidationError(domain.CodeInvalidDate, domain.FieldCertStartDate)
	}
	e, err := domain.ParseDate(end)
	if err != nil {
		return domain.NewValidationError(domain.CodeInvalidDate, domain.FieldCertEndDate)
	}
	if !e.After(s) {
		return domain.NewBusinessLogicError(domain.CodeEndBeforeStart, domain.FieldCertEndDate)
	}
	return nil
}

// SortDirection parses an optional ASC/DESC directive, case-insensitively.
func (f *Fields) SortDirection(raw, field string) (domain.SortDirection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.SortNone, nil
	}
	upper := strings.ToUpper(raw)
	if err := f.run(upper, rule{"oneof=ASC DESC", domain.NewValidationError(domain.CodeInvalidOrder, field)}); err != nil {
		return domain.SortNone, err
	}
	return domain.SortDirection(upper), nil
}

// NonNegativeInt parses optional pagination text. Absent text yields def.
func (f *Fields) NonNegativeInt(raw, field string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(domain.CodeNotPositiveNumber, field)
	}
	return n, nil
}

// PositiveID parses an optional identifier filter. Absent text yields 0.
func (f *Fields) PositiveID(raw, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(domain.CodeNotPositiveNumber, field)
	}
	return id, nil
}
