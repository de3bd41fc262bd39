package domain

// Error codes.
const (
	CodeRequired          = "ER001"
	CodeNotSelected       = "ER002"
	CodeDuplicate         = "ER003"
	CodeNotExists         = "ER004"
	CodeDateFormat        = "ER005"
	CodeMaxLength         = "ER006"
	CodeLengthRange       = "ER007"
	CodeSingleByte        = "ER008"
	CodeKana              = "ER009"
	CodeInvalidDate       = "ER011"
	CodeEndBeforeStart    = "ER012"
	CodeEmployeeNotFound  = "ER013"
	CodeStoreFailure      = "ER015"
	CodeBadCredentials    = "ER016"
	CodeNotPositiveNumber = "ER018"
	CodeUsernameFormat    = "ER019"
	CodeEmailFormat       = "ER020"
	CodeInvalidOrder      = "ER021"
	CodeSystemError       = "ER023"
	CodeMalformedRequest  = "ER024"
)

// Success message codes.
const (
	MsgEmployeeCreated = "MSG001"
	MsgEmployeeUpdated = "MSG002"
	MsgEmployeeDeleted = "MSG003"
)

// Field display names used as error parameters.
const (
	FieldEmployeeID    = "ID"
	FieldUsername      = "Username"
	FieldFullName      = "Fullname"
	FieldPhoneticName  = "KanaName"
	FieldBirthDate     = "Birthdate"
	FieldEmail         = "Email"
	FieldPhone         = "Telephone"
	FieldPassword      = "Password"
	FieldDepartment    = "Department"
	FieldCertification = "Certificate"
	FieldCertStartDate = "Startdate"
	FieldCertEndDate   = "Enddate"
	FieldScore         = "Score"
	FieldOffset        = "Offset"
	FieldLimit         = "Limit"
	FieldSortName      = "sortName"
	FieldSortCertLevel = "sortCertLevel"
	FieldSortEndDate   = "sortEndDate"
	FieldRequestBody   = "Body"
	DateLayoutDisplay  = "yyyy/MM/dd"
	PasswordMinDisplay = "8"
	PasswordMaxDisplay = "50"
)
