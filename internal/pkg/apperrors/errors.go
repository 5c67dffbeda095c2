package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentIDAlreadyExists = errors.New("student ID already exists")
)

// Drive errors
var (
	ErrDriveNotFound      = errors.New("vaccination drive not found")
	ErrLeadTimeViolation  = errors.New("vaccination drives must be scheduled at least the minimum lead time in advance")
	ErrSchedulingConflict = errors.New("a vaccination drive is already scheduled for this date")
	ErrDriveOccurred      = errors.New("drive has already occurred and can no longer be modified")
	ErrNotDriveCreator    = errors.New("only the drive creator may delete it")
	ErrDriveHasRecords    = errors.New("drive has vaccination records and cannot be deleted")
	ErrDriveNotScheduled  = errors.New("drive is not in scheduled status")
)

// Vaccination errors
var (
	ErrDriveNotYetOccurred      = errors.New("cannot record vaccination for a drive that has not occurred yet")
	ErrGradeNotEligible         = errors.New("student's grade is not applicable for this vaccination drive")
	ErrAlreadyVaccinatedInDrive = errors.New("student has already been vaccinated in this drive")
	ErrAlreadyImmunized         = errors.New("student has already received this vaccine")
	ErrNoDosesRemaining         = errors.New("no doses left for this vaccination drive")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for malformed input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// DetailsOf extracts the detail map from err when it carries one
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
