package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error response.
// The message is taken from the error itself so CustomError context (such as
// the prior administration date) reaches the caller.
func HandleAPIError(c *gin.Context, err error) {
	status, code := classifyError(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, "Internal server error")))
		return
	}

	detail := dto.NewErrorDetail(code, err.Error())
	if details := apperrors.DetailsOf(err); details != nil {
		detail = detail.WithDetails(details)
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

// classifyError resolves an error to its HTTP status and stable error code
func classifyError(err error) (int, dto.ErrorCode) {
	switch {
	// Validation
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed

	// Drive scheduling
	case errors.Is(err, apperrors.ErrLeadTimeViolation):
		return http.StatusBadRequest, dto.ErrorCodeLeadTimeViolation
	case errors.Is(err, apperrors.ErrSchedulingConflict):
		return http.StatusConflict, dto.ErrorCodeSchedulingConflict
	case errors.Is(err, apperrors.ErrDriveOccurred),
		errors.Is(err, apperrors.ErrDriveNotScheduled):
		return http.StatusBadRequest, dto.ErrorCodeDriveOccurred
	case errors.Is(err, apperrors.ErrDriveHasRecords):
		return http.StatusConflict, dto.ErrorCodeDriveHasRecords

	// Vaccination recording
	case errors.Is(err, apperrors.ErrDriveNotYetOccurred):
		return http.StatusBadRequest, dto.ErrorCodeDriveNotYetOccurred
	case errors.Is(err, apperrors.ErrGradeNotEligible):
		return http.StatusBadRequest, dto.ErrorCodeGradeNotEligible
	case errors.Is(err, apperrors.ErrAlreadyVaccinatedInDrive):
		return http.StatusConflict, dto.ErrorCodeDuplicateInDrive
	case errors.Is(err, apperrors.ErrAlreadyImmunized):
		return http.StatusConflict, dto.ErrorCodeAlreadyImmunized
	case errors.Is(err, apperrors.ErrNoDosesRemaining):
		return http.StatusBadRequest, dto.ErrorCodeNoDosesRemaining

	// Not found
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrDriveNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound

	// Uniqueness conflicts
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists),
		errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeConflict

	// Authentication and authorization
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrNotDriveCreator),
		errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden

	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}
