package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
)

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"lead time violation", apperrors.ErrLeadTimeViolation, http.StatusBadRequest, dto.ErrorCodeLeadTimeViolation},
		{"scheduling conflict", apperrors.ErrSchedulingConflict, http.StatusConflict, dto.ErrorCodeSchedulingConflict},
		{"drive occurred", apperrors.ErrDriveOccurred, http.StatusBadRequest, dto.ErrorCodeDriveOccurred},
		{"drive has records", apperrors.ErrDriveHasRecords, http.StatusConflict, dto.ErrorCodeDriveHasRecords},
		{"not yet occurred", apperrors.ErrDriveNotYetOccurred, http.StatusBadRequest, dto.ErrorCodeDriveNotYetOccurred},
		{"grade not eligible", apperrors.ErrGradeNotEligible, http.StatusBadRequest, dto.ErrorCodeGradeNotEligible},
		{"duplicate in drive", apperrors.ErrAlreadyVaccinatedInDrive, http.StatusConflict, dto.ErrorCodeDuplicateInDrive},
		{"already immunized", apperrors.ErrAlreadyImmunized, http.StatusConflict, dto.ErrorCodeAlreadyImmunized},
		{"no doses remaining", apperrors.ErrNoDosesRemaining, http.StatusBadRequest, dto.ErrorCodeNoDosesRemaining},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"drive not found", apperrors.ErrDriveNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate student id", apperrors.ErrStudentIDAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"not drive creator", apperrors.ErrNotDriveCreator, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, body := respondWith(t, tc.err)
			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorCustomMessage(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrAlreadyImmunized,
		"student has already received the Polio vaccine on Mar 10, 2025").
		WithDetails(map[string]interface{}{"vaccineName": "Polio"})

	recorder, body := respondWith(t, err)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "student has already received the Polio vaccine on Mar 10, 2025", body.Error.Message)
	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Polio", details["vaccineName"])
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	recorder, body := respondWith(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
}
