package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
)

func validStudentRequest() dto.StudentRequest {
	return dto.StudentRequest{
		Name:          "Aarav Kumar",
		StudentID:     "STU-1042",
		DateOfBirth:   "2014-06-21",
		Gender:        "Male",
		Grade:         "5",
		Section:       "B",
		ParentName:    "Rohit Kumar",
		ContactNumber: "9876543210",
	}
}

func TestCreateStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a student", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewStudentService(students, newFakeRecordStore(newFakeDriveStore()))

		student, err := svc.CreateStudent(ctx, validStudentRequest())
		require.NoError(t, err)
		assert.NotZero(t, student.ID)
		assert.Equal(t, models.GenderMale, student.Gender)
	})

	t.Run("accepts multiple date of birth formats", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewStudentService(students, newFakeRecordStore(newFakeDriveStore()))

		req := validStudentRequest()
		req.DateOfBirth = "21/06/2014"
		student, err := svc.CreateStudent(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2014, student.DateOfBirth.Year())
	})

	t.Run("rejects an unknown gender", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewStudentService(students, newFakeRecordStore(newFakeDriveStore()))

		req := validStudentRequest()
		req.Gender = "X"
		_, err := svc.CreateStudent(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate studentId is a conflict", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewStudentService(students, newFakeRecordStore(newFakeDriveStore()))

		_, err := svc.CreateStudent(ctx, validStudentRequest())
		require.NoError(t, err)

		_, err = svc.CreateStudent(ctx, validStudentRequest())
		assert.ErrorIs(t, err, apperrors.ErrStudentIDAlreadyExists)
	})
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	students := newFakeStudentStore()
	svc := NewStudentService(students, newFakeRecordStore(newFakeDriveStore()))

	created, err := svc.CreateStudent(ctx, validStudentRequest())
	require.NoError(t, err)

	req := validStudentRequest()
	req.Grade = "6"
	updated, err := svc.UpdateStudent(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "6", updated.Grade)

	_, err = svc.UpdateStudent(ctx, 999, req)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a student without records", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewStudentService(students, newFakeRecordStore(newFakeDriveStore()))

		created, err := svc.CreateStudent(ctx, validStudentRequest())
		require.NoError(t, err)

		require.NoError(t, svc.DeleteStudent(ctx, created.ID))
		assert.Empty(t, students.students)
	})

	t.Run("vaccination history blocks deletion", func(t *testing.T) {
		students := newFakeStudentStore()
		records := newFakeRecordStore(newFakeDriveStore())
		svc := NewStudentService(students, records)

		created, err := svc.CreateStudent(ctx, validStudentRequest())
		require.NoError(t, err)

		records.records = append(records.records, &models.VaccinationRecord{
			StudentID: created.ID, DriveID: 3, VaccineName: "MMR",
		})

		err = svc.DeleteStudent(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown student", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewStudentService(students, newFakeRecordStore(newFakeDriveStore()))

		err := svc.DeleteStudent(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}
