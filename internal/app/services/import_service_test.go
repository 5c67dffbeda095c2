package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/vaxportal/internal/app/models"
)

func rosterRow(studentID, name, gender, grade string) map[string]string {
	return map[string]string{
		"name":          name,
		"studentId":     studentID,
		"dateOfBirth":   "2014-06-21",
		"gender":        gender,
		"grade":         grade,
		"section":       "B",
		"parentName":    "Parent " + name,
		"contactNumber": "9876543210",
		"address":       "14 Lake Road",
	}
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("bad rows fail individually while good rows commit", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewImportService(students, zerolog.Nop())

		rows := []map[string]string{
			rosterRow("STU-1", "Asha", "Female", "5"),
			rosterRow("STU-2", "Bilal", "X", "5"),
			rosterRow("STU-3", "Chitra", "Female", "6"),
		}

		result, err := svc.Reconcile(ctx, rows)
		require.NoError(t, err)

		assert.NotEmpty(t, result.BatchID)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, 1, result.Failed)

		require.Len(t, result.Errors, 1)
		assert.Equal(t, 3, result.Errors[0].Row) // second data row, header is line 1
		require.Len(t, result.Errors[0].Errors, 1)
		assert.Contains(t, result.Errors[0].Errors[0], `gender must be "Male", "Female", or "Other"`)

		stored, _, err := students.List(ctx, models.StudentFilter{})
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("missing fields are all reported for the row", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewImportService(students, zerolog.Nop())

		row := rosterRow("STU-1", "Asha", "Female", "5")
		row["parentName"] = ""
		row["contactNumber"] = "  "

		result, err := svc.Reconcile(ctx, []map[string]string{row})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row)
		assert.Contains(t, result.Errors[0].Errors, "missing required field: parentName")
		assert.Contains(t, result.Errors[0].Errors, "missing required field: contactNumber")
	})

	t.Run("an unparseable date of birth rejects the row", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewImportService(students, zerolog.Nop())

		row := rosterRow("STU-1", "Asha", "Female", "5")
		row["dateOfBirth"] = "June 21st"

		result, err := svc.Reconcile(ctx, []map[string]string{row})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Errors[0].Errors, "invalid date format for dateOfBirth")
	})

	t.Run("resubmission overwrites by studentId", func(t *testing.T) {
		students := newFakeStudentStore()
		svc := NewImportService(students, zerolog.Nop())

		first, err := svc.Reconcile(ctx, []map[string]string{rosterRow("STU-1", "Asha", "Female", "5")})
		require.NoError(t, err)
		assert.Equal(t, 1, first.Succeeded)

		// Same student, promoted a grade
		second, err := svc.Reconcile(ctx, []map[string]string{rosterRow("STU-1", "Asha", "Female", "6")})
		require.NoError(t, err)
		assert.Equal(t, 1, second.Succeeded)

		stored, total, err := students.List(ctx, models.StudentFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "6", stored[0].Grade)
	})
}
