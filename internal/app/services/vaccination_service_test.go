package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
)

type vaccinationFixture struct {
	svc      *VaccinationService
	students *fakeStudentStore
	drives   *fakeDriveStore
	records  *fakeRecordStore
}

func newVaccinationFixture() *vaccinationFixture {
	students := newFakeStudentStore()
	drives := newFakeDriveStore()
	records := newFakeRecordStore(drives)
	return &vaccinationFixture{
		svc:      NewVaccinationService(drives, students, records),
		students: students,
		drives:   drives,
		records:  records,
	}
}

func (f *vaccinationFixture) addStudent(t *testing.T, name, grade string) *models.Student {
	t.Helper()
	student := &models.Student{
		Name:      name,
		StudentID: "STU-" + name,
		Gender:    models.GenderFemale,
		Grade:     grade,
		Section:   "A",
	}
	require.NoError(t, f.students.Create(context.Background(), student))
	return student
}

func (f *vaccinationFixture) addDrive(t *testing.T, vaccine string, daysFromNow, doses int, grades ...string) *models.Drive {
	t.Helper()
	drive := &models.Drive{
		VaccineName:      vaccine,
		DriveDate:        time.Now().AddDate(0, 0, daysFromNow),
		Doses:            doses,
		ApplicableGrades: grades,
		Status:           models.DriveStatusScheduled,
		CreatedBy:        1,
	}
	require.NoError(t, f.drives.Create(context.Background(), drive))
	return drive
}

func TestRecordVaccination(t *testing.T) {
	ctx := context.Background()

	t.Run("records a dose and consumes inventory", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		drive := f.addDrive(t, "MMR", -1, 10, "5", "6")

		record, err := f.svc.RecordVaccination(ctx, drive.ID, student.ID, 1, nil, "no reaction")
		require.NoError(t, err)

		assert.Equal(t, "MMR", record.VaccineName)
		assert.Equal(t, student.ID, record.StudentID)
		assert.Equal(t, int64(1), record.AdministeredBy)
		assert.Equal(t, "no reaction", record.Notes)
		assert.WithinDuration(t, time.Now(), record.AdministeredDate, time.Minute)
		assert.Equal(t, 1, f.drives.drives[drive.ID].DosesAdministered)
		assert.Equal(t, models.DriveStatusScheduled, f.drives.drives[drive.ID].Status)
	})

	t.Run("exhausting the last dose completes the drive", func(t *testing.T) {
		f := newVaccinationFixture()
		first := f.addStudent(t, "Asha", "5")
		second := f.addStudent(t, "Bilal", "5")
		drive := f.addDrive(t, "MMR", -1, 1, "5")

		_, err := f.svc.RecordVaccination(ctx, drive.ID, first.ID, 1, nil, "")
		require.NoError(t, err)
		assert.Equal(t, models.DriveStatusCompleted, f.drives.drives[drive.ID].Status)

		_, err = f.svc.RecordVaccination(ctx, drive.ID, second.ID, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrNoDosesRemaining)
	})

	t.Run("a student is vaccinated at most once per drive", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		drive := f.addDrive(t, "MMR", -1, 10, "5")

		_, err := f.svc.RecordVaccination(ctx, drive.ID, student.ID, 1, nil, "")
		require.NoError(t, err)

		_, err = f.svc.RecordVaccination(ctx, drive.ID, student.ID, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyVaccinatedInDrive)
		assert.Equal(t, 1, f.drives.drives[drive.ID].DosesAdministered)
	})

	t.Run("a prior dose of the same vaccine blocks a second drive", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		firstDrive := f.addDrive(t, "Polio", -30, 10, "5")
		secondDrive := f.addDrive(t, "Polio", -1, 10, "5")

		administered := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
		_, err := f.svc.RecordVaccination(ctx, firstDrive.ID, student.ID, 1, &administered, "")
		require.NoError(t, err)

		_, err = f.svc.RecordVaccination(ctx, secondDrive.ID, student.ID, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyImmunized)
		assert.ErrorContains(t, err, "Polio")
		assert.ErrorContains(t, err, "Mar 10, 2025")

		details := apperrors.DetailsOf(err)
		require.NotNil(t, details)
		assert.Equal(t, "Polio", details["vaccineName"])
	})

	t.Run("different vaccines are independent", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		polio := f.addDrive(t, "Polio", -30, 10, "5")
		mmr := f.addDrive(t, "MMR", -1, 10, "5")

		_, err := f.svc.RecordVaccination(ctx, polio.ID, student.ID, 1, nil, "")
		require.NoError(t, err)

		_, err = f.svc.RecordVaccination(ctx, mmr.ID, student.ID, 1, nil, "")
		assert.NoError(t, err)
	})

	t.Run("grade eligibility is enforced", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "8")
		drive := f.addDrive(t, "MMR", -1, 10, "5", "6")

		_, err := f.svc.RecordVaccination(ctx, drive.ID, student.ID, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrGradeNotEligible)
	})

	t.Run("future drives accept no recordings", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		drive := f.addDrive(t, "MMR", 20, 10, "5")

		_, err := f.svc.RecordVaccination(ctx, drive.ID, student.ID, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrDriveNotYetOccurred)
	})

	t.Run("cancelled drives accept no recordings", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		drive := f.addDrive(t, "MMR", -1, 10, "5")
		f.drives.drives[drive.ID].Status = models.DriveStatusCancelled

		_, err := f.svc.RecordVaccination(ctx, drive.ID, student.ID, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrDriveNotScheduled)
	})

	t.Run("unknown drive and student", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		drive := f.addDrive(t, "MMR", -1, 10, "5")

		_, err := f.svc.RecordVaccination(ctx, 999, student.ID, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)

		_, err = f.svc.RecordVaccination(ctx, drive.ID, 999, 1, nil, "")
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("an explicit administration time is kept", func(t *testing.T) {
		f := newVaccinationFixture()
		student := f.addStudent(t, "Asha", "5")
		drive := f.addDrive(t, "MMR", -2, 10, "5")

		administered := time.Now().AddDate(0, 0, -2)
		record, err := f.svc.RecordVaccination(ctx, drive.ID, student.ID, 1, &administered, "")
		require.NoError(t, err)
		assert.True(t, record.AdministeredDate.Equal(administered))
	})
}
