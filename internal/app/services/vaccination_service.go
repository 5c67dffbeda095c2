package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
)

// VaccinationService records administered doses against drives. This is the
// portal's central state transition: it owns the drive's dose counter and the
// per-student uniqueness guarantees.
type VaccinationService struct {
	driveRepo   DriveStore
	studentRepo StudentStore
	recordRepo  RecordStore
}

// NewVaccinationService creates a new vaccination service instance
func NewVaccinationService(driveRepo DriveStore, studentRepo StudentStore, recordRepo RecordStore) *VaccinationService {
	return &VaccinationService{
		driveRepo:   driveRepo,
		studentRepo: studentRepo,
		recordRepo:  recordRepo,
	}
}

// RecordVaccination marks a student as vaccinated in a drive.
//
// The eligibility and duplicate checks run first so callers get precise
// errors; the store's CreateConsumingDose then re-asserts the dose and
// uniqueness invariants atomically, which closes the race between two
// concurrent recordings against the same drive or student.
// administeredAt defaults to the current time.
func (s *VaccinationService) RecordVaccination(ctx context.Context, driveID, studentID, actorID int64, administeredAt *time.Time, notes string) (*models.VaccinationRecord, error) {
	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}
	if drive == nil {
		return nil, apperrors.ErrDriveNotFound
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	if drive.DriveDate.After(time.Now()) {
		return nil, apperrors.ErrDriveNotYetOccurred
	}

	if drive.Status == models.DriveStatusCancelled {
		return nil, apperrors.NewCustomError(apperrors.ErrDriveNotScheduled,
			"cannot record vaccination against a cancelled drive")
	}

	if !drive.GradeApplies(student.Grade) {
		return nil, apperrors.ErrGradeNotEligible
	}

	inDrive, err := s.recordRepo.GetByStudentAndDrive(ctx, studentID, driveID)
	if err != nil {
		return nil, fmt.Errorf("error checking drive record: %w", err)
	}
	if inDrive != nil {
		return nil, apperrors.ErrAlreadyVaccinatedInDrive
	}

	prior, err := s.recordRepo.GetByStudentAndVaccine(ctx, studentID, drive.VaccineName)
	if err != nil {
		return nil, fmt.Errorf("error checking prior vaccination: %w", err)
	}
	if prior != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyImmunized,
			fmt.Sprintf("student has already received the %s vaccine on %s",
				drive.VaccineName, prior.AdministeredDate.Format("Jan 2, 2006"))).
			WithDetails(map[string]interface{}{
				"vaccineName":      drive.VaccineName,
				"administeredDate": prior.AdministeredDate,
			})
	}

	if drive.DosesAdministered >= drive.Doses {
		return nil, apperrors.ErrNoDosesRemaining
	}

	when := time.Now()
	if administeredAt != nil {
		when = *administeredAt
	}

	record := &models.VaccinationRecord{
		StudentID:        studentID,
		DriveID:          driveID,
		VaccineName:      drive.VaccineName,
		AdministeredDate: when,
		AdministeredBy:   actorID,
		Notes:            notes,
	}

	if err := s.recordRepo.CreateConsumingDose(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}
