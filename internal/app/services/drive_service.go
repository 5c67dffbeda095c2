package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
)

// DriveService handles vaccination drive scheduling
type DriveService struct {
	driveRepo       DriveStore
	recordRepo      RecordStore
	minLeadTimeDays int
}

// NewDriveService creates a new drive service instance.
// minLeadTimeDays is the minimum advance notice required between scheduling a
// drive and its date.
func NewDriveService(driveRepo DriveStore, recordRepo RecordStore, minLeadTimeDays int) *DriveService {
	return &DriveService{
		driveRepo:       driveRepo,
		recordRepo:      recordRepo,
		minLeadTimeDays: minLeadTimeDays,
	}
}

// validateSchedulable enforces the lead-time and one-drive-per-day rules for a
// new or changed drive date. excludeID ignores the drive's own row during the
// conflict check (0 for creations).
func (s *DriveService) validateSchedulable(ctx context.Context, driveDate time.Time, excludeID int64) error {
	minimumDate := time.Now().AddDate(0, 0, s.minLeadTimeDays)
	if driveDate.Before(minimumDate) {
		return apperrors.NewCustomError(apperrors.ErrLeadTimeViolation,
			fmt.Sprintf("vaccination drives must be scheduled at least %d days in advance", s.minLeadTimeDays))
	}

	conflict, err := s.driveRepo.FindOnDay(ctx, driveDate, excludeID)
	if err != nil {
		return fmt.Errorf("error checking drive date: %w", err)
	}
	if conflict != nil {
		return apperrors.ErrSchedulingConflict
	}

	return nil
}

// trimGrades normalizes an applicable-grade set, dropping blank entries
func trimGrades(grades []string) []string {
	trimmed := make([]string, 0, len(grades))
	for _, g := range grades {
		if g = strings.TrimSpace(g); g != "" {
			trimmed = append(trimmed, g)
		}
	}
	return trimmed
}

// CreateDrive validates and persists a new drive definition
func (s *DriveService) CreateDrive(ctx context.Context, req dto.CreateDriveRequest, actorID int64) (*models.Drive, error) {
	vaccineName := strings.TrimSpace(req.VaccineName)
	if vaccineName == "" {
		return nil, apperrors.NewValidationError("vaccine name cannot be blank")
	}

	if req.Doses < 1 {
		return nil, apperrors.NewValidationError("number of doses must be at least 1")
	}

	grades := trimGrades(req.ApplicableGrades)
	if len(grades) == 0 {
		return nil, apperrors.NewValidationError("at least one applicable grade is required")
	}

	driveDate, err := parseDate(req.DriveDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date format for driveDate")
	}

	if err := s.validateSchedulable(ctx, driveDate, 0); err != nil {
		return nil, err
	}

	drive := &models.Drive{
		VaccineName:      vaccineName,
		Description:      strings.TrimSpace(req.Description),
		DriveDate:        driveDate,
		Doses:            req.Doses,
		ApplicableGrades: grades,
		Status:           models.DriveStatusScheduled,
		CreatedBy:        actorID,
	}

	if err := s.driveRepo.Create(ctx, drive); err != nil {
		return nil, err
	}

	return drive, nil
}

// UpdateDrive applies a partial update to a future drive. Date changes re-run
// the lead-time and conflict checks; the administered counter and status are
// not reachable through this path.
func (s *DriveService) UpdateDrive(ctx context.Context, id int64, patch dto.UpdateDriveRequest, actorID int64) (*models.Drive, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}
	if drive == nil {
		return nil, apperrors.ErrDriveNotFound
	}

	if drive.DriveDate.Before(time.Now()) {
		return nil, apperrors.ErrDriveOccurred
	}

	if patch.DriveDate != nil {
		newDate, err := parseDate(*patch.DriveDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date format for driveDate")
		}

		if err := s.validateSchedulable(ctx, newDate, drive.ID); err != nil {
			return nil, err
		}

		drive.DriveDate = newDate
	}

	if patch.VaccineName != nil {
		name := strings.TrimSpace(*patch.VaccineName)
		if name == "" {
			return nil, apperrors.NewValidationError("vaccine name cannot be blank")
		}
		drive.VaccineName = name
	}

	if patch.Description != nil {
		drive.Description = strings.TrimSpace(*patch.Description)
	}

	if patch.Doses != nil {
		if *patch.Doses < 1 {
			return nil, apperrors.NewValidationError("number of doses must be at least 1")
		}
		if *patch.Doses < drive.DosesAdministered {
			return nil, apperrors.NewValidationError("doses cannot be reduced below the administered count")
		}
		drive.Doses = *patch.Doses
	}

	if patch.ApplicableGrades != nil {
		grades := trimGrades(*patch.ApplicableGrades)
		if len(grades) == 0 {
			return nil, apperrors.NewValidationError("at least one applicable grade is required")
		}
		drive.ApplicableGrades = grades
	}

	if err := s.driveRepo.Update(ctx, drive); err != nil {
		return nil, err
	}

	return drive, nil
}

// DeleteDrive removes a future drive. Only the creator may delete, and a drive
// that has produced vaccination records is kept as history.
func (s *DriveService) DeleteDrive(ctx context.Context, id, actorID int64) error {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error retrieving drive: %w", err)
	}
	if drive == nil {
		return apperrors.ErrDriveNotFound
	}

	if drive.DriveDate.Before(time.Now()) {
		return apperrors.ErrDriveOccurred
	}

	if drive.CreatedBy != actorID {
		return apperrors.ErrNotDriveCreator
	}

	hasRecords, err := s.recordRepo.ExistsForDrive(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking drive records: %w", err)
	}
	if hasRecords {
		return apperrors.ErrDriveHasRecords
	}

	return s.driveRepo.Delete(ctx, id)
}

// CancelDrive moves a scheduled future drive to cancelled. Cancelled drives
// release their calendar day for other drives and accept no vaccinations.
func (s *DriveService) CancelDrive(ctx context.Context, id, actorID int64) (*models.Drive, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}
	if drive == nil {
		return nil, apperrors.ErrDriveNotFound
	}

	if drive.DriveDate.Before(time.Now()) {
		return nil, apperrors.ErrDriveOccurred
	}

	if drive.Status != models.DriveStatusScheduled {
		return nil, apperrors.ErrDriveNotScheduled
	}

	if err := s.driveRepo.UpdateStatus(ctx, id, models.DriveStatusCancelled); err != nil {
		return nil, err
	}

	drive.Status = models.DriveStatusCancelled
	return drive, nil
}

// GetDriveByID retrieves a drive by ID
func (s *DriveService) GetDriveByID(ctx context.Context, id int64) (*models.Drive, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}
	if drive == nil {
		return nil, apperrors.ErrDriveNotFound
	}
	return drive, nil
}

// ListDrives retrieves drives matching the filter with the total count
func (s *DriveService) ListDrives(ctx context.Context, filter models.DriveFilter) ([]*models.Drive, int64, error) {
	return s.driveRepo.List(ctx, filter)
}
