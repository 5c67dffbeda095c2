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

// dateLayouts are the accepted input formats for dates of birth, both from the
// API and from bulk import files
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	time.RFC3339,
}

// parseDate parses a date string against the accepted layouts
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// StudentService handles student directory operations
type StudentService struct {
	studentRepo StudentStore
	recordRepo  RecordStore
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore, recordRepo RecordStore) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		recordRepo:  recordRepo,
	}
}

// studentFromRequest validates and converts an API request into a student model
func studentFromRequest(req dto.StudentRequest) (*models.Student, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date format for dateOfBirth")
	}

	gender := models.Gender(strings.TrimSpace(req.Gender))
	if !gender.IsValid() {
		return nil, apperrors.NewValidationError(`gender must be "Male", "Female", or "Other"`)
	}

	student := &models.Student{
		Name:          strings.TrimSpace(req.Name),
		StudentID:     strings.TrimSpace(req.StudentID),
		DateOfBirth:   dob,
		Gender:        gender,
		Grade:         strings.TrimSpace(req.Grade),
		Section:       strings.TrimSpace(req.Section),
		ParentName:    strings.TrimSpace(req.ParentName),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Address:       strings.TrimSpace(req.Address),
	}

	if student.Name == "" || student.StudentID == "" {
		return nil, apperrors.NewValidationError("name and studentId cannot be blank")
	}

	return student, nil
}

// CreateStudent registers a new student in the directory
func (s *StudentService) CreateStudent(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// UpdateStudent overwrites a student's fields
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.StudentRequest) (*models.Student, error) {
	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if existing == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.ID = existing.ID
	student.CreatedAt = existing.CreatedAt

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes a student. Students holding vaccination records cannot
// be removed, the records are a permanent history.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return apperrors.ErrStudentNotFound
	}

	hasRecords, err := s.recordRepo.ExistsForStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking student records: %w", err)
	}
	if hasRecords {
		return apperrors.NewConflictError("student has vaccination records and cannot be deleted")
	}

	return s.studentRepo.Delete(ctx, id)
}

// GetStudentByID retrieves a student by surrogate ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// ListStudents retrieves students matching the filter with the total count
func (s *StudentService) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	return s.studentRepo.List(ctx, filter)
}
