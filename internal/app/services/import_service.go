package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
)

// requiredImportFields must be present and non-blank on every import row
var requiredImportFields = []string{
	"name",
	"studentId",
	"dateOfBirth",
	"gender",
	"grade",
	"section",
	"parentName",
	"contactNumber",
}

// ImportService reconciles bulk student rosters against the student directory.
// Rows are validated independently, one malformed row never aborts the batch,
// and valid rows commit even when later rows fail.
type ImportService struct {
	studentRepo StudentStore
	logger      zerolog.Logger
}

// NewImportService creates a new import service instance
func NewImportService(studentRepo StudentStore, logger zerolog.Logger) *ImportService {
	return &ImportService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// validateRow checks a raw row and either returns the student it describes or
// the list of everything wrong with it. A row is all-or-nothing: any error
// rejects the whole row.
func validateRow(row map[string]string) (*models.Student, []string) {
	var rowErrors []string

	for _, field := range requiredImportFields {
		if strings.TrimSpace(row[field]) == "" {
			rowErrors = append(rowErrors, "missing required field: "+field)
		}
	}

	var dob time.Time
	if raw := strings.TrimSpace(row["dateOfBirth"]); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			rowErrors = append(rowErrors, "invalid date format for dateOfBirth")
		} else {
			dob = parsed
		}
	}

	gender := models.Gender(strings.TrimSpace(row["gender"]))
	if gender != "" && !gender.IsValid() {
		rowErrors = append(rowErrors, fmt.Sprintf(`gender must be "Male", "Female", or "Other", got %q`, string(gender)))
	}

	if len(rowErrors) > 0 {
		return nil, rowErrors
	}

	return &models.Student{
		Name:          strings.TrimSpace(row["name"]),
		StudentID:     strings.TrimSpace(row["studentId"]),
		DateOfBirth:   dob,
		Gender:        gender,
		Grade:         strings.TrimSpace(row["grade"]),
		Section:       strings.TrimSpace(row["section"]),
		ParentName:    strings.TrimSpace(row["parentName"]),
		ContactNumber: strings.TrimSpace(row["contactNumber"]),
		Address:       strings.TrimSpace(row["address"]),
	}, nil
}

// Reconcile upserts the given roster rows into the student directory, keyed
// solely on the external studentId: an existing student is fully overwritten,
// an unknown one is created. Row numbers in the result are 1-based file line
// numbers, so the first data row after the header is row 2.
func (s *ImportService) Reconcile(ctx context.Context, rows []map[string]string) (*dto.ImportResult, error) {
	result := &dto.ImportResult{
		BatchID: uuid.New().String(),
		Total:   len(rows),
		Errors:  []dto.ImportRowError{},
	}

	for i, row := range rows {
		rowNumber := i + 2 // header occupies line 1

		student, rowErrors := validateRow(row)
		if len(rowErrors) == 0 {
			if err := s.upsert(ctx, student); err != nil {
				rowErrors = append(rowErrors, err.Error())
			}
		}

		if len(rowErrors) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row:    rowNumber,
				Record: row,
				Errors: rowErrors,
			})
			continue
		}

		result.Succeeded++
	}

	s.logger.Info().
		Str("batchId", result.BatchID).
		Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Student roster reconciled")

	return result, nil
}

// upsert creates or fully overwrites the student addressed by its studentId
func (s *ImportService) upsert(ctx context.Context, student *models.Student) error {
	existing, err := s.studentRepo.GetByStudentID(ctx, student.StudentID)
	if err != nil {
		return fmt.Errorf("error looking up student %s: %w", student.StudentID, err)
	}

	if existing != nil {
		student.ID = existing.ID
		student.CreatedAt = existing.CreatedAt
		return s.studentRepo.Update(ctx, student)
	}

	return s.studentRepo.Create(ctx, student)
}
