package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/db"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/dberrors"
)

// VaccinationRecordRepository handles database operations for vaccination records
type VaccinationRecordRepository struct {
	db *pgxpool.Pool
}

// NewVaccinationRecordRepository creates a new vaccination record repository
func NewVaccinationRecordRepository(db *pgxpool.Pool) *VaccinationRecordRepository {
	return &VaccinationRecordRepository{
		db: db,
	}
}

const recordColumns = `id, student_id, drive_id, vaccine_name, administered_date, administered_by, notes, created_at`

func scanRecord(row pgx.Row) (*models.VaccinationRecord, error) {
	var record models.VaccinationRecord
	err := row.Scan(
		&record.ID,
		&record.StudentID,
		&record.DriveID,
		&record.VaccineName,
		&record.AdministeredDate,
		&record.AdministeredBy,
		&record.Notes,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateConsumingDose atomically consumes one dose from the record's drive and
// inserts the record. The conditional dose update and the insert share one
// transaction, so two concurrent calls against the same drive cannot both take
// the final dose: the second one's UPDATE matches no row and the transaction
// fails with ErrNoDosesRemaining. The drive flips to completed in the same
// statement when its last dose goes. The unique indexes on (student, drive)
// and (student, vaccine) backstop the service-level duplicate checks.
func (r *VaccinationRecordRepository) CreateConsumingDose(ctx context.Context, record *models.VaccinationRecord) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		consume := `
			UPDATE vaccination_drives
			SET doses_administered = doses_administered + 1,
			    status = CASE WHEN doses_administered + 1 >= doses THEN 'completed' ELSE status END
			WHERE id = $1 AND doses_administered < doses
		`

		ct, err := tx.Exec(ctx, consume, record.DriveID)
		if err != nil {
			return fmt.Errorf("error consuming dose: %w", err)
		}

		if ct.RowsAffected() == 0 {
			return apperrors.ErrNoDosesRemaining
		}

		insert := `
			INSERT INTO vaccination_records (student_id, drive_id, vaccine_name, administered_date, administered_by, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`

		err = tx.QueryRow(ctx, insert,
			record.StudentID,
			record.DriveID,
			record.VaccineName,
			record.AdministeredDate,
			record.AdministeredBy,
			record.Notes,
		).Scan(&record.ID, &record.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "vaccination_records_student_drive_key") {
				return apperrors.ErrAlreadyVaccinatedInDrive
			}
			if dberrors.IsDuplicateConstraintError(err, "vaccination_records_student_vaccine_key") {
				return apperrors.ErrAlreadyImmunized
			}
			return fmt.Errorf("error creating vaccination record: %w", err)
		}

		return nil
	})
}

// GetByStudentAndDrive retrieves the record for a (student, drive) pair,
// returning nil when none exists
func (r *VaccinationRecordRepository) GetByStudentAndDrive(ctx context.Context, studentID, driveID int64) (*models.VaccinationRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM vaccination_records WHERE student_id = $1 AND drive_id = $2`

	record, err := scanRecord(r.db.QueryRow(ctx, query, studentID, driveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving record by student and drive: %w", err)
	}

	return record, nil
}

// GetByStudentAndVaccine retrieves the record for a (student, vaccine name)
// pair across all drives, returning nil when none exists
func (r *VaccinationRecordRepository) GetByStudentAndVaccine(ctx context.Context, studentID int64, vaccineName string) (*models.VaccinationRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM vaccination_records WHERE student_id = $1 AND vaccine_name = $2`

	record, err := scanRecord(r.db.QueryRow(ctx, query, studentID, vaccineName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving record by student and vaccine: %w", err)
	}

	return record, nil
}

// ExistsForDrive reports whether any record references the drive
func (r *VaccinationRecordRepository) ExistsForDrive(ctx context.Context, driveID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vaccination_records WHERE drive_id = $1)`, driveID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking records for drive: %w", err)
	}
	return exists, nil
}

// ExistsForStudent reports whether any record references the student
func (r *VaccinationRecordRepository) ExistsForStudent(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vaccination_records WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking records for student: %w", err)
	}
	return exists, nil
}

// CountDistinctStudents returns the number of students holding at least one record
func (r *VaccinationRecordRepository) CountDistinctStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT student_id) FROM vaccination_records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting vaccinated students: %w", err)
	}
	return count, nil
}

// CountByVaccine returns record counts grouped by vaccine name, largest first
func (r *VaccinationRecordRepository) CountByVaccine(ctx context.Context) ([]models.VaccineCount, error) {
	query := `
		SELECT vaccine_name, COUNT(*)
		FROM vaccination_records
		GROUP BY vaccine_name
		ORDER BY COUNT(*) DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error counting records by vaccine: %w", err)
	}
	defer rows.Close()

	var counts []models.VaccineCount
	for rows.Next() {
		var vc models.VaccineCount
		if err := rows.Scan(&vc.VaccineName, &vc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, vc)
	}

	return counts, rows.Err()
}

// Recent retrieves the most recently administered records with their student
// and drive relations populated
func (r *VaccinationRecordRepository) Recent(ctx context.Context, limit int) ([]*models.VaccinationRecord, error) {
	query := `
		SELECT r.id, r.student_id, r.drive_id, r.vaccine_name, r.administered_date, r.administered_by, r.notes, r.created_at,
		       s.name, s.student_id, s.grade,
		       d.vaccine_name, d.drive_date
		FROM vaccination_records r
		JOIN students s ON s.id = r.student_id
		JOIN vaccination_drives d ON d.id = r.drive_id
		ORDER BY r.administered_date DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving recent records: %w", err)
	}
	defer rows.Close()

	var records []*models.VaccinationRecord
	for rows.Next() {
		var record models.VaccinationRecord
		var student models.Student
		var drive models.Drive
		err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.DriveID,
			&record.VaccineName,
			&record.AdministeredDate,
			&record.AdministeredBy,
			&record.Notes,
			&record.CreatedAt,
			&student.Name,
			&student.StudentID,
			&student.Grade,
			&drive.VaccineName,
			&drive.DriveDate,
		)
		if err != nil {
			return nil, err
		}
		student.ID = record.StudentID
		drive.ID = record.DriveID
		record.Student = &student
		record.Drive = &drive
		records = append(records, &record)
	}

	return records, rows.Err()
}

// Report retrieves flattened report rows matching the filter along with the
// total match count, newest administration first
func (r *VaccinationRecordRepository) Report(ctx context.Context, filter models.ReportFilter) ([]models.ReportRow, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.VaccineName != "" {
		args = append(args, filter.VaccineName)
		conditions = append(conditions, "r.vaccine_name = $"+strconv.Itoa(len(args)))
	}

	if filter.Grade != "" {
		args = append(args, filter.Grade)
		conditions = append(conditions, "s.grade = $"+strconv.Itoa(len(args)))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, "r.administered_date >= $"+strconv.Itoa(len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, "r.administered_date <= $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	base := `
		FROM vaccination_records r
		JOIN students s ON s.id = r.student_id
		JOIN vaccination_drives d ON d.id = r.drive_id
	` + where

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting report rows: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT r.id, s.name, s.student_id, s.grade, s.section, r.vaccine_name, r.administered_date, d.drive_date, r.notes
	` + base + `
		ORDER BY r.administered_date DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving report rows: %w", err)
	}
	defer rows.Close()

	var report []models.ReportRow
	for rows.Next() {
		var row models.ReportRow
		err := rows.Scan(
			&row.RecordID,
			&row.StudentName,
			&row.StudentID,
			&row.Grade,
			&row.Section,
			&row.VaccineName,
			&row.AdministeredDate,
			&row.DriveDate,
			&row.Notes,
		)
		if err != nil {
			return nil, 0, err
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return report, total, nil
}

// DistinctVaccineNames returns the distinct vaccine names across all records
func (r *VaccinationRecordRepository) DistinctVaccineNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT vaccine_name FROM vaccination_records ORDER BY vaccine_name`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving distinct vaccine names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
