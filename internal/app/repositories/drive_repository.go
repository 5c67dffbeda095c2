package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/helpers"
)

// DriveRepository handles database operations for vaccination drives
type DriveRepository struct {
	db *pgxpool.Pool
}

// NewDriveRepository creates a new drive repository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{
		db: db,
	}
}

const driveColumns = `id, vaccine_name, description, drive_date, doses, doses_administered, applicable_grades, status, created_by, created_at`

func scanDrive(row pgx.Row) (*models.Drive, error) {
	var drive models.Drive
	err := row.Scan(
		&drive.ID,
		&drive.VaccineName,
		&drive.Description,
		&drive.DriveDate,
		&drive.Doses,
		&drive.DosesAdministered,
		&drive.ApplicableGrades,
		&drive.Status,
		&drive.CreatedBy,
		&drive.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &drive, nil
}

// Create inserts a new drive
func (r *DriveRepository) Create(ctx context.Context, drive *models.Drive) error {
	query := `
		INSERT INTO vaccination_drives (vaccine_name, description, drive_date, doses, applicable_grades, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, doses_administered, created_at
	`

	err := r.db.QueryRow(ctx, query,
		drive.VaccineName,
		drive.Description,
		drive.DriveDate,
		drive.Doses,
		drive.ApplicableGrades,
		drive.Status,
		drive.CreatedBy,
	).Scan(&drive.ID, &drive.DosesAdministered, &drive.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating drive: %w", err)
	}

	return nil
}

// Update overwrites a drive's schedulable fields. The administered counter and
// status never move through this path.
func (r *DriveRepository) Update(ctx context.Context, drive *models.Drive) error {
	query := `
		UPDATE vaccination_drives
		SET vaccine_name = $2, description = $3, drive_date = $4, doses = $5, applicable_grades = $6
		WHERE id = $1
	`

	ct, err := r.db.Exec(ctx, query,
		drive.ID,
		drive.VaccineName,
		drive.Description,
		drive.DriveDate,
		drive.Doses,
		drive.ApplicableGrades,
	)
	if err != nil {
		return fmt.Errorf("error updating drive: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// UpdateStatus moves a drive to the given lifecycle status
func (r *DriveRepository) UpdateStatus(ctx context.Context, id int64, status models.DriveStatus) error {
	ct, err := r.db.Exec(ctx, `UPDATE vaccination_drives SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating drive status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// Delete removes a drive by ID
func (r *DriveRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM vaccination_drives WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting drive: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// GetByID retrieves a drive by ID, returning nil when absent
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.Drive, error) {
	query := `SELECT ` + driveColumns + ` FROM vaccination_drives WHERE id = $1`

	drive, err := scanDrive(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}

	return drive, nil
}

// FindOnDay looks for a non-cancelled drive scheduled on the calendar day
// containing date, excluding excludeID (0 excludes nothing). Returns nil
// when the day is free.
func (r *DriveRepository) FindOnDay(ctx context.Context, date time.Time, excludeID int64) (*models.Drive, error) {
	dayStart, dayEnd := helpers.DayBounds(date)

	query := `
		SELECT ` + driveColumns + `
		FROM vaccination_drives
		WHERE drive_date >= $1 AND drive_date < $2
		  AND status <> 'cancelled'
		  AND id <> $3
		LIMIT 1
	`

	drive, err := scanDrive(r.db.QueryRow(ctx, query, dayStart, dayEnd, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking drive date: %w", err)
	}

	return drive, nil
}

// List retrieves drives matching the filter along with the total match count,
// ordered by drive date ascending
func (r *DriveRepository) List(ctx context.Context, filter models.DriveFilter) ([]*models.Drive, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, "drive_date >= $"+strconv.Itoa(len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, "drive_date <= $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vaccination_drives`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting drives: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + driveColumns + ` FROM vaccination_drives` + where +
		` ORDER BY drive_date ASC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing drives: %w", err)
	}
	defer rows.Close()

	var drives []*models.Drive
	for rows.Next() {
		drive, err := scanDrive(rows)
		if err != nil {
			return nil, 0, err
		}
		drives = append(drives, drive)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return drives, total, nil
}

// Upcoming retrieves scheduled drives with dates inside [from, to], soonest first
func (r *DriveRepository) Upcoming(ctx context.Context, from, to time.Time, limit int) ([]*models.Drive, error) {
	query := `
		SELECT ` + driveColumns + `
		FROM vaccination_drives
		WHERE drive_date >= $1 AND drive_date <= $2 AND status = 'scheduled'
		ORDER BY drive_date ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving upcoming drives: %w", err)
	}
	defer rows.Close()

	var drives []*models.Drive
	for rows.Next() {
		drive, err := scanDrive(rows)
		if err != nil {
			return nil, err
		}
		drives = append(drives, drive)
	}

	return drives, rows.Err()
}
