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
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `id, name, student_id, date_of_birth, gender, grade, section, parent_name, contact_number, address, created_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.StudentID,
		&student.DateOfBirth,
		&student.Gender,
		&student.Grade,
		&student.Section,
		&student.ParentName,
		&student.ContactNumber,
		&student.Address,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, student_id, date_of_birth, gender, grade, section, parent_name, contact_number, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		student.Name,
		student.StudentID,
		student.DateOfBirth,
		student.Gender,
		student.Grade,
		student.Section,
		student.ParentName,
		student.ContactNumber,
		student.Address,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// Update overwrites all mutable fields of a student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $2, student_id = $3, date_of_birth = $4, gender = $5, grade = $6,
		    section = $7, parent_name = $8, contact_number = $9, address = $10
		WHERE id = $1
	`

	ct, err := r.db.Exec(ctx, query,
		student.ID,
		student.Name,
		student.StudentID,
		student.DateOfBirth,
		student.Gender,
		student.Grade,
		student.Section,
		student.ParentName,
		student.ContactNumber,
		student.Address,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// GetByID retrieves a student by surrogate ID, returning nil when absent
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByStudentID retrieves a student by the school-issued identifier,
// returning nil when absent
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student by student ID: %w", err)
	}

	return student, nil
}

// List retrieves students matching the filter along with the total match count
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		idx := strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE $"+idx+" OR student_id ILIKE $"+idx+")")
	}

	if filter.Grade != "" {
		args = append(args, filter.Grade)
		conditions = append(conditions, "grade = $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + studentColumns + ` FROM students` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// DistinctGrades returns the distinct grades present in the directory
func (r *StudentRepository) DistinctGrades(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT grade FROM students ORDER BY grade`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving distinct grades: %w", err)
	}
	defer rows.Close()

	var grades []string
	for rows.Next() {
		var grade string
		if err := rows.Scan(&grade); err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}

	return grades, rows.Err()
}

// CountAll returns the total number of enrolled students
func (r *StudentRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return total, nil
}
