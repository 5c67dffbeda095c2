package services

import (
	"context"
	"time"

	"github.com/rahulk/vaxportal/internal/app/models"
)

// The services depend on narrow store interfaces rather than the concrete pgx
// repositories so the drive and vaccination engines can be exercised against
// in-memory fakes in tests.

// UserStore is the persistence surface consumed by the auth service
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// StudentStore is the persistence surface of the student directory
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error)
	DistinctGrades(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
}

// DriveStore is the persistence surface consumed by the drive scheduler
type DriveStore interface {
	Create(ctx context.Context, drive *models.Drive) error
	Update(ctx context.Context, drive *models.Drive) error
	UpdateStatus(ctx context.Context, id int64, status models.DriveStatus) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Drive, error)
	FindOnDay(ctx context.Context, date time.Time, excludeID int64) (*models.Drive, error)
	List(ctx context.Context, filter models.DriveFilter) ([]*models.Drive, int64, error)
	Upcoming(ctx context.Context, from, to time.Time, limit int) ([]*models.Drive, error)
}

// RecordStore is the persistence surface for vaccination records.
// CreateConsumingDose must atomically pair the record insert with a
// conditional dose decrement on the drive.
type RecordStore interface {
	CreateConsumingDose(ctx context.Context, record *models.VaccinationRecord) error
	GetByStudentAndDrive(ctx context.Context, studentID, driveID int64) (*models.VaccinationRecord, error)
	GetByStudentAndVaccine(ctx context.Context, studentID int64, vaccineName string) (*models.VaccinationRecord, error)
	ExistsForDrive(ctx context.Context, driveID int64) (bool, error)
	ExistsForStudent(ctx context.Context, studentID int64) (bool, error)
	CountDistinctStudents(ctx context.Context) (int64, error)
	CountByVaccine(ctx context.Context) ([]models.VaccineCount, error)
	Recent(ctx context.Context, limit int) ([]*models.VaccinationRecord, error)
	Report(ctx context.Context, filter models.ReportFilter) ([]models.ReportRow, int64, error)
	DistinctVaccineNames(ctx context.Context) ([]string, error)
}
