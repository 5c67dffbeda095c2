package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	StudentRepository           *StudentRepository
	DriveRepository             *DriveRepository
	VaccinationRecordRepository *VaccinationRecordRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		StudentRepository:           NewStudentRepository(db),
		DriveRepository:             NewDriveRepository(db),
		VaccinationRecordRepository: NewVaccinationRecordRepository(db),
	}
}
