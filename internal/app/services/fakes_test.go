package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/helpers"
)

// In-memory stores backing the service tests. They mirror the behavior of the
// pgx repositories, including the nil-on-missing convention and the atomic
// dose consumption contract.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, nil
}

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	for _, existing := range f.students {
		if existing.StudentID == student.StudentID {
			return apperrors.ErrStudentIDAlreadyExists
		}
	}
	f.nextID++
	student.ID = f.nextID
	student.CreatedAt = time.Now()
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	return f.students[id], nil
}

func (f *fakeStudentStore) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	for _, student := range f.students {
		if student.StudentID == studentID {
			return student, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) List(_ context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	var matched []*models.Student
	for _, student := range f.students {
		if filter.Grade != "" && student.Grade != filter.Grade {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(student.Name), needle) &&
				!strings.Contains(strings.ToLower(student.StudentID), needle) {
				continue
			}
		}
		matched = append(matched, student)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (f *fakeStudentStore) DistinctGrades(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var grades []string
	for _, student := range f.students {
		if !seen[student.Grade] {
			seen[student.Grade] = true
			grades = append(grades, student.Grade)
		}
	}
	sort.Strings(grades)
	return grades, nil
}

func (f *fakeStudentStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.students)), nil
}

type fakeDriveStore struct {
	drives map[int64]*models.Drive
	nextID int64
}

func newFakeDriveStore() *fakeDriveStore {
	return &fakeDriveStore{drives: make(map[int64]*models.Drive)}
}

func (f *fakeDriveStore) Create(_ context.Context, drive *models.Drive) error {
	f.nextID++
	drive.ID = f.nextID
	drive.CreatedAt = time.Now()
	f.drives[drive.ID] = drive
	return nil
}

func (f *fakeDriveStore) Update(_ context.Context, drive *models.Drive) error {
	if _, ok := f.drives[drive.ID]; !ok {
		return apperrors.ErrDriveNotFound
	}
	f.drives[drive.ID] = drive
	return nil
}

func (f *fakeDriveStore) UpdateStatus(_ context.Context, id int64, status models.DriveStatus) error {
	drive, ok := f.drives[id]
	if !ok {
		return apperrors.ErrDriveNotFound
	}
	drive.Status = status
	return nil
}

func (f *fakeDriveStore) Delete(_ context.Context, id int64) error {
	delete(f.drives, id)
	return nil
}

func (f *fakeDriveStore) GetByID(_ context.Context, id int64) (*models.Drive, error) {
	return f.drives[id], nil
}

func (f *fakeDriveStore) FindOnDay(_ context.Context, date time.Time, excludeID int64) (*models.Drive, error) {
	start, end := helpers.DayBounds(date)
	for _, drive := range f.drives {
		if drive.ID == excludeID || drive.Status == models.DriveStatusCancelled {
			continue
		}
		if !drive.DriveDate.Before(start) && drive.DriveDate.Before(end) {
			return drive, nil
		}
	}
	return nil, nil
}

func (f *fakeDriveStore) List(_ context.Context, filter models.DriveFilter) ([]*models.Drive, int64, error) {
	var matched []*models.Drive
	for _, drive := range f.drives {
		if filter.Status != "" && drive.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && drive.DriveDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && drive.DriveDate.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, drive)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].DriveDate.Before(matched[j].DriveDate) })
	return matched, int64(len(matched)), nil
}

func (f *fakeDriveStore) Upcoming(_ context.Context, from, to time.Time, limit int) ([]*models.Drive, error) {
	var matched []*models.Drive
	for _, drive := range f.drives {
		if drive.Status != models.DriveStatusScheduled {
			continue
		}
		if drive.DriveDate.Before(from) || drive.DriveDate.After(to) {
			continue
		}
		matched = append(matched, drive)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].DriveDate.Before(matched[j].DriveDate) })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// fakeRecordStore pairs record inserts with dose consumption on the drive
// store, the same coupling the transactional repository provides.
type fakeRecordStore struct {
	records []*models.VaccinationRecord
	drives  *fakeDriveStore
	nextID  int64
}

func newFakeRecordStore(drives *fakeDriveStore) *fakeRecordStore {
	return &fakeRecordStore{drives: drives}
}

func (f *fakeRecordStore) CreateConsumingDose(_ context.Context, record *models.VaccinationRecord) error {
	drive, ok := f.drives.drives[record.DriveID]
	if !ok {
		return apperrors.ErrDriveNotFound
	}
	if drive.DosesAdministered >= drive.Doses {
		return apperrors.ErrNoDosesRemaining
	}
	for _, existing := range f.records {
		if existing.StudentID == record.StudentID && existing.DriveID == record.DriveID {
			return apperrors.ErrAlreadyVaccinatedInDrive
		}
		if existing.StudentID == record.StudentID && existing.VaccineName == record.VaccineName {
			return apperrors.ErrAlreadyImmunized
		}
	}

	drive.DosesAdministered++
	if drive.DosesAdministered >= drive.Doses {
		drive.Status = models.DriveStatusCompleted
	}

	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Now()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRecordStore) GetByStudentAndDrive(_ context.Context, studentID, driveID int64) (*models.VaccinationRecord, error) {
	for _, record := range f.records {
		if record.StudentID == studentID && record.DriveID == driveID {
			return record, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordStore) GetByStudentAndVaccine(_ context.Context, studentID int64, vaccineName string) (*models.VaccinationRecord, error) {
	for _, record := range f.records {
		if record.StudentID == studentID && record.VaccineName == vaccineName {
			return record, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordStore) ExistsForDrive(_ context.Context, driveID int64) (bool, error) {
	for _, record := range f.records {
		if record.DriveID == driveID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecordStore) ExistsForStudent(_ context.Context, studentID int64) (bool, error) {
	for _, record := range f.records {
		if record.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecordStore) CountDistinctStudents(_ context.Context) (int64, error) {
	seen := make(map[int64]bool)
	for _, record := range f.records {
		seen[record.StudentID] = true
	}
	return int64(len(seen)), nil
}

func (f *fakeRecordStore) CountByVaccine(_ context.Context) ([]models.VaccineCount, error) {
	counts := make(map[string]int64)
	for _, record := range f.records {
		counts[record.VaccineName]++
	}
	var result []models.VaccineCount
	for name, count := range counts {
		result = append(result, models.VaccineCount{VaccineName: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].VaccineName < result[j].VaccineName })
	return result, nil
}

func (f *fakeRecordStore) Recent(_ context.Context, limit int) ([]*models.VaccinationRecord, error) {
	recent := make([]*models.VaccinationRecord, len(f.records))
	copy(recent, f.records)
	sort.Slice(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (f *fakeRecordStore) Report(_ context.Context, filter models.ReportFilter) ([]models.ReportRow, int64, error) {
	var rows []models.ReportRow
	for _, record := range f.records {
		if filter.VaccineName != "" && record.VaccineName != filter.VaccineName {
			continue
		}
		rows = append(rows, models.ReportRow{
			RecordID:         record.ID,
			VaccineName:      record.VaccineName,
			AdministeredDate: record.AdministeredDate,
			Notes:            record.Notes,
		})
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeRecordStore) DistinctVaccineNames(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, record := range f.records {
		if !seen[record.VaccineName] {
			seen[record.VaccineName] = true
			names = append(names, record.VaccineName)
		}
	}
	sort.Strings(names)
	return names, nil
}
