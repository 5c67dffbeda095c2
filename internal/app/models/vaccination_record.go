package models

import "time"

// VaccinationRecord defines proof of a single administered dose based on the
// 'vaccination_records' table. VaccineName is copied from the drive at the
// moment of administration so the record stays meaningful if the drive is
// renamed later. Records are never updated or deleted.
type VaccinationRecord struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	StudentID        int64     `json:"studentId" db:"student_id" example:"12"`
	DriveID          int64     `json:"driveId" db:"drive_id" example:"3"`
	VaccineName      string    `json:"vaccineName" db:"vaccine_name" example:"MMR"`
	AdministeredDate time.Time `json:"administeredDate" db:"administered_date"`
	AdministeredBy   int64     `json:"administeredBy" db:"administered_by" example:"1"`
	Notes            string    `json:"notes" db:"notes"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Drive   *Drive   `json:"drive,omitempty"`
}

// ReportFilter narrows vaccination report queries
type ReportFilter struct {
	VaccineName string
	Grade       string
	StartDate   *time.Time
	EndDate     *time.Time
	Offset      int
	Limit       int
}

// ReportRow is a flattened record joined with its student and drive,
// as consumed by the reporting layer
type ReportRow struct {
	RecordID         int64     `json:"recordId"`
	StudentName      string    `json:"studentName"`
	StudentID        string    `json:"studentId"`
	Grade            string    `json:"grade"`
	Section          string    `json:"section"`
	VaccineName      string    `json:"vaccineName"`
	AdministeredDate time.Time `json:"administeredDate"`
	DriveDate        time.Time `json:"driveDate"`
	Notes            string    `json:"notes"`
}

// VaccineCount is an aggregate of records per vaccine name
type VaccineCount struct {
	VaccineName string `json:"vaccineName"`
	Count       int64  `json:"count"`
}
