package models

import "time"

// Drive defines a vaccination drive based on the 'vaccination_drives' table
type Drive struct {
	ID                int64       `json:"id" db:"id" example:"1"`
	VaccineName       string      `json:"vaccineName" db:"vaccine_name" example:"MMR"`
	Description       string      `json:"description" db:"description"`
	DriveDate         time.Time   `json:"driveDate" db:"drive_date"`
	Doses             int         `json:"doses" db:"doses" example:"100"`
	DosesAdministered int         `json:"dosesAdministered" db:"doses_administered" example:"0"`
	ApplicableGrades  []string    `json:"applicableGrades" db:"applicable_grades" example:"5,6,7"`
	Status            DriveStatus `json:"status" db:"status" example:"scheduled"`
	CreatedBy         int64       `json:"createdBy" db:"created_by" example:"1"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Creator *User `json:"creator,omitempty"`
}

// DosesRemaining returns how many doses are still available
func (d *Drive) DosesRemaining() int {
	remaining := d.Doses - d.DosesAdministered
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GradeApplies reports whether grade is in the drive's applicable grade set
func (d *Drive) GradeApplies(grade string) bool {
	for _, g := range d.ApplicableGrades {
		if g == grade {
			return true
		}
	}
	return false
}

// DriveFilter narrows drive listings
type DriveFilter struct {
	Status    DriveStatus
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}
