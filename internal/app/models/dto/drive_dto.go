package dto

// CreateDriveRequest represents a new vaccination drive definition
type CreateDriveRequest struct {
	VaccineName      string   `json:"vaccineName" binding:"required" example:"MMR"`
	Description      string   `json:"description" example:"Annual MMR drive"`
	DriveDate        string   `json:"driveDate" binding:"required" example:"2025-06-15"`
	Doses            int      `json:"doses" binding:"required,min=1" example:"100"`
	ApplicableGrades []string `json:"applicableGrades" binding:"required,min=1" example:"5,6,7"`
}

// UpdateDriveRequest is a partial drive update; nil fields are left unchanged.
// Status and dosesAdministered are absent on purpose; they only move
// through the vaccination and cancellation flows.
type UpdateDriveRequest struct {
	VaccineName      *string   `json:"vaccineName,omitempty" example:"MMR"`
	Description      *string   `json:"description,omitempty"`
	DriveDate        *string   `json:"driveDate,omitempty" example:"2025-06-22"`
	Doses            *int      `json:"doses,omitempty" example:"120"`
	ApplicableGrades *[]string `json:"applicableGrades,omitempty"`
}

// VaccinateRequest carries the optional fields of a vaccination recording
type VaccinateRequest struct {
	AdministeredDate *string `json:"administeredDate,omitempty" example:"2025-06-15T10:30:00Z"`
	Notes            string  `json:"notes" example:"No adverse reaction"`
}
