package models

// Gender is the gender recorded for a student
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IsValid reports whether g is one of the accepted gender values
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// DriveStatus is the lifecycle state of a vaccination drive
type DriveStatus string

const (
	DriveStatusScheduled DriveStatus = "scheduled"
	DriveStatusCompleted DriveStatus = "completed"
	DriveStatusCancelled DriveStatus = "cancelled"
)

// IsValid reports whether s is a known drive status
func (s DriveStatus) IsValid() bool {
	switch s {
	case DriveStatusScheduled, DriveStatusCompleted, DriveStatusCancelled:
		return true
	}
	return false
}
