package models

import "time"

// Student defines an enrolled student based on the 'students' table.
// StudentID is the school-issued identifier and the natural key for bulk import.
type Student struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	Name          string    `json:"name" db:"name" example:"Aarav Kumar"`
	StudentID     string    `json:"studentId" db:"student_id" example:"STU-1042"`
	DateOfBirth   time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Gender        Gender    `json:"gender" db:"gender" example:"Male"`
	Grade         string    `json:"grade" db:"grade" example:"5"`
	Section       string    `json:"section" db:"section" example:"B"`
	ParentName    string    `json:"parentName" db:"parent_name" example:"Rohit Kumar"`
	ContactNumber string    `json:"contactNumber" db:"contact_number" example:"9876543210"`
	Address       string    `json:"address" db:"address"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// StudentFilter narrows student listings
type StudentFilter struct {
	Search string // matches name or studentId, case-insensitive substring
	Grade  string
	Offset int
	Limit  int
}
