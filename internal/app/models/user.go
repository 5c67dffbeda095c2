package models

import "time"

// User defines a portal coordinator account based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Jane Smith"`
	Email        string    `json:"email" db:"email" example:"coordinator@school.edu"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
