package dto

// StudentRequest represents a student create or full update
type StudentRequest struct {
	Name          string `json:"name" binding:"required" example:"Aarav Kumar"`
	StudentID     string `json:"studentId" binding:"required" example:"STU-1042"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required" example:"2014-06-21"`
	Gender        string `json:"gender" binding:"required,oneof=Male Female Other" example:"Male"`
	Grade         string `json:"grade" binding:"required" example:"5"`
	Section       string `json:"section" binding:"required" example:"B"`
	ParentName    string `json:"parentName" binding:"required" example:"Rohit Kumar"`
	ContactNumber string `json:"contactNumber" binding:"required" example:"9876543210"`
	Address       string `json:"address" example:"14 Lake Road"`
}

// ImportRowError describes why a single import row was rejected.
// Row is the 1-based line number in the uploaded file, counting the header.
type ImportRowError struct {
	Row    int               `json:"row" example:"2"`
	Record map[string]string `json:"record"`
	Errors []string          `json:"errors"`
}

// ImportResult aggregates the outcome of a bulk student import.
// BatchID ties the result to the log entries written while processing it.
type ImportResult struct {
	BatchID   string           `json:"batchId" example:"7f9c3c7e-9d7e-4a9b-8f62-6f1d2a9b9d3a"`
	Total     int              `json:"total" example:"3"`
	Succeeded int              `json:"succeeded" example:"2"`
	Failed    int              `json:"failed" example:"1"`
	Errors    []ImportRowError `json:"errors"`
}
