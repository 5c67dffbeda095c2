package dto

import "github.com/rahulk/vaxportal/internal/app/models"

// DashboardStats is the aggregate view served on the dashboard landing page
type DashboardStats struct {
	TotalStudents         int64                       `json:"totalStudents" example:"540"`
	StudentsVaccinated    int64                       `json:"studentsVaccinated" example:"312"`
	VaccinationPercentage string                      `json:"vaccinationPercentage" example:"57.78"`
	UpcomingDrives        []*models.Drive             `json:"upcomingDrives"`
	VaccineTypeCounts     []models.VaccineCount       `json:"vaccineTypeCounts"`
	RecentVaccinations    []*models.VaccinationRecord `json:"recentVaccinations"`
}

// ReportFilters lists the distinct values available for report filtering
type ReportFilters struct {
	VaccineNames []string `json:"vaccineNames"`
	Grades       []string `json:"grades"`
}

// ReportResponse is a filtered, paginated vaccination report
type ReportResponse struct {
	Records    []models.ReportRow `json:"records"`
	Pagination PaginationInfo     `json:"pagination"`
	Filters    ReportFilters      `json:"filters"`
}
