package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
)

// dashboardHighlightCount bounds the upcoming-drive and recent-vaccination lists
const dashboardHighlightCount = 5

// DashboardService aggregates portal state for the reporting layer
type DashboardService struct {
	studentRepo        StudentStore
	driveRepo          DriveStore
	recordRepo         RecordStore
	upcomingWindowDays int
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(studentRepo StudentStore, driveRepo DriveStore, recordRepo RecordStore, upcomingWindowDays int) *DashboardService {
	return &DashboardService{
		studentRepo:        studentRepo,
		driveRepo:          driveRepo,
		recordRepo:         recordRepo,
		upcomingWindowDays: upcomingWindowDays,
	}
}

// GetStats assembles the dashboard landing-page aggregates
func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStats, error) {
	totalStudents, err := s.studentRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	vaccinated, err := s.recordRepo.CountDistinctStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting vaccinated students: %w", err)
	}

	percentage := 0.0
	if totalStudents > 0 {
		percentage = float64(vaccinated) / float64(totalStudents) * 100
	}

	now := time.Now()
	upcoming, err := s.driveRepo.Upcoming(ctx, now, now.AddDate(0, 0, s.upcomingWindowDays), dashboardHighlightCount)
	if err != nil {
		return nil, fmt.Errorf("error retrieving upcoming drives: %w", err)
	}

	vaccineCounts, err := s.recordRepo.CountByVaccine(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting records by vaccine: %w", err)
	}

	recent, err := s.recordRepo.Recent(ctx, dashboardHighlightCount)
	if err != nil {
		return nil, fmt.Errorf("error retrieving recent vaccinations: %w", err)
	}

	if upcoming == nil {
		upcoming = []*models.Drive{}
	}
	if vaccineCounts == nil {
		vaccineCounts = []models.VaccineCount{}
	}
	if recent == nil {
		recent = []*models.VaccinationRecord{}
	}

	return &dto.DashboardStats{
		TotalStudents:         totalStudents,
		StudentsVaccinated:    vaccinated,
		VaccinationPercentage: strconv.FormatFloat(percentage, 'f', 2, 64),
		UpcomingDrives:        upcoming,
		VaccineTypeCounts:     vaccineCounts,
		RecentVaccinations:    recent,
	}, nil
}

// GetReport assembles a filtered vaccination report page together with the
// distinct values available for further filtering
func (s *DashboardService) GetReport(ctx context.Context, filter models.ReportFilter) ([]models.ReportRow, int64, *dto.ReportFilters, error) {
	rows, total, err := s.recordRepo.Report(ctx, filter)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("error building report: %w", err)
	}
	if rows == nil {
		rows = []models.ReportRow{}
	}

	vaccineNames, err := s.recordRepo.DistinctVaccineNames(ctx)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("error retrieving vaccine names: %w", err)
	}

	grades, err := s.studentRepo.DistinctGrades(ctx)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("error retrieving grades: %w", err)
	}

	if vaccineNames == nil {
		vaccineNames = []string{}
	}
	if grades == nil {
		grades = []string{}
	}

	return rows, total, &dto.ReportFilters{
		VaccineNames: vaccineNames,
		Grades:       grades,
	}, nil
}
