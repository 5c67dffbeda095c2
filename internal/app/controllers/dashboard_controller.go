package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/app/services"
	"github.com/rahulk/vaxportal/internal/middleware"
	"github.com/rahulk/vaxportal/internal/pkg/helpers"
)

// DashboardController serves aggregate statistics and the vaccination report
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new dashboard controller instance
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Returns directory size, vaccinated-student coverage, upcoming drives and recent activity
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats}
// @Router /dashboard [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// GetReport godoc
// @Summary Vaccination report
// @Description Paginated vaccination records joined with student and drive details,
// @Description filterable by vaccine name, grade and administration date window
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param vaccineName query string false "Exact vaccine name"
// @Param grade query string false "Exact grade"
// @Param startDate query string false "Earliest administration date (YYYY-MM-DD)"
// @Param endDate query string false "Latest administration date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse}
// @Router /dashboard/report [get]
func (c *DashboardController) GetReport(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := models.ReportFilter{
		VaccineName: strings.TrimSpace(ctx.Query("vaccineName")),
		Grade:       strings.TrimSpace(ctx.Query("grade")),
		Offset:      offset,
		Limit:       limit,
	}

	startDate, err := parseQueryDate(ctx, "startDate")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filter.StartDate = startDate

	endDate, err := parseQueryDate(ctx, "endDate")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filter.EndDate = endDate

	records, total, filters, err := c.dashboardService.GetReport(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ReportResponse{
		Records:    records,
		Pagination: helpers.NewPaginationInfo(total, page, size),
		Filters:    *filters,
	}))
}
