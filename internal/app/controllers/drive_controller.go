package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/app/services"
	"github.com/rahulk/vaxportal/internal/middleware"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/helpers"
)

// DriveController handles vaccination drive scheduling and dose recording
type DriveController struct {
	driveService       *services.DriveService
	vaccinationService *services.VaccinationService
}

// NewDriveController creates a new drive controller instance
func NewDriveController(driveService *services.DriveService, vaccinationService *services.VaccinationService) *DriveController {
	return &DriveController{
		driveService:       driveService,
		vaccinationService: vaccinationService,
	}
}

// parseQueryDate accepts a YYYY-MM-DD query parameter
func parseQueryDate(ctx *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.NewValidationError(name + " must be in YYYY-MM-DD format")
	}
	return &parsed, nil
}

// CreateDrive godoc
// @Summary Schedule a vaccination drive
// @Description Schedules a drive at least 15 days ahead, on a day without another active drive
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDriveRequest true "Drive details"
// @Success 201 {object} dto.APIResponse{data=models.Drive}
// @Failure 400 {object} dto.ErrorResponse "Lead time violation or invalid input"
// @Failure 409 {object} dto.ErrorResponse "Another drive already occupies that day"
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	actorID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	drive, err := c.driveService.CreateDrive(ctx, req, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(drive))
}

// GetDrive godoc
// @Summary Get a drive
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=models.Drive}
// @Failure 404 {object} dto.ErrorResponse
// @Router /drives/{driveId} [get]
func (c *DriveController) GetDrive(ctx *gin.Context) {
	id, err := parsePathID(ctx, "driveId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	drive, err := c.driveService.GetDriveByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drive))
}

// ListDrives godoc
// @Summary List drives
// @Description Lists drives filtered by status and date window. upcoming=true is a
// @Description shorthand for drives dated from today onward.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param status query string false "Drive status" Enums(scheduled, completed, cancelled)
// @Param startDate query string false "Earliest drive date (YYYY-MM-DD)"
// @Param endDate query string false "Latest drive date (YYYY-MM-DD)"
// @Param upcoming query bool false "Only drives from today onward"
// @Param upcoming30 query bool false "Only drives within the next 30 days"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse}
// @Router /drives [get]
func (c *DriveController) ListDrives(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := models.DriveFilter{
		Offset: offset,
		Limit:  limit,
	}

	if status := strings.TrimSpace(ctx.Query("status")); status != "" {
		driveStatus := models.DriveStatus(status)
		if !driveStatus.IsValid() {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("status must be scheduled, completed or cancelled"))
			return
		}
		filter.Status = driveStatus
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

	if ctx.Query("upcoming") == "true" && filter.StartDate == nil {
		now := time.Now()
		filter.StartDate = &now
	}
	if ctx.Query("upcoming30") == "true" {
		now := time.Now()
		horizon := now.AddDate(0, 0, 30)
		filter.StartDate = &now
		filter.EndDate = &horizon
	}

	drives, total, err := c.driveService.ListDrives(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      drives,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateDrive godoc
// @Summary Update a drive
// @Description Edits an upcoming drive; past drives are immutable
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive ID"
// @Param request body dto.UpdateDriveRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Drive}
// @Failure 400 {object} dto.ErrorResponse "Drive already occurred"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "New date collides with another drive"
// @Router /drives/{driveId} [put]
func (c *DriveController) UpdateDrive(ctx *gin.Context) {
	actorID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := parsePathID(ctx, "driveId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	drive, err := c.driveService.UpdateDrive(ctx, id, req, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drive))
}

// CancelDrive godoc
// @Summary Cancel a drive
// @Description Marks an upcoming drive cancelled, freeing its calendar day
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=models.Drive}
// @Failure 400 {object} dto.ErrorResponse "Drive already occurred or not scheduled"
// @Failure 404 {object} dto.ErrorResponse
// @Router /drives/{driveId}/cancel [post]
func (c *DriveController) CancelDrive(ctx *gin.Context) {
	actorID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := parsePathID(ctx, "driveId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	drive, err := c.driveService.CancelDrive(ctx, id, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drive))
}

// DeleteDrive godoc
// @Summary Delete a drive
// @Description Removes an upcoming drive created by the caller; refused once doses were recorded
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Only the creator may delete a drive"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Drive has vaccination records"
// @Router /drives/{driveId} [delete]
func (c *DriveController) DeleteDrive(ctx *gin.Context) {
	actorID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := parsePathID(ctx, "driveId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.driveService.DeleteDrive(ctx, id, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Drive deleted"}))
}

// Vaccinate godoc
// @Summary Record a vaccination
// @Description Records one administered dose for a student in a drive, consuming inventory atomically
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive ID"
// @Param studentId path int true "Student ID"
// @Param request body dto.VaccinateRequest false "Optional administration details"
// @Success 201 {object} dto.APIResponse{data=models.VaccinationRecord}
// @Failure 400 {object} dto.ErrorResponse "Drive not yet occurred, grade ineligible or no doses left"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Student already vaccinated"
// @Router /drives/{driveId}/vaccinate/{studentId} [post]
func (c *DriveController) Vaccinate(ctx *gin.Context) {
	actorID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	driveID, err := parsePathID(ctx, "driveId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	studentID, err := parsePathID(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.VaccinateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(ctx, err)
			return
		}
	}

	var administeredAt *time.Time
	if req.AdministeredDate != nil && strings.TrimSpace(*req.AdministeredDate) != "" {
		parsed, err := parseFlexibleTime(strings.TrimSpace(*req.AdministeredDate))
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("administeredDate must be RFC 3339 or YYYY-MM-DD"))
			return
		}
		administeredAt = &parsed
	}

	record, err := c.vaccinationService.RecordVaccination(ctx, driveID, studentID, actorID, administeredAt, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(record))
}

func parseFlexibleTime(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}
