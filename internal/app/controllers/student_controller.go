package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/app/services"
	"github.com/rahulk/vaxportal/internal/middleware"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/helpers"
	"github.com/rahulk/vaxportal/internal/pkg/tabular"
)

// maxImportFileSize caps uploaded roster files at 8 MiB
const maxImportFileSize = 8 << 20

// StudentController handles student directory and bulk import requests
type StudentController struct {
	studentService *services.StudentService
	importService  *services.ImportService
}

// NewStudentController creates a new student controller instance
func NewStudentController(studentService *services.StudentService, importService *services.ImportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		importService:  importService,
	}
}

func parsePathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NewValidationError(name + " must be a positive integer")
	}
	return id, nil
}

// CreateStudent godoc
// @Summary Create a student
// @Description Registers an individual student in the directory
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Student ID already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// GetStudent godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, err := parsePathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// ListStudents godoc
// @Summary List students
// @Description Lists students with optional name/ID search and grade filter
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on name or student ID"
// @Param grade query string false "Exact grade"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := models.StudentFilter{
		Search: strings.TrimSpace(ctx.Query("search")),
		Grade:  strings.TrimSpace(ctx.Query("grade")),
		Offset: offset,
		Limit:  limit,
	}

	students, total, err := c.studentService.ListStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Fully replaces a student's directory entry
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.StudentRequest true "Student details"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := parsePathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// DeleteStudent godoc
// @Summary Delete a student
// @Description Removes a student; refused while vaccination records reference them
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Student has vaccination records"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := parsePathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Student deleted"}))
}

// ImportStudents godoc
// @Summary Bulk import students
// @Description Reconciles an uploaded CSV or XLSX roster against the directory.
// @Description Rows fail individually; valid rows commit even when others are rejected.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Roster file (.csv or .xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult}
// @Failure 400 {object} dto.ErrorResponse
// @Router /students/upload [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("a roster file is required in the \"file\" form field"))
		return
	}
	if fileHeader.Size > maxImportFileSize {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("roster file exceeds the 8 MiB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	decoded, err := tabular.Decode(file, fileHeader.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	rows := make([]map[string]string, len(decoded))
	for i, row := range decoded {
		rows[i] = row
	}

	result, err := c.importService.Reconcile(ctx, rows)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
