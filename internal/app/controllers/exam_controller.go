package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/app/services"
	"github.com/classboard/classboard/internal/middleware"
)

// ExamController handles the teacher side of the exam lifecycle
type ExamController struct {
	examService   services.ExamService
	resultService services.ResultService
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService, resultService services.ResultService) *ExamController {
	return &ExamController{
		examService:   examService,
		resultService: resultService,
	}
}

// CreateExam handles exam creation for a class
// @Summary Create a new exam
// @Description Creates an exam with its question tree; the schedule must lie in the future
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Param request body dto.CreateExamRequest true "Exam draft"
// @Success 201 {object} dto.APIResponse{data=dto.ExamView} "Exam created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid draft or schedule"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller does not teach this class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classId}/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid exam data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exam, err := c.examService.CreateExam(ctx, ctx.Param("classId"), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// ListExams lists a class's exams for its teacher
// @Summary List class exams
// @Description Retrieves the exam summaries of a class
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ExamSummary} "Exams retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller does not teach this class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{classId}/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	exams, err := c.examService.ListExamsForClass(ctx, ctx.Param("classId"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      exams,
		Timestamp: time.Now(),
	})
}

// GetExam retrieves the full exam tree for editing
// @Summary Get exam for edit
// @Description Retrieves the exam with questions, answers and correctness flags
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExamView} "Exam retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller does not teach this class"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{examId} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	exam, err := c.examService.GetExamForEdit(ctx, ctx.Param("examId"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// UpdateExam replaces an exam that has not started yet
// @Summary Update an exam
// @Description Replaces the exam and its question tree; only legal before the start instant
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam ID"
// @Param request body dto.CreateExamRequest true "Exam draft"
// @Success 200 {object} dto.APIResponse{data=dto.ExamView} "Exam updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid draft or schedule"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller does not teach this class"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam has already started"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{examId} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid exam data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exam, err := c.examService.EditExam(ctx, ctx.Param("examId"), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// DeleteExam deletes an exam that has not started yet
// @Summary Delete an exam
// @Description Deletes the exam and its question tree; only legal before the start instant
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam ID"
// @Success 200 {object} dto.APIResponse "Exam deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller does not teach this class"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam has already started"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{examId} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	if err := c.examService.DeleteExam(ctx, ctx.Param("examId"), middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// GetResults retrieves per-student progress for an exam
// @Summary Get exam results
// @Description Retrieves per-student aggregates: answered count, activity window and correct count
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherResultsResponse} "Results retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller does not teach this class"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{examId}/results [get]
func (c *ExamController) GetResults(ctx *gin.Context) {
	results, err := c.resultService.GetTeacherResults(ctx, ctx.Param("examId"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      results,
		Timestamp: time.Now(),
	})
}
