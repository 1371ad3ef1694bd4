package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/app/services"
	"github.com/classboard/classboard/internal/middleware"
)

// StudentController handles the student side: class overview, exam taking
// and result viewing.
type StudentController struct {
	classService  services.ClassService
	examService   services.ExamService
	resultService services.ResultService
}

// NewStudentController creates a new StudentController
func NewStudentController(classService services.ClassService, examService services.ExamService, resultService services.ResultService) *StudentController {
	return &StudentController{
		classService:  classService,
		examService:   examService,
		resultService: resultService,
	}
}

// ListClasses lists the caller's enrolled classes with their exams
// @Summary List enrolled classes
// @Description Retrieves the caller's classes, each with its scheduled exams
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrolledClassResponse} "Classes retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/classes [get]
func (c *StudentController) ListClasses(ctx *gin.Context) {
	classes, err := c.classService.ListEnrolledWithExams(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// GetExam retrieves an exam as the student sees it
// @Summary Get exam for taking
// @Description Retrieves the exam without correctness flags, with the caller's chosen answers
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentExamResponse} "Exam retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller is not enrolled"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/exams/{examId} [get]
func (c *StudentController) GetExam(ctx *gin.Context) {
	exam, err := c.resultService.GetStudentExam(ctx, ctx.Param("examId"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// SubmitAnswer records the caller's answer for one question
// @Summary Submit an answer
// @Description Stores the chosen answer; resubmitting overwrites the earlier choice
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam ID"
// @Param questionId path string true "Question ID"
// @Param request body dto.SubmitAnswerRequest true "Chosen answer"
// @Success 200 {object} dto.APIResponse "Answer recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller not enrolled or exam not open"
// @Failure 404 {object} dto.ErrorResponse "Exam, question or answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/exams/{examId}/questions/{questionId}/answer [post]
func (c *StudentController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid answer data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.examService.SubmitAnswer(ctx, ctx.Param("examId"), middleware.CurrentUserID(ctx), ctx.Param("questionId"), req.AnswerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// GetResult retrieves the caller's scored result for a closed exam
// @Summary Get own exam result
// @Description Retrieves the score and correct answers once the exam has closed
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param examId path string true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResultResponse} "Result retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller not enrolled or exam still open"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/exams/{examId}/result [get]
func (c *StudentController) GetResult(ctx *gin.Context) {
	result, err := c.resultService.GetStudentResult(ctx, ctx.Param("examId"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
