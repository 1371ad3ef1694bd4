package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/classboard/classboard/internal/app/auth"
	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/pkg/apperrors"
	"github.com/classboard/classboard/internal/pkg/logger"
)

// ClassService defines the interface for class management and enrollment
type ClassService interface {
	CreateClass(ctx context.Context, teacherID string, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	ListTaught(ctx context.Context, teacherID string) ([]dto.ClassResponse, error)
	ListAvailable(ctx context.Context, studentID string) ([]dto.AvailableClassResponse, error)
	Enroll(ctx context.Context, classID, studentID string) error
	ListEnrolledWithExams(ctx context.Context, studentID string) ([]dto.EnrolledClassResponse, error)
}

// classServiceImpl implements ClassService
type classServiceImpl struct {
	classRepo ClassStore
	examRepo  ExamStore
	authz     *auth.AuthorizationService
}

// NewClassService creates a new ClassService
func NewClassService(classRepo ClassStore, examRepo ExamStore, authz *auth.AuthorizationService) ClassService {
	return &classServiceImpl{
		classRepo: classRepo,
		examRepo:  examRepo,
		authz:     authz,
	}
}

// CreateClass opens a new class owned by the caller. The join code must be
// unique across all classes.
func (s *classServiceImpl) CreateClass(ctx context.Context, teacherID string, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	existing, err := s.classRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("error checking class code: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrClassCodeExists
	}

	class := &models.Class{
		ID:          uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		UserID:      teacherID,
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		// A concurrent create can still take the code between the check
		// and the insert; the unique index reports it here.
		return nil, err
	}

	logger.Info().Str("classId", class.ID).Str("code", class.Code).Msg("Class created")
	resp := toClassResponse(class)
	return &resp, nil
}

// ListTaught retrieves the classes the caller created
func (s *classServiceImpl) ListTaught(ctx context.Context, teacherID string) ([]dto.ClassResponse, error) {
	classes, err := s.classRepo.GetByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}

	responses := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		responses = append(responses, toClassResponse(&classes[i]))
	}
	return responses, nil
}

// ListAvailable retrieves classes the student is neither teaching nor
// enrolled in, each with its current student count.
func (s *classServiceImpl) ListAvailable(ctx context.Context, studentID string) ([]dto.AvailableClassResponse, error) {
	classes, counts, err := s.classRepo.GetAvailableForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing available classes: %w", err)
	}

	responses := make([]dto.AvailableClassResponse, 0, len(classes))
	for i := range classes {
		responses = append(responses, dto.AvailableClassResponse{
			Class:        toClassResponse(&classes[i]),
			StudentCount: counts[i],
		})
	}
	return responses, nil
}

// Enroll adds the student to a class. Teachers cannot enroll in their own
// class, and enrolling twice is reported rather than silently ignored.
func (s *classServiceImpl) Enroll(ctx context.Context, classID, studentID string) error {
	class, err := s.authz.GetClass(ctx, classID)
	if err != nil {
		return err
	}

	if class.UserID == studentID {
		return apperrors.NewBadRequestError("cannot enroll in a class you teach")
	}

	enrolled, err := s.authz.IsStudent(ctx, studentID, classID)
	if err != nil {
		return err
	}
	if enrolled {
		return apperrors.ErrAlreadyEnrolled
	}

	if err := s.classRepo.Enroll(ctx, classID, studentID); err != nil {
		return fmt.Errorf("error enrolling student: %w", err)
	}

	logger.Info().Str("classId", classID).Str("studentId", studentID).Msg("Student enrolled")
	return nil
}

// ListEnrolledWithExams retrieves the student's classes, each carrying the
// exam summaries scheduled for it.
func (s *classServiceImpl) ListEnrolledWithExams(ctx context.Context, studentID string) ([]dto.EnrolledClassResponse, error) {
	classes, examsPerClass, err := s.examRepo.ListByEnrolledStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled classes: %w", err)
	}

	responses := make([]dto.EnrolledClassResponse, 0, len(classes))
	for i := range classes {
		summaries := make([]dto.ExamSummary, 0, len(examsPerClass[i]))
		for j := range examsPerClass[i] {
			summaries = append(summaries, toExamSummary(&examsPerClass[i][j]))
		}
		responses = append(responses, dto.EnrolledClassResponse{
			Class: toClassResponse(&classes[i]),
			Exams: summaries,
		})
	}
	return responses, nil
}

// toClassResponse converts a class model to its API representation
func toClassResponse(class *models.Class) dto.ClassResponse {
	return dto.ClassResponse{
		ID:          class.ID,
		Code:        class.Code,
		Name:        class.Name,
		Description: class.Description,
		UserID:      class.UserID,
	}
}
