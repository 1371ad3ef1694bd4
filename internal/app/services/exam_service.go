package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/classboard/classboard/internal/app/auth"
	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/pkg/apperrors"
	"github.com/classboard/classboard/internal/pkg/helpers"
	"github.com/classboard/classboard/internal/pkg/logger"
)

// ExamService defines the interface for exam lifecycle operations
type ExamService interface {
	CreateExam(ctx context.Context, classID, teacherID string, req *dto.CreateExamRequest) (*dto.ExamView, error)
	EditExam(ctx context.Context, examID, teacherID string, req *dto.CreateExamRequest) (*dto.ExamView, error)
	DeleteExam(ctx context.Context, examID, teacherID string) error
	GetExamForEdit(ctx context.Context, examID, teacherID string) (*dto.ExamView, error)
	ListExamsForClass(ctx context.Context, classID, teacherID string) ([]dto.ExamSummary, error)
	SubmitAnswer(ctx context.Context, examID, studentID, questionID, answerID string) error
}

// examServiceImpl implements ExamService
type examServiceImpl struct {
	examRepo   ExamStore
	answerRepo StudentAnswerStore
	authz      *auth.AuthorizationService
	now        func() time.Time
}

// NewExamService creates a new ExamService
func NewExamService(examRepo ExamStore, answerRepo StudentAnswerStore, authz *auth.AuthorizationService) ExamService {
	return &examServiceImpl{
		examRepo:   examRepo,
		answerRepo: answerRepo,
		authz:      authz,
		now:        time.Now,
	}
}

// CreateExam validates and persists a new exam aggregate for a class. The
// schedule must still lie entirely in the future.
func (s *examServiceImpl) CreateExam(ctx context.Context, classID, teacherID string, req *dto.CreateExamRequest) (*dto.ExamView, error) {
	if _, err := s.authz.GetClass(ctx, classID); err != nil {
		return nil, err
	}
	if err := s.authz.ValidateTeacher(ctx, teacherID, classID); err != nil {
		return nil, err
	}

	start := helpers.MillisToTime(req.StartDate)
	end := helpers.MillisToTime(req.EndDate)
	if err := validateSchedule(start, end, s.now()); err != nil {
		return nil, err
	}

	if err := validateExamDraft(req); err != nil {
		return nil, err
	}

	exam := buildExamAggregate(uuid.NewString(), classID, start, end, req)

	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("error creating exam: %w", err)
	}

	logger.Info().Str("examId", exam.ID).Str("classId", classID).Msg("Exam created")
	view := toExamView(exam)
	return &view, nil
}

// EditExam replaces the exam aggregate. The temporal gate runs against the
// stored start date, not the incoming one, so a teacher cannot reopen a
// started exam by backdating the draft.
func (s *examServiceImpl) EditExam(ctx context.Context, examID, teacherID string, req *dto.CreateExamRequest) (*dto.ExamView, error) {
	stored, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error getting exam: %w", err)
	}
	if stored == nil {
		return nil, apperrors.ErrExamNotFound
	}

	if err := s.authz.ValidateTeacher(ctx, teacherID, stored.ClassID); err != nil {
		return nil, err
	}

	if stored.PhaseAt(s.now()) != models.PhaseNotStarted {
		return nil, apperrors.ErrExamAlreadyStarted
	}

	start := helpers.MillisToTime(req.StartDate)
	end := helpers.MillisToTime(req.EndDate)
	if err := validateSchedule(start, end, s.now()); err != nil {
		return nil, err
	}

	if err := validateExamDraft(req); err != nil {
		return nil, err
	}

	// Nested rows get fresh identities; the exam keeps its own.
	exam := buildExamAggregate(stored.ID, stored.ClassID, start, end, req)

	if err := s.examRepo.Replace(ctx, exam); err != nil {
		return nil, fmt.Errorf("error replacing exam: %w", err)
	}

	logger.Info().Str("examId", exam.ID).Msg("Exam replaced")
	view := toExamView(exam)
	return &view, nil
}

// DeleteExam removes the exam and everything nested under it. Only legal
// for the owning teacher while the exam has not started.
func (s *examServiceImpl) DeleteExam(ctx context.Context, examID, teacherID string) error {
	stored, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return fmt.Errorf("error getting exam: %w", err)
	}
	if stored == nil {
		return apperrors.ErrExamNotFound
	}

	if err := s.authz.ValidateTeacher(ctx, teacherID, stored.ClassID); err != nil {
		return err
	}

	if stored.PhaseAt(s.now()) != models.PhaseNotStarted {
		return apperrors.ErrExamAlreadyStarted
	}

	if err := s.examRepo.Delete(ctx, examID); err != nil {
		return fmt.Errorf("error deleting exam: %w", err)
	}

	logger.Info().Str("examId", examID).Msg("Exam deleted")
	return nil
}

// GetExamForEdit retrieves the full exam tree, correctness flags included,
// for the owning teacher.
func (s *examServiceImpl) GetExamForEdit(ctx context.Context, examID, teacherID string) (*dto.ExamView, error) {
	exam, err := s.examRepo.GetByIDWithRelations(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error getting exam: %w", err)
	}
	if exam == nil {
		return nil, apperrors.ErrExamNotFound
	}

	if err := s.authz.ValidateTeacher(ctx, teacherID, exam.ClassID); err != nil {
		return nil, err
	}

	view := toExamView(exam)
	return &view, nil
}

// ListExamsForClass retrieves the exam summaries of one class for its teacher
func (s *examServiceImpl) ListExamsForClass(ctx context.Context, classID, teacherID string) ([]dto.ExamSummary, error) {
	if _, err := s.authz.GetClass(ctx, classID); err != nil {
		return nil, err
	}
	if err := s.authz.ValidateTeacher(ctx, teacherID, classID); err != nil {
		return nil, err
	}

	exams, err := s.examRepo.ListByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing exams: %w", err)
	}

	summaries := make([]dto.ExamSummary, 0, len(exams))
	for _, exam := range exams {
		summaries = append(summaries, toExamSummary(&exam))
	}
	return summaries, nil
}

// SubmitAnswer records a student's choice for one question of an open exam.
// Resubmitting is not an error: the stored choice is overwritten and only
// updated_at moves.
func (s *examServiceImpl) SubmitAnswer(ctx context.Context, examID, studentID, questionID, answerID string) error {
	exam, err := s.examRepo.GetByIDWithRelations(ctx, examID)
	if err != nil {
		return fmt.Errorf("error getting exam: %w", err)
	}
	if exam == nil {
		return apperrors.ErrExamNotFound
	}

	if err := s.authz.ValidateStudent(ctx, studentID, exam.ClassID); err != nil {
		return err
	}

	now := s.now()
	if exam.PhaseAt(now) != models.PhaseOpen {
		return apperrors.ErrExamNotOpen
	}

	var question *models.Question
	for i := range exam.Questions {
		if exam.Questions[i].ID == questionID {
			question = &exam.Questions[i]
			break
		}
	}
	if question == nil {
		return apperrors.ErrQuestionNotFound
	}

	found := false
	for _, answer := range question.Answers {
		if answer.ID == answerID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.ErrAnswerNotFound
	}

	if err := s.answerRepo.Upsert(ctx, studentID, questionID, answerID, now); err != nil {
		return fmt.Errorf("error saving answer: %w", err)
	}

	return nil
}

// buildExamAggregate turns a validated draft into a model tree with fresh
// question and answer identities.
func buildExamAggregate(examID, classID string, start, end time.Time, req *dto.CreateExamRequest) *models.Exam {
	exam := &models.Exam{
		ID:        examID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		ClassID:   classID,
	}

	for _, q := range req.Questions {
		question := models.Question{
			ID:     uuid.NewString(),
			Text:   q.Text,
			ExamID: exam.ID,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, models.Answer{
				ID:         uuid.NewString(),
				Text:       a.Text,
				IsCorrect:  a.IsCorrect,
				QuestionID: question.ID,
			})
		}
		exam.Questions = append(exam.Questions, question)
	}

	return exam
}

// toExamView converts an exam model tree to its teacher-facing DTO
func toExamView(exam *models.Exam) dto.ExamView {
	view := dto.ExamView{
		ID:        exam.ID,
		Name:      exam.Name,
		StartDate: helpers.TimeToMillis(exam.StartDate),
		EndDate:   helpers.TimeToMillis(exam.EndDate),
		ClassID:   exam.ClassID,
		Questions: make([]dto.QuestionView, 0, len(exam.Questions)),
	}

	for _, question := range exam.Questions {
		questionView := dto.QuestionView{
			ID:      question.ID,
			Text:    question.Text,
			Answers: make([]dto.AnswerView, 0, len(question.Answers)),
		}
		for _, answer := range question.Answers {
			questionView.Answers = append(questionView.Answers, dto.AnswerView{
				ID:        answer.ID,
				Text:      answer.Text,
				IsCorrect: answer.IsCorrect,
			})
		}
		view.Questions = append(view.Questions, questionView)
	}

	return view
}

// toExamSummary converts an exam model to its listing DTO
func toExamSummary(exam *models.Exam) dto.ExamSummary {
	return dto.ExamSummary{
		ID:        exam.ID,
		Name:      exam.Name,
		StartDate: helpers.TimeToMillis(exam.StartDate),
		EndDate:   helpers.TimeToMillis(exam.EndDate),
		ClassID:   exam.ClassID,
	}
}
