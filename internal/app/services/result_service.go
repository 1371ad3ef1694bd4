package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/classboard/classboard/internal/app/auth"
	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/pkg/apperrors"
	"github.com/classboard/classboard/internal/pkg/helpers"
)

// ResultService defines the interface for exam views and scoring
type ResultService interface {
	GetStudentExam(ctx context.Context, examID, studentID string) (*dto.StudentExamResponse, error)
	GetStudentResult(ctx context.Context, examID, studentID string) (*dto.StudentResultResponse, error)
	GetTeacherResults(ctx context.Context, examID, teacherID string) (*dto.TeacherResultsResponse, error)
}

// resultServiceImpl implements ResultService
type resultServiceImpl struct {
	examRepo   ExamStore
	answerRepo StudentAnswerStore
	authz      *auth.AuthorizationService
	now        func() time.Time
}

// NewResultService creates a new ResultService
func NewResultService(examRepo ExamStore, answerRepo StudentAnswerStore, authz *auth.AuthorizationService) ResultService {
	return &resultServiceImpl{
		examRepo:   examRepo,
		answerRepo: answerRepo,
		authz:      authz,
		now:        time.Now,
	}
}

// GetStudentExam returns the exam as an enrolled student sees it: questions
// and answer options without correctness flags, the current phase, and the
// answer ids the student has chosen so far. Readable in every phase; only
// submission is gated on the window.
func (s *resultServiceImpl) GetStudentExam(ctx context.Context, examID, studentID string) (*dto.StudentExamResponse, error) {
	exam, err := s.examRepo.GetByIDWithRelations(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error getting exam: %w", err)
	}
	if exam == nil {
		return nil, apperrors.ErrExamNotFound
	}

	if err := s.authz.ValidateStudent(ctx, studentID, exam.ClassID); err != nil {
		return nil, err
	}

	chosen, err := s.answerRepo.GetChosenAnswerIDs(ctx, examID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting chosen answers: %w", err)
	}
	if chosen == nil {
		chosen = []string{}
	}

	resp := &dto.StudentExamResponse{
		ID:              exam.ID,
		Name:            exam.Name,
		StartDate:       helpers.TimeToMillis(exam.StartDate),
		EndDate:         helpers.TimeToMillis(exam.EndDate),
		Phase:           string(exam.PhaseAt(s.now())),
		Questions:       make([]dto.StudentQuestionView, 0, len(exam.Questions)),
		ChosenAnswerIDs: chosen,
	}

	for _, question := range exam.Questions {
		view := dto.StudentQuestionView{
			ID:      question.ID,
			Text:    question.Text,
			Answers: make([]dto.StudentAnswerOptionView, 0, len(question.Answers)),
		}
		for _, answer := range question.Answers {
			view.Answers = append(view.Answers, dto.StudentAnswerOptionView{
				ID:   answer.ID,
				Text: answer.Text,
			})
		}
		resp.Questions = append(resp.Questions, view)
	}

	return resp, nil
}

// GetStudentResult scores the student's submission once the exam has closed.
// Correct answer ids and the score stay undisclosed in every earlier phase.
func (s *resultServiceImpl) GetStudentResult(ctx context.Context, examID, studentID string) (*dto.StudentResultResponse, error) {
	exam, err := s.examRepo.GetByIDWithRelations(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error getting exam: %w", err)
	}
	if exam == nil {
		return nil, apperrors.ErrExamNotFound
	}

	if err := s.authz.ValidateStudent(ctx, studentID, exam.ClassID); err != nil {
		return nil, err
	}

	if exam.PhaseAt(s.now()) != models.PhaseClosed {
		return nil, apperrors.ErrExamNotOpen
	}

	chosen, err := s.answerRepo.GetChosenAnswerIDs(ctx, examID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting chosen answers: %w", err)
	}
	if chosen == nil {
		chosen = []string{}
	}

	correctIDs := make([]string, 0, len(exam.Questions))
	correctSet := make(map[string]struct{}, len(exam.Questions))
	for i := range exam.Questions {
		id := exam.Questions[i].CorrectAnswerID()
		correctIDs = append(correctIDs, id)
		correctSet[id] = struct{}{}
	}

	correctCount := 0
	for _, id := range chosen {
		if _, ok := correctSet[id]; ok {
			correctCount++
		}
	}

	total := len(exam.Questions)
	return &dto.StudentResultResponse{
		Exam:             toExamView(exam),
		ChosenAnswerIDs:  chosen,
		CorrectAnswerIDs: correctIDs,
		CorrectCount:     correctCount,
		TotalQuestions:   total,
		Score:            computeScore(correctCount, total),
	}, nil
}

// GetTeacherResults returns per-student progress for the owning teacher.
// Available in every phase: during an open exam the rows show live progress.
func (s *resultServiceImpl) GetTeacherResults(ctx context.Context, examID, teacherID string) (*dto.TeacherResultsResponse, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error getting exam: %w", err)
	}
	if exam == nil {
		return nil, apperrors.ErrExamNotFound
	}

	if err := s.authz.ValidateTeacher(ctx, teacherID, exam.ClassID); err != nil {
		return nil, err
	}

	total, err := s.answerRepo.CountQuestions(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error counting questions: %w", err)
	}

	aggregates, err := s.answerRepo.GetExamAggregates(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error getting result aggregates: %w", err)
	}

	resp := &dto.TeacherResultsResponse{
		ExamID:         examID,
		TotalQuestions: total,
		Students:       make([]dto.StudentResultRow, 0, len(aggregates)),
	}

	for _, agg := range aggregates {
		resp.Students = append(resp.Students, dto.StudentResultRow{
			StudentID:       agg.Student.ID,
			StudentName:     agg.Student.Name,
			AnsweredCount:   agg.AnsweredCount,
			FirstAnsweredAt: helpers.TimePtrToMillis(agg.FirstAnswered),
			LastAnsweredAt:  helpers.TimePtrToMillis(agg.LastAnswered),
			CorrectCount:    agg.CorrectCount,
		})
	}

	return resp, nil
}

// computeScore maps a correct count onto a 0..100 scale, rounded to the
// nearest integer. A zero-question exam scores zero; validation keeps such
// exams out of storage anyway.
func computeScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct) / float64(total) * 100)
}
