package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/classboard/classboard/internal/app/auth"
	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/repositories"
	"github.com/classboard/classboard/internal/pkg/apperrors"
)

type resultTestEnv struct {
	examStore   *fakeExamStore
	answerStore *fakeAnswerStore
	svc         *resultServiceImpl
}

func newResultTestEnv() *resultTestEnv {
	examStore := newFakeExamStore()
	answerStore := newFakeAnswerStore(examStore)
	classStore := newFakeClassStore()

	classStore.classes["c1"] = &models.Class{ID: "c1", Code: "CS101", Name: "Intro", UserID: "t1"}
	classStore.enrollments["c1"] = map[string]bool{"s1": true}

	authz := auth.NewAuthorizationService(classStore)
	svc := NewResultService(examStore, answerStore, authz).(*resultServiceImpl)
	svc.now = func() time.Time { return testNow }

	return &resultTestEnv{examStore: examStore, answerStore: answerStore, svc: svc}
}

// seedTwoQuestionExam stores an exam with questions q1 (a1 correct) and q2
// (b1 correct) over the given window.
func (e *resultTestEnv) seedTwoQuestionExam(start, end time.Time) {
	e.examStore.exams["e1"] = &models.Exam{
		ID:        "e1",
		Name:      "Quiz",
		StartDate: start,
		EndDate:   end,
		ClassID:   "c1",
		Questions: []models.Question{
			{
				ID: "q1", Text: "What is 6 times 7?", ExamID: "e1",
				Answers: []models.Answer{
					{ID: "a1", Text: "42", IsCorrect: true, QuestionID: "q1"},
					{ID: "a2", Text: "36", QuestionID: "q1"},
				},
			},
			{
				ID: "q2", Text: "Closest planet to the sun?", ExamID: "e1",
				Answers: []models.Answer{
					{ID: "b1", Text: "Mercury", IsCorrect: true, QuestionID: "q2"},
					{ID: "b2", Text: "Venus", QuestionID: "q2"},
				},
			},
		},
	}
}

func TestGetStudentExam(t *testing.T) {
	env := newResultTestEnv()
	env.seedTwoQuestionExam(testNow.Add(-time.Hour), testNow.Add(time.Hour))
	env.answerStore.rows[answerKey("s1", "q1")] = models.StudentAnswer{
		StudentID: "s1", QuestionID: "q1", AnswerID: "a2",
	}

	resp, err := env.svc.GetStudentExam(context.Background(), "e1", "s1")
	if err != nil {
		t.Fatalf("GetStudentExam: %v", err)
	}
	if resp.Phase != string(models.PhaseOpen) {
		t.Fatalf("phase = %s, want OPEN", resp.Phase)
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(resp.Questions))
	}
	if len(resp.ChosenAnswerIDs) != 1 || resp.ChosenAnswerIDs[0] != "a2" {
		t.Fatalf("chosen = %v, want [a2]", resp.ChosenAnswerIDs)
	}
}

func TestGetStudentExamRequiresEnrollment(t *testing.T) {
	env := newResultTestEnv()
	env.seedTwoQuestionExam(testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if _, err := env.svc.GetStudentExam(context.Background(), "e1", "s2"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestGetStudentResult(t *testing.T) {
	env := newResultTestEnv()
	env.seedTwoQuestionExam(testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))
	env.answerStore.rows[answerKey("s1", "q1")] = models.StudentAnswer{
		StudentID: "s1", QuestionID: "q1", AnswerID: "a1",
	}
	env.answerStore.rows[answerKey("s1", "q2")] = models.StudentAnswer{
		StudentID: "s1", QuestionID: "q2", AnswerID: "b2",
	}

	result, err := env.svc.GetStudentResult(context.Background(), "e1", "s1")
	if err != nil {
		t.Fatalf("GetStudentResult: %v", err)
	}
	if result.CorrectCount != 1 {
		t.Fatalf("correctCount = %d, want 1", result.CorrectCount)
	}
	if result.TotalQuestions != 2 {
		t.Fatalf("totalQuestions = %d, want 2", result.TotalQuestions)
	}
	if result.Score != 50 {
		t.Fatalf("score = %v, want 50", result.Score)
	}
	if len(result.CorrectAnswerIDs) != 2 || result.CorrectAnswerIDs[0] != "a1" || result.CorrectAnswerIDs[1] != "b1" {
		t.Fatalf("correctAnswerIds = %v, want [a1 b1]", result.CorrectAnswerIDs)
	}
}

func TestGetStudentResultBeforeClose(t *testing.T) {
	env := newResultTestEnv()
	env.seedTwoQuestionExam(testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if _, err := env.svc.GetStudentResult(context.Background(), "e1", "s1"); !errors.Is(err, apperrors.ErrExamNotOpen) {
		t.Fatalf("open exam: got %v, want ErrExamNotOpen", err)
	}

	env.seedTwoQuestionExam(testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	if _, err := env.svc.GetStudentResult(context.Background(), "e1", "s1"); !errors.Is(err, apperrors.ErrExamNotOpen) {
		t.Fatalf("upcoming exam: got %v, want ErrExamNotOpen", err)
	}
}

func TestGetStudentResultNoAnswers(t *testing.T) {
	env := newResultTestEnv()
	env.seedTwoQuestionExam(testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))

	result, err := env.svc.GetStudentResult(context.Background(), "e1", "s1")
	if err != nil {
		t.Fatalf("GetStudentResult: %v", err)
	}
	if result.CorrectCount != 0 || result.Score != 0 {
		t.Fatalf("blank submission scored %v with %d correct", result.Score, result.CorrectCount)
	}
	if len(result.ChosenAnswerIDs) != 0 {
		t.Fatalf("chosen = %v, want empty", result.ChosenAnswerIDs)
	}
}

func TestGetTeacherResults(t *testing.T) {
	env := newResultTestEnv()
	env.seedTwoQuestionExam(testNow.Add(-time.Hour), testNow.Add(time.Hour))

	first := testNow.Add(-30 * time.Minute)
	last := testNow.Add(-10 * time.Minute)
	env.answerStore.aggregates = []repositories.StudentAggregate{
		{
			Student:       models.User{ID: "s1", Name: "Demo Student"},
			AnsweredCount: 2,
			FirstAnswered: &first,
			LastAnswered:  &last,
			CorrectCount:  1,
		},
	}

	results, err := env.svc.GetTeacherResults(context.Background(), "e1", "t1")
	if err != nil {
		t.Fatalf("GetTeacherResults: %v", err)
	}
	if results.TotalQuestions != 2 {
		t.Fatalf("totalQuestions = %d, want 2", results.TotalQuestions)
	}
	if len(results.Students) != 1 {
		t.Fatalf("got %d rows, want 1", len(results.Students))
	}
	row := results.Students[0]
	if row.StudentID != "s1" || row.AnsweredCount != 2 || row.CorrectCount != 1 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.FirstAnsweredAt == nil || *row.FirstAnsweredAt != first.UnixMilli() {
		t.Fatalf("firstAnsweredAt = %v, want %d", row.FirstAnsweredAt, first.UnixMilli())
	}
}

func TestGetTeacherResultsRequiresOwnership(t *testing.T) {
	env := newResultTestEnv()
	env.seedTwoQuestionExam(testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if _, err := env.svc.GetTeacherResults(context.Background(), "e1", "t2"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
	if _, err := env.svc.GetTeacherResults(context.Background(), "e1", "s1"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("enrolled student: got %v, want ErrPermissionDenied", err)
	}
}

func TestComputeScoreRounding(t *testing.T) {
	cases := []struct {
		correct, total int
		want           float64
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 2, 50},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := computeScore(tc.correct, tc.total); got != tc.want {
			t.Errorf("computeScore(%d, %d) = %v, want %v", tc.correct, tc.total, got, tc.want)
		}
	}
}
