package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/classboard/classboard/internal/app/auth"
	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/pkg/apperrors"
	"github.com/classboard/classboard/internal/pkg/helpers"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type examTestEnv struct {
	examStore   *fakeExamStore
	answerStore *fakeAnswerStore
	classStore  *fakeClassStore
	svc         *examServiceImpl
}

// newExamTestEnv seeds one class taught by "t1" with student "s1" enrolled,
// and pins the service clock to testNow.
func newExamTestEnv() *examTestEnv {
	examStore := newFakeExamStore()
	answerStore := newFakeAnswerStore(examStore)
	classStore := newFakeClassStore()

	classStore.classes["c1"] = &models.Class{ID: "c1", Code: "CS101", Name: "Intro", UserID: "t1"}
	classStore.enrollments["c1"] = map[string]bool{"s1": true}

	authz := auth.NewAuthorizationService(classStore)
	svc := NewExamService(examStore, answerStore, authz).(*examServiceImpl)
	svc.now = func() time.Time { return testNow }

	return &examTestEnv{
		examStore:   examStore,
		answerStore: answerStore,
		classStore:  classStore,
		svc:         svc,
	}
}

// seedExam stores an exam with one question (a1 correct, a2 wrong) over the
// given window.
func (e *examTestEnv) seedExam(id string, start, end time.Time) *models.Exam {
	exam := &models.Exam{
		ID:        id,
		Name:      "Quiz",
		StartDate: start,
		EndDate:   end,
		ClassID:   "c1",
		Questions: []models.Question{
			{
				ID:     "q1",
				Text:   "What is 6 times 7?",
				ExamID: id,
				Answers: []models.Answer{
					{ID: "a1", Text: "42", IsCorrect: true, QuestionID: "q1"},
					{ID: "a2", Text: "36", QuestionID: "q1"},
				},
			},
		},
	}
	e.examStore.exams[id] = exam
	return exam
}

func validDraft() *dto.CreateExamRequest {
	return &dto.CreateExamRequest{
		Name:      "Midterm",
		StartDate: helpers.TimeToMillis(testNow.Add(time.Hour)),
		EndDate:   helpers.TimeToMillis(testNow.Add(2 * time.Hour)),
		Questions: []dto.CreateQuestionRequest{
			{
				Text: "What is 6 times 7?",
				Answers: []dto.CreateAnswerRequest{
					{Text: "42", IsCorrect: true},
					{Text: "36"},
				},
			},
		},
	}
}

func TestCreateExam(t *testing.T) {
	env := newExamTestEnv()

	view, err := env.svc.CreateExam(context.Background(), "c1", "t1", validDraft())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if view.ID == "" {
		t.Fatal("expected a generated exam id")
	}
	if len(view.Questions) != 1 || len(view.Questions[0].Answers) != 2 {
		t.Fatalf("unexpected question tree: %+v", view.Questions)
	}
	if _, ok := env.examStore.exams[view.ID]; !ok {
		t.Fatal("exam not persisted")
	}
}

func TestCreateExamScheduleRejected(t *testing.T) {
	env := newExamTestEnv()

	pastStart := validDraft()
	pastStart.StartDate = helpers.TimeToMillis(testNow.Add(-time.Minute))
	if _, err := env.svc.CreateExam(context.Background(), "c1", "t1", pastStart); !errors.Is(err, apperrors.ErrInvalidSchedule) {
		t.Fatalf("past start: got %v, want ErrInvalidSchedule", err)
	}

	inverted := validDraft()
	inverted.EndDate = helpers.TimeToMillis(testNow.Add(30 * time.Minute))
	if _, err := env.svc.CreateExam(context.Background(), "c1", "t1", inverted); !errors.Is(err, apperrors.ErrInvalidSchedule) {
		t.Fatalf("end before start: got %v, want ErrInvalidSchedule", err)
	}

	if len(env.examStore.exams) != 0 {
		t.Fatal("rejected drafts must not be persisted")
	}
}

func TestCreateExamRequiresTeacher(t *testing.T) {
	env := newExamTestEnv()

	if _, err := env.svc.CreateExam(context.Background(), "c1", "s1", validDraft()); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
	if _, err := env.svc.CreateExam(context.Background(), "missing", "t1", validDraft()); !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Fatalf("got %v, want ErrClassNotFound", err)
	}
}

func TestEditExamRegeneratesQuestionIDs(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	view, err := env.svc.EditExam(context.Background(), "e1", "t1", validDraft())
	if err != nil {
		t.Fatalf("EditExam: %v", err)
	}
	if view.ID != "e1" {
		t.Fatalf("exam id changed on edit: %s", view.ID)
	}
	if view.Questions[0].ID == "q1" {
		t.Fatal("expected a fresh question id after replace")
	}
}

func TestEditExamAfterStart(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if _, err := env.svc.EditExam(context.Background(), "e1", "t1", validDraft()); !errors.Is(err, apperrors.ErrExamAlreadyStarted) {
		t.Fatalf("got %v, want ErrExamAlreadyStarted", err)
	}
}

func TestEditExamWrongTeacher(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	if _, err := env.svc.EditExam(context.Background(), "e1", "t2", validDraft()); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestDeleteExam(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	if err := env.svc.DeleteExam(context.Background(), "e1", "t1"); err != nil {
		t.Fatalf("DeleteExam: %v", err)
	}
	if _, ok := env.examStore.exams["e1"]; ok {
		t.Fatal("exam still present after delete")
	}
}

func TestDeleteExamAfterStart(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))

	if err := env.svc.DeleteExam(context.Background(), "e1", "t1"); !errors.Is(err, apperrors.ErrExamAlreadyStarted) {
		t.Fatalf("got %v, want ErrExamAlreadyStarted", err)
	}
	if _, ok := env.examStore.exams["e1"]; !ok {
		t.Fatal("started exam must survive a rejected delete")
	}
}

func TestSubmitAnswer(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if err := env.svc.SubmitAnswer(context.Background(), "e1", "s1", "q1", "a2"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	row, ok := env.answerStore.rows[answerKey("s1", "q1")]
	if !ok {
		t.Fatal("answer row not stored")
	}
	if row.AnswerID != "a2" {
		t.Fatalf("stored answer = %s, want a2", row.AnswerID)
	}
}

func TestSubmitAnswerOverwrites(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if err := env.svc.SubmitAnswer(context.Background(), "e1", "s1", "q1", "a2"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	firstCreated := env.answerStore.rows[answerKey("s1", "q1")].CreatedAt

	later := testNow.Add(10 * time.Minute)
	env.svc.now = func() time.Time { return later }
	if err := env.svc.SubmitAnswer(context.Background(), "e1", "s1", "q1", "a1"); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	row := env.answerStore.rows[answerKey("s1", "q1")]
	if row.AnswerID != "a1" {
		t.Fatalf("stored answer = %s, want a1", row.AnswerID)
	}
	if !row.CreatedAt.Equal(firstCreated) {
		t.Fatal("resubmission must not move the first-submission instant")
	}
	if !row.UpdatedAt.Equal(later) {
		t.Fatalf("updatedAt = %v, want %v", row.UpdatedAt, later)
	}
	if len(env.answerStore.rows) != 1 {
		t.Fatalf("expected one row per (student, question), got %d", len(env.answerStore.rows))
	}
}

func TestSubmitAnswerOutsideWindow(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("early", testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	env.seedExam("late", testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))

	if err := env.svc.SubmitAnswer(context.Background(), "early", "s1", "q1", "a1"); !errors.Is(err, apperrors.ErrExamNotOpen) {
		t.Fatalf("before start: got %v, want ErrExamNotOpen", err)
	}
	if err := env.svc.SubmitAnswer(context.Background(), "late", "s1", "q1", "a1"); !errors.Is(err, apperrors.ErrExamNotOpen) {
		t.Fatalf("after end: got %v, want ErrExamNotOpen", err)
	}
	if len(env.answerStore.rows) != 0 {
		t.Fatal("gated submissions must not be stored")
	}
}

func TestSubmitAnswerNotEnrolled(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if err := env.svc.SubmitAnswer(context.Background(), "e1", "s2", "q1", "a1"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
	if len(env.answerStore.rows) != 0 {
		t.Fatal("unauthorized submission must not be stored")
	}
}

func TestSubmitAnswerMembership(t *testing.T) {
	env := newExamTestEnv()
	env.seedExam("e1", testNow.Add(-time.Hour), testNow.Add(time.Hour))

	if err := env.svc.SubmitAnswer(context.Background(), "e1", "s1", "missing", "a1"); !errors.Is(err, apperrors.ErrQuestionNotFound) {
		t.Fatalf("got %v, want ErrQuestionNotFound", err)
	}
	if err := env.svc.SubmitAnswer(context.Background(), "e1", "s1", "q1", "missing"); !errors.Is(err, apperrors.ErrAnswerNotFound) {
		t.Fatalf("got %v, want ErrAnswerNotFound", err)
	}
}

func TestSubmitAnswerExamNotFound(t *testing.T) {
	env := newExamTestEnv()

	if err := env.svc.SubmitAnswer(context.Background(), "missing", "s1", "q1", "a1"); !errors.Is(err, apperrors.ErrExamNotFound) {
		t.Fatalf("got %v, want ErrExamNotFound", err)
	}
}
