package services

import (
	"context"
	"sort"
	"time"

	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/repositories"
)

// In-memory stores backing the service tests. They implement the store
// interfaces this package consumes, so the services run against real maps
// instead of Postgres.

type fakeExamStore struct {
	exams map[string]*models.Exam
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{exams: map[string]*models.Exam{}}
}

func (f *fakeExamStore) Create(_ context.Context, exam *models.Exam) error {
	f.exams[exam.ID] = exam
	return nil
}

func (f *fakeExamStore) Replace(_ context.Context, exam *models.Exam) error {
	f.exams[exam.ID] = exam
	return nil
}

func (f *fakeExamStore) Delete(_ context.Context, examID string) error {
	delete(f.exams, examID)
	return nil
}

func (f *fakeExamStore) GetByID(_ context.Context, examID string) (*models.Exam, error) {
	return f.exams[examID], nil
}

func (f *fakeExamStore) GetByIDWithRelations(_ context.Context, examID string) (*models.Exam, error) {
	return f.exams[examID], nil
}

func (f *fakeExamStore) ListByClass(_ context.Context, classID string) ([]models.Exam, error) {
	var exams []models.Exam
	for _, exam := range f.exams {
		if exam.ClassID == classID {
			exams = append(exams, *exam)
		}
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].ID < exams[j].ID })
	return exams, nil
}

func (f *fakeExamStore) ListByEnrolledStudent(_ context.Context, _ string) ([]models.Class, [][]models.Exam, error) {
	return nil, nil, nil
}

type fakeAnswerStore struct {
	exams      *fakeExamStore
	rows       map[string]models.StudentAnswer
	aggregates []repositories.StudentAggregate
}

func newFakeAnswerStore(exams *fakeExamStore) *fakeAnswerStore {
	return &fakeAnswerStore{
		exams: exams,
		rows:  map[string]models.StudentAnswer{},
	}
}

func answerKey(studentID, questionID string) string {
	return studentID + "|" + questionID
}

func (f *fakeAnswerStore) Upsert(_ context.Context, studentID, questionID, answerID string, now time.Time) error {
	key := answerKey(studentID, questionID)
	row, exists := f.rows[key]
	if !exists {
		row = models.StudentAnswer{
			StudentID:  studentID,
			QuestionID: questionID,
			CreatedAt:  now,
		}
	}
	row.AnswerID = answerID
	row.UpdatedAt = now
	f.rows[key] = row
	return nil
}

func (f *fakeAnswerStore) GetChosenAnswerIDs(_ context.Context, examID, studentID string) ([]string, error) {
	exam := f.exams.exams[examID]
	if exam == nil {
		return nil, nil
	}
	var ids []string
	for _, question := range exam.Questions {
		if row, ok := f.rows[answerKey(studentID, question.ID)]; ok {
			ids = append(ids, row.AnswerID)
		}
	}
	return ids, nil
}

func (f *fakeAnswerStore) GetExamAggregates(_ context.Context, _ string) ([]repositories.StudentAggregate, error) {
	return f.aggregates, nil
}

func (f *fakeAnswerStore) CountQuestions(_ context.Context, examID string) (int64, error) {
	exam := f.exams.exams[examID]
	if exam == nil {
		return 0, nil
	}
	return int64(len(exam.Questions)), nil
}

type fakeClassStore struct {
	classes     map[string]*models.Class
	enrollments map[string]map[string]bool
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{
		classes:     map[string]*models.Class{},
		enrollments: map[string]map[string]bool{},
	}
}

func (f *fakeClassStore) Create(_ context.Context, class *models.Class) error {
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClassStore) GetByID(_ context.Context, id string) (*models.Class, error) {
	return f.classes[id], nil
}

func (f *fakeClassStore) GetByCode(_ context.Context, code string) (*models.Class, error) {
	for _, class := range f.classes {
		if class.Code == code {
			return class, nil
		}
	}
	return nil, nil
}

func (f *fakeClassStore) GetByTeacher(_ context.Context, teacherID string) ([]models.Class, error) {
	var classes []models.Class
	for _, class := range f.classes {
		if class.UserID == teacherID {
			classes = append(classes, *class)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (f *fakeClassStore) GetAvailableForStudent(_ context.Context, studentID string) ([]models.Class, []int64, error) {
	var classes []models.Class
	var counts []int64
	for _, class := range f.classes {
		if class.UserID == studentID || f.enrollments[class.ID][studentID] {
			continue
		}
		classes = append(classes, *class)
		counts = append(counts, int64(len(f.enrollments[class.ID])))
	}
	return classes, counts, nil
}

func (f *fakeClassStore) Enroll(_ context.Context, classID, studentID string) error {
	if f.enrollments[classID] == nil {
		f.enrollments[classID] = map[string]bool{}
	}
	f.enrollments[classID][studentID] = true
	return nil
}

func (f *fakeClassStore) IsTeacher(_ context.Context, userID, classID string) (bool, error) {
	class := f.classes[classID]
	return class != nil && class.UserID == userID, nil
}

func (f *fakeClassStore) IsStudent(_ context.Context, userID, classID string) (bool, error) {
	return f.enrollments[classID][userID], nil
}
