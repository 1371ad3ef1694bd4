package services

import (
	"context"
	"time"

	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/repositories"
)

// Services defined in this package:
// - AuthService: GitHub OAuth exchange and session token issuing
// - ClassService: class creation, listing and enrollment
// - ExamService: exam lifecycle (create/edit/delete) and answer submission
// - ResultService: student exam views and result scoring, teacher aggregates

// ExamStore is the persistence surface the exam lifecycle needs
type ExamStore interface {
	Create(ctx context.Context, exam *models.Exam) error
	Replace(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, examID string) error
	GetByID(ctx context.Context, examID string) (*models.Exam, error)
	GetByIDWithRelations(ctx context.Context, examID string) (*models.Exam, error)
	ListByClass(ctx context.Context, classID string) ([]models.Exam, error)
	ListByEnrolledStudent(ctx context.Context, studentID string) ([]models.Class, [][]models.Exam, error)
}

// StudentAnswerStore is the persistence surface for answer submission and scoring
type StudentAnswerStore interface {
	Upsert(ctx context.Context, studentID, questionID, answerID string, now time.Time) error
	GetChosenAnswerIDs(ctx context.Context, examID, studentID string) ([]string, error)
	GetExamAggregates(ctx context.Context, examID string) ([]repositories.StudentAggregate, error)
	CountQuestions(ctx context.Context, examID string) (int64, error)
}

// ClassStore is the persistence surface for class management
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id string) (*models.Class, error)
	GetByCode(ctx context.Context, code string) (*models.Class, error)
	GetByTeacher(ctx context.Context, teacherID string) ([]models.Class, error)
	GetAvailableForStudent(ctx context.Context, studentID string) ([]models.Class, []int64, error)
	Enroll(ctx context.Context, classID, studentID string) error
	IsTeacher(ctx context.Context, userID, classID string) (bool, error)
	IsStudent(ctx context.Context, userID, classID string) (bool, error)
}

// UserStore is the persistence surface for user accounts
type UserStore interface {
	Upsert(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}
