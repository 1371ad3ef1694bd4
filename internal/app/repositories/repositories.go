package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	ClassRepository         *ClassRepository
	ExamRepository          *ExamRepository
	StudentAnswerRepository *StudentAnswerRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		ClassRepository:         NewClassRepository(db),
		ExamRepository:          NewExamRepository(db),
		StudentAnswerRepository: NewStudentAnswerRepository(db),
	}
}
