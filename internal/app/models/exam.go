package models

import "time"

// ExamPhase is the derived temporal status of an exam. It is never
// persisted: every decision that depends on it recomputes the phase from
// the stored start/end instants.
type ExamPhase string

const (
	// PhaseNotStarted means the current time is before the exam's start instant.
	PhaseNotStarted ExamPhase = "NOT_STARTED"
	// PhaseOpen means the current time is within [start, end].
	PhaseOpen ExamPhase = "OPEN"
	// PhaseClosed means the current time is after the exam's end instant.
	PhaseClosed ExamPhase = "CLOSED"
)

// Exam defines the exam model based on the 'exam' table. An exam owns its
// questions and, transitively, their answers: the three are written,
// replaced and deleted as one unit.
type Exam struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name" example:"Midterm 1"`
	StartDate time.Time  `json:"startDate" db:"start_date"` // Stored as an absolute instant; millis at the API boundary
	EndDate   time.Time  `json:"endDate" db:"end_date"`
	ClassID   string     `json:"classId" db:"class_id"`
	Questions []Question `json:"questions,omitempty"` // Relation, no db tag
}

// Question defines the question model based on the 'question' table.
type Question struct {
	ID      string   `json:"id" db:"id"`
	Text    string   `json:"question" db:"question"`
	ExamID  string   `json:"examId" db:"exam_id"`
	Answers []Answer `json:"answers,omitempty"` // Relation, no db tag
}

// Answer defines the answer model based on the 'answer' table.
type Answer struct {
	ID         string `json:"id" db:"id"`
	Text       string `json:"answer" db:"answer"`
	IsCorrect  bool   `json:"isCorrect" db:"is_correct"`
	QuestionID string `json:"questionId" db:"question_id"`
}

// StudentAnswer defines a row of the 'student_answer' table: the current
// choice of one student for one question. The (StudentID, QuestionID) pair
// is the primary key; resubmissions overwrite AnswerID and UpdatedAt while
// CreatedAt keeps the instant of the first submission.
type StudentAnswer struct {
	StudentID  string    `json:"studentId" db:"student_id"`
	QuestionID string    `json:"questionId" db:"question_id"`
	AnswerID   string    `json:"answerId" db:"answer_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// PhaseAt derives the exam's phase at the given instant. The bounds are
// inclusive: an exam is open at exactly its start and at exactly its end.
func (e *Exam) PhaseAt(now time.Time) ExamPhase {
	if now.Before(e.StartDate) {
		return PhaseNotStarted
	}
	if now.After(e.EndDate) {
		return PhaseClosed
	}
	return PhaseOpen
}

// CorrectAnswerID returns the id of the question's unique correct answer.
// Validation guarantees exactly one exists for every persisted question.
func (q *Question) CorrectAnswerID() string {
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a.ID
		}
	}
	return ""
}
