package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classboard/classboard/internal/app/models"
)

// StudentAnswerRepository handles database operations for student answers
type StudentAnswerRepository struct {
	db *pgxpool.Pool
}

// NewStudentAnswerRepository creates a new StudentAnswerRepository
func NewStudentAnswerRepository(db *pgxpool.Pool) *StudentAnswerRepository {
	return &StudentAnswerRepository{db: db}
}

// Upsert stores the student's choice for one question. The primary key on
// (student_id, question_id) makes this a single atomic statement: two
// concurrent submissions for the same key resolve to last-committed-wins
// with no duplicate row and no application-level locking. created_at is
// written once, updated_at on every write.
func (r *StudentAnswerRepository) Upsert(ctx context.Context, studentID, questionID, answerID string, now time.Time) error {
	sql := `
		INSERT INTO student_answer (student_id, question_id, answer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (student_id, question_id)
		DO UPDATE SET answer_id = excluded.answer_id, updated_at = excluded.updated_at`

	if _, err := r.db.Exec(ctx, sql, studentID, questionID, answerID, now); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetChosenAnswerIDs retrieves the answer ids the student has chosen across
// the exam's questions.
func (r *StudentAnswerRepository) GetChosenAnswerIDs(ctx context.Context, examID, studentID string) ([]string, error) {
	sql := `
		SELECT sa.answer_id
		FROM student_answer sa
		JOIN question q ON q.id = sa.question_id
		WHERE q.exam_id = $1 AND sa.student_id = $2
		ORDER BY q.id`

	rows, err := r.db.Query(ctx, sql, examID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var answerIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		answerIDs = append(answerIDs, id)
	}

	return answerIDs, rows.Err()
}

// StudentAggregate is one student's progress on an exam as seen by the
// teacher dashboard.
type StudentAggregate struct {
	Student       models.User
	AnsweredCount int64
	FirstAnswered *time.Time
	LastAnswered  *time.Time
	CorrectCount  int64
}

// GetExamAggregates retrieves, for every enrolled student with at least one
// answer row, the answered count, the first/last activity instants and the
// correct-answer count. Students who have not started do not produce rows;
// absence means "has not started".
func (r *StudentAnswerRepository) GetExamAggregates(ctx context.Context, examID string) ([]StudentAggregate, error) {
	sql := `
		SELECT u.id, u.name, u.avatar_url,
		       COUNT(sa.answer_id) AS answers_count,
		       MIN(sa.created_at) AS first_answer_date,
		       MAX(sa.updated_at) AS last_update,
		       COUNT(*) FILTER (WHERE a.is_correct) AS correct_count
		FROM exam e
		JOIN class_student cs ON cs.class_id = e.class_id
		JOIN users u ON u.id = cs.student_id
		JOIN question q ON q.exam_id = e.id
		JOIN student_answer sa ON sa.question_id = q.id AND sa.student_id = u.id
		JOIN answer a ON a.id = sa.answer_id
		WHERE e.id = $1
		GROUP BY u.id, u.name, u.avatar_url
		ORDER BY u.name`

	rows, err := r.db.Query(ctx, sql, examID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var aggregates []StudentAggregate
	for rows.Next() {
		var agg StudentAggregate
		err := rows.Scan(
			&agg.Student.ID, &agg.Student.Name, &agg.Student.AvatarURL,
			&agg.AnsweredCount, &agg.FirstAnswered, &agg.LastAnswered, &agg.CorrectCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		aggregates = append(aggregates, agg)
	}

	return aggregates, rows.Err()
}

// CountQuestions returns the number of questions in an exam
func (r *StudentAnswerRepository) CountQuestions(ctx context.Context, examID string) (int64, error) {
	var count int64
	sql := `SELECT COUNT(*) FROM question WHERE exam_id = $1`
	if err := r.db.QueryRow(ctx, sql, examID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
