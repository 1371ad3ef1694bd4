package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/db"
)

// ExamRepository handles database operations for exams and their nested
// questions and answers. An exam aggregate is always written inside one
// transaction: either every row lands or none does.
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{db: db}
}

// Create inserts the exam, its questions and its answers atomically
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertExamTx(ctx, tx, exam); err != nil {
			return err
		}
		return insertQuestionTreeTx(ctx, tx, exam.Questions)
	})
}

// Replace rewrites the exam aggregate while preserving the exam identity:
// the exam row is updated in place, the nested rows are deleted and
// re-inserted with the fresh identities the caller generated.
func (r *ExamRepository) Replace(ctx context.Context, exam *models.Exam) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Update("exam").
			Set("name", exam.Name).
			Set("start_date", exam.StartDate).
			Set("end_date", exam.EndDate).
			Where("id = ?", exam.ID).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		result, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if result.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		// Answers and student answers go with the questions via FK cascade
		sql, args, err = squirrel.Delete("question").
			Where("exam_id = ?", exam.ID).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}

		return insertQuestionTreeTx(ctx, tx, exam.Questions)
	})
}

// Delete removes the exam and, through FK cascade, every nested row.
// Returns pgx.ErrNoRows when the exam does not exist.
func (r *ExamRepository) Delete(ctx context.Context, examID string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Delete("exam").
			Where("id = ?", examID).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		result, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if result.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

var examColumns = []string{"id", "name", "start_date", "end_date", "class_id"}

// GetByID retrieves the exam row without relations, nil when absent
func (r *ExamRepository) GetByID(ctx context.Context, examID string) (*models.Exam, error) {
	query := squirrel.Select(examColumns...).
		From("exam").
		Where("id = ?", examID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var exam models.Exam
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exam.ID, &exam.Name, &exam.StartDate, &exam.EndDate, &exam.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &exam, nil
}

// GetByIDWithRelations retrieves the exam with its full question and answer
// tree materialized, nil when the exam does not exist.
func (r *ExamRepository) GetByIDWithRelations(ctx context.Context, examID string) (*models.Exam, error) {
	exam, err := r.GetByID(ctx, examID)
	if err != nil || exam == nil {
		return exam, err
	}

	sql := `
		SELECT q.id, q.question, q.exam_id,
		       a.id, a.answer, a.is_correct, a.question_id
		FROM question q
		JOIN answer a ON a.question_id = q.id
		WHERE q.exam_id = $1
		ORDER BY q.id, a.id`

	rows, err := r.db.Query(ctx, sql, examID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var question models.Question
		var answer models.Answer
		err := rows.Scan(
			&question.ID, &question.Text, &question.ExamID,
			&answer.ID, &answer.Text, &answer.IsCorrect, &answer.QuestionID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		pos, ok := index[question.ID]
		if !ok {
			pos = len(exam.Questions)
			index[question.ID] = pos
			exam.Questions = append(exam.Questions, question)
		}
		exam.Questions[pos].Answers = append(exam.Questions[pos].Answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return exam, nil
}

// ListByClass retrieves the exams of a class without relations
func (r *ExamRepository) ListByClass(ctx context.Context, classID string) ([]models.Exam, error) {
	query := squirrel.Select(examColumns...).
		From("exam").
		Where("class_id = ?", classID).
		OrderBy("start_date").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var exam models.Exam
		err := rows.Scan(&exam.ID, &exam.Name, &exam.StartDate, &exam.EndDate, &exam.ClassID)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		exams = append(exams, exam)
	}

	return exams, rows.Err()
}

// ListByEnrolledStudent retrieves, per enrolled class, the exams scheduled
// for it. Classes without exams still appear with an empty exam list.
func (r *ExamRepository) ListByEnrolledStudent(ctx context.Context, studentID string) ([]models.Class, [][]models.Exam, error) {
	sql := `
		SELECT c.id, c.code, c.name, c.description, c.user_id,
		       e.id, e.name, e.start_date, e.end_date, e.class_id
		FROM class_student cs
		JOIN class c ON c.id = cs.class_id
		LEFT JOIN exam e ON e.class_id = c.id
		WHERE cs.student_id = $1
		ORDER BY c.name, e.start_date`

	rows, err := r.db.Query(ctx, sql, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	var exams [][]models.Exam
	index := make(map[string]int)

	for rows.Next() {
		var class models.Class
		var examID, examName, examClassID *string
		var startDate, endDate *time.Time
		err := rows.Scan(
			&class.ID, &class.Code, &class.Name, &class.Description, &class.UserID,
			&examID, &examName, &startDate, &endDate, &examClassID,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning row: %w", err)
		}

		pos, ok := index[class.ID]
		if !ok {
			pos = len(classes)
			index[class.ID] = pos
			classes = append(classes, class)
			exams = append(exams, nil)
		}

		if examID != nil {
			exams[pos] = append(exams[pos], models.Exam{
				ID:        *examID,
				Name:      *examName,
				StartDate: *startDate,
				EndDate:   *endDate,
				ClassID:   *examClassID,
			})
		}
	}

	return classes, exams, rows.Err()
}

// insertExamTx inserts the exam row inside the given transaction
func insertExamTx(ctx context.Context, tx pgx.Tx, exam *models.Exam) error {
	sql, args, err := squirrel.Insert("exam").
		Columns(examColumns...).
		Values(exam.ID, exam.Name, exam.StartDate, exam.EndDate, exam.ClassID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// insertQuestionTreeTx bulk-inserts the questions and answers of one exam
// inside the given transaction.
func insertQuestionTreeTx(ctx context.Context, tx pgx.Tx, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	questionInsert := squirrel.Insert("question").
		Columns("id", "question", "exam_id").
		PlaceholderFormat(squirrel.Dollar)
	answerInsert := squirrel.Insert("answer").
		Columns("id", "answer", "is_correct", "question_id").
		PlaceholderFormat(squirrel.Dollar)

	haveAnswers := false
	for _, q := range questions {
		questionInsert = questionInsert.Values(q.ID, q.Text, q.ExamID)
		for _, a := range q.Answers {
			answerInsert = answerInsert.Values(a.ID, a.Text, a.IsCorrect, a.QuestionID)
			haveAnswers = true
		}
	}

	sql, args, err := questionInsert.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if !haveAnswers {
		return nil
	}

	sql, args, err = answerInsert.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
