package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/pkg/apperrors"
	"github.com/classboard/classboard/internal/pkg/dberrors"
)

// ClassRepository handles database operations for classes and enrollments
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

var classColumns = []string{"id", "code", "name", "description", "user_id"}

func scanClass(row pgx.Row) (*models.Class, error) {
	var class models.Class
	err := row.Scan(&class.ID, &class.Code, &class.Name, &class.Description, &class.UserID)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// Create inserts a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := squirrel.Insert("class").
		Columns(classColumns...).
		Values(class.ID, class.Code, class.Name, class.Description, class.UserID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrClassCodeExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID, nil when the class does not exist
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*models.Class, error) {
	query := squirrel.Select(classColumns...).
		From("class").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return class, nil
}

// GetByCode retrieves a class by its join code, nil when absent
func (r *ClassRepository) GetByCode(ctx context.Context, code string) (*models.Class, error) {
	query := squirrel.Select(classColumns...).
		From("class").
		Where("code = ?", code).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return class, nil
}

// GetByTeacher retrieves the classes created by a user
func (r *ClassRepository) GetByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	query := squirrel.Select(classColumns...).
		From("class").
		Where("user_id = ?", teacherID).
		OrderBy("name").
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

	var classes []models.Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		classes = append(classes, *class)
	}

	return classes, rows.Err()
}

// GetAvailableForStudent retrieves classes the user has not enrolled in and
// does not teach, each with its current student count.
func (r *ClassRepository) GetAvailableForStudent(ctx context.Context, studentID string) ([]models.Class, []int64, error) {
	sql := `
		SELECT c.id, c.code, c.name, c.description, c.user_id,
		       (SELECT COUNT(*) FROM class_student cs2 WHERE cs2.class_id = c.id) AS student_count
		FROM class c
		WHERE c.user_id <> $1
		  AND NOT EXISTS (
		      SELECT 1 FROM class_student cs
		      WHERE cs.class_id = c.id AND cs.student_id = $1
		  )
		ORDER BY c.name`

	rows, err := r.db.Query(ctx, sql, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	var counts []int64
	for rows.Next() {
		var class models.Class
		var count int64
		err := rows.Scan(&class.ID, &class.Code, &class.Name, &class.Description, &class.UserID, &count)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning row: %w", err)
		}
		classes = append(classes, class)
		counts = append(counts, count)
	}

	return classes, counts, rows.Err()
}

// Enroll inserts an enrollment row. Enrolling twice is not an error.
func (r *ClassRepository) Enroll(ctx context.Context, classID, studentID string) error {
	query := squirrel.Insert("class_student").
		Columns("class_id", "student_id").
		Values(classID, studentID).
		Suffix("ON CONFLICT (class_id, student_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// IsTeacher reports whether the user is the creator of the class
func (r *ClassRepository) IsTeacher(ctx context.Context, userID, classID string) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS(SELECT 1 FROM class WHERE id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, sql, classID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}

// IsStudent reports whether the user has an enrollment row for the class
func (r *ClassRepository) IsStudent(ctx context.Context, userID, classID string) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS(SELECT 1 FROM class_student WHERE class_id = $1 AND student_id = $2)`
	if err := r.db.QueryRow(ctx, sql, classID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}
