package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/classboard/classboard/internal/app/models"
	appRepos "github.com/classboard/classboard/internal/app/repositories"
	"github.com/classboard/classboard/internal/pkg/apperrors"
)

// Demo account ids mimic GitHub numeric ids so the seeded rows look like
// real OAuth sign-ins.
const (
	demoTeacherID = "1000001"
	demoStudentID = "1000002"
)

// CreateDemoData seeds a teacher, a student, a class with an enrollment and
// one upcoming exam. Idempotent: re-running against a seeded database is a
// no-op.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	classRepo := appRepos.NewClassRepository(dbPool)
	examRepo := appRepos.NewExamRepository(dbPool)

	lgr.Info().Msg("Checking/Creating demo data...")
	var finalErr error

	teacher := &appModels.User{ID: demoTeacherID, Name: "Demo Teacher", AvatarURL: "https://avatars.githubusercontent.com/u/1000001"}
	if err := userRepo.Upsert(ctx, teacher); err != nil {
		lgr.Error().Err(err).Msg("Error seeding teacher account")
		finalErr = errors.Join(finalErr, err)
	}

	student := &appModels.User{ID: demoStudentID, Name: "Demo Student", AvatarURL: "https://avatars.githubusercontent.com/u/1000002"}
	if err := userRepo.Upsert(ctx, student); err != nil {
		lgr.Error().Err(err).Msg("Error seeding student account")
		finalErr = errors.Join(finalErr, err)
	}

	existing, err := classRepo.GetByCode(ctx, "DEMO-101")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for demo class")
		return errors.Join(finalErr, err)
	}
	if existing != nil {
		lgr.Info().Msg("Demo data already present, skipping")
		return finalErr
	}

	class := &appModels.Class{
		ID:          uuid.NewString(),
		Code:        "DEMO-101",
		Name:        "Demo Class",
		Description: "Seeded class for local development",
		UserID:      demoTeacherID,
	}
	if err := classRepo.Create(ctx, class); err != nil && !errors.Is(err, apperrors.ErrClassCodeExists) {
		lgr.Error().Err(err).Msg("Error seeding demo class")
		return errors.Join(finalErr, err)
	}

	if err := classRepo.Enroll(ctx, class.ID, demoStudentID); err != nil {
		lgr.Error().Err(err).Msg("Error enrolling demo student")
		finalErr = errors.Join(finalErr, err)
	}

	exam := demoExam(class.ID)
	if err := examRepo.Create(ctx, exam); err != nil {
		lgr.Error().Err(err).Msg("Error seeding demo exam")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Str("classId", class.ID).Msg("Demo data created")
	return finalErr
}

// demoExam builds a two question exam opening tomorrow
func demoExam(classID string) *appModels.Exam {
	exam := &appModels.Exam{
		ID:        uuid.NewString(),
		Name:      "Demo Quiz",
		StartDate: time.Now().Add(24 * time.Hour).UTC(),
		EndDate:   time.Now().Add(25 * time.Hour).UTC(),
		ClassID:   classID,
	}

	questions := []struct {
		text    string
		answers []string
		correct int
	}{
		{"What is 6 times 7?", []string{"42", "36", "49"}, 0},
		{"Which planet is closest to the sun?", []string{"Venus", "Mercury", "Mars"}, 1},
	}

	for _, q := range questions {
		question := appModels.Question{
			ID:     uuid.NewString(),
			Text:   q.text,
			ExamID: exam.ID,
		}
		for i, text := range q.answers {
			question.Answers = append(question.Answers, appModels.Answer{
				ID:         uuid.NewString(),
				Text:       text,
				IsCorrect:  i == q.correct,
				QuestionID: question.ID,
			})
		}
		exam.Questions = append(exam.Questions, question)
	}

	return exam
}
