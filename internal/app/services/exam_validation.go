package services

import (
	"time"

	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/pkg/apperrors"
)

// validateExamDraft checks the structural rules of an exam draft and returns
// the first violated one. The checks are ordered: name, question presence,
// question text, answer presence, answer text, correct-answer uniqueness.
// The function is pure; it never touches storage.
func validateExamDraft(req *dto.CreateExamRequest) error {
	if req.Name == "" {
		return apperrors.NewValidationError("exam name cannot be empty")
	}

	if len(req.Questions) == 0 {
		return apperrors.NewValidationError("exam must have at least one question")
	}

	for _, question := range req.Questions {
		if question.Text == "" {
			return apperrors.NewValidationError("question cannot be empty")
		}

		if len(question.Answers) == 0 {
			return apperrors.NewValidationError("question must have at least one answer")
		}

		for _, answer := range question.Answers {
			if answer.Text == "" {
				return apperrors.NewValidationError("answer cannot be empty")
			}
		}

		correct := 0
		for _, answer := range question.Answers {
			if answer.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return apperrors.NewValidationError("question must have exactly one correct answer")
		}
	}

	return nil
}

// validateSchedule checks the exam window against the current time: the
// start must not lie in the past and the end must not precede the start.
func validateSchedule(start, end, now time.Time) error {
	if start.Before(now) {
		return apperrors.ErrInvalidSchedule
	}
	if end.Before(start) {
		return apperrors.ErrInvalidSchedule
	}
	return nil
}
