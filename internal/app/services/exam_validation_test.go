package services

import (
	"errors"
	"testing"
	"time"

	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/pkg/apperrors"
)

func draft(mutate func(*dto.CreateExamRequest)) *dto.CreateExamRequest {
	req := &dto.CreateExamRequest{
		Name: "Midterm",
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
	if mutate != nil {
		mutate(req)
	}
	return req
}

func TestValidateExamDraft(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*dto.CreateExamRequest)
		wantMsg string
	}{
		{"valid", nil, ""},
		{"empty name", func(r *dto.CreateExamRequest) { r.Name = "" }, "exam name cannot be empty"},
		{"no questions", func(r *dto.CreateExamRequest) { r.Questions = nil }, "exam must have at least one question"},
		{"empty question text", func(r *dto.CreateExamRequest) { r.Questions[0].Text = "" }, "question cannot be empty"},
		{"no answers", func(r *dto.CreateExamRequest) { r.Questions[0].Answers = nil }, "question must have at least one answer"},
		{"empty answer text", func(r *dto.CreateExamRequest) { r.Questions[0].Answers[1].Text = "" }, "answer cannot be empty"},
		{"no correct answer", func(r *dto.CreateExamRequest) { r.Questions[0].Answers[0].IsCorrect = false }, "question must have exactly one correct answer"},
		{"two correct answers", func(r *dto.CreateExamRequest) { r.Questions[0].Answers[1].IsCorrect = true }, "question must have exactly one correct answer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateExamDraft(draft(tc.mutate))
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("got %v, want ErrValidationFailed", err)
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("message = %q, want %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestValidateExamDraftReportsFirstViolation(t *testing.T) {
	// Name and question text both violated; the name check wins.
	req := draft(func(r *dto.CreateExamRequest) {
		r.Name = ""
		r.Questions[0].Text = ""
	})
	if err := validateExamDraft(req); err == nil || err.Error() != "exam name cannot be empty" {
		t.Fatalf("got %v, want the name violation first", err)
	}
}

func TestValidateSchedule(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := validateSchedule(now.Add(time.Hour), now.Add(2*time.Hour), now); err != nil {
		t.Fatalf("future window rejected: %v", err)
	}
	// A window opening exactly now is still valid
	if err := validateSchedule(now, now.Add(time.Hour), now); err != nil {
		t.Fatalf("window starting now rejected: %v", err)
	}
	if err := validateSchedule(now.Add(-time.Second), now.Add(time.Hour), now); !errors.Is(err, apperrors.ErrInvalidSchedule) {
		t.Fatalf("past start: got %v, want ErrInvalidSchedule", err)
	}
	if err := validateSchedule(now.Add(2*time.Hour), now.Add(time.Hour), now); !errors.Is(err, apperrors.ErrInvalidSchedule) {
		t.Fatalf("inverted window: got %v, want ErrInvalidSchedule", err)
	}
}
