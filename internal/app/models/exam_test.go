package models

import (
	"testing"
	"time"
)

func TestPhaseAt(t *testing.T) {
	start := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	exam := &Exam{ID: "e1", StartDate: start, EndDate: end}

	cases := []struct {
		name string
		now  time.Time
		want ExamPhase
	}{
		{"before start", start.Add(-time.Second), PhaseNotStarted},
		{"exactly at start", start, PhaseOpen},
		{"inside window", start.Add(30 * time.Minute), PhaseOpen},
		{"exactly at end", end, PhaseOpen},
		{"after end", end.Add(time.Second), PhaseClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exam.PhaseAt(tc.now); got != tc.want {
				t.Fatalf("PhaseAt(%v) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestCorrectAnswerID(t *testing.T) {
	question := &Question{
		ID: "q1",
		Answers: []Answer{
			{ID: "a1", Text: "36"},
			{ID: "a2", Text: "42", IsCorrect: true},
		},
	}
	if got := question.CorrectAnswerID(); got != "a2" {
		t.Fatalf("CorrectAnswerID() = %s, want a2", got)
	}

	empty := &Question{ID: "q2"}
	if got := empty.CorrectAnswerID(); got != "" {
		t.Fatalf("CorrectAnswerID() on empty question = %s, want empty", got)
	}
}
