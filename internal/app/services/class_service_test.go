package services

import (
	"context"
	"errors"
	"testing"

	"github.com/classboard/classboard/internal/app/auth"
	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/pkg/apperrors"
)

func newClassTestEnv() (*fakeClassStore, ClassService) {
	classStore := newFakeClassStore()
	examStore := newFakeExamStore()
	authz := auth.NewAuthorizationService(classStore)
	return classStore, NewClassService(classStore, examStore, authz)
}

func TestCreateClass(t *testing.T) {
	store, svc := newClassTestEnv()

	class, err := svc.CreateClass(context.Background(), "t1", &dto.CreateClassRequest{
		Code: "CS101", Name: "Intro", Description: "Basics",
	})
	if err != nil {
		t.Fatalf("CreateClass: %v", err)
	}
	if class.ID == "" {
		t.Fatal("expected a generated class id")
	}
	if class.UserID != "t1" {
		t.Fatalf("owner = %s, want t1", class.UserID)
	}
	if _, ok := store.classes[class.ID]; !ok {
		t.Fatal("class not persisted")
	}
}

func TestCreateClassDuplicateCode(t *testing.T) {
	store, svc := newClassTestEnv()
	store.classes["c1"] = &models.Class{ID: "c1", Code: "CS101", UserID: "t1"}

	_, err := svc.CreateClass(context.Background(), "t2", &dto.CreateClassRequest{
		Code: "CS101", Name: "Other", Description: "",
	})
	if !errors.Is(err, apperrors.ErrClassCodeExists) {
		t.Fatalf("got %v, want ErrClassCodeExists", err)
	}
}

func TestEnroll(t *testing.T) {
	store, svc := newClassTestEnv()
	store.classes["c1"] = &models.Class{ID: "c1", Code: "CS101", UserID: "t1"}

	if err := svc.Enroll(context.Background(), "c1", "s1"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if !store.enrollments["c1"]["s1"] {
		t.Fatal("enrollment not persisted")
	}
}

func TestEnrollOwnClass(t *testing.T) {
	store, svc := newClassTestEnv()
	store.classes["c1"] = &models.Class{ID: "c1", Code: "CS101", UserID: "t1"}

	if err := svc.Enroll(context.Background(), "c1", "t1"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
}

func TestEnrollTwice(t *testing.T) {
	store, svc := newClassTestEnv()
	store.classes["c1"] = &models.Class{ID: "c1", Code: "CS101", UserID: "t1"}
	store.enrollments["c1"] = map[string]bool{"s1": true}

	if err := svc.Enroll(context.Background(), "c1", "s1"); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("got %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollUnknownClass(t *testing.T) {
	_, svc := newClassTestEnv()

	if err := svc.Enroll(context.Background(), "missing", "s1"); !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Fatalf("got %v, want ErrClassNotFound", err)
	}
}

func TestListAvailableExcludesOwnAndEnrolled(t *testing.T) {
	store, svc := newClassTestEnv()
	store.classes["c1"] = &models.Class{ID: "c1", Code: "CS101", UserID: "t1"}
	store.classes["c2"] = &models.Class{ID: "c2", Code: "CS102", UserID: "s1"}
	store.classes["c3"] = &models.Class{ID: "c3", Code: "CS103", UserID: "t1"}
	store.enrollments["c3"] = map[string]bool{"s1": true}

	available, err := svc.ListAvailable(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(available) != 1 || available[0].Class.ID != "c1" {
		t.Fatalf("available = %+v, want only c1", available)
	}
}
