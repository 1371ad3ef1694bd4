package auth

import (
	"context"
	"fmt"

	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/pkg/apperrors"
)

// ClassAccessStore is the slice of the class repository the guard needs:
// class resolution plus the two role predicates.
type ClassAccessStore interface {
	GetByID(ctx context.Context, id string) (*models.Class, error)
	IsTeacher(ctx context.Context, userID, classID string) (bool, error)
	IsStudent(ctx context.Context, userID, classID string) (bool, error)
}

// AuthorizationService resolves whether a principal may act on a class. The
// two roles are independent predicates over (user, class), not a hierarchy:
// a user can teach one class and sit in another.
type AuthorizationService struct {
	classStore ClassAccessStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(classStore ClassAccessStore) *AuthorizationService {
	return &AuthorizationService{classStore: classStore}
}

// IsTeacher reports whether the user created the class
func (s *AuthorizationService) IsTeacher(ctx context.Context, userID, classID string) (bool, error) {
	isTeacher, err := s.classStore.IsTeacher(ctx, userID, classID)
	if err != nil {
		return false, fmt.Errorf("failed to check class ownership: %w", err)
	}
	return isTeacher, nil
}

// IsStudent reports whether the user is enrolled in the class
func (s *AuthorizationService) IsStudent(ctx context.Context, userID, classID string) (bool, error) {
	isStudent, err := s.classStore.IsStudent(ctx, userID, classID)
	if err != nil {
		return false, fmt.Errorf("failed to check class enrollment: %w", err)
	}
	return isStudent, nil
}

// ValidateTeacher returns ErrPermissionDenied unless the user created the
// class. Nothing about the class is disclosed on failure.
func (s *AuthorizationService) ValidateTeacher(ctx context.Context, userID, classID string) error {
	isTeacher, err := s.IsTeacher(ctx, userID, classID)
	if err != nil {
		return err
	}
	if !isTeacher {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateStudent returns ErrPermissionDenied unless the user is enrolled
// in the class.
func (s *AuthorizationService) ValidateStudent(ctx context.Context, userID, classID string) error {
	isStudent, err := s.IsStudent(ctx, userID, classID)
	if err != nil {
		return err
	}
	if !isStudent {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// GetClass resolves a class, mapping absence to ErrClassNotFound
func (s *AuthorizationService) GetClass(ctx context.Context, classID string) (*models.Class, error) {
	class, err := s.classStore.GetByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if class == nil {
		return nil, apperrors.ErrClassNotFound
	}
	return class, nil
}
