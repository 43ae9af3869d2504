package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/storeqa/storefront-suite/internal/models"
)

// UserRepository defines the interface for API user persistence
type UserRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// ValidationError carries the per-field failures of a create or update
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// UserService handles the users API
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u models.User) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, fields map[string]string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserServiceImpl implements UserService
type UserServiceImpl struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Create validates u and stores it with a new id
func (s *UserServiceImpl) Create(ctx context.Context, u models.User) (*models.User, error) {
	u.ID = 0
	u.Email = models.NormalizeEmail(u.Email)
	if fieldErrs := u.Validate(); fieldErrs != nil {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if err := s.userRepo.CreateUser(ctx, &u); err != nil {
		return nil, s.storeError(err)
	}
	log.Printf("Created user %d", u.ID)
	return &u, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

// Update applies fields to the stored user and validates the result
func (s *UserServiceImpl) Update(ctx context.Context, id int64, fields map[string]string) (*models.User, error) {
	u, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	if err := u.Apply(fields); err != nil {
		return nil, &ValidationError{Fields: []models.FieldError{{Field: "user", Message: err.Error()}}}
	}
	if fieldErrs := u.Validate(); fieldErrs != nil {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if err := s.userRepo.UpdateUser(ctx, u); err != nil {
		return nil, s.storeError(err)
	}
	log.Printf("Updated user %d", u.ID)
	return u, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	log.Printf("Deleted user %d", id)
	return nil
}

func (s *UserServiceImpl) storeError(err error) error {
	if errors.Is(err, models.ErrEmailTaken) {
		return &ValidationError{Fields: []models.FieldError{{Field: "email", Message: "has already been taken"}}}
	}
	return fmt.Errorf("failed to save user: %w", err)
}
