package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/storeqa/storefront-suite/internal/models"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// AccountService handles storefront registration, login and sessions
type AccountService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.Customer, error)
	Login(ctx context.Context, email, password string) (string, error)
	CustomerForSession(ctx context.Context, token string) (*models.Customer, error)
	Logout(token string)
}

// AccountServiceImpl implements AccountService. Sessions live in memory.
type AccountServiceImpl struct {
	customerRepo CustomerRepository

	mu       sync.RWMutex
	sessions map[string]string // token -> customer email
}

// NewAccountService creates a new account service
func NewAccountService(customerRepo CustomerRepository) AccountService {
	return &AccountServiceImpl{
		customerRepo: customerRepo,
		sessions:     make(map[string]string),
	}
}

// Register creates a customer account
func (s *AccountServiceImpl) Register(ctx context.Context, email, password, firstName, lastName string) (*models.Customer, error) {
	customer, err := models.NewCustomer(email, password, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("invalid customer: %w", err)
	}
	if err := s.customerRepo.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	log.Printf("Registered customer %s", customer.ID)
	return customer, nil
}

// Login verifies credentials and returns a new session token. Unknown email
// and wrong password both yield ErrInvalidCredentials.
func (s *AccountServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	customer, err := s.customerRepo.GetCustomerByEmail(ctx, email)
	if errors.Is(err, models.ErrCustomerNotFound) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to get customer: %w", err)
	}
	if err := customer.CheckPassword(password); err != nil {
		return "", err
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = customer.Email
	s.mu.Unlock()

	log.Printf("Customer %s logged in", customer.ID)
	return token, nil
}

// CustomerForSession returns the customer owning token
func (s *AccountServiceImpl) CustomerForSession(ctx context.Context, token string) (*models.Customer, error) {
	s.mu.RLock()
	email, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return s.customerRepo.GetCustomerByEmail(ctx, email)
}

// Logout forgets token
func (s *AccountServiceImpl) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
