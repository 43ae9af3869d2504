package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Customer is a storefront account that can log in through the login form
type Customer struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash []byte
	CreatedAt    time.Time
}

var (
	ErrInvalidEmail       = errors.New("email cannot be empty")
	ErrInvalidPassword    = errors.New("password cannot be empty")
	ErrInvalidCredentials = errors.New("no match for email address and/or password")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// NewCustomer creates a customer with a bcrypt hash of password
func NewCustomer(email, password, firstName, lastName string) (*Customer, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &Customer{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}, nil
}

// CheckPassword returns ErrInvalidCredentials when password does not match
func (c *Customer) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
