package services

import (
	"context"

	"github.com/storeqa/storefront-suite/internal/models"
)

// MockProductRepository is a mock implementation of ProductRepository for testing
type MockProductRepository struct {
	ListProductsFunc   func(context.Context) ([]models.Product, error)
	SearchProductsFunc func(context.Context, string) ([]models.Product, error)
	GetProductFunc     func(context.Context, int64) (*models.Product, error)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductRepository) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	if m.SearchProductsFunc != nil {
		return m.SearchProductsFunc(ctx, term)
	}
	return nil, nil
}

func (m *MockProductRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return &models.Product{ID: id}, nil
}

// MockCustomerRepository is a mock implementation of CustomerRepository for testing
type MockCustomerRepository struct {
	CreateCustomerFunc     func(context.Context, *models.Customer) error
	GetCustomerByEmailFunc func(context.Context, string) (*models.Customer, error)
}

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, c)
	}
	return nil
}

func (m *MockCustomerRepository) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if m.GetCustomerByEmailFunc != nil {
		return m.GetCustomerByEmailFunc(ctx, email)
	}
	return nil, models.ErrCustomerNotFound
}

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	ListUsersFunc  func(context.Context) ([]models.User, error)
	CreateUserFunc func(context.Context, *models.User) error
	GetUserFunc    func(context.Context, int64) (*models.User, error)
	UpdateUserFunc func(context.Context, *models.User) error
	DeleteUserFunc func(context.Context, int64) error
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, u)
	}
	u.ID = 1
	return nil
}

func (m *MockUserRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, models.ErrUserNotFound
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u *models.User) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}
