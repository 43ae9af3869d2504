package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/storeqa/storefront-suite/internal/models"
)

// firstUserID mimics the id range of the public users API
const firstUserID int64 = 7000001

// MemoryStore keeps products, customers and API users in process memory.
// It is the storefront's default store when Postgres is not configured.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[int64]models.Product
	customers  map[string]models.Customer
	users      map[int64]models.User
	nextUserID int64
}

// NewMemoryStore creates a store holding products
func NewMemoryStore(products []models.Product) *MemoryStore {
	s := &MemoryStore{
		products:   make(map[int64]models.Product, len(products)),
		customers:  make(map[string]models.Customer),
		users:      make(map[int64]models.User),
		nextUserID: firstUserID,
	}
	for _, p := range products {
		s.products[p.ID] = cloneProduct(p)
	}
	return s
}

// ListProducts returns every product ordered by name
func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.filterProducts(func(models.Product) bool { return true }), nil
}

// SearchProducts returns products whose name contains term, ordered by name
func (s *MemoryStore) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	return s.filterProducts(func(p models.Product) bool { return p.Matches(term) }), nil
}

func (s *MemoryStore) filterProducts(keep func(models.Product) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetProduct retrieves a product by id
func (s *MemoryStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

// CreateCustomer stores a customer keyed by email
func (s *MemoryStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[customer.Email]; exists {
		return models.ErrEmailTaken
	}
	s.customers[customer.Email] = *customer
	return nil
}

// GetCustomerByEmail retrieves a customer by normalized email
func (s *MemoryStore) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[models.NormalizeEmail(email)]
	if !ok {
		return nil, models.ErrCustomerNotFound
	}
	return &c, nil
}

// ListUsers returns users newest first, like the public API
func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// CreateUser assigns the next id and stores user
func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(user.Email, 0) {
		return models.ErrEmailTaken
	}
	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = *user
	return nil
}

// GetUser retrieves a user by id
func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

// UpdateUser replaces a stored user
func (s *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return models.ErrUserNotFound
	}
	if s.emailTaken(user.Email, user.ID) {
		return models.ErrEmailTaken
	}
	s.users[user.ID] = *user
	return nil
}

// DeleteUser removes a user
func (s *MemoryStore) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return models.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// emailTaken must be called with the lock held
func (s *MemoryStore) emailTaken(email string, exceptID int64) bool {
	for id, u := range s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}
