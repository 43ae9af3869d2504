package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/storeqa/storefront-suite/internal/models"
)

const uniqueViolation = "23505"

// PostgresStore persists the storefront in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store backed by db. Migrations must have run.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = `p.id, p.name, p.brand, p.code, p.reward_points, p.availability,
		p.price_cents, p.ex_tax_cents,
		COALESCE(ARRAY(SELECT path FROM product_images i WHERE i.product_id = p.id ORDER BY i.position), '{}')`

// ListProducts returns every product ordered by name
func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, `SELECT `+productColumns+` FROM products p ORDER BY p.name`)
}

// SearchProducts returns products whose name contains term, ignoring case
func (s *PostgresStore) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	query := `SELECT ` + productColumns + `
		FROM products p
		WHERE p.name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY p.name`
	return s.queryProducts(ctx, query, escapeLike(term))
}

func (s *PostgresStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by id
func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*models.Product, error) {
	p := &models.Product{}
	var images pq.StringArray
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Code, &p.RewardPoints, &p.Availability,
		&p.PriceCents, &p.ExTaxCents, &images)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Images = []string(images)
	return p, nil
}

// CreateCustomer inserts a customer
func (s *PostgresStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, email, first_name, last_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Email, c.FirstName, c.LastName, c.PasswordHash, c.CreatedAt)
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetCustomerByEmail retrieves a customer by normalized email
func (s *PostgresStore) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	c := &models.Customer{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, password_hash, created_at
		FROM customers WHERE email = $1`, models.NormalizeEmail(email)).
		Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// ListUsers returns users newest first
func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, gender, status FROM api_users ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Gender, &u.Status); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// CreateUser inserts user and sets its generated id
func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO api_users (name, email, gender, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		u.Name, u.Email, u.Gender, u.Status).Scan(&u.ID)
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id
func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `SELECT id, name, email, gender, status FROM api_users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Gender, &u.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateUser replaces a stored user
func (s *PostgresStore) UpdateUser(ctx context.Context, u *models.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE api_users
		SET name = $1, email = $2, gender = $3, status = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5`,
		u.Name, u.Email, u.Gender, u.Status, u.ID)
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result, models.ErrUserNotFound)
}

// DeleteUser removes a user
func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM api_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRow(result, models.ErrUserNotFound)
}

func requireRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
