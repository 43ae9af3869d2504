package services

import (
	"context"
	"fmt"
	"log"

	"github.com/storeqa/storefront-suite/internal/models"
)

// ProductRepository defines the interface for catalog persistence
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, term string) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// CatalogService handles catalog lookups for the storefront pages
type CatalogService interface {
	List(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// CatalogServiceImpl implements CatalogService
type CatalogServiceImpl struct {
	productRepo ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo ProductRepository) CatalogService {
	return &CatalogServiceImpl{productRepo: productRepo}
}

// List returns the whole catalog
func (s *CatalogServiceImpl) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Search returns the products whose name contains term
func (s *CatalogServiceImpl) Search(ctx context.Context, term string) ([]models.Product, error) {
	products, err := s.productRepo.SearchProducts(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	log.Printf("Search %q matched %d products", term, len(products))
	return products, nil
}

// GetProduct retrieves a product by id
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

