package services

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/aissouss/minishop-api/models"
)

// CatalogService is the authoritative product lookup, backed by the products
// table. Every call is bounded by a timeout so a slow database cannot hang a
// cart mutation; there are no retries, a failed lookup is reported as-is.
type CatalogService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCatalogService(db *gorm.DB, timeout time.Duration) *CatalogService {
	return &CatalogService{db: db, timeout: timeout}
}

// FindProduct implements models.ProductFinder.
func (s *CatalogService) FindProduct(ctx context.Context, productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, errors.Wrap(models.ErrInvalidArgument, "product id must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(models.ErrNotFound, "product %d", productID)
		}
		return nil, errors.Wrapf(models.ErrDependencyFailure, "find product %d: %v", productID, err)
	}
	return &product, nil
}

// ListOptions filters and orders a product listing.
type ListOptions struct {
	Search        string
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
	SortBy        string
	Order         string
}

// ListProducts returns active products matching the options.
func (s *CatalogService) ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Product{}).Where("active = ?", true)

	if opts.Search != "" {
		likePattern := "%" + opts.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", likePattern, likePattern)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.MinPriceCents > 0 {
		query = query.Where("price_cents >= ?", opts.MinPriceCents)
	}
	if opts.MaxPriceCents > 0 {
		query = query.Where("price_cents <= ?", opts.MaxPriceCents)
	}

	sortBy := opts.SortBy
	switch sortBy {
	case "name", "price_cents", "created_at":
	default:
		sortBy = "created_at"
	}
	order := strings.ToLower(opts.Order)
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	var products []models.Product
	if err := query.Order(sortBy + " " + order).Find(&products).Error; err != nil {
		return nil, errors.Wrapf(models.ErrDependencyFailure, "list products: %v", err)
	}
	return products, nil
}
