package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"backoffice-service/internal/models"
	"gorm.io/gorm"
)

// Cache TTL constants
const (
	productCacheTTL     = 5 * time.Minute
	productListCacheTTL = 2 * time.Minute
)

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProductsRepository(db *gorm.DB, redis *redis.Client) *ProductsRepository {
	return &ProductsRepository{db: db, redis: redis}
}

var _ ProductStore = (*ProductsRepository)(nil)

func productCacheKey(id uuid.UUID) string {
	return "backoffice:products:detail:" + id.String()
}

func productListCacheKey(page, limit int, search string) string {
	return fmt.Sprintf("backoffice:products:list:%d:%d:%s", page, limit, strings.ToLower(search))
}

// invalidateProductCaches drops cached entries after a write. Best-effort: a
// cache failure never fails the write.
func (r *ProductsRepository) invalidateProductCaches(id uuid.UUID) {
	if r.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = r.redis.Del(ctx, productCacheKey(id)).Err()
	iter := r.redis.Scan(ctx, 0, "backoffice:products:list:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = r.redis.Del(ctx, iter.Val()).Err()
	}
}

// GetAll returns every product. The importer loads this once per run to build
// its SKU cache.
func (r *ProductsRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// Create persists a new product
func (r *ProductsRepository) Create(product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.invalidateProductCaches(product.ID)
	return nil
}

// Update persists changes to an existing product
func (r *ProductsRepository) Update(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	r.invalidateProductCaches(product.ID)
	return nil
}

// GetByID fetches a single product, trying the redis cache first
func (r *ProductsRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	if r.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cached, err := r.redis.Get(ctx, productCacheKey(id)).Result(); err == nil {
			var product models.Product
			if json.Unmarshal([]byte(cached), &product) == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(&product); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = r.redis.Set(ctx, productCacheKey(id), data, productCacheTTL).Err()
		}
	}
	return &product, nil
}

// GetBySKU fetches a product by its natural key, case-insensitive
func (r *ProductsRepository) GetBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "LOWER(sku) = LOWER(?)", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns a page of products, optionally filtered by a name/SKU search term
func (r *ProductsRepository) List(page, limit int, search string) ([]models.Product, int64, error) {
	type cachedList struct {
		Products []models.Product `json:"products"`
		Total    int64            `json:"total"`
	}

	key := productListCacheKey(page, limit, search)
	if r.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cached, err := r.redis.Get(ctx, key).Result(); err == nil {
			var entry cachedList
			if json.Unmarshal([]byte(cached), &entry) == nil {
				return entry.Products, entry.Total, nil
			}
		}
	}

	query := r.db.Model(&models.Product{})
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(cachedList{Products: products, Total: total}); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = r.redis.Set(ctx, key, data, productListCacheTTL).Err()
		}
	}
	return products, total, nil
}

// Delete soft-deletes a product
func (r *ProductsRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(id)
	return nil
}
