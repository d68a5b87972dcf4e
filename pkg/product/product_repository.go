package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bloodGroupColumns whitelists the restriction columns so the group number
// never reaches SQL as text.
var bloodGroupColumns = map[int]string{
	1: "not_allowed_group1",
	2: "not_allowed_group2",
	3: "not_allowed_group3",
	4: "not_allowed_group4",
}

type (
	ProductRepository interface {
		GetProducts(ctx context.Context) ([]*entities.Product, error)
		GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
		SearchProductsByTitle(ctx context.Context, title string) ([]*entities.Product, error)
		GetProductsNotAllowedForGroup(ctx context.Context, group int, limit int) ([]*entities.Product, error)
		SumCalories(ctx context.Context) (float64, error)
		AddProduct(ctx context.Context, product *entities.Product) error
		UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) error
		DeleteProduct(ctx context.Context, id uuid.UUID) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	var products []*entities.Product
	if err := r.db.WithContext(ctx).Order("title asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *productRepository) SearchProductsByTitle(ctx context.Context, title string) ([]*entities.Product, error) {
	var products []*entities.Product
	if err := r.db.WithContext(ctx).
		Where("title ILIKE ?", "%"+escapeLike(title)+"%").
		Order("title asc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductsNotAllowedForGroup(ctx context.Context, group int, limit int) ([]*entities.Product, error) {
	column, ok := bloodGroupColumns[group]
	if !ok {
		return nil, domain.ErrInvalidBloodGroup
	}

	var products []*entities.Product
	if err := r.db.WithContext(ctx).
		Where(fmt.Sprintf("%s = ?", column), true).
		Order("title asc").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) SumCalories(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).Model(&entities.Product{}).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productRepository) AddProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&entities.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
