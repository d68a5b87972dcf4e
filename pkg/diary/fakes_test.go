package diary

import (
	"context"
	"sync"
	"time"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type diaryKey struct {
	userID uuid.UUID
	day    time.Time
}

// memoryDiaryRepository serialises Modify calls the way the row lock does
// and discards fn's changes when it fails.
type memoryDiaryRepository struct {
	mu      sync.Mutex
	diaries map[diaryKey]*entities.Diary
}

func newMemoryDiaryRepository() *memoryDiaryRepository {
	return &memoryDiaryRepository{diaries: map[diaryKey]*entities.Diary{}}
}

func cloneDiary(d *entities.Diary) *entities.Diary {
	cp := *d
	cp.ConsumedProducts = append(datatypes.JSONSlice[entities.ConsumedProduct]{}, d.ConsumedProducts...)
	return &cp
}

func (r *memoryDiaryRepository) GetDiary(ctx context.Context, userID uuid.UUID, day time.Time) (*entities.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.diaries[diaryKey{userID, day}]
	if !ok {
		return nil, domain.ErrDiaryNotFound
	}
	return cloneDiary(d), nil
}

func (r *memoryDiaryRepository) Modify(ctx context.Context, userID uuid.UUID, day time.Time, create bool, fn func(diary *entities.Diary) error) (*entities.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := diaryKey{userID, day}
	current, ok := r.diaries[key]
	if !ok {
		if !create {
			return nil, domain.ErrDiaryNotFound
		}
		current = &entities.Diary{
			ID:               uuid.New(),
			UserID:           userID,
			Date:             day,
			ConsumedProducts: datatypes.JSONSlice[entities.ConsumedProduct]{},
		}
	}

	working := cloneDiary(current)
	if err := fn(working); err != nil {
		return nil, err
	}
	r.diaries[key] = working
	return cloneDiary(working), nil
}

type memoryProductRepository struct {
	products map[uuid.UUID]*entities.Product
}

func newMemoryProductRepository(products ...*entities.Product) *memoryProductRepository {
	r := &memoryProductRepository{products: map[uuid.UUID]*entities.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memoryProductRepository) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	res := make([]*entities.Product, 0, len(r.products))
	for _, p := range r.products {
		res = append(res, p)
	}
	return res, nil
}

func (r *memoryProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *memoryProductRepository) SearchProductsByTitle(ctx context.Context, title string) ([]*entities.Product, error) {
	return nil, nil
}

func (r *memoryProductRepository) GetProductsNotAllowedForGroup(ctx context.Context, group int, limit int) ([]*entities.Product, error) {
	return nil, nil
}

func (r *memoryProductRepository) SumCalories(ctx context.Context) (float64, error) {
	return 0, nil
}

func (r *memoryProductRepository) AddProduct(ctx context.Context, product *entities.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memoryProductRepository) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return nil
}

func (r *memoryProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}
