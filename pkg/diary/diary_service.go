package diary

import (
	"context"
	"fmt"
	"math"
	"time"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"
	"SlimMom-Backend/pkg/product"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// totalTolerance absorbs float rounding left behind by repeated add/remove.
const totalTolerance = 1e-6

type (
	DiaryService interface {
		RecordConsumption(ctx context.Context, userID uuid.UUID, req domain.AddConsumedProductRequest) (domain.DiaryResponse, error)
		RemoveConsumption(ctx context.Context, userID uuid.UUID, req domain.DeleteConsumedProductRequest) (domain.DiaryResponse, error)
		GetDailyDetails(ctx context.Context, userID uuid.UUID, date string) (domain.DiaryResponse, error)
	}

	diaryService struct {
		diaryRepository   DiaryRepository
		productRepository product.ProductRepository
	}
)

func NewDiaryService(diaryRepository DiaryRepository, productRepository product.ProductRepository) DiaryService {
	return &diaryService{
		diaryRepository:   diaryRepository,
		productRepository: productRepository,
	}
}

// ParseDay accepts YYYY-MM-DD or RFC3339 and returns midnight UTC of that day.
func ParseDay(date string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, date); err != nil {
			return time.Time{}, domain.ErrInvalidDate
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func ToDiaryResponse(d *entities.Diary) domain.DiaryResponse {
	products := make([]domain.ConsumedProductResponse, 0, len(d.ConsumedProducts))
	for _, p := range d.ConsumedProducts {
		products = append(products, domain.ConsumedProductResponse{
			ProductID: p.ProductID.String(),
			Title:     p.Title,
			Calories:  p.Calories,
			Quantity:  p.Quantity,
		})
	}
	return domain.DiaryResponse{
		ID:               d.ID.String(),
		Date:             d.Date,
		TotalCalories:    d.TotalCalories,
		ConsumedProducts: products,
	}
}

func (s *diaryService) RecordConsumption(ctx context.Context, userID uuid.UUID, req domain.AddConsumedProductRequest) (domain.DiaryResponse, error) {
	if req.Quantity <= 0 || math.IsNaN(req.Quantity) || math.IsInf(req.Quantity, 0) {
		return domain.DiaryResponse{}, domain.ErrInvalidQuantity
	}
	day, err := ParseDay(req.Date)
	if err != nil {
		return domain.DiaryResponse{}, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return domain.DiaryResponse{}, domain.ErrProductNotFound
	}

	p, err := s.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		return domain.DiaryResponse{}, domain.Internal(err)
	}
	consumed := entities.ConsumedProduct{
		ProductID: p.ID,
		Title:     p.Title,
		Calories:  p.Calories,
		Quantity:  req.Quantity,
	}

	diary, err := s.diaryRepository.Modify(ctx, userID, day, true, func(d *entities.Diary) error {
		d.ConsumedProducts = append(d.ConsumedProducts, consumed)
		d.TotalCalories += consumed.Total()
		return nil
	})
	if err != nil {
		return domain.DiaryResponse{}, domain.Internal(fmt.Errorf("record consumption: %w", err))
	}
	return ToDiaryResponse(diary), nil
}

func (s *diaryService) RemoveConsumption(ctx context.Context, userID uuid.UUID, req domain.DeleteConsumedProductRequest) (domain.DiaryResponse, error) {
	day, err := ParseDay(req.Date)
	if err != nil {
		return domain.DiaryResponse{}, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return domain.DiaryResponse{}, domain.ErrConsumedProductNotFound
	}

	diary, err := s.diaryRepository.Modify(ctx, userID, day, false, func(d *entities.Diary) error {
		idx := -1
		for i, p := range d.ConsumedProducts {
			if p.ProductID == productID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrConsumedProductNotFound
		}

		total := d.TotalCalories - d.ConsumedProducts[idx].Total()
		if total < -totalTolerance*math.Max(1, math.Abs(d.TotalCalories)) {
			log.Errorw("diary service: total would become negative",
				"diary_id", d.ID.String(), "total", d.TotalCalories, "product_id", productID.String())
			return domain.ErrDiaryInconsistent
		}

		d.ConsumedProducts = append(d.ConsumedProducts[:idx], d.ConsumedProducts[idx+1:]...)
		switch {
		case len(d.ConsumedProducts) == 0:
			total = 0
		case total < 0:
			total = 0
		}
		d.TotalCalories = total
		return nil
	})
	if err != nil {
		return domain.DiaryResponse{}, domain.Internal(fmt.Errorf("remove consumption: %w", err))
	}
	return ToDiaryResponse(diary), nil
}

func (s *diaryService) GetDailyDetails(ctx context.Context, userID uuid.UUID, date string) (domain.DiaryResponse, error) {
	day, err := ParseDay(date)
	if err != nil {
		return domain.DiaryResponse{}, err
	}
	diary, err := s.diaryRepository.GetDiary(ctx, userID, day)
	if err != nil {
		return domain.DiaryResponse{}, domain.Internal(err)
	}
	return ToDiaryResponse(diary), nil
}
