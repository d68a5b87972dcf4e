package diary

import (
	"context"
	"errors"
	"time"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DiaryRepository interface {
		GetDiary(ctx context.Context, userID uuid.UUID, day time.Time) (*entities.Diary, error)
		// Modify runs fn against the locked (user, day) entry and persists
		// the result. With create set, a missing entry is created first.
		// An error from fn rolls back every change.
		Modify(ctx context.Context, userID uuid.UUID, day time.Time, create bool, fn func(diary *entities.Diary) error) (*entities.Diary, error)
	}

	diaryRepository struct {
		db *gorm.DB
	}
)

func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) GetDiary(ctx context.Context, userID uuid.UUID, day time.Time) (*entities.Diary, error) {
	var diary entities.Diary
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&diary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDiaryNotFound
		}
		return nil, err
	}
	if diary.ConsumedProducts == nil {
		diary.ConsumedProducts = datatypes.JSONSlice[entities.ConsumedProduct]{}
	}
	return &diary, nil
}

func (r *diaryRepository) Modify(ctx context.Context, userID uuid.UUID, day time.Time, create bool, fn func(diary *entities.Diary) error) (*entities.Diary, error) {
	var diary entities.Diary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if create {
			// two first writers converge on the same row
			seed := &entities.Diary{
				ID:               uuid.New(),
				UserID:           userID,
				Date:             day,
				ConsumedProducts: datatypes.JSONSlice[entities.ConsumedProduct]{},
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoNothing: true,
			}).Create(seed).Error; err != nil {
				return err
			}
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND date = ?", userID, day).
			First(&diary).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDiaryNotFound
			}
			return err
		}
		if diary.ConsumedProducts == nil {
			diary.ConsumedProducts = datatypes.JSONSlice[entities.ConsumedProduct]{}
		}

		if err := fn(&diary); err != nil {
			return err
		}

		return tx.Model(&entities.Diary{}).
			Where("id = ?", diary.ID).
			Updates(map[string]any{
				"total_calories":    diary.TotalCalories,
				"consumed_products": diary.ConsumedProducts,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &diary, nil
}
