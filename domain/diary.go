package domain

import "time"

var (
	MessageSuccessAddConsumedProduct    = "product added to the diary"
	MessageSuccessDeleteConsumedProduct = "product removed from the diary"
	MessageSuccessGetDailyDetails       = "daily details retrieved successfully"

	MessageFailedAddConsumedProduct    = "failed to add product to the diary"
	MessageFailedDeleteConsumedProduct = "failed to remove product from the diary"
	MessageFailedGetDailyDetails       = "failed to retrieve daily details"

	ErrDiaryNotFound           = NewError(KindNotFound, "diary for the given date does not exist")
	ErrConsumedProductNotFound = NewError(KindNotFound, "consumed product not found in the diary")
	ErrInvalidQuantity         = NewError(KindValidation, "quantity must be positive")
	ErrDiaryInconsistent       = NewError(KindInternal, "diary totals are inconsistent")
)

type (
	AddConsumedProductRequest struct {
		Date      string  `json:"date" validate:"required"`
		ProductID string  `json:"productId" validate:"required"`
		Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	}

	DeleteConsumedProductRequest struct {
		Date      string `json:"date" validate:"required"`
		ProductID string `json:"productId" validate:"required"`
	}

	DailyDetailsRequest struct {
		Date string `json:"date" query:"date" validate:"required"`
	}

	ConsumedProductResponse struct {
		ProductID string  `json:"productId"`
		Title     string  `json:"title"`
		Calories  float64 `json:"calories"`
		Quantity  float64 `json:"quantity"`
	}

	DiaryResponse struct {
		ID               string                    `json:"id"`
		Date             time.Time                 `json:"date"`
		TotalCalories    float64                   `json:"totalCalories"`
		ConsumedProducts []ConsumedProductResponse `json:"consumedProducts"`
	}
)
