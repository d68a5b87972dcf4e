package domain

var (
	MessageSuccessGetProducts       = "products retrieved successfully"
	MessageSuccessGetProduct        = "product retrieved successfully"
	MessageSuccessAddProduct        = "product added successfully"
	MessageSuccessUpdateProduct     = "product updated successfully"
	MessageSuccessDeleteProduct     = "product deleted successfully"
	MessageSuccessSearchProducts    = "products found"
	MessageSuccessGetDailyIntake    = "daily calorie intake retrieved successfully"
	MessageSuccessGetNotRecommended = "not recommended products retrieved successfully"

	MessageFailedGetProducts       = "failed to retrieve products"
	MessageFailedGetProduct        = "failed to retrieve product"
	MessageFailedAddProduct        = "failed to add product"
	MessageFailedUpdateProduct     = "failed to update product"
	MessageFailedDeleteProduct     = "failed to delete product"
	MessageFailedSearchProducts    = "failed to search products"
	MessageFailedGetDailyIntake    = "failed to calculate daily calorie intake"
	MessageFailedGetNotRecommended = "failed to retrieve not recommended products"

	ErrProductNotFound    = NewError(KindNotFound, "product not found")
	ErrInvalidBloodGroup  = NewError(KindValidation, "blood group must be between 1 and 4")
	ErrEmptySearchTitle   = NewError(KindValidation, "title is required for search")
	ErrEmptyProductUpdate = NewError(KindValidation, "at least one field must be provided")
)

const (
	BloodGroupCount          = 4
	DefaultNotRecommendedCap = 5
	MaxNotRecommendedCap     = 20
)

type (
	AddProductRequest struct {
		Categories           string  `json:"categories" validate:"required"`
		Weight               float64 `json:"weight" validate:"required,gt=0"`
		Title                string  `json:"title" validate:"required"`
		Calories             float64 `json:"calories" validate:"gte=0"`
		GroupBloodNotAllowed []bool  `json:"groupBloodNotAllowed" validate:"required,len=4"`
	}

	UpdateProductRequest struct {
		Categories           *string  `json:"categories" validate:"omitempty"`
		Weight               *float64 `json:"weight" validate:"omitempty,gt=0"`
		Title                *string  `json:"title" validate:"omitempty"`
		Calories             *float64 `json:"calories" validate:"omitempty,gte=0"`
		GroupBloodNotAllowed []bool   `json:"groupBloodNotAllowed" validate:"omitempty,len=4"`
	}

	ProductResponse struct {
		ID                   string  `json:"id"`
		Categories           string  `json:"categories"`
		Weight               float64 `json:"weight"`
		Title                string  `json:"title"`
		Calories             float64 `json:"calories"`
		GroupBloodNotAllowed [4]bool `json:"groupBloodNotAllowed"`
	}

	DailyIntakeResponse struct {
		TotalCalories float64 `json:"totalCalories"`
	}
)

func (r UpdateProductRequest) IsEmpty() bool {
	return r.Categories == nil && r.Weight == nil && r.Title == nil &&
		r.Calories == nil && r.GroupBloodNotAllowed == nil
}
