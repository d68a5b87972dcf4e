package product

import (
	"context"
	"fmt"
	"strings"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	ProductService interface {
		ListProducts(ctx context.Context) ([]domain.ProductResponse, error)
		GetProduct(ctx context.Context, id string) (domain.ProductResponse, error)
		AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductResponse, error)
		DeleteProduct(ctx context.Context, id string) error
		SearchProducts(ctx context.Context, title string) ([]domain.ProductResponse, error)
		ComputeAggregateIntake(ctx context.Context) (domain.DailyIntakeResponse, error)
		NotRecommendedForGroup(ctx context.Context, bloodGroup int, limit int) ([]domain.ProductResponse, error)
	}

	productService struct {
		productRepository ProductRepository
	}
)

func NewProductService(productRepository ProductRepository) ProductService {
	return &productService{productRepository: productRepository}
}

func ToProductResponse(p *entities.Product) domain.ProductResponse {
	return domain.ProductResponse{
		ID:                   p.ID.String(),
		Categories:           p.Categories,
		Weight:               p.Weight,
		Title:                p.Title,
		Calories:             p.Calories,
		GroupBloodNotAllowed: p.NotAllowed.Flags(),
	}
}

func toProductResponses(products []*entities.Product) []domain.ProductResponse {
	res := make([]domain.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, ToProductResponse(p))
	}
	return res
}

// parseID maps malformed ids to not found, the same as an unknown id.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrProductNotFound
	}
	return parsed, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.ProductResponse, error) {
	products, err := s.productRepository.GetProducts(ctx)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("list products: %w", err))
	}
	return toProductResponses(products), nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (domain.ProductResponse, error) {
	productID, err := parseID(id)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	product, err := s.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		return domain.ProductResponse{}, domain.Internal(err)
	}
	return ToProductResponse(product), nil
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error) {
	product := &entities.Product{
		ID:         uuid.New(),
		Categories: strings.TrimSpace(req.Categories),
		Weight:     req.Weight,
		Title:      strings.TrimSpace(req.Title),
		Calories:   req.Calories,
		NotAllowed: entities.NewBloodGroupRestriction(req.GroupBloodNotAllowed),
	}
	if err := s.productRepository.AddProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, domain.Internal(fmt.Errorf("add product: %w", err))
	}
	log.Infow("product service: product added", "product_id", product.ID.String())
	return ToProductResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductResponse, error) {
	if req.IsEmpty() {
		return domain.ProductResponse{}, domain.ErrEmptyProductUpdate
	}
	productID, err := parseID(id)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	fields := map[string]any{}
	if req.Categories != nil {
		fields["categories"] = strings.TrimSpace(*req.Categories)
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Calories != nil {
		fields["calories"] = *req.Calories
	}
	if req.GroupBloodNotAllowed != nil {
		flags := entities.NewBloodGroupRestriction(req.GroupBloodNotAllowed).Flags()
		for i, notAllowed := range flags {
			fields[bloodGroupColumns[i+1]] = notAllowed
		}
	}

	if err := s.productRepository.UpdateProduct(ctx, productID, fields); err != nil {
		return domain.ProductResponse{}, domain.Internal(err)
	}
	return s.GetProduct(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.productRepository.DeleteProduct(ctx, productID); err != nil {
		return domain.Internal(err)
	}
	return nil
}

func (s *productService) SearchProducts(ctx context.Context, title string) ([]domain.ProductResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptySearchTitle
	}
	products, err := s.productRepository.SearchProductsByTitle(ctx, title)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("search products: %w", err))
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponses(products), nil
}

func (s *productService) ComputeAggregateIntake(ctx context.Context) (domain.DailyIntakeResponse, error) {
	total, err := s.productRepository.SumCalories(ctx)
	if err != nil {
		return domain.DailyIntakeResponse{}, domain.Internal(fmt.Errorf("sum calories: %w", err))
	}
	return domain.DailyIntakeResponse{TotalCalories: total}, nil
}

func (s *productService) NotRecommendedForGroup(ctx context.Context, bloodGroup int, limit int) ([]domain.ProductResponse, error) {
	if bloodGroup < 1 || bloodGroup > domain.BloodGroupCount {
		return nil, domain.ErrInvalidBloodGroup
	}
	switch {
	case limit <= 0:
		limit = domain.DefaultNotRecommendedCap
	case limit > domain.MaxNotRecommendedCap:
		limit = domain.MaxNotRecommendedCap
	}
	products, err := s.productRepository.GetProductsNotAllowedForGroup(ctx, bloodGroup, limit)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("not recommended products: %w", err))
	}
	return toProductResponses(products), nil
}
