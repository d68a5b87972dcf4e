package handlers

import (
	"strconv"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/internal/api/presenters"
	"SlimMom-Backend/pkg/product"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProductHandler interface {
		GetProducts(c *fiber.Ctx) error
		GetProduct(c *fiber.Ctx) error
		SearchProducts(c *fiber.Ctx) error
		AddProduct(c *fiber.Ctx) error
		UpdateProduct(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error
		GetNotRecommendedByBloodGroup(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
		validator      *validator.Validate
	}
)

func NewProductHandler(productService product.ProductService, validator *validator.Validate) ProductHandler {
	return &productHandler{
		productService: productService,
		validator:      validator,
	}
}

func (h *productHandler) GetProducts(c *fiber.Ctx) error {
	res, err := h.productService.ListProducts(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetProducts, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *productHandler) GetProduct(c *fiber.Ctx) error {
	res, err := h.productService.GetProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetProduct, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProduct)
}

func (h *productHandler) SearchProducts(c *fiber.Ctx) error {
	res, err := h.productService.SearchProducts(c.UserContext(), c.Query("title"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedSearchProducts, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchProducts)
}

func (h *productHandler) AddProduct(c *fiber.Ctx) error {
	req := new(domain.AddProductRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProduct, err)
	}

	res, err := h.productService.AddProduct(c.UserContext(), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAddProduct, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddProduct)
}

func (h *productHandler) UpdateProduct(c *fiber.Ctx) error {
	req := new(domain.UpdateProductRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProduct, err)
	}

	res, err := h.productService.UpdateProduct(c.UserContext(), c.Params("productId"), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateProduct, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProduct)
}

func (h *productHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.UserContext(), c.Params("productId")); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDeleteProduct, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}

func (h *productHandler) GetNotRecommendedByBloodGroup(c *fiber.Ctx) error {
	group, err := strconv.Atoi(c.Params("group"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNotRecommended, domain.ErrInvalidBloodGroup)
	}
	res, err := h.productService.NotRecommendedForGroup(c.UserContext(), group, c.QueryInt("limit", domain.DefaultNotRecommendedCap))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetNotRecommended, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotRecommended)
}
