package handlers

import (
	"strconv"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/internal/api/presenters"
	"SlimMom-Backend/internal/middleware"
	"SlimMom-Backend/pkg/diary"
	"SlimMom-Backend/pkg/product"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DiaryHandler interface {
		GetDailyIntake(c *fiber.Ctx) error
		GetNotRecommendedProducts(c *fiber.Ctx) error
		AddConsumedProduct(c *fiber.Ctx) error
		DeleteConsumedProduct(c *fiber.Ctx) error
		GetDailyDetails(c *fiber.Ctx) error
	}

	diaryHandler struct {
		diaryService   diary.DiaryService
		productService product.ProductService
		validator      *validator.Validate
	}
)

func NewDiaryHandler(diaryService diary.DiaryService, productService product.ProductService, validator *validator.Validate) DiaryHandler {
	return &diaryHandler{
		diaryService:   diaryService,
		productService: productService,
		validator:      validator,
	}
}

func (h *diaryHandler) GetDailyIntake(c *fiber.Ctx) error {
	res, err := h.productService.ComputeAggregateIntake(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDailyIntake, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyIntake)
}

func (h *diaryHandler) GetNotRecommendedProducts(c *fiber.Ctx) error {
	group, err := strconv.Atoi(c.Query("group"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNotRecommended, domain.ErrInvalidBloodGroup)
	}
	res, err := h.productService.NotRecommendedForGroup(c.UserContext(), group, c.QueryInt("limit", domain.DefaultNotRecommendedCap))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetNotRecommended, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotRecommended)
}

func (h *diaryHandler) AddConsumedProduct(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.AddConsumedProductRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddConsumedProduct, err)
	}

	res, err := h.diaryService.RecordConsumption(c.UserContext(), u.ID, *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAddConsumedProduct, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddConsumedProduct)
}

func (h *diaryHandler) DeleteConsumedProduct(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.DeleteConsumedProductRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteConsumedProduct, err)
	}

	res, err := h.diaryService.RemoveConsumption(c.UserContext(), u.ID, *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDeleteConsumedProduct, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteConsumedProduct)
}

func (h *diaryHandler) GetDailyDetails(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.DailyDetailsRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDailyDetails, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDailyDetails, err)
	}

	res, err := h.diaryService.GetDailyDetails(c.UserContext(), u.ID, req.Date)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDailyDetails, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyDetails)
}
