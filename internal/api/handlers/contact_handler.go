package handlers

import (
	"strconv"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/internal/api/presenters"
	"SlimMom-Backend/internal/middleware"
	"SlimMom-Backend/pkg/contact"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ContactHandler interface {
		GetContacts(c *fiber.Ctx) error
		GetContact(c *fiber.Ctx) error
		AddContact(c *fiber.Ctx) error
		UpdateContact(c *fiber.Ctx) error
		DeleteContact(c *fiber.Ctx) error
		UpdateFavorite(c *fiber.Ctx) error
	}

	contactHandler struct {
		contactService contact.ContactService
		validator      *validator.Validate
	}
)

func NewContactHandler(contactService contact.ContactService, validator *validator.Validate) ContactHandler {
	return &contactHandler{
		contactService: contactService,
		validator:      validator,
	}
}

func (h *contactHandler) GetContacts(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}

	var favorite *bool
	if raw := c.Query("favorite"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetContacts, err)
		}
		favorite = &v
	}

	res, err := h.contactService.ListContacts(c.UserContext(), u.ID, favorite)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetContacts, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetContacts)
}

func (h *contactHandler) GetContact(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	res, err := h.contactService.GetContact(c.UserContext(), u.ID, c.Params("contactId"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetContact, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetContact)
}

func (h *contactHandler) AddContact(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.AddContactRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddContact, err)
	}

	res, err := h.contactService.AddContact(c.UserContext(), u.ID, *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAddContact, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddContact)
}

func (h *contactHandler) UpdateContact(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.UpdateContactRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateContact, err)
	}

	res, err := h.contactService.UpdateContact(c.UserContext(), u.ID, c.Params("contactId"), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateContact, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateContact)
}

func (h *contactHandler) DeleteContact(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.contactService.DeleteContact(c.UserContext(), u.ID, c.Params("contactId")); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDeleteContact, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteContact)
}

func (h *contactHandler) UpdateFavorite(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.UpdateFavoriteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFavorite, err)
	}

	res, err := h.contactService.SetFavorite(c.UserContext(), u.ID, c.Params("contactId"), *req.Favorite)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateFavorite, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFavorite)
}
