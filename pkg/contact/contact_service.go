package contact

import (
	"context"
	"fmt"
	"strings"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"

	"github.com/google/uuid"
)

type (
	ContactService interface {
		ListContacts(ctx context.Context, ownerID uuid.UUID, favorite *bool) ([]domain.ContactResponse, error)
		GetContact(ctx context.Context, ownerID uuid.UUID, id string) (domain.ContactResponse, error)
		AddContact(ctx context.Context, ownerID uuid.UUID, req domain.AddContactRequest) (domain.ContactResponse, error)
		UpdateContact(ctx context.Context, ownerID uuid.UUID, id string, req domain.UpdateContactRequest) (domain.ContactResponse, error)
		DeleteContact(ctx context.Context, ownerID uuid.UUID, id string) error
		SetFavorite(ctx context.Context, ownerID uuid.UUID, id string, favorite bool) (domain.ContactResponse, error)
	}

	contactService struct {
		contactRepository ContactRepository
	}
)

func NewContactService(contactRepository ContactRepository) ContactService {
	return &contactService{contactRepository: contactRepository}
}

func toContactResponse(c *entities.Contact) domain.ContactResponse {
	return domain.ContactResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Favorite: c.Favorite,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrContactNotFound
	}
	return parsed, nil
}

func (s *contactService) ListContacts(ctx context.Context, ownerID uuid.UUID, favorite *bool) ([]domain.ContactResponse, error) {
	contacts, err := s.contactRepository.GetContacts(ctx, ownerID, favorite)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("list contacts: %w", err))
	}
	res := make([]domain.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		res = append(res, toContactResponse(c))
	}
	return res, nil
}

func (s *contactService) GetContact(ctx context.Context, ownerID uuid.UUID, id string) (domain.ContactResponse, error) {
	contactID, err := parseID(id)
	if err != nil {
		return domain.ContactResponse{}, err
	}
	contact, err := s.contactRepository.GetContactByID(ctx, ownerID, contactID)
	if err != nil {
		return domain.ContactResponse{}, domain.Internal(err)
	}
	return toContactResponse(contact), nil
}

func (s *contactService) AddContact(ctx context.Context, ownerID uuid.UUID, req domain.AddContactRequest) (domain.ContactResponse, error) {
	contact := &entities.Contact{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Favorite: req.Favorite,
	}
	if err := s.contactRepository.AddContact(ctx, contact); err != nil {
		return domain.ContactResponse{}, domain.Internal(fmt.Errorf("add contact: %w", err))
	}
	return toContactResponse(contact), nil
}

func (s *contactService) UpdateContact(ctx context.Context, ownerID uuid.UUID, id string, req domain.UpdateContactRequest) (domain.ContactResponse, error) {
	if req.IsEmpty() {
		return domain.ContactResponse{}, domain.ErrEmptyContactUpdate
	}
	contactID, err := parseID(id)
	if err != nil {
		return domain.ContactResponse{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Favorite != nil {
		fields["favorite"] = *req.Favorite
	}

	if err := s.contactRepository.UpdateContact(ctx, ownerID, contactID, fields); err != nil {
		return domain.ContactResponse{}, domain.Internal(err)
	}
	return s.GetContact(ctx, ownerID, id)
}

func (s *contactService) DeleteContact(ctx context.Context, ownerID uuid.UUID, id string) error {
	contactID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.contactRepository.DeleteContact(ctx, ownerID, contactID); err != nil {
		return domain.Internal(err)
	}
	return nil
}

func (s *contactService) SetFavorite(ctx context.Context, ownerID uuid.UUID, id string, favorite bool) (domain.ContactResponse, error) {
	return s.UpdateContact(ctx, ownerID, id, domain.UpdateContactRequest{Favorite: &favorite})
}
