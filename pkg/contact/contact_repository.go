package contact

import (
	"context"
	"errors"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ContactRepository scopes every query to the owning user.
	ContactRepository interface {
		GetContacts(ctx context.Context, ownerID uuid.UUID, favorite *bool) ([]*entities.Contact, error)
		GetContactByID(ctx context.Context, ownerID, id uuid.UUID) (*entities.Contact, error)
		AddContact(ctx context.Context, contact *entities.Contact) error
		UpdateContact(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) error
		DeleteContact(ctx context.Context, ownerID, id uuid.UUID) error
	}

	contactRepository struct {
		db *gorm.DB
	}
)

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) GetContacts(ctx context.Context, ownerID uuid.UUID, favorite *bool) ([]*entities.Contact, error) {
	var contacts []*entities.Contact
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if favorite != nil {
		query = query.Where("favorite = ?", *favorite)
	}
	if err := query.Order("name asc").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) GetContactByID(ctx context.Context, ownerID, id uuid.UUID) (*entities.Contact, error) {
	var contact entities.Contact
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) AddContact(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) UpdateContact(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&entities.Contact{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *contactRepository) DeleteContact(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entities.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
