package domain

var (
	MessageSuccessGetContacts    = "contacts retrieved successfully"
	MessageSuccessGetContact     = "contact retrieved successfully"
	MessageSuccessAddContact     = "contact added successfully"
	MessageSuccessUpdateContact  = "contact updated successfully"
	MessageSuccessDeleteContact  = "contact deleted successfully"
	MessageSuccessUpdateFavorite = "contact favorite status updated"

	MessageFailedGetContacts    = "failed to retrieve contacts"
	MessageFailedGetContact     = "failed to retrieve contact"
	MessageFailedAddContact     = "failed to add contact"
	MessageFailedUpdateContact  = "failed to update contact"
	MessageFailedDeleteContact  = "failed to delete contact"
	MessageFailedUpdateFavorite = "failed to update contact favorite status"

	ErrContactNotFound    = NewError(KindNotFound, "contact not found")
	ErrEmptyContactUpdate = NewError(KindValidation, "missing fields")
)

type (
	AddContactRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone" validate:"required,phone"`
		Favorite bool   `json:"favorite"`
	}

	UpdateContactRequest struct {
		Name     *string `json:"name" validate:"omitempty,min=1"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Phone    *string `json:"phone" validate:"omitempty,phone"`
		Favorite *bool   `json:"favorite"`
	}

	UpdateFavoriteRequest struct {
		Favorite *bool `json:"favorite" validate:"required"`
	}

	ContactResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Favorite bool   `json:"favorite"`
	}
)

func (r UpdateContactRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil && r.Favorite == nil
}
