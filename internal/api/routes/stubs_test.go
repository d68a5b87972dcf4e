package routes

import (
	"context"
	"mime/multipart"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"

	"github.com/google/uuid"
)

var testUser = &entities.User{ID: uuid.New(), Email: "a@b.com", Subscription: domain.SubscriptionStarter}

const validToken = "session-token"

type userServiceStub struct {
	loggedOut bool
}

func (s *userServiceStub) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if req.Email == testUser.Email {
		return domain.RegisterResponse{}, domain.ErrEmailTaken
	}
	return domain.RegisterResponse{Email: req.Email, Subscription: domain.SubscriptionStarter, VerificationToken: "secret", EmailSent: true}, nil
}

func (s *userServiceStub) RedeemVerification(ctx context.Context, verificationToken string) error {
	if verificationToken != "good" {
		return domain.ErrVerificationMissing
	}
	return nil
}

func (s *userServiceStub) ResendVerification(ctx context.Context, req domain.ResendVerificationRequest) (domain.ResendVerificationResponse, error) {
	return domain.ResendVerificationResponse{Email: req.Email, EmailSent: true}, nil
}

func (s *userServiceStub) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if req.Email != testUser.Email || req.Password != "password1" {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	return domain.LoginResponse{Token: validToken, User: s.Current(testUser)}, nil
}

func (s *userServiceStub) Authorize(ctx context.Context, token string) (*entities.User, error) {
	if token != validToken || s.loggedOut {
		return nil, domain.ErrUnauthorized
	}
	u := *testUser
	return &u, nil
}

func (s *userServiceStub) Logout(ctx context.Context, user *entities.User) error {
	s.loggedOut = true
	return nil
}

func (s *userServiceStub) Current(user *entities.User) domain.CurrentUser {
	return domain.CurrentUser{Email: user.Email, Subscription: user.Subscription}
}

func (s *userServiceStub) UpdateSubscription(ctx context.Context, user *entities.User, req domain.UpdateSubscriptionRequest) (domain.CurrentUser, error) {
	user.Subscription = req.Subscription
	return s.Current(user), nil
}

func (s *userServiceStub) UpdateAvatar(ctx context.Context, user *entities.User, file *multipart.FileHeader) (domain.UpdateAvatarResponse, error) {
	return domain.UpdateAvatarResponse{AvatarURL: "https://cdn.example.com/avatars/" + file.Filename}, nil
}

type productServiceStub struct{}

var knownProduct = domain.ProductResponse{ID: uuid.NewString(), Title: "Buckwheat", Calories: 313}

func (productServiceStub) ListProducts(ctx context.Context) ([]domain.ProductResponse, error) {
	return []domain.ProductResponse{knownProduct}, nil
}

func (productServiceStub) GetProduct(ctx context.Context, id string) (domain.ProductResponse, error) {
	if id != knownProduct.ID {
		return domain.ProductResponse{}, domain.ErrProductNotFound
	}
	return knownProduct, nil
}

func (productServiceStub) AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error) {
	return domain.ProductResponse{ID: uuid.NewString(), Title: req.Title, Calories: req.Calories}, nil
}

func (productServiceStub) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductResponse, error) {
	if req.IsEmpty() {
		return domain.ProductResponse{}, domain.ErrEmptyProductUpdate
	}
	return knownProduct, nil
}

func (productServiceStub) DeleteProduct(ctx context.Context, id string) error {
	return nil
}

func (productServiceStub) SearchProducts(ctx context.Context, title string) ([]domain.ProductResponse, error) {
	if title == "" {
		return nil, domain.ErrEmptySearchTitle
	}
	return []domain.ProductResponse{knownProduct}, nil
}

func (productServiceStub) ComputeAggregateIntake(ctx context.Context) (domain.DailyIntakeResponse, error) {
	return domain.DailyIntakeResponse{TotalCalories: 2000}, nil
}

func (productServiceStub) NotRecommendedForGroup(ctx context.Context, bloodGroup int, limit int) ([]domain.ProductResponse, error) {
	if bloodGroup < 1 || bloodGroup > 4 {
		return nil, domain.ErrInvalidBloodGroup
	}
	return []domain.ProductResponse{knownProduct}, nil
}

type diaryServiceStub struct {
	lastUser uuid.UUID
}

func (s *diaryServiceStub) RecordConsumption(ctx context.Context, userID uuid.UUID, req domain.AddConsumedProductRequest) (domain.DiaryResponse, error) {
	s.lastUser = userID
	return domain.DiaryResponse{TotalCalories: req.Quantity * 100}, nil
}

func (s *diaryServiceStub) RemoveConsumption(ctx context.Context, userID uuid.UUID, req domain.DeleteConsumedProductRequest) (domain.DiaryResponse, error) {
	return domain.DiaryResponse{}, domain.ErrDiaryNotFound
}

func (s *diaryServiceStub) GetDailyDetails(ctx context.Context, userID uuid.UUID, date string) (domain.DiaryResponse, error) {
	if date != "2024-01-01" {
		return domain.DiaryResponse{}, domain.ErrDiaryNotFound
	}
	return domain.DiaryResponse{TotalCalories: 100, ConsumedProducts: []domain.ConsumedProductResponse{}}, nil
}

type contactServiceStub struct{}

func (contactServiceStub) ListContacts(ctx context.Context, ownerID uuid.UUID, favorite *bool) ([]domain.ContactResponse, error) {
	return []domain.ContactResponse{{ID: "1", Name: "Ann"}}, nil
}

func (contactServiceStub) GetContact(ctx context.Context, ownerID uuid.UUID, id string) (domain.ContactResponse, error) {
	return domain.ContactResponse{}, domain.ErrContactNotFound
}

func (contactServiceStub) AddContact(ctx context.Context, ownerID uuid.UUID, req domain.AddContactRequest) (domain.ContactResponse, error) {
	return domain.ContactResponse{ID: "2", Name: req.Name, Email: req.Email, Phone: req.Phone}, nil
}

func (contactServiceStub) UpdateContact(ctx context.Context, ownerID uuid.UUID, id string, req domain.UpdateContactRequest) (domain.ContactResponse, error) {
	if req.IsEmpty() {
		return domain.ContactResponse{}, domain.ErrEmptyContactUpdate
	}
	return domain.ContactResponse{ID: id}, nil
}

func (contactServiceStub) DeleteContact(ctx context.Context, ownerID uuid.UUID, id string) error {
	return nil
}

func (contactServiceStub) SetFavorite(ctx context.Context, ownerID uuid.UUID, id string, favorite bool) (domain.ContactResponse, error) {
	return domain.ContactResponse{ID: id, Favorite: favorite}, nil
}
