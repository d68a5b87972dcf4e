package domain

import (
	"mime/multipart"
)

var (
	MessageSuccessRegister           = "user created, check your email to verify the account"
	MessageSuccessLogin              = "user logged in successfully"
	MessageSuccessLogout             = "user logged out successfully"
	MessageSuccessGetCurrentUser     = "current user retrieved successfully"
	MessageSuccessVerifyEmail        = "verification successful"
	MessageSuccessSendVerification   = "verification email sent"
	MessageSuccessUpdateSubscription = "subscription updated successfully"
	MessageSuccessUpdateAvatar       = "avatar updated successfully"

	MessageFailedRegister           = "failed to register user"
	MessageFailedLogin              = "failed to login"
	MessageFailedLogout             = "failed to logout"
	MessageFailedVerifyEmail        = "failed to verify email"
	MessageFailedSendVerification   = "failed to send verification email"
	MessageFailedUpdateSubscription = "failed to update subscription"
	MessageFailedUpdateAvatar       = "failed to update avatar"

	ErrEmailTaken          = NewError(KindConflict, "email is already in use")
	ErrInvalidCredentials  = NewError(KindAuthentication, "email or password is wrong")
	ErrUserNotFound        = NewError(KindNotFound, "user not found")
	ErrVerificationMissing = NewError(KindNotFound, "user not found or already verified")
	ErrAlreadyVerified     = NewError(KindValidation, "verification has already been passed")
	ErrInvalidEmail        = NewError(KindValidation, "email must be a valid address")
	ErrPasswordTooShort    = NewError(KindValidation, "password is too short")
	ErrInvalidSubscription = NewError(KindValidation, "subscription must be one of starter, pro, business")
	ErrInvalidAvatar       = NewError(KindValidation, "avatar must be a png, jpg, gif or webp image")
	ErrTokenExpired        = NewError(KindUnauthorized, "token expired")
	ErrTokenInvalid        = NewError(KindUnauthorized, "token invalid")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		Email             string `json:"email"`
		Subscription      string `json:"subscription"`
		AvatarURL         string `json:"avatarURL"`
		VerificationToken string `json:"-"`
		EmailSent         bool   `json:"verificationEmailSent"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string      `json:"token"`
		User  CurrentUser `json:"user"`
	}

	CurrentUser struct {
		Email        string `json:"email"`
		Subscription string `json:"subscription"`
		AvatarURL    string `json:"avatarURL,omitempty"`
	}

	ResendVerificationRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResendVerificationResponse struct {
		Email     string `json:"email"`
		EmailSent bool   `json:"verificationEmailSent"`
	}

	UpdateSubscriptionRequest struct {
		Subscription string `json:"subscription" validate:"required,subscription"`
	}

	UpdateAvatarRequest struct {
		Avatar *multipart.FileHeader `json:"avatar" form:"avatar" validate:"required"`
	}

	UpdateAvatarResponse struct {
		AvatarURL string `json:"avatarURL"`
	}
)
