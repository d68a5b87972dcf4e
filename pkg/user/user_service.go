package user

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"
	"SlimMom-Backend/internal/utils"
	"SlimMom-Backend/internal/utils/mailing"
	"SlimMom-Backend/internal/utils/storage"
	"SlimMom-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordHashCost         = 10
	DefaultMinPasswordLength = 8
	AvatarFolder             = "avatars"

	// MinReuseLifetime is how long a stored session token must still be valid
	// for Login to hand it back instead of minting a new one.
	MinReuseLifetime = 5 * time.Minute
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		RedeemVerification(ctx context.Context, verificationToken string) error
		ResendVerification(ctx context.Context, req domain.ResendVerificationRequest) (domain.ResendVerificationResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Authorize(ctx context.Context, token string) (*entities.User, error)
		Logout(ctx context.Context, user *entities.User) error
		Current(user *entities.User) domain.CurrentUser
		UpdateSubscription(ctx context.Context, user *entities.User, req domain.UpdateSubscriptionRequest) (domain.CurrentUser, error)
		UpdateAvatar(ctx context.Context, user *entities.User, file *multipart.FileHeader) (domain.UpdateAvatarResponse, error)
	}

	UserConfig struct {
		AppURL            string
		ReuseSessionToken bool
		MinPasswordLength int
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		s3             storage.AwsS3
		config         UserConfig

		hashPassword    func(password string) (string, error)
		comparePassword func(hash, password string) error
		now             func() time.Time
	}
)

func LoadUserConfig() UserConfig {
	cfg := utils.Get()
	return UserConfig{
		AppURL:            cfg.AppURL,
		ReuseSessionToken: cfg.ReuseSessionToken,
		MinPasswordLength: DefaultMinPasswordLength,
	}
}

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	s3 storage.AwsS3,
	config UserConfig,
) UserService {
	if config.MinPasswordLength <= 0 {
		config.MinPasswordLength = DefaultMinPasswordLength
	}
	return &userService{
		userRepository:  userRepository,
		jwtService:      jwtService,
		mailer:          mailer,
		s3:              s3,
		config:          config,
		hashPassword:    hashPassword,
		comparePassword: comparePassword,
		now:             time.Now,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var (
	dummyHash     string
	dummyHashOnce sync.Once
)

// burnCompare spends the same bcrypt work as a real login when there is no
// usable account.
func (s *userService) burnCompare(password string) {
	dummyHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("slimmom-placeholder-password"), PasswordHashCost)
		if err == nil {
			dummyHash = string(h)
		}
	})
	_ = s.comparePassword(dummyHash, password)
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GravatarURL never fails. Email is normalised the way gravatar expects.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(sum[:]))
}

func (s *userService) sendVerification(email, verificationToken string) bool {
	if s.mailer == nil {
		log.Warnw("user service: mailer not configured", "email", email)
		return false
	}
	link := mailing.VerificationLink(s.config.AppURL, verificationToken)
	if err := s.mailer.SendMail(email, mailing.VerificationSubject, mailing.VerificationBody(link)); err != nil {
		log.Warnw("user service: failed to send verification email", "email", email, "error", err)
		return false
	}
	return true
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)
	if !utils.IsValidEmail(email) {
		return domain.RegisterResponse{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < s.config.MinPasswordLength {
		return domain.RegisterResponse{}, domain.ErrPasswordTooShort
	}

	_, err := s.userRepository.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.RegisterResponse{}, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.RegisterResponse{}, domain.Internal(fmt.Errorf("lookup user by email: %w", err))
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return domain.RegisterResponse{}, domain.Internal(fmt.Errorf("hash password: %w", err))
	}

	verificationToken, err := newVerificationToken()
	if err != nil {
		return domain.RegisterResponse{}, domain.Internal(fmt.Errorf("generate verification token: %w", err))
	}

	user := &entities.User{
		ID:                uuid.New(),
		Email:             email,
		Password:          hashed,
		Subscription:      domain.SubscriptionStarter,
		AvatarURL:         GravatarURL(email),
		VerificationToken: &verificationToken,
		Verify:            false,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.RegisterResponse{}, domain.ErrEmailTaken
		}
		return domain.RegisterResponse{}, domain.Internal(fmt.Errorf("create user: %w", err))
	}
	log.Infow("user service: user registered", "user_id", user.ID.String())

	return domain.RegisterResponse{
		Email:             user.Email,
		Subscription:      user.Subscription,
		AvatarURL:         user.AvatarURL,
		VerificationToken: verificationToken,
		EmailSent:         s.sendVerification(user.Email, verificationToken),
	}, nil
}

func (s *userService) RedeemVerification(ctx context.Context, verificationToken string) error {
	if verificationToken == "" {
		return domain.ErrVerificationMissing
	}
	ok, err := s.userRepository.VerifyUser(ctx, verificationToken)
	if err != nil {
		return domain.Internal(fmt.Errorf("verify user: %w", err))
	}
	if !ok {
		return domain.ErrVerificationMissing
	}
	return nil
}

func (s *userService) ResendVerification(ctx context.Context, req domain.ResendVerificationRequest) (domain.ResendVerificationResponse, error) {
	email := strings.TrimSpace(req.Email)
	if !utils.IsValidEmail(email) {
		return domain.ResendVerificationResponse{}, domain.ErrInvalidEmail
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ResendVerificationResponse{}, domain.ErrUserNotFound
		}
		return domain.ResendVerificationResponse{}, domain.Internal(fmt.Errorf("lookup user by email: %w", err))
	}
	if user.Verify {
		return domain.ResendVerificationResponse{}, domain.ErrAlreadyVerified
	}

	verificationToken, err := newVerificationToken()
	if err != nil {
		return domain.ResendVerificationResponse{}, domain.Internal(fmt.Errorf("generate verification token: %w", err))
	}
	if err := s.userRepository.UpdateUser(ctx, user.ID, map[string]any{
		"verification_token": verificationToken,
	}); err != nil {
		return domain.ResendVerificationResponse{}, domain.Internal(fmt.Errorf("store verification token: %w", err))
	}

	return domain.ResendVerificationResponse{
		Email:     user.Email,
		EmailSent: s.sendVerification(user.Email, verificationToken),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.Internal(fmt.Errorf("lookup user by email: %w", err))
		}
		s.burnCompare(req.Password)
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !user.Verify {
		s.burnCompare(req.Password)
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if err := s.comparePassword(user.Password, req.Password); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, reused := "", false
	if s.config.ReuseSessionToken && user.SessionToken() != "" {
		claims, err := s.jwtService.ValidateSessionToken(user.SessionToken())
		if err == nil && claims.UserID == user.ID.String() &&
			claims.ExpiresAt != nil && claims.ExpiresAt.Time.Sub(s.now()) >= MinReuseLifetime {
			token, reused = user.SessionToken(), true
		}
	}
	if !reused {
		token, err = s.jwtService.GenerateSessionToken(jwt.SessionClaims{
			UserID:       user.ID.String(),
			Email:        user.Email,
			Subscription: user.Subscription,
		})
		if err != nil {
			return domain.LoginResponse{}, domain.Internal(err)
		}
		if err := s.userRepository.UpdateUser(ctx, user.ID, map[string]any{"token": token}); err != nil {
			return domain.LoginResponse{}, domain.Internal(fmt.Errorf("store session token: %w", err))
		}
		user.Token = &token
	}

	return domain.LoginResponse{
		Token: token,
		User:  s.Current(user),
	}, nil
}

// Authorize answers every failure with domain.ErrUnauthorized so callers
// cannot tell an expired token from a revoked one.
func (s *userService) Authorize(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := s.jwtService.ValidateSessionToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.Internal(fmt.Errorf("lookup user by id: %w", err))
	}

	stored := user.SessionToken()
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) Logout(ctx context.Context, user *entities.User) error {
	if err := s.userRepository.UpdateUser(ctx, user.ID, map[string]any{"token": nil}); err != nil {
		return domain.Internal(fmt.Errorf("clear session token: %w", err))
	}
	user.Token = nil
	return nil
}

func (s *userService) Current(user *entities.User) domain.CurrentUser {
	return domain.CurrentUser{
		Email:        user.Email,
		Subscription: user.Subscription,
		AvatarURL:    user.AvatarURL,
	}
}

func (s *userService) UpdateSubscription(ctx context.Context, user *entities.User, req domain.UpdateSubscriptionRequest) (domain.CurrentUser, error) {
	if !utils.IsValidSubscription(req.Subscription) {
		return domain.CurrentUser{}, domain.ErrInvalidSubscription
	}
	if err := s.userRepository.UpdateUser(ctx, user.ID, map[string]any{"subscription": req.Subscription}); err != nil {
		return domain.CurrentUser{}, domain.Internal(fmt.Errorf("update subscription: %w", err))
	}
	user.Subscription = req.Subscription
	return s.Current(user), nil
}

func (s *userService) UpdateAvatar(ctx context.Context, user *entities.User, file *multipart.FileHeader) (domain.UpdateAvatarResponse, error) {
	if file == nil {
		return domain.UpdateAvatarResponse{}, domain.ErrInvalidAvatar
	}
	if s.s3 == nil {
		return domain.UpdateAvatarResponse{}, domain.Internal(errors.New("avatar storage not configured"))
	}

	fileName := fmt.Sprintf("%s_%d", user.ID.String(), s.now().UnixNano())
	objectKey, err := s.s3.UploadFile(ctx, fileName, file, AvatarFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.UpdateAvatarResponse{}, domain.ErrInvalidAvatar
		}
		return domain.UpdateAvatarResponse{}, domain.Internal(err)
	}
	avatarURL := s.s3.GetPublicLinkKey(objectKey)
	oldKey := s.s3.GetObjectKeyFromLink(user.AvatarURL)

	if err := s.userRepository.UpdateUser(ctx, user.ID, map[string]any{"avatar_url": avatarURL}); err != nil {
		return domain.UpdateAvatarResponse{}, domain.Internal(fmt.Errorf("store avatar url: %w", err))
	}

	if oldKey != "" && oldKey != objectKey {
		if err := s.s3.DeleteFile(ctx, oldKey); err != nil {
			log.Warnw("user service: failed to delete previous avatar", "user_id", user.ID.String(), "key", oldKey, "error", err)
		}
	}
	user.AvatarURL = avatarURL

	return domain.UpdateAvatarResponse{AvatarURL: avatarURL}, nil
}
