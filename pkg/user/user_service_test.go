package user

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"
	"SlimMom-Backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "SLIMMOM"
	testEmail    = "a@b.com"
	testPassword = "password1"
)

type testEnv struct {
	svc     *userService
	repo    *memoryUserRepository
	mailer  *recordingMailer
	storage *fakeStorage
}

func newTestEnv(t *testing.T, cfg UserConfig) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:    newMemoryUserRepository(),
		mailer:  &recordingMailer{},
		storage: &fakeStorage{},
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:3000"
	}
	svc := NewUserService(env.repo, jwt.NewJWTService(testSecret, testIssuer), env.mailer, env.storage, cfg).(*userService)
	svc.hashPassword = func(password string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		return string(h), err
	}
	env.svc = svc
	return env
}

func (e *testEnv) registerVerified(t *testing.T, email string) *entities.User {
	t.Helper()
	res, err := e.svc.Register(context.Background(), domain.RegisterRequest{Email: email, Password: testPassword})
	require.NoError(t, err)
	require.NoError(t, e.svc.RedeemVerification(context.Background(), res.VerificationToken))
	return e.repo.byEmail(email)
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t, UserConfig{})

	res, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: " a@b.com ", Password: testPassword})
	require.NoError(t, err)

	assert.Equal(t, testEmail, res.Email)
	assert.Equal(t, domain.SubscriptionStarter, res.Subscription)
	assert.True(t, res.EmailSent)
	assert.Len(t, res.VerificationToken, 32)
	assert.True(t, strings.HasPrefix(res.AvatarURL, "https://www.gravatar.com/avatar/"))
	assert.True(t, strings.HasSuffix(res.AvatarURL, "?d=identicon"))

	stored := env.repo.byEmail(testEmail)
	require.NotNil(t, stored)
	assert.False(t, stored.Verify)
	assert.Nil(t, stored.Token)
	require.NotNil(t, stored.VerificationToken)
	assert.Equal(t, res.VerificationToken, *stored.VerificationToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(testPassword)))

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, testEmail, env.mailer.sent[0].to)
	assert.Contains(t, env.mailer.sent[0].body, "http://localhost:3000/api/users/verify/"+res.VerificationToken)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t, UserConfig{})

	_, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: "not-an-email", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: "short"})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRegister_ConflictSkipsHashAndMail(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	_, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	hashed := false
	env.svc.hashPassword = func(string) (string, error) {
		hashed = true
		return "", nil
	}
	env.mailer.sent = nil

	_, err = env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.False(t, hashed)
	assert.Empty(t, env.mailer.sent)
}

func TestRegister_MailFailureKeepsUser(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	env.mailer.err = errBoom

	res, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.False(t, res.EmailSent)
	assert.NotNil(t, env.repo.byEmail(testEmail))
}

func TestRegister_RepositoryFailureIsInternal(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	env.repo.err = errBoom

	_, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, domain.MessageFailedProcessRequest, domain.PublicMessage(err))
}

func TestRedeemVerification_OnlyOnce(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	res, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, env.svc.RedeemVerification(context.Background(), res.VerificationToken))
	stored := env.repo.byEmail(testEmail)
	assert.True(t, stored.Verify)
	assert.Nil(t, stored.VerificationToken)

	err = env.svc.RedeemVerification(context.Background(), res.VerificationToken)
	assert.ErrorIs(t, err, domain.ErrVerificationMissing)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	assert.ErrorIs(t, env.svc.RedeemVerification(context.Background(), ""), domain.ErrVerificationMissing)
}

func TestRedeemVerification_Concurrent(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	res, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if env.svc.RedeemVerification(context.Background(), res.VerificationToken) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestResendVerification(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	_, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	_, err = env.svc.ResendVerification(context.Background(), domain.ResendVerificationRequest{Email: "bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = env.svc.ResendVerification(context.Background(), domain.ResendVerificationRequest{Email: "nobody@b.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	res, err := env.svc.ResendVerification(context.Background(), domain.ResendVerificationRequest{Email: testEmail})
	require.NoError(t, err)
	assert.True(t, res.EmailSent)
	stored := *env.repo.byEmail(testEmail).VerificationToken
	assert.Contains(t, env.mailer.sent[len(env.mailer.sent)-1].body, "/api/users/verify/"+stored)

	require.NoError(t, env.svc.RedeemVerification(context.Background(), stored))
	_, err = env.svc.ResendVerification(context.Background(), domain.ResendVerificationRequest{Email: testEmail})
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestResendVerification_GeneratesToken(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	reg, err := env.svc.Register(context.Background(), domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	_, err = env.svc.ResendVerification(context.Background(), domain.ResendVerificationRequest{Email: testEmail})
	require.NoError(t, err)

	stored := *env.repo.byEmail(testEmail).VerificationToken
	assert.Len(t, stored, 32)
	assert.NotEqual(t, reg.VerificationToken, stored)
}

func TestResendVerification_TokenOnlyFromMail(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	ctx := context.Background()
	_, err := env.svc.Register(ctx, domain.RegisterRequest{Email: "victim@b.com", Password: testPassword})
	require.NoError(t, err)

	var req domain.ResendVerificationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":"victim@b.com","token":"a"}`), &req))
	_, err = env.svc.ResendVerification(ctx, req)
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.RedeemVerification(ctx, "a"), domain.ErrVerificationMissing)
	stored := env.repo.byEmail("victim@b.com")
	assert.False(t, stored.Verify)
	assert.Len(t, *stored.VerificationToken, 32)

	_, err = env.svc.Login(ctx, domain.LoginRequest{Email: "victim@b.com", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignupVerifyLoginScenario(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	ctx := context.Background()

	reg, err := env.svc.Register(ctx, domain.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, reg.VerificationToken)

	require.NoError(t, env.svc.RedeemVerification(ctx, reg.VerificationToken))

	login, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, testEmail, login.User.Email)

	_, err = env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: "wrongpass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, domain.KindAuthentication, domain.KindOf(err))
}

func TestLogin_FailuresLookAlike(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	ctx := context.Background()
	env.registerVerified(t, testEmail)
	_, err := env.svc.Register(ctx, domain.RegisterRequest{Email: "pending@b.com", Password: testPassword})
	require.NoError(t, err)

	_, unknown := env.svc.Login(ctx, domain.LoginRequest{Email: "nobody@b.com", Password: testPassword})
	_, wrong := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: "wrongpass"})
	_, unverified := env.svc.Login(ctx, domain.LoginRequest{Email: "pending@b.com", Password: testPassword})

	for _, err := range []error{unknown, wrong, unverified} {
		require.Error(t, err)
		assert.Equal(t, domain.KindAuthentication, domain.KindOf(err))
		assert.Equal(t, domain.PublicMessage(unknown), domain.PublicMessage(err))
	}
}

func TestLogin_NewTokenRevokesPrevious(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	ctx := context.Background()
	env.registerVerified(t, testEmail)

	first, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	second, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = env.svc.Authorize(ctx, first.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	user, err := env.svc.Authorize(ctx, second.Token)
	require.NoError(t, err)
	assert.Equal(t, testEmail, user.Email)
}

func TestLogin_ReuseSessionToken(t *testing.T) {
	env := newTestEnv(t, UserConfig{ReuseSessionToken: true})
	ctx := context.Background()
	env.registerVerified(t, testEmail)

	first, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	second, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)
}

func TestLogin_ReuseSkipsNearlyExpiredToken(t *testing.T) {
	env := newTestEnv(t, UserConfig{ReuseSessionToken: true})
	ctx := context.Background()
	env.registerVerified(t, testEmail)

	first, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Now().Add(jwt.SessionTTL - 2*time.Minute) }
	second, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, second.Token, *env.repo.byEmail(testEmail).Token)
}

func TestAuthorize_RoundTripAndLogout(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	ctx := context.Background()
	registered := env.registerVerified(t, testEmail)

	login, err := env.svc.Login(ctx, domain.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	user, err := env.svc.Authorize(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	require.NoError(t, env.svc.Logout(ctx, user))
	require.NoError(t, env.svc.Logout(ctx, user))

	_, err = env.svc.Authorize(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthorize_FailsClosed(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	ctx := context.Background()
	user := env.registerVerified(t, testEmail)

	foreign, err := jwt.NewJWTService("other-secret", testIssuer).GenerateSessionToken(jwt.SessionClaims{UserID: user.ID.String()})
	require.NoError(t, err)

	ghost, err := jwt.NewJWTService(testSecret, testIssuer).GenerateSessionToken(jwt.SessionClaims{UserID: uuid.NewString()})
	require.NoError(t, err)

	notStored, err := jwt.NewJWTService(testSecret, testIssuer).GenerateSessionToken(jwt.SessionClaims{UserID: user.ID.String()})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":      "",
		"malformed":  "abc.def",
		"foreign":    foreign,
		"ghost user": ghost,
		"not stored": notStored,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.svc.Authorize(ctx, token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestUpdateSubscription(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	user := env.registerVerified(t, testEmail)

	_, err := env.svc.UpdateSubscription(context.Background(), user, domain.UpdateSubscriptionRequest{Subscription: "gold"})
	assert.ErrorIs(t, err, domain.ErrInvalidSubscription)

	res, err := env.svc.UpdateSubscription(context.Background(), user, domain.UpdateSubscriptionRequest{Subscription: domain.SubscriptionPro})
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionPro, res.Subscription)
	assert.Equal(t, domain.SubscriptionPro, env.repo.byEmail(testEmail).Subscription)
}

func newAvatar(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("avatar", name)
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PATCH", "/api/users/avatars", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["avatar"][0]
}

func TestUpdateAvatar(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	env.svc.now = func() time.Time { return time.Unix(100, 0) }
	user := env.registerVerified(t, testEmail)

	_, err := env.svc.UpdateAvatar(context.Background(), user, newAvatar(t, "notes.txt"))
	assert.ErrorIs(t, err, domain.ErrInvalidAvatar)

	_, err = env.svc.UpdateAvatar(context.Background(), user, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAvatar)

	res, err := env.svc.UpdateAvatar(context.Background(), user, newAvatar(t, "me.png"))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/avatars/"+user.ID.String()+"_100000000000.png", res.AvatarURL)
	assert.Equal(t, res.AvatarURL, env.repo.byEmail(testEmail).AvatarURL)
	assert.Empty(t, env.storage.deleted, "gravatar links are not ours to delete")

	env.svc.now = func() time.Time { return time.Unix(200, 0) }
	_, err = env.svc.UpdateAvatar(context.Background(), user, newAvatar(t, "me.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []string{"avatars/" + user.ID.String() + "_100000000000.png"}, env.storage.deleted)
}

func TestUpdateAvatar_OldKeyReadBeforeUpdate(t *testing.T) {
	env := newTestEnv(t, UserConfig{})
	user := env.registerVerified(t, testEmail)

	// the service gets the repository's own row, so UpdateUser rewrites it in place
	stored := env.repo.users[user.ID]
	stored.AvatarURL = "https://bucket.example.com/avatars/old.png"

	res, err := env.svc.UpdateAvatar(context.Background(), stored, newAvatar(t, "me.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{"avatars/old.png"}, env.storage.deleted)
	assert.Equal(t, res.AvatarURL, env.repo.byEmail(testEmail).AvatarURL)
}

func TestGravatarURL(t *testing.T) {
	assert.Equal(t, GravatarURL("A@B.com "), GravatarURL("a@b.com"))
	assert.Equal(t, "https://www.gravatar.com/avatar/357a20e8c56e69d6f9734d23ef9517e8?d=identicon", GravatarURL("a@b.com"))
}
