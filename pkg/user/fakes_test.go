package user

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"sync"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"
	"SlimMom-Backend/internal/utils/storage"

	"github.com/google/uuid"
)

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
	err   error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[uuid.UUID]*entities.User{}}
}

func (r *memoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepository) UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "token":
			if v == nil {
				u.Token = nil
			} else {
				s := v.(string)
				u.Token = &s
			}
		case "verification_token":
			s := v.(string)
			u.VerificationToken = &s
		case "subscription":
			u.Subscription = v.(string)
		case "avatar_url":
			u.AvatarURL = v.(string)
		}
	}
	return nil
}

func (r *memoryUserRepository) VerifyUser(ctx context.Context, verificationToken string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if !u.Verify && u.VerificationToken != nil && *u.VerificationToken == verificationToken {
			u.Verify = true
			u.VerificationToken = nil
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepository) byEmail(email string) *entities.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp
		}
	}
	return nil
}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendMail(toEmail string, subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: toEmail, subject: subject, body: body})
	return nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext := filepath.Ext(file.Filename)
	ok := false
	for _, a := range allowed {
		if a == ext {
			ok = true
		}
	}
	if !ok {
		return "", storage.ErrFileTypeNotAllowed
	}
	key := folder + "/" + fileName + ext
	s.uploaded = append(s.uploaded, key)
	return key, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example.com/" + objectKey
}

func (s *fakeStorage) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.example.com/"
	if len(link) > len(prefix) && link[:len(prefix)] == prefix {
		return link[len(prefix):]
	}
	return ""
}

var errBoom = errors.New("boom")
