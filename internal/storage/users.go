package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the remote auth/profile backend's storage contract. Emails
// are unique case-insensitively; passwords are bcrypt-hashed. The plaintext
// credential copy the client keeps for "remember me" never reaches here.
type UserStore interface {
	CreateUser(ctx context.Context, email, password, name string) (*internal.User, error)
	Authenticate(ctx context.Context, email, password string) (*internal.User, error)
	GetUserByID(ctx context.Context, id string) (*internal.User, error)
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
	SetToken(ctx context.Context, id, token string) error
	UpdateUser(ctx context.Context, user *internal.User) error
	ListUsers(ctx context.Context) ([]internal.User, error)
	ToggleActive(ctx context.Context, id string) (*internal.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type memoryUserRecord struct {
	user  internal.User
	hash  []byte
	token string
}

// MemoryUserStore backs development runs and tests.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*memoryUserRecord
	logger  internal.Logger
}

func NewMemoryUserStore(logger internal.Logger) *MemoryUserStore {
	return &MemoryUserStore{
		byEmail: make(map[string]*memoryUserRecord),
		logger:  logger,
	}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, email, password, name string) (*internal.User, error) {
	email = strings.ToLower(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return nil, internal.DuplicateEmailError(email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := internal.User{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       name,
		StartDate:  time.Now(),
		CurrentDay: 1,
		IsActive:   true,
	}
	s.byEmail[email] = &memoryUserRecord{user: user, hash: hash}
	return &user, nil
}

func (s *MemoryUserStore) Authenticate(ctx context.Context, email, password string) (*internal.User, error) {
	s.mu.RLock()
	rec, ok := s.byEmail[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, internal.InvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return nil, internal.InvalidCredentialsError()
	}
	u := rec.user
	return &u, nil
}

func (s *MemoryUserStore) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.byEmail {
		if rec.user.ID == id {
			u := rec.user
			return &u, nil
		}
	}
	return nil, internal.NotFoundError("user not found")
}

func (s *MemoryUserStore) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	if token == "" {
		return nil, internal.InvalidCredentialsError()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.byEmail {
		if rec.token == token {
			u := rec.user
			return &u, nil
		}
	}
	return nil, internal.InvalidCredentialsError()
}

func (s *MemoryUserStore) SetToken(ctx context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.byEmail {
		if rec.user.ID == id {
			rec.token = token
			return nil
		}
	}
	return internal.NotFoundError("user not found")
}

func (s *MemoryUserStore) UpdateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byEmail[strings.ToLower(user.Email)]
	if !ok || rec.user.ID != user.ID {
		return internal.NotFoundError("user not found")
	}
	// CurrentDay is monotone for the life of the program.
	if user.CurrentDay < rec.user.CurrentDay {
		user.CurrentDay = rec.user.CurrentDay
	}
	rec.user = *user
	return nil
}

func (s *MemoryUserStore) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]internal.User, 0, len(s.byEmail))
	for _, rec := range s.byEmail {
		users = append(users, rec.user)
	}
	return users, nil
}

func (s *MemoryUserStore) ToggleActive(ctx context.Context, id string) (*internal.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.byEmail {
		if rec.user.ID == id {
			rec.user.IsActive = !rec.user.IsActive
			u := rec.user
			return &u, nil
		}
	}
	return nil, internal.NotFoundError("user not found")
}

func (s *MemoryUserStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, rec := range s.byEmail {
		if rec.user.ID == id {
			delete(s.byEmail, email)
			return nil
		}
	}
	return internal.NotFoundError("user not found")
}

var _ UserStore = (*MemoryUserStore)(nil)
