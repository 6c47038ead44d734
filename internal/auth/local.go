package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

// DemoEmail is pre-seeded into every local provider; registering it again
// always fails on the local path, even though a configured remote backend
// may still accept it.
const (
	DemoEmail    = "demo@rise.com"
	demoPassword = "demo1234"
)

type localUserRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"` // plaintext; mock backend, not a boundary
	Name     string `json:"name,omitempty"`
}

// LocalProvider is the mock fallback tier. It keeps a registry of known
// accounts in the KV store and enforces only non-empty fields, matching
// the native variant's mock backend.
type LocalProvider struct {
	kv     storage.KVStore
	logger internal.Logger
}

func NewLocalProvider(kv storage.KVStore, logger internal.Logger) *LocalProvider {
	return &LocalProvider{kv: kv, logger: logger}
}

func (p *LocalProvider) load(ctx context.Context) (map[string]localUserRecord, error) {
	users := map[string]localUserRecord{
		DemoEmail: {ID: "demo-user", Email: DemoEmail, Password: demoPassword, Name: "Demo User"},
	}
	raw, ok, err := p.kv.Get(ctx, storage.KeyLocalUsers)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			p.logger.Warnf("auth: corrupt local user registry, reseeding: %v", err)
		}
	}
	if _, seeded := users[DemoEmail]; !seeded {
		users[DemoEmail] = localUserRecord{ID: "demo-user", Email: DemoEmail, Password: demoPassword, Name: "Demo User"}
	}
	return users, nil
}

func (p *LocalProvider) save(ctx context.Context, users map[string]localUserRecord) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return p.kv.Set(ctx, storage.KeyLocalUsers, string(raw))
}

func (p *LocalProvider) Register(ctx context.Context, email, password, name string) (*internal.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", internal.ValidationError("email and password are required")
	}
	users, err := p.load(ctx)
	if err != nil {
		return nil, "", err
	}
	if _, exists := users[email]; exists {
		return nil, "", internal.DuplicateEmailError(email)
	}
	rec := localUserRecord{ID: uuid.NewString(), Email: email, Password: password, Name: name}
	users[email] = rec
	if err := p.save(ctx, users); err != nil {
		return nil, "", err
	}
	return p.toUser(rec), "", nil
}

func (p *LocalProvider) Login(ctx context.Context, email, password string) (*internal.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := p.load(ctx)
	if err != nil {
		return nil, "", err
	}
	rec, ok := users[email]
	if !ok || rec.Password != password {
		p.logger.Warnf("auth: local login rejected for %s", email)
		return nil, "", internal.InvalidCredentialsError()
	}
	return p.toUser(rec), "", nil
}

// Logout is a no-op on the local tier; the session service owns key clearing.
func (p *LocalProvider) Logout(ctx context.Context, token string) error {
	return nil
}

// Delete removes the account from the registry. The demo account comes
// back on the next load; every other record is gone for good.
func (p *LocalProvider) Delete(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := p.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := users[email]; !ok {
		return internal.NotFoundError("no local account for " + email)
	}
	delete(users, email)
	return p.save(ctx, users)
}

func (p *LocalProvider) toUser(rec localUserRecord) *internal.User {
	return &internal.User{
		ID:         rec.ID,
		Email:      rec.Email,
		Name:       rec.Name,
		StartDate:  time.Now(),
		CurrentDay: 1,
		IsActive:   true,
	}
}

var _ Provider = (*LocalProvider)(nil)
