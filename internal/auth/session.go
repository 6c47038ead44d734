package auth

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionService orchestrates login/register/logout across the remote and
// local tiers. The policy is remote-first: any remote failure except a
// validation error degrades to the local mock rather than surfacing. With
// no remote configured the service runs local-only.
type SessionService struct {
	remote *RemoteProvider // nil in local-only mode
	local  *LocalProvider
	kv     storage.KVStore
	data   *storage.UserData
	logger internal.Logger
}

func NewSessionService(remote *RemoteProvider, local *LocalProvider, kv storage.KVStore, logger internal.Logger) *SessionService {
	return &SessionService{
		remote: remote,
		local:  local,
		kv:     kv,
		data:   storage.NewUserData(kv),
		logger: logger,
	}
}

func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return internal.ValidationError("invalid email address")
	}
	return nil
}

// ValidatePassword applies the web-variant policy: at least 8 characters
// with an upper-case letter, a lower-case letter, and a digit. Only applied
// when a remote backend is configured; the local mock requires non-empty.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return internal.ValidationError("password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return internal.ValidationError("password must contain upper case, lower case, and a digit")
	}
	return nil
}

func (s *SessionService) Register(ctx context.Context, email, password, name string, remember bool) (*internal.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if s.remote != nil {
		if err := ValidatePassword(password); err != nil {
			return nil, err
		}
		user, token, err := s.remote.Register(ctx, email, password, name)
		if err == nil {
			return s.establish(ctx, user, token, email, password, remember)
		}
		if internal.IsValidation(err) {
			return nil, err
		}
		s.logger.Warnf("auth: remote register failed, falling back to local: %v", err)
	}
	user, _, err := s.local.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, user, "", email, password, remember)
}

func (s *SessionService) Login(ctx context.Context, email, password string, remember bool) (*internal.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if s.remote != nil {
		user, token, err := s.remote.Login(ctx, email, password)
		if err == nil {
			return s.establish(ctx, user, token, email, password, remember)
		}
		if internal.IsValidation(err) {
			return nil, err
		}
		s.logger.Warnf("auth: remote login failed, falling back to local: %v", err)
	}
	user, _, err := s.local.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.mergeEffectiveState(ctx, user)
	return s.establish(ctx, user, "", email, password, remember)
}

// mergeEffectiveState reconciles the onboarding flag with the mere presence
// of per-user saved data, recovering from missed flag writes. Best-effort:
// read errors leave the user record as the provider returned it.
func (s *SessionService) mergeEffectiveState(ctx context.Context, user *internal.User) {
	flag, _ := s.data.OnboardingComplete(ctx, user.Email)
	hasQ, _ := s.data.HasQuestionnaire(ctx, user.Email)
	hasP, _ := s.data.HasProgress(ctx, user.Email)
	if flag || hasQ || hasP {
		user.IsOnboardingComplete = true
	}
	if day, ok, _ := s.data.CurrentDay(ctx, user.Email); ok {
		if day < 1 {
			day = 1
		}
		if day > internal.ProgramLength {
			day = internal.ProgramLength
		}
		if day > user.CurrentDay {
			user.CurrentDay = day
		}
	}
	if user.CurrentDay < 1 {
		user.CurrentDay = 1
	}
}

func (s *SessionService) establish(ctx context.Context, user *internal.User, remoteToken, email, password string, remember bool) (*internal.User, error) {
	user.IsAuthenticated = true
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, storage.KeyToken, EncodeToken(user.ID, user.Email)); err != nil {
		return nil, err
	}
	if remoteToken != "" {
		if err := s.kv.Set(ctx, storage.KeyRemoteToken, remoteToken); err != nil {
			return nil, err
		}
	}
	if remember {
		creds, _ := json.Marshal(internal.Credentials{Email: email, Password: password})
		if err := s.kv.Set(ctx, storage.KeyCredentials, string(creds)); err != nil {
			return nil, err
		}
		if err := s.kv.Set(ctx, storage.KeyRememberedLogin, email); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *SessionService) saveUser(ctx context.Context, user *internal.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storage.KeyUser, string(raw))
}

// Logout clears the session token and all per-user local keys. Remote
// sign-out is best-effort; Logout itself never fails. The remembered-login
// record survives, since its whole purpose is outliving the session.
func (s *SessionService) Logout(ctx context.Context) {
	user, _ := s.CurrentUser(ctx)

	if s.remote != nil {
		if token, ok, _ := s.kv.Get(ctx, storage.KeyRemoteToken); ok && token != "" {
			if err := s.remote.Logout(ctx, token); err != nil {
				s.logger.Warnf("auth: remote sign-out failed: %v", err)
			}
		}
	}

	keys := []string{storage.KeyUser, storage.KeyToken, storage.KeyRemoteToken}
	if user != nil {
		keys = append(keys, storage.PerUserKeys(user.Email)...)
	}
	if _, remembered, _ := s.kv.Get(ctx, storage.KeyRememberedLogin); !remembered {
		keys = append(keys, storage.KeyCredentials)
	}
	if err := s.kv.RemoveMany(ctx, keys); err != nil {
		s.logger.Errorf("auth: local clear failed: %v", err)
	}
}

// IsAuthenticated is true only when a stored user record exists and its
// flag is explicitly set; presence of a record alone is not enough.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	user, err := s.CurrentUser(ctx)
	return err == nil && user != nil && user.IsAuthenticated
}

// CurrentUser reads the last-stored session user without revalidating
// against the remote backend.
func (s *SessionService) CurrentUser(ctx context.Context) (*internal.User, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var user internal.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RememberedCredentials returns the stored remember-me credentials, if any.
func (s *SessionService) RememberedCredentials(ctx context.Context) (*internal.Credentials, bool) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyCredentials)
	if err != nil || !ok {
		return nil, false
	}
	var creds internal.Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, false
	}
	return &creds, true
}

// CompleteOnboarding stores the questionnaire snapshot, flips the local
// flag, and pushes the profile change to the remote backend best-effort.
func (s *SessionService) CompleteOnboarding(ctx context.Context, q *internal.Questionnaire) (*internal.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return nil, internal.InvalidCredentialsError()
	}
	if err := s.data.SaveQuestionnaire(ctx, user.Email, q); err != nil {
		return nil, err
	}
	if err := s.data.SetOnboardingComplete(ctx, user.Email); err != nil {
		return nil, err
	}
	user.IsOnboardingComplete = true
	if user.CurrentDay < 1 {
		user.CurrentDay = 1
	}
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	s.pushProfile(ctx, user)
	return user, nil
}

// AdvanceDay moves the program forward one day, clamped to the program
// length. CurrentDay never decreases.
func (s *SessionService) AdvanceDay(ctx context.Context) (*internal.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return nil, internal.InvalidCredentialsError()
	}
	day := user.CurrentDay + 1
	if day < 1 {
		day = 1
	}
	if day > internal.ProgramLength {
		day = internal.ProgramLength
	}
	if day > user.CurrentDay {
		user.CurrentDay = day
	}
	if err := s.data.SetCurrentDay(ctx, user.Email, user.CurrentDay); err != nil {
		return nil, err
	}
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	s.pushProfile(ctx, user)
	return user, nil
}

func (s *SessionService) pushProfile(ctx context.Context, user *internal.User) {
	if s.remote == nil {
		return
	}
	token, ok, _ := s.kv.Get(ctx, storage.KeyRemoteToken)
	if !ok || token == "" {
		return
	}
	if err := s.remote.UpdateProfile(ctx, token, user); err != nil {
		s.logger.Warnf("auth: remote profile update failed: %v", err)
	}
}

// DeleteAccount removes the remote record when reachable and always clears
// local state, including remembered credentials and the local-tier account
// record itself.
func (s *SessionService) DeleteAccount(ctx context.Context) error {
	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return internal.InvalidCredentialsError()
	}
	if s.remote != nil {
		if token, ok, _ := s.kv.Get(ctx, storage.KeyRemoteToken); ok && token != "" {
			if err := s.remote.DeleteUser(ctx, token, user.ID); err != nil {
				s.logger.Warnf("auth: remote account delete failed: %v", err)
			}
		}
	}
	if err := s.local.Delete(ctx, user.Email); err != nil && !internal.IsKind(err, internal.KindNotFound) {
		return err
	}
	keys := append([]string{
		storage.KeyUser, storage.KeyToken, storage.KeyRemoteToken,
		storage.KeyCredentials, storage.KeyRememberedLogin,
	}, storage.PerUserKeys(user.Email)...)
	return s.kv.RemoveMany(ctx, keys)
}

// Data exposes the per-user typed store to the entity services.
func (s *SessionService) Data() *storage.UserData { return s.data }
