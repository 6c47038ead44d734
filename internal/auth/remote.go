package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shivam041/riseapp/internal"
)

// RemoteProvider talks to the auth/profile REST API described in the
// client contract: JSON bodies, trailing-slash routes, and
// "Authorization: Token <token>" on authenticated calls.
type RemoteProvider struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewRemoteProvider(baseURL string, logger internal.Logger) *RemoteProvider {
	return &RemoteProvider{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type remoteAuthResponse struct {
	Token string         `json:"token"`
	User  *internal.User `json:"user"`
}

func (p *RemoteProvider) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, &buf)
	if err != nil {
		p.logger.Errorf("auth: failed to create request: %v", err)
		return internal.NetworkError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		p.logger.Errorf("auth: remote call failed: %v", err)
		return internal.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error *internal.AppError `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error != nil && envelope.Error.Kind != "" {
			return envelope.Error
		}
		switch resp.StatusCode {
		case http.StatusConflict:
			return internal.NewKindError(internal.KindDuplicateEmail, resp.StatusCode, "email already registered")
		case http.StatusUnauthorized, http.StatusForbidden:
			return internal.InvalidCredentialsError()
		case http.StatusNotFound:
			return internal.NotFoundError("remote record not found")
		default:
			return internal.NewKindError(internal.KindNetwork, resp.StatusCode, "auth service error")
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		p.logger.Errorf("auth: failed to decode remote response: %v", err)
		return internal.NetworkError(err.Error())
	}
	return nil
}

func (p *RemoteProvider) Register(ctx context.Context, email, password, name string) (*internal.User, string, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var resp remoteAuthResponse
	if err := p.do(ctx, http.MethodPost, "/auth/register/", "", body, &resp); err != nil {
		return nil, "", err
	}
	if resp.User == nil {
		return nil, "", internal.NetworkError("auth service returned no user")
	}
	return resp.User, resp.Token, nil
}

func (p *RemoteProvider) Login(ctx context.Context, email, password string) (*internal.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp remoteAuthResponse
	if err := p.do(ctx, http.MethodPost, "/auth/login/", "", body, &resp); err != nil {
		return nil, "", err
	}
	if resp.User == nil {
		return nil, "", internal.NetworkError("auth service returned no user")
	}
	return resp.User, resp.Token, nil
}

func (p *RemoteProvider) Logout(ctx context.Context, token string) error {
	return p.do(ctx, http.MethodPost, "/auth/logout/", token, nil, nil)
}

func (p *RemoteProvider) Profile(ctx context.Context, token string) (*internal.User, error) {
	var resp struct {
		User *internal.User `json:"user"`
	}
	if err := p.do(ctx, http.MethodGet, "/auth/profile/", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, internal.NetworkError("auth service returned no user")
	}
	return resp.User, nil
}

// UpdateProfile patches mutable profile fields (name, current day,
// onboarding flag) on the remote record.
func (p *RemoteProvider) UpdateProfile(ctx context.Context, token string, user *internal.User) error {
	body := map[string]interface{}{
		"name":                   user.Name,
		"current_day":            user.CurrentDay,
		"is_onboarding_complete": user.IsOnboardingComplete,
	}
	return p.do(ctx, http.MethodPatch, "/auth/update/", token, body, nil)
}

// Admin surface.

func (p *RemoteProvider) ListUsers(ctx context.Context, token string) ([]internal.User, error) {
	var resp struct {
		Users []internal.User `json:"users"`
	}
	if err := p.do(ctx, http.MethodGet, "/auth/all/", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (p *RemoteProvider) ToggleUserStatus(ctx context.Context, token, id string) (*internal.User, error) {
	var resp struct {
		User *internal.User `json:"user"`
	}
	if err := p.do(ctx, http.MethodPost, "/auth/toggle-status/"+id+"/", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (p *RemoteProvider) DeleteUser(ctx context.Context, token, id string) error {
	return p.do(ctx, http.MethodDelete, "/auth/delete/"+id+"/", token, nil, nil)
}

var _ Provider = (*RemoteProvider)(nil)
