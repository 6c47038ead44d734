package auth

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/shivam041/riseapp/internal"
)

// SessionToken is an opaque "is logged in" marker, not a bearer credential.
// It is plain base64 JSON on purpose; signing it would change the contract.
type SessionToken struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

func EncodeToken(userID, email string) string {
	raw, _ := json.Marshal(SessionToken{
		UserID:   userID,
		Email:    email,
		IssuedAt: time.Now(),
	})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func DecodeToken(token string) (*SessionToken, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, internal.ValidationError("malformed session token")
	}
	var st SessionToken
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, internal.ValidationError("malformed session token")
	}
	return &st, nil
}
