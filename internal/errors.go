package internal

import "errors"

// ErrorKind classifies failures so callers can branch on class rather than
// message. The session service falls back to local auth on anything
// transport-shaped and surfaces validation failures immediately.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindDuplicateEmail     ErrorKind = "duplicate_email"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindNetwork            ErrorKind = "network"
	KindNotFound           ErrorKind = "not_found"
	KindPermissionDenied   ErrorKind = "permission_denied"
	KindInternal           ErrorKind = "internal"
)

type AppError struct {
	Code    int       `json:"code"`
	Kind    ErrorKind `json:"kind,omitempty"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Kind: KindInternal, Message: msg}
}

func NewKindError(kind ErrorKind, code int, msg string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: msg}
}

func ValidationError(msg string) *AppError {
	return &AppError{Code: 400, Kind: KindValidation, Message: msg}
}

func DuplicateEmailError(email string) *AppError {
	return &AppError{Code: 409, Kind: KindDuplicateEmail, Message: "email already registered: " + email}
}

func InvalidCredentialsError() *AppError {
	return &AppError{Code: 401, Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

func NetworkError(msg string) *AppError {
	return &AppError{Code: 502, Kind: KindNetwork, Message: msg}
}

func NotFoundError(msg string) *AppError {
	return &AppError{Code: 404, Kind: KindNotFound, Message: msg}
}

func PermissionDeniedError(msg string) *AppError {
	return &AppError{Code: 403, Kind: KindPermissionDenied, Message: msg}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// IsValidation is the one class of remote failure that must never trigger
// the local fallback.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }
