package response

import "github.com/shivam041/riseapp/internal"

type APIResponse struct {
	Data  interface{}        `json:"data,omitempty"`
	Meta  map[string]any     `json:"meta,omitempty"`
	Error *internal.AppError `json:"error,omitempty"`
}

func Success(data interface{}, meta map[string]any) APIResponse {
	return APIResponse{Data: data, Meta: meta, Error: nil}
}

func BadRequest(msg string) APIResponse {
	return APIResponse{Error: internal.ValidationError(msg)}
}

func Unauthorized(msg string) APIResponse {
	return APIResponse{Error: internal.NewKindError(internal.KindInvalidCredentials, 401, msg)}
}

func Conflict(msg string) APIResponse {
	return APIResponse{Error: internal.NewKindError(internal.KindDuplicateEmail, 409, msg)}
}

func NotFound(msg string) APIResponse {
	return APIResponse{Error: internal.NotFoundError(msg)}
}

func InternalError(msg string) APIResponse {
	return APIResponse{Error: internal.NewAppError(500, msg)}
}

func FromError(err *internal.AppError) APIResponse {
	return APIResponse{Error: err}
}
