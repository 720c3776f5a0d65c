package response

import "github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"

// New generic response spec
type APIResponseCode int

const (
	APIResponseCodeOK         APIResponseCode = 0
	APIResponseCodeBadRequest APIResponseCode = 40000
	APIResponseCodePermission APIResponseCode = 40300
	APIResponseCodeNotFound   APIResponseCode = 40400
	APIResponseCodeConflict   APIResponseCode = 40900
	APIResponseCodeError      APIResponseCode = 50000
	APIResponseCodeGateway    APIResponseCode = 50200
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:         "ok",
	APIResponseCodeBadRequest: "invalid request",
	APIResponseCodePermission: "forbidden",
	APIResponseCodeNotFound:   "not found",
	APIResponseCodeConflict:   "conflict",
	APIResponseCodeError:      "unexpected error",
	APIResponseCodeGateway:    "upstream gateway error",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response with message and optional data.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}

// CodeFor maps an error kind to the envelope code surfaced to callers.
func CodeFor(err error) APIResponseCode {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return APIResponseCodeBadRequest
	case apperr.KindPermission:
		return APIResponseCodePermission
	case apperr.KindNotFound:
		return APIResponseCodeNotFound
	case apperr.KindConflict:
		return APIResponseCodeConflict
	case apperr.KindGateway:
		return APIResponseCodeGateway
	default:
		return APIResponseCodeError
	}
}

// Err renders an error into the standard envelope using its kind.
// The data slot carries the human-readable message.
func Err(err error) *APIResponse[any] {
	code := CodeFor(err)
	return &APIResponse[any]{Code: code, Message: codeToMsg[code], Data: apperr.Message(err)}
}
