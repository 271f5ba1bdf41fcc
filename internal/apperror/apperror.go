package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindRateLimit      Kind = "rate_limit"
	KindConfiguration  Kind = "configuration"
	KindServer         Kind = "server"
)

const (
	CodeMissingFields      = "MISSING_FIELDS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidRole        = "INVALID_ROLE"
	CodePasswordTooLong    = "PASSWORD_TOO_LONG"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeMissingConfig      = "MISSING_CONFIG"
	CodeServerError        = "SERVER_ERROR"
)

// Error is the single failure type crossing the HTTP boundary. Status is the
// HTTP status it maps to; Code is the stable machine-readable string.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind and Code so callers can compare against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Code == "" || e.Code == t.Code)
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Code: code, Message: message}
}

func Authentication(code, message string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: code, Message: message}
}

func RateLimit(message string) *Error {
	return &Error{Kind: KindRateLimit, Status: http.StatusTooManyRequests, Code: CodeRateLimited, Message: message}
}

// Configuration errors are fatal at startup and never reach a client.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Status: http.StatusInternalServerError, Code: CodeMissingConfig, Message: message}
}

func Server(message string, err error) *Error {
	return &Error{Kind: KindServer, Status: http.StatusInternalServerError, Code: CodeServerError, Message: message, Err: err}
}

var (
	ErrInvalidCredentials = Authentication(CodeInvalidCredentials, "Invalid credentials")
	ErrUserExists         = Conflict(CodeUserExists, "User already exists")
)

// From returns err as an *Error, wrapping anything unexpected as a server error.
func From(err error, fallback string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Server(fallback, err)
}

// Body is the JSON error shape {status, message, code}. Server errors also
// carry the underlying error text.
type Body struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

func (e *Error) Body() Body {
	b := Body{Status: e.Status, Message: e.Message, Code: e.Code}
	if e.Kind == KindServer && e.Err != nil {
		b.Error = e.Err.Error()
	}
	return b
}

// FromBody rebuilds an *Error from a decoded response body.
func FromBody(b Body) *Error {
	e := &Error{Status: b.Status, Code: b.Code, Message: b.Message}
	switch b.Status {
	case http.StatusBadRequest:
		e.Kind = KindValidation
	case http.StatusConflict:
		e.Kind = KindConflict
	case http.StatusUnauthorized:
		e.Kind = KindAuthentication
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimit
	default:
		e.Kind = KindServer
	}
	if b.Error != "" {
		e.Err = errors.New(b.Error)
	}
	return e
}
