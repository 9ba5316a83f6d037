package apperrors

import "net/http"

// Factories for errors that wrap a repository cause.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predefined errors for the frequent static cases.

// ErrInvalidCredentials is the uniform login failure. The same value is
// returned for unknown account, inactive account and wrong password so the
// response shape cannot be used to probe which one occurred.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrNoToken = New(
	CodeUnauthorized,
	"auth",
	"No token provided",
	http.StatusUnauthorized,
)

var ErrAccountInactive = New(
	CodeUnauthorized,
	"auth",
	"Admin not found or inactive",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"Email already registered",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"Username already taken",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"account",
	"Password must be at least 6 characters",
	http.StatusBadRequest,
)
