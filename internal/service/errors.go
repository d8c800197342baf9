package service

import (
	"net/http"

	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// Registration and login failures. Each carries its own code so callers can
// tell them apart.
var (
	ErrDuplicateUsername  = apperrors.NewDomainError("DUPLICATE_USERNAME", "username already exists", http.StatusConflict, nil)
	ErrPasswordMismatch   = apperrors.NewDomainError("PASSWORD_MISMATCH", "passwords do not match", http.StatusBadRequest, nil)
	ErrEmptyField         = apperrors.NewDomainError("EMPTY_FIELD", "username and password are required", http.StatusBadRequest, nil)
	ErrInvalidCredentials = apperrors.NewDomainError("INVALID_CREDENTIALS", "invalid username or password", http.StatusUnauthorized, nil)
)
