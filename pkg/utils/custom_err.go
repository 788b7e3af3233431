package utils

import (
	"errors"
	"strings"
)

var (
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrInvalidCategory    = errors.New("invalid content category")
	ErrContentNotFound    = errors.New("content not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrCityExists         = errors.New("city slug already exists")
	ErrTableNotFound      = errors.New("content table not found")
	ErrColumnMissing      = errors.New("required column is missing")
	ErrUnknownPatch       = errors.New("unknown schema patch")
	ErrGuideNotFound      = errors.New("guide not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrMediaNotFound      = errors.New("media not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
	ErrForbidden          = errors.New("forbidden")
	ErrEnrichmentDisabled = errors.New("description enrichment is not configured")
	ErrUnsupportedMedia   = errors.New("only image uploads are allowed")
	ErrFileTooLarge       = errors.New("file exceeds the 10 MiB limit")
	ErrUploadFailed       = errors.New("upload failed")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects user-facing messages for a rejected request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil returns nil when nothing was collected so callers can `return errs.OrNil()`.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
