package utils

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind tags every error that crosses the storage or media boundary so the
// HTTP layer can pick a status without looking at messages.
type ErrorKind string

const (
	KindValidation      ErrorKind = "ValidationError"
	KindNotFound        ErrorKind = "NotFound"
	KindInvalidID       ErrorKind = "InvalidId"
	KindInvalidFileType ErrorKind = "InvalidFileType"
	KindFileTooLarge    ErrorKind = "FileTooLarge"
	KindUploadFailed    ErrorKind = "UploadFailed"
	KindInternal        ErrorKind = "InternalError"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	// Fields maps a field name to its violation, only set for validation errors.
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is comparisons. They carry no message on purpose.
var (
	ErrValidation      = &AppError{Kind: KindValidation}
	ErrNotFound        = &AppError{Kind: KindNotFound}
	ErrInvalidID       = &AppError{Kind: KindInvalidID}
	ErrInvalidFileType = &AppError{Kind: KindInvalidFileType}
	ErrFileTooLarge    = &AppError{Kind: KindFileTooLarge}
	ErrUploadFailed    = &AppError{Kind: KindUploadFailed}
	ErrInternal        = &AppError{Kind: KindInternal}
)

// NewValidationError builds a ValidationError whose message lists every
// violated field in a stable order.
func NewValidationError(fields map[string]string) *AppError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, fields[name])
	}

	return &AppError{
		Kind:    KindValidation,
		Message: strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewInvalidIDError(message string, err error) *AppError {
	return &AppError{Kind: KindInvalidID, Message: message, Err: err}
}

func NewInvalidFileTypeError(message string) *AppError {
	return &AppError{Kind: KindInvalidFileType, Message: message}
}

func NewFileTooLargeError(message string) *AppError {
	return &AppError{Kind: KindFileTooLarge, Message: message}
}

func NewUploadFailedError(err error) *AppError {
	return &AppError{Kind: KindUploadFailed, Message: "Failed to upload image. Please try again.", Err: err}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the tag of err. Anything untagged is an internal error.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusFor maps an error kind onto its HTTP status code.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindValidation, KindInvalidID, KindInvalidFileType:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show a client for err. Internal and
// upload failures never expose their cause.
func PublicMessage(err error, fallback string) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fallback
	}
	switch appErr.Kind {
	case KindInternal:
		return fallback
	case KindUploadFailed:
		return "Failed to upload image. Please try again."
	}
	if appErr.Message == "" {
		return fallback
	}
	return appErr.Message
}
