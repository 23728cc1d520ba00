package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewNotFoundError("Post not found")))
	assert.Equal(t, KindInvalidID, KindOf(fmt.Errorf("wrapped: %w", NewInvalidIDError("Invalid post ID", nil))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestErrorsIs_MatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("get: %w", NewNotFoundError("Post not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidID))
}

func TestStatusFor(t *testing.T) {
	cases := map[ErrorKind]int{
		KindValidation:      http.StatusBadRequest,
		KindInvalidID:       http.StatusBadRequest,
		KindInvalidFileType: http.StatusBadRequest,
		KindNotFound:        http.StatusNotFound,
		KindFileTooLarge:    http.StatusRequestEntityTooLarge,
		KindUploadFailed:    http.StatusInternalServerError,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, StatusFor(kind), string(kind))
	}
}

func TestNewValidationError_StableMessage(t *testing.T) {
	err := NewValidationError(map[string]string{
		"title":    "Title is required",
		"category": "Category must be one of Wedding, Portraits, Events, Products",
	})

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Category must be one of Wedding, Portraits, Events, Products; Title is required", err.Message)
	assert.Len(t, err.Fields, 2)
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	internal := NewInternalError("query failed", errors.New("dial tcp 10.0.0.3:5432: connection refused"))
	upload := NewUploadFailedError(errors.New("quota exceeded for cloud xyz"))

	assert.Equal(t, "Failed to fetch post", PublicMessage(internal, "Failed to fetch post"))
	assert.Equal(t, "Failed to fetch post", PublicMessage(errors.New("raw"), "Failed to fetch post"))
	assert.Equal(t, "Failed to upload image. Please try again.", PublicMessage(upload, "x"))
	assert.Equal(t, "Post not found", PublicMessage(NewNotFoundError("Post not found"), "x"))
}

func TestIsBodyTooLarge(t *testing.T) {
	assert.True(t, IsBodyTooLarge(fmt.Errorf("multipart: NextPart: %w", &http.MaxBytesError{Limit: 10})))
	assert.False(t, IsBodyTooLarge(http.ErrMissingFile))
	assert.False(t, IsBodyTooLarge(nil))
}
