package utils

import (
	"errors"
	"net/http"
)

// IsBodyTooLarge reports whether err comes from a body cut off by
// http.MaxBytesReader.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
