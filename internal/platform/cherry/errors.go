package cherry

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error response from the Cherry Servers API. The API reports
// failures as a JSON document carrying a numeric code and a human-readable
// message; both are preserved so callers can branch on the code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cherry: request failed with code %d", e.Code)
	}
	return fmt.Sprintf("cherry: %s (code %d)", e.Message, e.Code)
}

// isErrorCode checks if the error is a Cherry Servers API error with one of
// the given codes.
func isErrorCode(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isErrorCode(err, http.StatusNotFound)
}

// IsBadRequest checks if an error indicates an invalid request.
func IsBadRequest(err error) bool {
	return isErrorCode(err, http.StatusBadRequest)
}
