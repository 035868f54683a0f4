package rancher

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the Rancher API.
type APIError struct {
	StatusCode int
	Reason     string

	// Body is the response body exactly as received.
	Body []byte

	// Code and Message are decoded from Rancher's error document when present.
	Code    string
	Message string
}

type errorDocument struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newAPIError(resp *Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Reason:     resp.Reason,
		Body:       resp.Body,
	}

	var doc errorDocument
	if err := json.Unmarshal(resp.Body, &doc); err == nil {
		apiErr.Code = doc.Code
		apiErr.Message = doc.Message
	}
	return apiErr
}

// Error returns the server's response body unchanged.
func (e *APIError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("rancher API error: %d %s", e.StatusCode, e.Reason)
	}
	return body
}

// Detail returns the decoded error body, or its text when it is not JSON.
func (e *APIError) Detail() any {
	var v any
	if err := json.Unmarshal(e.Body, &v); err == nil && v != nil {
		return v
	}
	return e.Error()
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// isStatus checks if err is an API error with one of the given status codes.
func isStatus(err error, codes ...int) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

// IsNotFound checks if an error is a 404 from the API.
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

// IsConflict checks if an error is a 409 from the API.
func IsConflict(err error) bool {
	return isStatus(err, http.StatusConflict)
}

// IsUnauthorized checks if the API rejected the credentials.
func IsUnauthorized(err error) bool {
	return isStatus(err, http.StatusUnauthorized, http.StatusForbidden)
}
