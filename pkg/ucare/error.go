package ucare

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/uploadcare-community/ucare_sdk_go/internal/httpx"
)

// ErrCode classifies errors returned by the Uploadcare API.
type ErrCode string

const (
	// ErrBadRequest signals invalid endpoint parameters.
	ErrBadRequest ErrCode = "bad_request"
	// ErrUnauthorized signals missing or invalid authorization.
	ErrUnauthorized ErrCode = "unauthorized"
	// ErrForbidden signals the request is not allowed.
	ErrForbidden ErrCode = "forbidden"
	// ErrNotFound signals a missing resource.
	ErrNotFound ErrCode = "not_found"
	// ErrNotAcceptable signals an invalid Accept version header for the endpoint.
	ErrNotAcceptable ErrCode = "not_acceptable"
	// ErrPayloadTooLarge signals the payload exceeded the allowed size.
	ErrPayloadTooLarge ErrCode = "payload_too_large"
	// ErrTooManyRequests signals the request was throttled.
	ErrTooManyRequests ErrCode = "too_many_requests"
	// ErrOther covers everything else, including decoding failures.
	ErrOther ErrCode = "other"
)

// Error is the library level error for API failures.
type Error struct {
	Code       ErrCode
	Detail     string
	StatusCode int
	// RetryAfter is set for throttled requests, in seconds. The Upload API
	// does not return a Retry-After header; 30 seconds is reported then.
	RetryAfter int
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code == ErrTooManyRequests {
		return fmt.Sprintf("Uploadcare: too many requests, retry after %d", e.RetryAfter)
	}
	return "Uploadcare: " + e.Detail
}

// IsNotFound reports whether err is an API not-found error.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == ErrNotFound
}

// IsThrottled reports whether err is an API throttling error.
func IsThrottled(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == ErrTooManyRequests
}

func codeForStatus(status int) ErrCode {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusNotAcceptable:
		return ErrNotAcceptable
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	default:
		return ErrOther
	}
}

// restAPIError converts transport failures into *Error. REST error bodies
// are JSON documents shaped {"detail": "..."}.
func restAPIError(err error) error {
	httpErr, ok := asHTTPError(err)
	if !ok {
		return err
	}

	detail := string(httpErr.Body)
	var payload struct {
		Detail string `json:"detail"`
	}
	if jsonErr := json.Unmarshal(httpErr.Body, &payload); jsonErr == nil && payload.Detail != "" {
		detail = payload.Detail
	}

	return &Error{
		Code:       codeForStatus(httpErr.StatusCode),
		Detail:     detail,
		StatusCode: httpErr.StatusCode,
		RetryAfter: httpErr.RetryAfter,
	}
}

// uploadAPIError converts transport failures into *Error. Upload API error
// bodies are plain text, and throttling responses omit Retry-After, so a
// fixed 30 seconds is reported.
func uploadAPIError(err error) error {
	httpErr, ok := asHTTPError(err)
	if !ok {
		return err
	}

	apiErr := &Error{
		Code:       codeForStatus(httpErr.StatusCode),
		Detail:     string(httpErr.Body),
		StatusCode: httpErr.StatusCode,
		RetryAfter: httpErr.RetryAfter,
	}
	if apiErr.Code == ErrTooManyRequests && apiErr.RetryAfter == 0 {
		apiErr.RetryAfter = 30
	}
	return apiErr
}

func asHTTPError(err error) (*httpx.HTTPError, bool) {
	var httpErr *httpx.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
