package errs

import (
	"errors"
	"fmt"
)

var ErrUnresolvedClient = errors.New("client id not found in session, selection or order")
var ErrInvalidCardData = errors.New("incomplete card data for card payment")
var ErrUnknownPaymentMethod = errors.New("unknown payment method")
var ErrInvalidToken = errors.New("invalid token")
var ErrNotLoggedIn = errors.New("not logged in")
var ErrForbidden = errors.New("forbidden")
var ErrInvalidDate = errors.New("invalid date")
var ErrEmptyOrder = errors.New("order has no details")
var ErrInvalidClient = errors.New("client needs name, document and a valid email")
var ErrInvalidRegistration = errors.New("registration needs userName, password and a known role")

// ErrRemoteAPI matches any *RemoteAPIError with errors.Is.
var ErrRemoteAPI = errors.New("remote api error")

// RemoteAPIError is a failed call to the remote API. StatusCode is 0 when the
// request never got a response.
type RemoteAPIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

func (e *RemoteAPIError) Is(target error) bool {
	return target == ErrRemoteAPI
}
