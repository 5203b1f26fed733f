package apiclient

import (
	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/validation"
	"github.com/friendsofgo/errors"
)

var (
	ErrTimeout        = errors.New(constants.ErrMsgTimeout)
	ErrSessionExpired = errors.New(constants.ErrMsgSessionExpired)
)

// NetworkError is a transport level failure; no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return constants.ErrMsgNetwork
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is any non-2xx response other than 401, or a 2xx whose body
// could not be read as JSON (reported as 502).
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ResponseError is a 2xx response whose envelope carried success=false.
type ResponseError struct {
	Message string
}

func (e *ResponseError) Error() string {
	return e.Message
}

func defaultStatusMessage(status int) string {
	switch status {
	case constants.StatusBadRequest:
		return constants.ErrMsgInvalidCredentials
	case constants.StatusConflict:
		return constants.ErrMsgEmailExists
	case constants.StatusForbidden:
		return constants.ErrMsgUnauthorized
	default:
		return constants.ErrMsgServer
	}
}

func IsTimeout(err error) bool {
	return errors.Cause(err) == ErrTimeout
}

func IsSessionExpired(err error) bool {
	return errors.Cause(err) == ErrSessionExpired
}

func IsNetwork(err error) bool {
	_, ok := errors.Cause(err).(*NetworkError)
	return ok
}

// StatusOf returns the upstream status of an HTTPError, or 0.
func StatusOf(err error) int {
	if httpErr, ok := errors.Cause(err).(*HTTPError); ok {
		return httpErr.Status
	}

	return 0
}

// Message is the human readable text to show for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	switch cause := errors.Cause(err).(type) {
	case *NetworkError:
		return constants.ErrMsgNetwork
	case *HTTPError:
		return cause.Message
	case *ResponseError:
		return cause.Message
	case *validation.Error:
		return cause.Message
	}

	if IsTimeout(err) || IsSessionExpired(err) {
		return errors.Cause(err).Error()
	}

	return err.Error()
}
