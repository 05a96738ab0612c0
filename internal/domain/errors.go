package domain

import (
	"errors"
	"fmt"
)

// TransportError means the HTTP call to the gateway did not complete with a 2xx answer.
type TransportError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway transport error [%s]: status %d: %s", e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("gateway transport error [%s]: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GatewayError carries a business error reported by the gateway in its XML body.
type GatewayError struct {
	Operation string
	Code      string
	Message   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error [%s] %s: %s", e.Operation, e.Code, e.Message)
}

// ParseError means the response did not have the shape we expect.
type ParseError struct {
	Operation string
	Field     string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse error [%s] field %q: %v", e.Operation, e.Field, e.Err)
	}
	return fmt.Sprintf("parse error [%s]: %v", e.Operation, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError rejects caller input before anything is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func IsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	ok := errors.As(err, &transportErr)
	return transportErr, ok
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gatewayErr *GatewayError
	ok := errors.As(err, &gatewayErr)
	return gatewayErr, ok
}

func IsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	ok := errors.As(err, &parseErr)
	return parseErr, ok
}

func IsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	ok := errors.As(err, &validationErr)
	return validationErr, ok
}
