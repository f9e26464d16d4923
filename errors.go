package devportal

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// Error types for device API operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeInvalidArgument indicates an absent connection or credentials
	// value passed to a constructor or setter
	ErrTypeInvalidArgument ErrorType = iota
	// ErrTypePrecondition indicates an operation was attempted before the
	// client was configured with both connection and credentials
	ErrTypePrecondition
	// ErrTypeNetwork indicates a network-level error (connection refused, timeout, etc.)
	ErrTypeNetwork
	// ErrTypeAuth indicates an authentication failure (invalid credentials)
	ErrTypeAuth
	// ErrTypeHTTP indicates an HTTP-level error (non-2xx status code)
	ErrTypeHTTP
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the device refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalidArgument:
		return "Invalid Argument"
	case ErrTypePrecondition:
		return "Precondition Failed"
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred while talking to the device
type DeviceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
	Endpoint   string    // Endpoint path being fetched (for context)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes an error and returns a more specific error type
func ClassifyNetworkError(err error, endpoint string) *DeviceError {
	if err == nil {
		return nil
	}

	// Check for timeout errors
	if os.IsTimeout(err) {
		return &DeviceError{
			Type:     ErrTypeTimeout,
			Message:  "request timed out",
			Err:      err,
			Endpoint: endpoint,
		}
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{
			Type:     ErrTypeDNS,
			Message:  fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:      err,
			Endpoint: endpoint,
		}
	}

	// Check for connection refused / unreachable
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DeviceError{
				Type:     ErrTypeConnectionRefused,
				Message:  "device refused connection",
				Err:      err,
				Endpoint: endpoint,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) || errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &DeviceError{
				Type:     ErrTypeNetwork,
				Message:  "device unreachable",
				Err:      err,
				Endpoint: endpoint,
			}
		}
	}

	// Unwrap URL errors and classify the cause
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		classified := ClassifyNetworkError(urlErr.Err, endpoint)
		if classified != nil {
			return classified
		}
	}

	// Generic network error
	return &DeviceError{
		Type:     ErrTypeNetwork,
		Message:  "network error occurred",
		Err:      err,
		Endpoint: endpoint,
	}
}

// NewInvalidArgumentError creates an error for an absent constructor/setter argument
func NewInvalidArgumentError(message string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeInvalidArgument,
		Message: message,
	}
}

// NewPreconditionError creates an error for operations attempted on an
// unconfigured client
func NewPreconditionError(message string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypePrecondition,
		Message: message,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error, endpoint string) *DeviceError {
	classified := ClassifyNetworkError(err, endpoint)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &DeviceError{
		Type:     ErrTypeNetwork,
		Message:  message,
		Err:      err,
		Endpoint: endpoint,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(message string, endpoint string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeAuth,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Endpoint:   endpoint,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string, endpoint string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Endpoint:   endpoint,
	}
}

// IsInvalidArgument checks if an error is an invalid-argument error
func IsInvalidArgument(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeInvalidArgument
	}
	return false
}

// IsPreconditionFailed checks if an error is a precondition error
func IsPreconditionFailed(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypePrecondition
	}
	return false
}

// IsNetworkError checks if an error is a network error (including timeout,
// connection refused and DNS failures)
func IsNetworkError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeNetwork ||
			devErr.Type == ErrTypeTimeout ||
			devErr.Type == ErrTypeConnectionRefused ||
			devErr.Type == ErrTypeDNS
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeAuth
	}
	return false
}

// IsHTTPError checks if an error is an HTTP status error
func IsHTTPError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeHTTP
	}
	return false
}
