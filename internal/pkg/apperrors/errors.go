// Package apperrors provides the typed error taxonomy shared by services and
// the HTTP error middleware.
package apperrors

// ValidationError signals missing or malformed caller input. Never retried;
// surfaced immediately with a 400.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Field != "" {
		return e.Field + " is required"
	}
	return "validation error"
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ConfigurationError signals a missing credential or unconfigured external
// service. Fatal for the request.
type ConfigurationError struct {
	Message string
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

func (e *ConfigurationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "service is not configured"
}

func (e *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

// UpstreamServiceError signals a non-success status or content-safety block
// from the generative or speech service.
type UpstreamServiceError struct {
	Service string
	Message string
}

func NewUpstreamServiceError(service, message string) *UpstreamServiceError {
	return &UpstreamServiceError{Service: service, Message: message}
}

func (e *UpstreamServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Service + " request failed"
}

func (e *UpstreamServiceError) Is(target error) bool {
	_, ok := target.(*UpstreamServiceError)
	return ok
}

// StoreError signals the document or session store being unreachable or not
// yet migrated. Callers with a safe default degrade instead of failing.
type StoreError struct {
	Message string
	Cause   error
}

func NewStoreError(message string, cause error) *StoreError {
	return &StoreError{Message: message, Cause: cause}
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "store unavailable"
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func (e *StoreError) Is(target error) bool {
	_, ok := target.(*StoreError)
	return ok
}
