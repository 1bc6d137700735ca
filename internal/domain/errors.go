// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package domain holds the extension's core types and the interfaces of its
// external collaborators (host chat API, provisioning webhook).
package domain

import "errors"

// ErrorType represents the semantic category of an error
type ErrorType int

const (
	ErrorTypeValidation    ErrorType = iota // Input validation errors (400 Bad Request)
	ErrorTypeNotFound                       // Resource not found errors (404 Not Found)
	ErrorTypeConfiguration                  // Missing or invalid extension configuration; requires admin action
	ErrorTypeTransport                      // Network-level failures reaching a collaborator
	ErrorTypeRemote                         // A collaborator answered with an error or a malformed body
	ErrorTypeInternal                       // Internal errors (500 Internal Server Error)
	ErrorTypeUnavailable                    // Service unavailable errors (503 Service Unavailable)
)

// DomainError represents an error with semantic type information
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error for wrapping
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal // default fallback
}

// Error constructors for different types
func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewNotFoundError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message, Err: errors.Join(err...)}
}

func NewConfigurationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeConfiguration, Message: message, Err: errors.Join(err...)}
}

func NewTransportError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeTransport, Message: message, Err: errors.Join(err...)}
}

func NewRemoteError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeRemote, Message: message, Err: errors.Join(err...)}
}

func NewInternalError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInternal, Message: message, Err: errors.Join(err...)}
}

func NewUnavailableError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUnavailable, Message: message, Err: errors.Join(err...)}
}
