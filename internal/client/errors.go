package client

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBloodGroup   = errors.New("blood group is required")
	ErrInvalidTarget       = errors.New("search target must be donor or bank")
	ErrSearchFailed        = errors.New("search failed")
	ErrStaleResponse       = errors.New("response superseded by a newer request")
	ErrNotAuthenticated    = errors.New("login required")
	ErrDeleteNotConfirmed  = errors.New("delete not confirmed")
	ErrNegativeQuantity    = errors.New("quantity must be a non-negative integer")
	ErrEmptyToken          = errors.New("bearer token is empty")
	ErrStateRestore        = errors.New("stored session is unreadable")
	ErrUnknownBloodGroup   = errors.New("no stock entry for this blood group, add it first")
	ErrDuplicateBloodGroup = errors.New("stock entry for this blood group exists, update it instead")
	ErrBloodBankRequired   = errors.New("register a blood bank profile first")
	ErrNotOwner            = errors.New("record belongs to another account")
)

// ValidationError is a local, field-scoped failure. It is never sent to the server.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// APIError covers both non-2xx answers and transport failures (StatusCode 0).
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether the request never got a response.
func (e *APIError) IsNetwork() bool {
	return e.StatusCode == 0
}

var codeErrors = map[string]error{
	"UNKNOWN_BLOOD_GROUP":   ErrUnknownBloodGroup,
	"DUPLICATE_BLOOD_GROUP": ErrDuplicateBloodGroup,
	"BLOOD_BANK_REQUIRED":   ErrBloodBankRequired,
	"NOT_OWNER":             ErrNotOwner,
}

// Message returns the text a user should see for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
