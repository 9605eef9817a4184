// Package common defines sentinel errors shared by the storage, records and
// cli layers of cadastro. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorCorruptCollection = errors.New("stored collection is not a valid JSON array")

	// Form errors.
	ErrorValidation = errors.New("validation error")

	// Storage wiring errors.
	ErrorUnknownDriver = errors.New("unknown storage driver")
	ErrorClosed        = errors.New("storage is closed")
)
