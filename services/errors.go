package services

import (
	"errors"
	"fmt"
)

// Common service-level errors
var (
	// ErrNoteNotFound is returned when no stored note has the requested id
	ErrNoteNotFound = errors.New("note not found")

	// ErrStorageFailure matches every *StorageError
	ErrStorageFailure = errors.New("storage failure")
)

// StorageError reports a gateway read or write that could not complete
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageFailure, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorageFailure) match any StorageError
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

func storageFailure(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
