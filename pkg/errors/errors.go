// Package errors provides the structured error hierarchy used throughout
// ferrule. A baseError carries a message, a cause, an ErrorCode, and a bag of
// details; StorageError, IndexError, and ValidationError embed it and add
// domain-specific context (which generation, which key, which field) so that
// callers can recover precise failure context with errors.As instead of
// parsing error strings.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsStorageError reports whether err is, or wraps, a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsIndexError reports whether err is, or wraps, a *IndexError.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsKeyNotFound reports whether err is the spec.md §7 KeyNotFound condition.
func IsKeyNotFound(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie) && ie.Code() == ErrorCodeKeyNotFound
}

// IsUnexpectedCommandType reports whether err is the spec.md §7
// UnexpectedCommandType condition.
func IsUnexpectedCommandType(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie) && ie.Code() == ErrorCodeUnexpectedCommandType
}

// AsStorageError extracts a *StorageError from an error chain.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsIndexError extracts a *IndexError from an error chain.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't.
func GetErrorCode(err error) ErrorCode {
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve.Code()
	}
	return ErrorCodeInternal
}

// ClassifyDirectoryCreationError analyzes directory creation failures and
// returns a StorageError with the appropriate code based on the underlying
// system error.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(err, ErrorCodePermissionDenied, "insufficient permissions to create store directory").
			WithPath(path).
			WithDetail("operation", "directory_creation")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "insufficient disk space to create store directory").
					WithPath(path).
					WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot create directory on read-only filesystem").
					WithPath(path).
					WithDetail("operation", "directory_creation")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to create store directory").
		WithPath(path).
		WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError analyzes generation-file open failures and returns a
// StorageError with the appropriate code.
func ClassifyFileOpenError(err error, path string, generation uint64) error {
	if os.IsPermission(err) {
		return NewStorageError(err, ErrorCodePermissionDenied, "insufficient permissions to open generation file").
			WithPath(path).
			WithGeneration(generation).
			WithDetail("operation", "file_open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "insufficient disk space to create generation file").
					WithPath(path).
					WithGeneration(generation).
					WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot create generation file on read-only filesystem").
					WithPath(path).
					WithGeneration(generation).
					WithDetail("operation", "file_open")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open generation file").
		WithPath(path).
		WithGeneration(generation).
		WithDetail("operation", "file_open")
}
