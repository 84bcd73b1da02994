package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary: opening, reading, writing, or seeking a generation
	// file, or creating the store directory.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base error taxonomy to handle the
// failure modes that occur while managing generation files.
const (
	// ErrorCodeDecodeFailure indicates a record in a generation file failed
	// to parse as a Set or Remove command. Fatal during recovery.
	ErrorCodeDecodeFailure ErrorCode = "DECODE_FAILURE"

	// ErrorCodePermissionDenied indicates insufficient permissions to access
	// the store directory or a generation file.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"

	// ErrorCodeLocked indicates the store directory is already locked by
	// another open instance.
	ErrorCodeLocked ErrorCode = "STORE_LOCKED"
)

// Index-specific error codes address the specialized needs of index and
// command-lookup operations.
const (
	// ErrorCodeKeyNotFound indicates remove was called on a key absent from
	// the index.
	ErrorCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// ErrorCodeUnexpectedCommandType indicates a byte range pinned by the
	// index decoded to something other than a Set command.
	ErrorCodeUnexpectedCommandType ErrorCode = "UNEXPECTED_COMMAND_TYPE"
)
