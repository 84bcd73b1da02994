package errors

// StorageError is a specialized error type for generation-file operations.
// It embeds baseError to inherit standard error functionality, then adds
// fields that pinpoint exactly where in the log a problem occurred.
type StorageError struct {
	*baseError
	generation uint64 // Which generation file was being accessed.
	offset     int64  // Byte offset within the generation where the problem happened.
	path       string // Path of the file that caused the issue.
}

// NewStorageError creates a new storage-specific error.
func NewStorageError(err error, code ErrorCode, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while preserving the StorageError type.
func (se *StorageError) WithMessage(msg string) *StorageError {
	se.baseError.WithMessage(msg)
	return se
}

// WithDetail adds contextual information while preserving the StorageError type.
func (se *StorageError) WithDetail(key string, value any) *StorageError {
	se.baseError.WithDetail(key, value)
	return se
}

// WithGeneration sets which generation file was involved in the error.
func (se *StorageError) WithGeneration(gen uint64) *StorageError {
	se.generation = gen
	return se
}

// WithOffset records the byte position where the error occurred.
func (se *StorageError) WithOffset(offset int64) *StorageError {
	se.offset = offset
	return se
}

// WithPath captures which path was being processed when the error occurred.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

// Generation returns the generation number where the error occurred.
func (se *StorageError) Generation() uint64 {
	return se.generation
}

// Offset returns the byte offset within the generation where the error happened.
func (se *StorageError) Offset() int64 {
	return se.offset
}

// Path returns the path of the file that was being processed.
func (se *StorageError) Path() string {
	return se.path
}
