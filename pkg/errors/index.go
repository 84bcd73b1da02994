package errors

// IndexError provides specialized error handling for index-related
// operations: lookups, inserts, deletes, and recovery.
type IndexError struct {
	*baseError

	// key identifies which key was being processed when the error occurred.
	key string

	// operation describes what index operation was being performed
	// (e.g. "Get", "Remove", "Recovery").
	operation string

	// generation records which generation the index entry pointed into,
	// when relevant (e.g. UnexpectedCommandType).
	generation uint64
}

// NewIndexError creates a new index-specific error.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while preserving the IndexError type.
func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

// WithDetail adds contextual information while preserving the IndexError type.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithKey records which key was being processed when the error occurred.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithOperation records what index operation was being performed.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// WithGeneration records which generation the pinned entry referenced.
func (ie *IndexError) WithGeneration(gen uint64) *IndexError {
	ie.generation = gen
	return ie
}

// Key returns the key that was being processed when the error occurred.
func (ie *IndexError) Key() string {
	return ie.key
}

// Operation returns the name of the operation that was being performed.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// Generation returns the generation the pinned entry referenced.
func (ie *IndexError) Generation() uint64 {
	return ie.generation
}

// NewKeyNotFoundError creates the error spec.md §7 calls KeyNotFound: remove
// called on a key absent from the index. No state is mutated when this is
// returned.
func NewKeyNotFoundError(key string) *IndexError {
	return NewIndexError(nil, ErrorCodeKeyNotFound, "key not found").
		WithKey(key).
		WithOperation("Remove")
}

// NewUnexpectedCommandTypeError creates the error spec.md §7 calls
// UnexpectedCommandType: the byte range pinned by the index did not decode
// to a Set command.
func NewUnexpectedCommandTypeError(key string, gen uint64) *IndexError {
	return NewIndexError(nil, ErrorCodeUnexpectedCommandType, "index entry did not decode to a Set command").
		WithKey(key).
		WithGeneration(gen).
		WithOperation("Get")
}
