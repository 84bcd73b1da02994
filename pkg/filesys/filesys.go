// Package filesys provides the small set of filesystem utility functions the
// storage engine needs: creating the store directory, checking for file
// existence, and removing a generation file once compaction has superseded
// it.
package filesys

import (
	"errors"
	"os"
)

// ErrIsNotDir is returned when a path that was expected to be a directory
// turns out to be a regular file.
var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates a directory at the specified path with the given
// permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns the stat error.
//
// It also returns an error if the existing path is a file, not a directory.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force && !os.IsNotExist(err) {
		if err == nil && !stat.IsDir() {
			return ErrIsNotDir
		}
		return err
	}

	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	return os.Chmod(dirPath, permission)
}

// Exists checks if a file or directory at the given path exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// DeleteFile deletes the file at the specified path.
func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}
