package clone

import (
	"io/fs"
	"os"
)

// FileSystem abstracts the file operations performed inside the cloned repository.
type FileSystem interface {
	ReadFile(filePath string) ([]byte, error)
	WriteFile(filePath string, contents []byte, permissions fs.FileMode) error
	MkdirAll(directoryPath string, permissions fs.FileMode) error
}

// OSFileSystem implements FileSystem against the local disk.
type OSFileSystem struct{}

// NewOSFileSystem constructs an operating-system backed FileSystem.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// ReadFile reads the file at the provided path.
func (OSFileSystem) ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// WriteFile writes contents to the provided path with the requested permissions.
func (OSFileSystem) WriteFile(filePath string, contents []byte, permissions fs.FileMode) error {
	return os.WriteFile(filePath, contents, permissions)
}

// MkdirAll creates the directory path along with any missing parents.
func (OSFileSystem) MkdirAll(directoryPath string, permissions fs.FileMode) error {
	return os.MkdirAll(directoryPath, permissions)
}
