package system

import "os"

// DirectoryManager is the part of the file system PathCreator depends on.
// This allows for mocking the file system in tests.
type DirectoryManager interface {
	DirectoryExists(path string) (bool, error)
	Mkdir(path string, perms os.FileMode) error
}

// FileSystemManager defines the interface for file system operations.
type FileSystemManager interface {
	DirectoryManager
	Exists(path string) (bool, error)
	Access(path string, mode AccessMode) error
	Remove(path string) error
	LineCount(path string) (int, error)
	Size(path string) (int64, error)
	Stat(path string) (File, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, perms os.FileMode) (int, error)
	CountEntries(path string) (int, error)
	ListDirectory(path string) ([]string, error)
}

var _ FileSystemManager = (*FileSystem)(nil)
