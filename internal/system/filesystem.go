package system

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zoro11031/d3l/internal/common"
	"github.com/zoro11031/d3l/internal/logging"
	"golang.org/x/sys/unix"
)

// AccessMode selects the permission checked by Access
type AccessMode uint32

const (
	AccessExists  AccessMode = unix.F_OK
	AccessRead    AccessMode = unix.R_OK
	AccessWrite   AccessMode = unix.W_OK
	AccessExecute AccessMode = unix.X_OK
)

// readChunk is the block size used by ReadFile
const readChunk = 1024

// File describes basic file attributes.
type File struct {
	Path     string
	Size     int64 // bytes
	Mode     os.FileMode
	Modified time.Time
	IsDir    bool
}

// FileSystem handles file system operations. Every failure is returned as a
// tagged *common.Error and also written to the log.
type FileSystem struct {
	log logrus.FieldLogger
}

// NewFileSystem creates a new FileSystem instance logging to log
func NewFileSystem(log logrus.FieldLogger) *FileSystem {
	if log == nil {
		log = logging.Discard()
	}
	return &FileSystem{log: log}
}

// fail logs err against path and returns it tagged with kind
func (fs *FileSystem) fail(kind common.Kind, op, path string, err error) error {
	fs.log.WithField("path", path).WithError(err).Errorf("%s failed", op)
	return common.NewError(kind, op, path, err)
}

// kindFor classifies an os error as not found, access or fallback
func kindFor(err error, fallback common.Kind) common.Kind {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return common.KindNotFound
	case errors.Is(err, os.ErrPermission):
		return common.KindAccess
	default:
		return fallback
	}
}

// Access checks path against mode using the real user ID
func (fs *FileSystem) Access(path string, mode AccessMode) error {
	if err := unix.Access(path, uint32(mode)); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return fs.fail(common.KindNotFound, "access", path, err)
		}
		return fs.fail(common.KindAccess, "access", path, err)
	}
	return nil
}

// Exists reports whether path names an accessible filesystem entry
func (fs *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists %s: %w", path, err)
}

// DirectoryExists checks if a directory exists
func (fs *FileSystem) DirectoryExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if directory exists %s: %w", path, err)
}

// Mkdir creates a single directory
func (fs *FileSystem) Mkdir(path string, perms os.FileMode) error {
	if err := os.Mkdir(path, perms); err != nil {
		if os.IsExist(err) {
			return common.NewError(common.KindAlreadyExists, "mkdir", path, err)
		}
		return common.NewError(common.KindCreate, "mkdir", path, err)
	}
	return nil
}

// Remove unlinks a file. Directories are refused by the kernel.
func (fs *FileSystem) Remove(path string) error {
	if err := unix.Unlink(path); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return fs.fail(common.KindNotFound, "remove", path, err)
		}
		return fs.fail(common.KindRemove, "remove", path, err)
	}
	return nil
}

// LineCount returns the number of lines in a file. A final line without a
// trailing newline is counted; an empty file has zero lines.
func (fs *FileSystem) LineCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return -1, fs.fail(kindFor(err, common.KindRead), "line count", path, err)
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	count := 0
	last := byte('\n')
	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return -1, fs.fail(common.KindRead, "line count", path, err)
		}
	}

	if last != '\n' {
		count++
	}
	return count, nil
}

// Size returns the size of a file in bytes
func (fs *FileSystem) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return -1, fs.fail(kindFor(err, common.KindAccess), "size", path, err)
	}
	return info.Size(), nil
}

// Stat returns the attributes of path
func (fs *FileSystem) Stat(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fs.fail(kindFor(err, common.KindAccess), "stat", path, err)
	}
	return File{
		Path:     path,
		Size:     info.Size(),
		Mode:     info.Mode(),
		Modified: info.ModTime(),
		IsDir:    info.IsDir(),
	}, nil
}

// ReadFile returns the whole content of path
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fs.fail(kindFor(err, common.KindRead), "read", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if info, err := f.Stat(); err == nil {
		out.Grow(int(info.Size()))
	}

	chunk := make([]byte, readChunk)
	for {
		n, err := f.Read(chunk)
		out.Write(chunk[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fs.fail(common.KindRead, "read", path, err)
		}
	}

	return out.Bytes(), nil
}

// WriteFile replaces path with content. An existing file is unlinked first so
// the new file gets perms rather than inheriting the old mode. Returns the
// number of bytes written.
func (fs *FileSystem) WriteFile(path string, content []byte, perms os.FileMode) (int, error) {
	if _, err := os.Lstat(path); err == nil {
		if err := unix.Unlink(path); err != nil {
			return 0, fs.fail(common.KindRemove, "write", path, err)
		}
		fs.log.WithField("path", path).Info("existing file has been deleted")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perms)
	if err != nil {
		return 0, fs.fail(kindFor(err, common.KindWrite), "write", path, err)
	}

	n, err := f.Write(content)
	if err != nil {
		f.Close()
		return n, fs.fail(common.KindWrite, "write", path, err)
	}

	if err := f.Close(); err != nil {
		return n, fs.fail(common.KindWrite, "write", path, err)
	}

	return n, nil
}

// OpenDir checks that path is a readable directory and returns its entries
func (fs *FileSystem) OpenDir(path string) ([]os.DirEntry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fs.fail(kindFor(err, common.KindAccess), "open dir", path, err)
	}

	if !info.IsDir() {
		return nil, fs.fail(common.KindNotDirectory, "open dir", path, fmt.Errorf("%s is not a directory", path))
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fs.fail(common.KindAccess, "open dir", path, err)
	}

	return entries, nil
}

// CountEntries counts the entries of a directory (non-recursive, "." and ".." excluded)
func (fs *FileSystem) CountEntries(path string) (int, error) {
	entries, err := fs.OpenDir(path)
	if err != nil {
		return -1, err
	}
	return len(entries), nil
}

// ListDirectory lists all entries in a directory, sorted by name
func (fs *FileSystem) ListDirectory(path string) ([]string, error) {
	entries, err := fs.OpenDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}
