package system

import (
	"os"
	"sync"

	"github.com/zoro11031/d3l/internal/common"
)

// MockDirectoryManager is an in-memory DirectoryManager for testing purposes.
// It records directory creations in order and can be told to fail on
// specific paths.
type MockDirectoryManager struct {
	mu      sync.Mutex
	Dirs    map[string]os.FileMode
	Files   map[string]bool // non-directory entries
	Created []string
	FailOn  map[string]error
}

// NewMockDirectoryManager creates a new MockDirectoryManager with the given
// paths already present.
func NewMockDirectoryManager(existing ...string) *MockDirectoryManager {
	m := &MockDirectoryManager{
		Dirs:   make(map[string]os.FileMode),
		Files:  make(map[string]bool),
		FailOn: make(map[string]error),
	}
	for _, p := range existing {
		m.Dirs[p] = 0755
	}
	return m
}

// DirectoryExists reports whether the path was created or pre-seeded
func (m *MockDirectoryManager) DirectoryExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Dirs[path]
	return ok, nil
}

// Mkdir records the creation, or returns the injected failure for path
func (m *MockDirectoryManager) Mkdir(path string, perms os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailOn[path]; ok {
		return common.NewError(common.KindCreate, "mkdir", path, err)
	}
	if _, ok := m.Dirs[path]; ok || m.Files[path] {
		return common.NewError(common.KindAlreadyExists, "mkdir", path, os.ErrExist)
	}

	m.Dirs[path] = perms
	m.Created = append(m.Created, path)
	return nil
}
