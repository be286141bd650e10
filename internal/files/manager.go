package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Manager performs file operations inside a single output directory
type Manager struct {
	dir    string
	logger *slog.Logger
}

// NewManager creates a new file manager rooted at dir
func NewManager(dir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{dir: dir, logger: logger}
}

// Dir returns the managed directory
func (m *Manager) Dir() string {
	return m.dir
}

// Path returns the full path of name inside the managed directory
func (m *Manager) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.dir, name)
}

// EnsureDirectory creates the managed directory if it doesn't exist
func (m *Manager) EnsureDirectory() error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", m.dir, err)
	}
	return nil
}

// WriteFile writes data to name, replacing any previous content.
// The data is written to a temporary file first and renamed into place.
func (m *Manager) WriteFile(name string, data []byte) error {
	fullPath := m.Path(name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	m.logger.Debug("Wrote file",
		slog.String("path", fullPath),
		slog.Int("size_bytes", len(data)))

	return nil
}

// Describe stats each named file and returns them sorted by name.
// Names that do not exist are skipped.
func (m *Manager) Describe(names []string) []FileInfo {
	files := make([]FileInfo, 0, len(names))
	for _, name := range names {
		fullPath := m.Path(name)
		info, err := os.Stat(fullPath)
		if err != nil {
			m.logger.Debug("Skipping missing file", slog.String("path", fullPath))
			continue
		}
		files = append(files, FileInfo{
			Path:    fullPath,
			Name:    filepath.Base(fullPath),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   info.IsDir(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files
}
