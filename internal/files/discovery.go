package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "hdicli/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	// If dir is already absolute, use it directly
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindFilesByExtension returns the regular files in dir whose extension is one of
// extensions, compared case-insensitively. Results are in lexical name order.
func (d *Discovery) FindFilesByExtension(dir string, extensions []string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name(), extensions) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// os.ReadDir already sorts by name; keep the guarantee explicit
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FirstByExtension returns the lexically first file in dir matching extensions.
// A missing directory and an empty match both yield an INPUT_MISSING error.
func (d *Discovery) FirstByExtension(dir string, extensions []string) (FileInfo, error) {
	fullPath := d.resolve(dir)

	info, err := os.Stat(fullPath)
	if err != nil || !info.IsDir() {
		appErr := apperrors.NewInputMissingError(fullPath, extensions)
		if err != nil {
			appErr.Cause = err
		}
		return FileInfo{}, appErr
	}

	files, err := d.FindFilesByExtension(dir, extensions)
	if err != nil {
		return FileInfo{}, err
	}
	if len(files) == 0 {
		return FileInfo{}, apperrors.NewInputMissingError(fullPath, extensions)
	}

	return files[0], nil
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
