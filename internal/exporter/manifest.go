package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/zeebo/xxh3"

	apperrors "hdicli/internal/errors"
	"hdicli/internal/files"
	"hdicli/pkg/contracts"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ManifestEntry describes one output file
type ManifestEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	// XXH3 is the 64-bit xxh3 digest of the content, in hex
	XXH3 string `json:"xxh3"`
}

// Manifest lists the outputs of a run. It carries no timestamps so identical
// outputs yield an identical manifest.
type Manifest struct {
	FormatVersion string          `json:"format_version"`
	InputFile     string          `json:"input_file"`
	Outputs       []ManifestEntry `json:"outputs"`
}

// BuildManifest digests each path. Entries are sorted by name.
func BuildManifest(inputFile string, paths []string) (*Manifest, error) {
	m := &Manifest{
		FormatVersion: contracts.DataFormatVersion,
		InputFile:     filepath.Base(inputFile),
		Outputs:       make([]ManifestEntry, 0, len(paths)),
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		m.Outputs = append(m.Outputs, ManifestEntry{
			Name: filepath.Base(p),
			Size: int64(len(data)),
			XXH3: fmt.Sprintf("%016x", xxh3.Hash(data)),
		})
	}

	sort.Slice(m.Outputs, func(i, j int) bool {
		return m.Outputs[i].Name < m.Outputs[j].Name
	})
	return m, nil
}

// WriteManifest builds the manifest for paths and writes it as name through manager
func WriteManifest(ctx context.Context, manager *files.Manager, name, inputFile string, paths []string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m, err := BuildManifest(inputFile, paths)
	if err != nil {
		return "", apperrors.NewExportError(name, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", apperrors.NewExportError(name, err)
	}
	data = append(data, '\n')

	if err := manager.WriteFile(name, data); err != nil {
		return "", apperrors.NewExportError(name, err)
	}

	logger.InfoContext(ctx, "Manifest written",
		slog.String("file", manager.Path(name)),
		slog.Int("outputs", len(m.Outputs)))
	return manager.Path(name), nil
}
