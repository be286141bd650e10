package exporter

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"

	"hdicli/internal/config"
	apperrors "hdicli/internal/errors"
	"hdicli/pkg/contracts"
)

func TestBuildManifest(t *testing.T) {
	manager := newManager(t)
	require.NoError(t, manager.WriteFile("b.csv", []byte("bbb")))
	require.NoError(t, manager.WriteFile("a.csv", []byte("a")))

	m, err := BuildManifest("/data/raw/input.csv", []string{manager.Path("b.csv"), manager.Path("a.csv")})
	require.NoError(t, err)

	assert.Equal(t, "input.csv", m.InputFile)
	assert.Equal(t, contracts.DataFormatVersion, m.FormatVersion)
	require.Len(t, m.Outputs, 2)
	assert.Equal(t, "a.csv", m.Outputs[0].Name)
	assert.Equal(t, int64(1), m.Outputs[0].Size)
	assert.Equal(t, fmt.Sprintf("%016x", xxh3.Hash([]byte("a"))), m.Outputs[0].XXH3)
	assert.Equal(t, "b.csv", m.Outputs[1].Name)
}

func TestBuildManifest_MissingFile(t *testing.T) {
	_, err := BuildManifest("in.csv", []string{"/nonexistent/out.csv"})
	assert.Error(t, err)
}

func TestWriteManifest_Deterministic(t *testing.T) {
	manager := newManager(t)
	require.NoError(t, manager.WriteFile("report.txt", []byte("hello\n")))
	paths := []string{manager.Path("report.txt")}

	path, err := WriteManifest(context.Background(), manager, config.ManifestFile, "in.csv", paths, quietLogger())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = WriteManifest(context.Background(), manager, config.ManifestFile, "in.csv", paths, quietLogger())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	var decoded Manifest
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, "report.txt", decoded.Outputs[0].Name)
	assert.Equal(t, int64(6), decoded.Outputs[0].Size)
}

func TestWriteManifest_ReadError(t *testing.T) {
	_, err := WriteManifest(context.Background(), newManager(t), config.ManifestFile, "in.csv",
		[]string{"/nonexistent/out.csv"}, quietLogger())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeExport))
}
