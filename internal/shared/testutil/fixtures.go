package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCSV is a small input table spanning two census years and four regions.
// Melgaço has no composite value.
const SampleCSV = `municipality,state,year,hdi,hdi_education,hdi_longevity,hdi_income
Ariquemes,RO,2000,0.600,0.500,0.700,0.600
Ariquemes,RO,2010,0.702,0.600,0.806,0.716
Cabixi,RO,2010,0.650,0.559,0.757,0.650
Florianópolis,SC,2010,0.847,0.800,0.873,0.870
São Caetano do Sul,SP,2010,0.862,0.811,0.887,0.891
Melgaço,PA,2010,NA,0.207,0.776,0.454
`

// SampleHeader is the header line of SampleCSV
const SampleHeader = "municipality,state,year,hdi,hdi_education,hdi_longevity,hdi_income\n"

// WriteInput writes content to dir/name, creating dir, and returns the full path
func WriteInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// BlockPath creates a non-empty directory at path so that writing a file
// there fails
func BlockPath(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	if err := os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to populate %s: %v", path, err)
	}
}
