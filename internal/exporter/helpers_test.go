package exporter

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"hdicli/internal/analytics"
	"hdicli/internal/files"
	"hdicli/pkg/contracts/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func nf(f float64) sql.NullFloat64 { return sql.NullFloat64{Float64: f, Valid: true} }

func row(raw ...string) []string { return raw }

// sampleBundle analyzes three rows: two dated 2010 (one without a composite
// value) and one dated 2000
func sampleBundle(t *testing.T) *analytics.Bundle {
	t.Helper()
	rows := []domain.Record{
		{
			Municipality: "Ariquemes", State: "RO", Year: 2000,
			HDI: nf(0.6), Education: nf(0.5), Longevity: nf(0.7), Income: nf(0.6),
			Raw: row("Ariquemes", "RO", "2000", "0.600", "0.5", "0.7", "0.6"),
		},
		{
			Municipality: "São Paulo", State: "SP", Year: 2010,
			HDI: nf(0.805), Education: nf(0.725), Longevity: nf(0.855), Income: nf(0.843),
			Raw: row("São Paulo", "SP", "2010", "0.805", "0.725", "0.855", "0.843"),
		},
		{
			Municipality: "Joinville", State: "SC", Year: 2010,
			Education: nf(0.749), Longevity: nf(0.889), Income: nf(0.795),
			Raw: row("Joinville", "SC", "2010", "", "0.749", "0.889", "0.795"),
		},
	}

	engine := analytics.NewEngine(quietLogger(), analytics.Options{TopN: 10})
	b, err := engine.Analyze(context.Background(), domain.NewTable(domain.RequiredColumns, rows))
	require.NoError(t, err)
	return b
}

func tableByName(t *testing.T, tables []DerivedTable, name string) DerivedTable {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Name == name {
			return tbl
		}
	}
	t.Fatalf("table %s not found", name)
	return DerivedTable{}
}

func newManager(t *testing.T) *files.Manager {
	t.Helper()
	return files.NewManager(t.TempDir(), quietLogger())
}
