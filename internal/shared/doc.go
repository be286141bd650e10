// Package shared holds code used across packages that belongs to no single
// stage of the pipeline.
//
// The testutil subpackage provides helpers for tests: a slog handler that
// captures records for assertions and fixtures that write input tables
// into temporary directories.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    raw := testutil.WriteInput(t, t.TempDir(), "atlas.csv", testutil.SampleCSV)
//	    // ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "Run complete")
//	}
package shared
