// Package files locates the input table and manages the output directory.
//
// Discovery picks the input: the lexically first regular file in the raw
// directory whose extension is in the configured list. When nothing matches,
// or the directory does not exist, it returns an INPUT_MISSING AppError.
//
// Manager writes files into the output directory by temp file and rename, so
// a reader never sees a half-written output, and describes written files for
// the output listing and the manifest.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	input, err := discovery.FirstByExtension(paths.RawDir, []string{".csv", ".xlsx"})
//
//	manager := files.NewManager(paths.OutputDir, logger)
//	err = manager.WriteFile("hdi_report.txt", data)
package files
