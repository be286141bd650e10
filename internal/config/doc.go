// Package config provides centralized configuration management for the HDI
// report tool. It handles loading configuration from multiple sources,
// validation, and path resolution.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (hdi.yaml, configs/hdi.yaml or --config)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern HDI_<SECTION>_<KEY>:
//
//	HDI_PATHS_RAW_DIR=data/raw
//	HDI_PATHS_OUTPUT_DIR=data/output
//	HDI_LOGGING_LEVEL=debug
//	HDI_ANALYSIS_TOP_N=20
//	HDI_EXPORT_DATABASE_PATH=data/output/hdi.db
//
// # Path Management
//
// Paths resolves every configured directory against a single base
// directory so a run never depends on scattered relative paths:
//
//	paths, err := config.GetPaths(cfg.Paths)
//	reportPath := paths.GetOutputPath(config.ReportFile)
//
// # Validation
//
// Struct constraints are declared with validate tags and checked with
// go-playground/validator after all sources are merged.
package config
