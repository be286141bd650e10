package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"hdicli/internal/config"
	apperrors "hdicli/internal/errors"
	"hdicli/internal/infrastructure"
	"hdicli/internal/pipeline"
	"hdicli/pkg/contracts"
)

// options holds the command-line overrides. Only flags the user set are applied.
type options struct {
	configFile string
	rawDir     string
	outputDir  string
	topN       int
	excel      bool
	database   string
	charts     bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "hdi-report",
		Short: "Analyze municipal HDI data and write derived tables and a report",
		Long: `hdi-report reads the first .csv or .xlsx table found in the raw data
directory, classifies every municipality by HDI band and computes national,
state, regional and yearly statistics.

Results are written to the output directory as CSV tables and a plain text
report, optionally also as an Excel workbook, an SQLite database and PNG charts.`,
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./hdi.yaml or ./configs/hdi.yaml)")
	flags.StringVar(&opts.rawDir, "raw", "", "directory holding the input table")
	flags.StringVar(&opts.outputDir, "out", "", "directory for generated files")
	flags.IntVar(&opts.topN, "top", config.DefaultTopN, "number of municipalities in the ranking")
	flags.BoolVar(&opts.excel, "excel", false, "also write an Excel workbook")
	flags.StringVar(&opts.database, "db", "", "also write an SQLite database at this path")
	flags.BoolVar(&opts.charts, "charts", false, "also render PNG charts")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

// loadConfig reads the configuration and applies the flags that were set
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("raw") {
		cfg.Paths.RawDir = opts.rawDir
	}
	if flags.Changed("out") {
		cfg.Paths.OutputDir = opts.outputDir
	}
	if flags.Changed("top") {
		cfg.Analysis.TopN = opts.topN
	}
	if flags.Changed("excel") {
		cfg.Export.Excel = opts.excel
	}
	if flags.Changed("db") {
		cfg.Export.DatabasePath = opts.database
	}
	if flags.Changed("charts") {
		cfg.Export.Charts = opts.charts
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("invalid flags", err)
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	cfg.Logging.FilePath = paths.Resolve(cfg.Logging.FilePath)
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: failed to initialize logger: %v\n", err)
		return err
	}
	defer infrastructure.CloseLogFile()

	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", slog.String("error", err.Error()))
		return err
	}
	paths.LogPathResolution()

	ctx := infrastructure.EnsureTraceID(cmd.Context())
	p, err := pipeline.New(ctx, cfg, paths, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to start pipeline", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := p.Close(context.WithoutCancel(ctx)); err != nil {
			logger.WarnContext(ctx, "Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	res, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	printResult(out, res)
	return nil
}

// printResult lists the generated files and any outputs that failed
func printResult(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "Analysis of %s complete.\n", res.InputFile)
	fmt.Fprintln(w, "Generated files:")
	for _, f := range res.Outputs {
		fmt.Fprintf(w, "  - %s (%s)\n", f.Name, humanize.Bytes(uint64(f.Size)))
	}

	if len(res.ExportErrors) > 0 {
		fmt.Fprintf(w, "%d outputs failed:\n", len(res.ExportErrors))
		for _, err := range res.ExportErrors {
			fmt.Fprintf(w, "  - %v\n", err)
		}
	}
}
