package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"hdicli/internal/analytics"
	"hdicli/internal/config"
	"hdicli/internal/dataprocessing"
	apperrors "hdicli/internal/errors"
	"hdicli/internal/exporter"
	"hdicli/internal/files"
	"hdicli/internal/infrastructure"
	"hdicli/internal/report"
	"hdicli/pkg/contracts/domain"
)

// Result is the outcome of a run
type Result struct {
	RunID     string
	InputFile string
	Bundle    *analytics.Bundle
	// Outputs lists every file written, sorted by name
	Outputs []files.FileInfo
	// ExportErrors holds outputs that failed to write. They do not fail the run.
	ExportErrors []error
	Stages       []StageResult
}

// Pipeline drives one batch run: discover, load, analyze, export
type Pipeline struct {
	cfg     *config.Config
	paths   *config.Paths
	logger  *slog.Logger
	tracing *infrastructure.Tracing
	metrics *infrastructure.RunMetrics
	manager *files.Manager
}

// New creates a pipeline for cfg. Tracing starts when cfg names a trace file;
// call Close to flush it.
func New(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "pipeline")

	obs := cfg.Observability
	obs.TraceFile = paths.Resolve(obs.TraceFile)
	tracing, err := infrastructure.InitializeTracing(ctx, obs, logger)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize tracing", err)
	}

	return &Pipeline{
		cfg:     cfg,
		paths:   paths,
		logger:  logger,
		tracing: tracing,
		metrics: infrastructure.NewRunMetrics(),
		manager: files.NewManager(paths.OutputDir, logger),
	}, nil
}

// Metrics returns the collectors filled by Run
func (p *Pipeline) Metrics() *infrastructure.RunMetrics {
	return p.metrics
}

// Close flushes pending spans
func (p *Pipeline) Close(ctx context.Context) error {
	return p.tracing.Shutdown(ctx)
}

// Run executes every stage. Structural failures (missing input, schema,
// parsing) are returned as errors; failed outputs are collected in the Result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	res := &Result{RunID: infrastructure.GetTraceID(ctx)}

	ctx, span := p.tracing.StartStage(ctx, "run")
	err := p.run(ctx, res)
	infrastructure.EndStage(span, err)

	if err == nil {
		p.metrics.MarkSuccess(time.Now())
	}
	if werr := p.writeMetrics(ctx); werr != nil {
		res.ExportErrors = append(res.ExportErrors, werr)
	}
	return res, err
}

func (p *Pipeline) run(ctx context.Context, res *Result) error {
	var (
		input files.FileInfo
		table domain.Table
	)

	err := p.runStage(ctx, res, StageDiscover, func(ctx context.Context) error {
		discovery := files.NewDiscovery(p.paths.BaseDir)
		found, err := discovery.FirstByExtension(p.paths.RawDir, p.cfg.Input.Extensions)
		if err != nil {
			return err
		}
		input = found
		res.InputFile = found.Path
		p.logger.InfoContext(ctx, "Input file selected",
			slog.String("file", found.Path),
			slog.Int64("size", found.Size))
		return nil
	})
	if err != nil {
		return err
	}

	err = p.runStage(ctx, res, StageLoad, func(ctx context.Context) error {
		reader := dataprocessing.NewReader(p.logger, dataprocessing.ReaderOptions{
			Delimiter: dataprocessing.DelimiterFromString(p.cfg.Input.Delimiter),
		})
		loaded, err := reader.Load(ctx, input.Path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", input.Name, err)
		}
		table = loaded
		p.metrics.SetRowsLoaded(loaded.Len())
		return nil
	})
	if err != nil {
		return err
	}

	err = p.runStage(ctx, res, StageAnalyze, func(ctx context.Context) error {
		engine := analytics.NewEngine(p.logger, analytics.Options{TopN: p.cfg.Analysis.TopN})
		bundle, err := engine.Analyze(ctx, table)
		if err != nil {
			return err
		}
		res.Bundle = bundle
		p.metrics.AddInsufficientData(len(bundle.Issues))
		return nil
	})
	if err != nil {
		return err
	}

	var written []string
	_ = p.runStage(ctx, res, StageExport, func(ctx context.Context) error {
		var exportErr error
		written, exportErr = p.export(ctx, res)
		return exportErr
	})

	_ = p.runStage(ctx, res, StageReport, func(ctx context.Context) error {
		if err := p.manager.WriteFile(config.ReportFile, report.Format(res.Bundle)); err != nil {
			rerr := apperrors.NewExportError(config.ReportFile, err)
			res.ExportErrors = append(res.ExportErrors, rerr)
			p.metrics.ExportFailed("report")
			return rerr
		}
		written = append(written, p.manager.Path(config.ReportFile))
		p.metrics.OutputWritten("report")
		return nil
	})

	if p.cfg.Export.Manifest {
		_ = p.runStage(ctx, res, StageManifest, func(ctx context.Context) error {
			path, err := exporter.WriteManifest(ctx, p.manager, config.ManifestFile, input.Path, written, p.logger)
			if err != nil {
				res.ExportErrors = append(res.ExportErrors, err)
				p.metrics.ExportFailed("manifest")
				return err
			}
			written = append(written, path)
			p.metrics.OutputWritten("manifest")
			return nil
		})
	} else {
		res.skipStage(StageManifest)
	}

	res.Outputs = p.manager.Describe(written)
	p.logger.InfoContext(ctx, "Run complete",
		slog.String("input", input.Name),
		slog.Int("outputs", len(res.Outputs)),
		slog.Int("export_errors", len(res.ExportErrors)))
	return nil
}

// sinks returns the exporters enabled in the configuration
func (p *Pipeline) sinks() []exporter.Sink {
	var sinks []exporter.Sink
	export := p.cfg.Export

	if export.CSV {
		sinks = append(sinks, exporter.NewCSVWriter(p.manager, exporter.CSVOptions{
			Delimiter: dataprocessing.DelimiterFromString(export.Delimiter),
			BOMPrefix: export.BOM,
		}, p.logger))
	}
	if export.Excel {
		sinks = append(sinks, exporter.NewExcelWriter(p.manager.Path(export.ExcelFile), p.logger))
	}
	if export.DatabasePath != "" {
		sinks = append(sinks, exporter.NewSQLiteWriter(p.manager.Path(export.DatabasePath), p.logger))
	}
	if export.Charts {
		sinks = append(sinks, exporter.NewChartWriter(p.manager, p.logger))
	}
	return sinks
}

// export runs the enabled sinks concurrently. Each sink owns distinct files.
// It returns every path written; the error is non-nil when any output failed.
func (p *Pipeline) export(ctx context.Context, res *Result) ([]string, error) {
	if err := p.manager.EnsureDirectory(); err != nil {
		derr := apperrors.NewExportError(p.manager.Dir(), err)
		res.ExportErrors = append(res.ExportErrors, derr)
		p.metrics.ExportFailed("output")
		return nil, derr
	}

	tables := exporter.BuildTables(res.Bundle)
	sinks := p.sinks()
	outcomes := make([]exporter.Outcome, len(sinks))

	g, gctx := errgroup.WithContext(ctx)
	for i, sink := range sinks {
		i, sink := i, sink
		g.Go(func() error {
			sinkCtx, span := p.tracing.StartStage(gctx, StageExport+"."+sink.Name())
			outcomes[i] = sink.Export(sinkCtx, res.Bundle, tables)
			var err error
			if len(outcomes[i].Errors) > 0 {
				err = outcomes[i].Errors[0]
			}
			infrastructure.EndStage(span, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var written []string
	for _, out := range outcomes {
		for range out.Written {
			p.metrics.OutputWritten(out.Sink)
		}
		for range out.Errors {
			p.metrics.ExportFailed(out.Sink)
		}
		written = append(written, out.Written...)
		res.ExportErrors = append(res.ExportErrors, out.Errors...)
	}

	if n := len(res.ExportErrors); n > 0 {
		return written, fmt.Errorf("%d outputs failed to write", n)
	}
	return written, nil
}

func (p *Pipeline) writeMetrics(ctx context.Context) error {
	path := p.cfg.Observability.MetricsFile
	if path == "" {
		return nil
	}
	path = p.paths.Resolve(path)
	if err := p.metrics.WriteTextfile(path); err != nil {
		p.logger.ErrorContext(ctx, "Failed to write metrics",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewExportError(filepath.Base(path), err)
	}
	return nil
}
