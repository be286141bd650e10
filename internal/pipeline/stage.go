package pipeline

import (
	"context"
	"log/slog"
	"time"

	"hdicli/internal/infrastructure"
)

// Stage names, in execution order
const (
	StageDiscover = "discover"
	StageLoad     = "load"
	StageAnalyze  = "analyze"
	StageExport   = "export"
	StageReport   = "report"
	StageManifest = "manifest"
)

// StageStatus represents the outcome of a stage
type StageStatus string

const (
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageResult records one executed stage
type StageResult struct {
	Name     string
	Status   StageStatus
	Duration time.Duration
	Error    error
}

// runStage executes fn inside a span, times it and appends its result
func (p *Pipeline) runStage(ctx context.Context, res *Result, name string, fn func(context.Context) error) error {
	start := time.Now()
	stageCtx, span := p.tracing.StartStage(ctx, name)

	p.logger.DebugContext(stageCtx, "Stage started", slog.String("stage", name))
	err := fn(stageCtx)
	infrastructure.EndStage(span, err)

	elapsed := time.Since(start)
	p.metrics.ObserveStage(name, elapsed)

	status := StageStatusCompleted
	if err != nil {
		status = StageStatusFailed
		p.logger.ErrorContext(stageCtx, "Stage failed",
			slog.String("stage", name),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()))
	} else {
		p.logger.InfoContext(stageCtx, "Stage completed",
			slog.String("stage", name),
			slog.Duration("duration", elapsed))
	}

	res.Stages = append(res.Stages, StageResult{
		Name:     name,
		Status:   status,
		Duration: elapsed,
		Error:    err,
	})
	return err
}

// skipStage records a stage that was not run
func (res *Result) skipStage(name string) {
	res.Stages = append(res.Stages, StageResult{Name: name, Status: StageStatusSkipped})
}
