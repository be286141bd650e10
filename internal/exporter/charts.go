package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"hdicli/internal/analytics"
	"hdicli/internal/config"
	apperrors "hdicli/internal/errors"
	"hdicli/internal/files"
)

// ChartWriter renders PNG charts of the yearly evolution and the region means
type ChartWriter struct {
	manager *files.Manager
	logger  *slog.Logger
}

// NewChartWriter creates a chart exporter writing into the manager's directory
func NewChartWriter(manager *files.Manager, logger *slog.Logger) *ChartWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartWriter{manager: manager, logger: logger}
}

// Name implements Sink
func (w *ChartWriter) Name() string { return "charts" }

// Export implements Sink. A chart with nothing to plot is skipped.
func (w *ChartWriter) Export(ctx context.Context, b *analytics.Bundle, _ []DerivedTable) Outcome {
	out := Outcome{Sink: w.Name()}

	charts := []struct {
		file  string
		build func(*analytics.Bundle) (*plot.Plot, error)
		size  [2]vg.Length
	}{
		{config.EvolutionChartFile, evolutionChart, [2]vg.Length{8 * vg.Inch, 4 * vg.Inch}},
		{config.RegionChartFile, regionChart, [2]vg.Length{8 * vg.Inch, 4 * vg.Inch}},
	}

	for _, c := range charts {
		p, err := c.build(b)
		if err != nil {
			out.Errors = append(out.Errors, apperrors.NewExportError(c.file, err))
			continue
		}
		if p == nil {
			w.logger.DebugContext(ctx, "Chart skipped, no data", slog.String("file", c.file))
			continue
		}

		path := w.manager.Path(c.file)
		if err := w.manager.EnsureDirectory(); err != nil {
			out.Errors = append(out.Errors, apperrors.NewExportError(c.file, err))
			continue
		}
		if err := p.Save(c.size[0], c.size[1], path); err != nil {
			w.logger.ErrorContext(ctx, "Chart export failed",
				slog.String("file", c.file),
				slog.String("error", err.Error()))
			os.Remove(path)
			out.Errors = append(out.Errors, apperrors.NewExportError(c.file, err))
			continue
		}
		out.Written = append(out.Written, path)
	}
	return out
}

func evolutionChart(b *analytics.Bundle) (*plot.Plot, error) {
	var points plotter.XYs
	for _, y := range b.Evolution {
		if y.Mean.Valid {
			points = append(points, plotter.XY{X: float64(y.Year), Y: y.Mean.Float64})
		}
	}
	if len(points) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "Mean HDI by year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Mean HDI"

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("evolution line: %w", err)
	}
	line.Width = vg.Points(2)

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("evolution points: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), line, scatter)
	return p, nil
}

func regionChart(b *analytics.Bundle) (*plot.Plot, error) {
	var (
		values plotter.Values
		names  []string
	)
	for _, r := range b.Regions {
		if r.Mean.Valid {
			values = append(values, r.Mean.Float64)
			names = append(names, r.Region.String())
		}
	}
	if len(values) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "Mean HDI by region"
	p.Y.Label.Text = "Mean HDI"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, fmt.Errorf("region bars: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}
