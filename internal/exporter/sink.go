package exporter

import (
	"context"

	"hdicli/internal/analytics"
)

// Outcome reports what one sink wrote and which outputs failed
type Outcome struct {
	Sink    string
	Written []string
	Errors  []error
}

// Sink writes a bundle to one kind of output.
// A failing output is recorded in the Outcome and never stops the others.
type Sink interface {
	Name() string
	Export(ctx context.Context, b *analytics.Bundle, tables []DerivedTable) Outcome
}
