package observability

import (
	"context"

	"github.com/rs/zerolog"

	"aic_catalog/internal/domain"
)

// ParseProblemSink counts parse problems and logs them with their stable code.
type ParseProblemSink struct {
	log zerolog.Logger
}

func NewParseProblemSink(log zerolog.Logger) *ParseProblemSink {
	return &ParseProblemSink{log: log}
}

func (s *ParseProblemSink) Record(_ context.Context, p domain.ParseProblem) {
	ObserveParseProblem(p.Kind)
	s.log.Debug().
		Str("kind", p.Kind).
		Int("code", p.Code).
		Str("data", p.Data).
		Msg(p.Message)
}

// MultiDiagnostics fans one report out to several sinks.
type MultiDiagnostics []domain.Diagnostics

func (m MultiDiagnostics) Record(ctx context.Context, p domain.ParseProblem) {
	for _, d := range m {
		d.Record(ctx, p)
	}
}
