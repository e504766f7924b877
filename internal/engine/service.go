// Package engine ties the pure resume packages together behind one service
// used by the CLI, the watcher and the HTTP server.
package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/export"
	"resumescore/internal/observability"
	"resumescore/internal/resume"
	"resumescore/internal/scoring"
	"resumescore/internal/suggestions"
	"resumescore/internal/types"
	"resumescore/internal/validation"
)

// Service handles scoring, validation, suggestions and export
type Service struct {
	exporters       *export.Registry
	obs             *observability.Manager
	logger          *errors.Logger
	defaultStrategy string
	defaultOptions  export.Options
	now             func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now, which only affects export filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRegistry replaces the built-in exporter registry.
func WithRegistry(r *export.Registry) Option {
	return func(s *Service) { s.exporters = r }
}

// NewService creates an engine using the app defaults from cfg. obs may be
// nil.
func NewService(cfg config.AppConfig, obs *observability.Manager, logger *errors.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = errors.Discard()
	}
	s := &Service{
		exporters:       export.DefaultRegistry(),
		obs:             obs,
		logger:          logger,
		defaultStrategy: cfg.DefaultStrategy,
		defaultOptions:  export.Options{Template: cfg.DefaultTemplate, Theme: cfg.DefaultTheme},
		now:             time.Now,
	}
	if s.defaultStrategy == "" {
		s.defaultStrategy = scoring.StrategyCompact
	}
	for _, opt := range opts {
		opt(s)
	}
	logger.Debug("Initializing resume engine",
		"default_strategy", s.defaultStrategy,
		"formats", s.exporters.Formats())
	return s
}

// Rendered is an export ready to be written or downloaded.
type Rendered struct {
	Format      string
	Content     string
	Filename    string
	ContentType string
}

func (s *Service) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return s.obs.Tracer("resumescore.engine").Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// Score runs the named strategy, or the configured default when strategy
// is empty.
func (s *Service) Score(ctx context.Context, doc *resume.Document, strategy string) (types.ScoreOutput, error) {
	if strategy == "" {
		strategy = s.defaultStrategy
	}
	ctx, span := s.span(ctx, "engine.score", attribute.String("strategy", strategy))
	defer span.End()

	scorer, err := scoring.ByName(strategy)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return types.ScoreOutput{}, err
	}

	out := types.NewScoreOutput(scorer.Score(doc))
	span.SetAttributes(attribute.Int("score", out.Score), attribute.String("label", out.Label))
	s.obs.RecordScore(ctx, out.Strategy, out.Label, out.Score)
	s.logger.Debug("Resume scored", "strategy", out.Strategy, "score", out.Score, "label", out.Label)
	return out, nil
}

// Validate runs every section validator and attaches the checklist.
func (s *Service) Validate(ctx context.Context, doc *resume.Document) types.ValidateOutput {
	ctx, span := s.span(ctx, "engine.validate")
	defer span.End()

	report := validation.Validate(doc)
	counts := report.Counts()
	span.SetAttributes(
		attribute.Bool("valid", report.IsValid),
		attribute.Int("completeness", report.Completeness),
	)
	s.obs.RecordValidation(ctx, report.IsValid, counts[validation.SeverityError], counts[validation.SeverityWarning])
	return types.NewValidateOutput(report, validation.Suggestions(doc))
}

// Suggest returns the validation checklist and the ranked improvements.
func (s *Service) Suggest(ctx context.Context, doc *resume.Document) types.SuggestOutput {
	_, span := s.span(ctx, "engine.suggest")
	defer span.End()

	return types.SuggestOutput{
		Checklist:    validation.Suggestions(doc),
		Improvements: suggestions.Generate(doc),
	}
}

// Analyze computes score, validation and improvements in one pass.
func (s *Service) Analyze(ctx context.Context, doc *resume.Document, strategy string) (types.AnalysisOutput, error) {
	score, err := s.Score(ctx, doc, strategy)
	if err != nil {
		return types.AnalysisOutput{}, err
	}
	return types.AnalysisOutput{
		Score:        score,
		Validation:   s.Validate(ctx, doc),
		Improvements: suggestions.Generate(doc),
	}, nil
}

// Export renders doc. Empty template or theme fields fall back to the
// configured defaults.
func (s *Service) Export(ctx context.Context, doc *resume.Document, format string, opts export.Options) (Rendered, error) {
	ctx, span := s.span(ctx, "engine.export", attribute.String("format", format))
	defer span.End()

	if opts.Template == "" {
		opts.Template = s.defaultOptions.Template
	}
	if opts.Theme == "" {
		opts.Theme = s.defaultOptions.Theme
	}

	exporter, err := s.exporters.Get(format)
	if err != nil {
		s.obs.RecordExport(ctx, format, err)
		span.SetStatus(codes.Error, err.Error())
		return Rendered{}, err
	}

	content, err := s.exporters.Export(format, doc, opts)
	s.obs.RecordExport(ctx, format, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Rendered{}, err
	}

	return Rendered{
		Format:      format,
		Content:     content,
		Filename:    export.Filename(doc.PersonalInfo.Name, exporter.Extension(), s.now()),
		ContentType: exporter.ContentType(),
	}, nil
}

// Formats lists the export formats.
func (s *Service) Formats() []string {
	return s.exporters.Formats()
}

// Strategies lists the scoring strategies.
func (s *Service) Strategies() []string {
	return scoring.Names()
}
