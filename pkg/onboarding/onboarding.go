// Package onboarding is the public API for turning a repository reference
// into onboarding documentation.
package onboarding

import (
	"context"

	"github.com/quantmind-br/onboarddocs-go/internal/acquire"
	"github.com/quantmind-br/onboarddocs-go/internal/analysis"
	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/generate"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

// Re-exported domain types so callers don't import internal packages.
type (
	RepositoryAnalysis = domain.RepositoryAnalysis
	DocumentKind       = domain.DocumentKind
)

// Document kinds accepted by Generate.
const (
	KindTasks      = domain.KindTasks
	KindFaq        = domain.KindFaq
	KindQuickstart = domain.KindQuickstart
)

// Option configures an analysis run.
type Option func(*options)

type options struct {
	logger       *utils.Logger
	maxFileSize  int64
	maxRetries   int
	workers      int
	cache        analysis.AnalysisCache
	showProgress bool
}

// WithLogger sets the logger used by the pipeline.
func WithLogger(logger *utils.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxFileSize caps the size of files read during acquisition.
func WithMaxFileSize(bytes int64) Option {
	return func(o *options) { o.maxFileSize = bytes }
}

// WithMaxRetries sets how many times transient acquisition failures are retried.
func WithMaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithWorkers sets the extraction concurrency.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithCache plugs in an analysis cache consulted before acquisition.
func WithCache(cache analysis.AnalysisCache) Option {
	return func(o *options) { o.cache = cache }
}

// WithProgress enables the snapshot scan progress bar.
func WithProgress() Option {
	return func(o *options) { o.showProgress = true }
}

// IsSupported reports whether the reference names a source this package can
// analyze: a hosted git repository URL or an existing local directory.
func IsSupported(reference string) bool {
	return acquire.IsGitReference(reference) || acquire.IsLocalReference(reference)
}

// Analyze acquires the repository and assembles its analysis. Acquisition
// failures are fatal; extractor failures degrade to empty categories with
// warnings on the result.
func Analyze(ctx context.Context, reference string, opts ...Option) (*RepositoryAnalysis, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	acquirer := acquire.New(acquire.Options{
		Logger:       logger,
		MaxFileSize:  o.maxFileSize,
		MaxRetries:   o.maxRetries,
		ShowProgress: o.showProgress,
	})

	analyzer := analysis.NewAnalyzer(analysis.Options{
		Acquirer: acquirer,
		Cache:    o.cache,
		Logger:   logger,
		Workers:  o.workers,
		RepoName: acquire.RepoName,
	})

	return analyzer.Analyze(ctx, reference)
}

// Generate renders one document kind from a finished analysis. Generation is
// deterministic: identical analyses yield byte-identical markdown.
func Generate(kind DocumentKind, a *RepositoryAnalysis) (string, error) {
	service := generate.NewService(generate.ServiceOptions{})
	return service.Generate(kind, a)
}
