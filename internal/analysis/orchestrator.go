package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/extract"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

// AnalysisCache stores finished analyses keyed by reference.
type AnalysisCache interface {
	Get(reference string) (*domain.RepositoryAnalysis, error)
	Set(reference string, analysis *domain.RepositoryAnalysis) error
}

// Options contains options for creating an Analyzer
type Options struct {
	Acquirer   domain.Acquirer
	Extractors []domain.Extractor
	Cache      AnalysisCache
	Logger     *utils.Logger
	Workers    int

	// RepoName overrides the name derived from the reference.
	RepoName func(reference string) string
}

// Analyzer runs the full analysis pipeline: acquire, extract, merge, order.
type Analyzer struct {
	acquirer   domain.Acquirer
	extractors []domain.Extractor
	cache      AnalysisCache
	logger     *utils.Logger
	workers    int
	repoName   func(reference string) string
}

// DefaultExtractors returns the four built-in extractors.
func DefaultExtractors() []domain.Extractor {
	return []domain.Extractor{
		extract.NewConceptExtractor(),
		extract.NewSetupStepExtractor(),
		extract.NewCodeExampleExtractor(),
		extract.NewDependencyExtractor(),
	}
}

// NewAnalyzer creates an Analyzer with the given options
func NewAnalyzer(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	extractors := opts.Extractors
	if len(extractors) == 0 {
		extractors = DefaultExtractors()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = len(extractors)
	}
	repoName := opts.RepoName
	if repoName == nil {
		repoName = func(reference string) string { return reference }
	}

	return &Analyzer{
		acquirer:   opts.Acquirer,
		extractors: extractors,
		cache:      opts.Cache,
		logger:     logger.WithComponent("analysis"),
		workers:    workers,
		repoName:   repoName,
	}
}

// Analyze acquires the reference and assembles a RepositoryAnalysis.
// Acquisition failures are fatal; extractor failures degrade to empty
// categories with warnings.
func (a *Analyzer) Analyze(ctx context.Context, reference string) (*domain.RepositoryAnalysis, error) {
	if a.cache != nil {
		if cached, err := a.cache.Get(reference); err == nil && cached != nil {
			a.logger.Debug().Str("reference", reference).Msg("Analysis cache hit")
			return cached, nil
		} else if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			a.logger.Warn().Err(err).Msg("Analysis cache read failed")
		}
	}

	snapshot, cleanup, err := a.acquirer.Acquire(ctx, reference)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return nil, err
	}

	results, failed := a.runExtractors(ctx, snapshot)

	analysis := a.assemble(reference, results, failed)

	if a.cache != nil {
		if err := a.cache.Set(reference, analysis); err != nil {
			a.logger.Warn().Err(err).Msg("Analysis cache write failed")
		}
	}

	return analysis, nil
}

type extractOutcome struct {
	result domain.ExtractResult
	err    error
}

// runExtractors runs every extractor concurrently against the shared
// read-only snapshot. A panicking or erroring extractor yields an empty
// category, never a failed run.
func (a *Analyzer) runExtractors(ctx context.Context, snapshot *domain.ContentSnapshot) ([]extractOutcome, []domain.Category) {
	outcomes := make([]extractOutcome, len(a.extractors))
	indices := make([]int, len(a.extractors))
	for i := range indices {
		indices[i] = i
	}

	utils.ParallelForEach(ctx, indices, a.workers, func(_ context.Context, i int) error {
		extractor := a.extractors[i]
		func() {
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].err = fmt.Errorf("extractor %s panicked: %v", extractor.Name(), r)
				}
			}()
			outcomes[i].result, outcomes[i].err = extractor.Extract(snapshot)
		}()
		return nil
	})

	var failed []domain.Category
	for i, outcome := range outcomes {
		if outcome.err != nil {
			a.logger.Warn().
				Str("extractor", a.extractors[i].Name()).
				Err(outcome.err).
				Msg("Extractor failed")
			failed = append(failed, a.extractors[i].Category())
		}
	}

	return outcomes, failed
}

// assemble merges extractor output into the final immutable analysis.
func (a *Analyzer) assemble(reference string, outcomes []extractOutcome, failed []domain.Category) *domain.RepositoryAnalysis {
	analysis := &domain.RepositoryAnalysis{
		Reference:        reference,
		RepoName:         a.repoName(reference),
		FailedCategories: failed,
		AnalyzedAt:       time.Now().UTC(),
	}

	var concepts []domain.Concept
	var steps []domain.SetupStep
	var deps []domain.Dependency

	for i, outcome := range outcomes {
		if outcome.err != nil {
			analysis.Warnings = append(analysis.Warnings, domain.Warning{
				Category: a.extractors[i].Category(),
				Message:  fmt.Sprintf("extraction failed: %v", outcome.err),
			})
			continue
		}
		concepts = append(concepts, outcome.result.Concepts...)
		steps = append(steps, outcome.result.SetupSteps...)
		analysis.CodeExamples = append(analysis.CodeExamples, outcome.result.CodeExamples...)
		deps = append(deps, outcome.result.Dependencies...)
		analysis.Warnings = append(analysis.Warnings, outcome.result.Warnings...)
	}

	merged, conceptWarnings := MergeConcepts(concepts)
	analysis.Warnings = append(analysis.Warnings, conceptWarnings...)

	graph, graphWarnings := BuildConceptGraph(merged)
	analysis.Warnings = append(analysis.Warnings, graphWarnings...)

	// Rewrite prerequisites to the resolved set: dangling and cycle edges
	// are already dropped at this point.
	display := make(map[string]string, len(merged))
	for _, c := range merged {
		display[c.NormalizedName()] = c.Name
	}
	for i := range merged {
		resolved := graph.Prerequisites(merged[i].Name)
		var prereqs []string
		for _, key := range resolved {
			prereqs = append(prereqs, display[key])
		}
		merged[i].Prerequisites = prereqs
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Importance > merged[j].Importance
	})
	analysis.Concepts = merged

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Order < steps[j].Order
	})
	analysis.SetupSteps = steps

	analysis.Dependencies = MergeDependencies(deps)

	return analysis
}
