package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

type stubAcquirer struct {
	snapshot    *domain.ContentSnapshot
	err         error
	cleanupRuns *int
}

func (s *stubAcquirer) Supports(string) bool { return true }

func (s *stubAcquirer) Acquire(context.Context, string) (*domain.ContentSnapshot, func(), error) {
	cleanup := func() {
		if s.cleanupRuns != nil {
			*s.cleanupRuns++
		}
	}
	if s.err != nil {
		return nil, cleanup, s.err
	}
	return s.snapshot, cleanup, nil
}

type stubExtractor struct {
	name     string
	category domain.Category
	result   domain.ExtractResult
	err      error
	panics   bool
}

func (s *stubExtractor) Name() string              { return s.name }
func (s *stubExtractor) Category() domain.Category { return s.category }

func (s *stubExtractor) Extract(*domain.ContentSnapshot) (domain.ExtractResult, error) {
	if s.panics {
		panic("boom")
	}
	return s.result, s.err
}

func testLogger() *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{Level: "error", Format: "json"})
}

func TestAnalyzeAcquisitionFailureIsFatal(t *testing.T) {
	cleanupRuns := 0
	analyzer := NewAnalyzer(Options{
		Acquirer: &stubAcquirer{
			err:         domain.NewFetchError("ref", errors.New("no such repo")),
			cleanupRuns: &cleanupRuns,
		},
		Logger: testLogger(),
	})

	result, err := analyzer.Analyze(context.Background(), "ref")
	require.Error(t, err)
	assert.Nil(t, result)

	var fetchErr *domain.FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, cleanupRuns)
}

func TestAnalyzeExtractorFailureDegrades(t *testing.T) {
	cleanupRuns := 0
	analyzer := NewAnalyzer(Options{
		Acquirer: &stubAcquirer{
			snapshot:    &domain.ContentSnapshot{Reference: "ref", Files: map[string]string{}},
			cleanupRuns: &cleanupRuns,
		},
		Extractors: []domain.Extractor{
			&stubExtractor{
				name:     "concepts",
				category: domain.CategoryConcepts,
				result: domain.ExtractResult{
					Concepts: []domain.Concept{{Name: "Core", Importance: 5}},
				},
			},
			&stubExtractor{
				name:     "dependencies",
				category: domain.CategoryDependencies,
				err:      errors.New("parser exploded"),
			},
		},
		Logger: testLogger(),
	})

	result, err := analyzer.Analyze(context.Background(), "ref")
	require.NoError(t, err)
	require.NotNil(t, result)

	// The failing category is empty and explicitly marked failed.
	assert.Empty(t, result.Dependencies)
	assert.True(t, result.CategoryFailed(domain.CategoryDependencies))
	assert.False(t, result.CategoryFailed(domain.CategoryConcepts))
	require.Len(t, result.Concepts, 1)
	assert.Equal(t, 1, cleanupRuns)

	var found bool
	for _, w := range result.Warnings {
		if w.Category == domain.CategoryDependencies {
			found = true
		}
	}
	assert.True(t, found, "expected a warning for the failed category")
}

func TestAnalyzePanickingExtractorDegrades(t *testing.T) {
	analyzer := NewAnalyzer(Options{
		Acquirer: &stubAcquirer{
			snapshot: &domain.ContentSnapshot{Reference: "ref", Files: map[string]string{}},
		},
		Extractors: []domain.Extractor{
			&stubExtractor{name: "setup_steps", category: domain.CategorySetupSteps, panics: true},
		},
		Logger: testLogger(),
	})

	result, err := analyzer.Analyze(context.Background(), "ref")
	require.NoError(t, err)
	assert.True(t, result.CategoryFailed(domain.CategorySetupSteps))
}

func TestAnalyzeSortsAndResolves(t *testing.T) {
	analyzer := NewAnalyzer(Options{
		Acquirer: &stubAcquirer{
			snapshot: &domain.ContentSnapshot{Reference: "ref", Files: map[string]string{}},
		},
		Extractors: []domain.Extractor{
			&stubExtractor{
				name:     "concepts",
				category: domain.CategoryConcepts,
				result: domain.ExtractResult{
					Concepts: []domain.Concept{
						{Name: "Minor", Importance: 2, Prerequisites: []string{"Ghost"}},
						{Name: "Major", Importance: 9},
					},
					SetupSteps: []domain.SetupStep{
						{Title: "Second", Order: 2},
						{Title: "First", Order: 1},
					},
					Dependencies: []domain.Dependency{
						{Name: "b", Type: domain.DepRuntime},
						{Name: "a", Type: domain.DepRuntime},
					},
				},
			},
		},
		Logger: testLogger(),
	})

	result, err := analyzer.Analyze(context.Background(), "ref")
	require.NoError(t, err)

	// Concepts by importance descending.
	require.Len(t, result.Concepts, 2)
	assert.Equal(t, "Major", result.Concepts[0].Name)

	// The dangling prerequisite is stripped and warned about.
	assert.Empty(t, result.Concepts[1].Prerequisites)
	require.NotEmpty(t, result.Warnings)

	// Steps by order, dependencies first-seen.
	assert.Equal(t, "First", result.SetupSteps[0].Title)
	assert.Equal(t, "b", result.Dependencies[0].Name)

	assert.False(t, result.AnalyzedAt.IsZero())
}

type mapCache struct {
	entries map[string]*domain.RepositoryAnalysis
}

func (c *mapCache) Get(reference string) (*domain.RepositoryAnalysis, error) {
	if a, ok := c.entries[reference]; ok {
		return a, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *mapCache) Set(reference string, a *domain.RepositoryAnalysis) error {
	c.entries[reference] = a
	return nil
}

func TestAnalyzeUsesCache(t *testing.T) {
	cached := &domain.RepositoryAnalysis{Reference: "ref", RepoName: "cached"}
	analyzer := NewAnalyzer(Options{
		Acquirer: &stubAcquirer{err: errors.New("must not be called")},
		Cache:    &mapCache{entries: map[string]*domain.RepositoryAnalysis{"ref": cached}},
		Logger:   testLogger(),
	})

	result, err := analyzer.Analyze(context.Background(), "ref")
	require.NoError(t, err)
	assert.Equal(t, "cached", result.RepoName)
}

func TestAnalyzeStoresInCache(t *testing.T) {
	store := &mapCache{entries: map[string]*domain.RepositoryAnalysis{}}
	analyzer := NewAnalyzer(Options{
		Acquirer: &stubAcquirer{
			snapshot: &domain.ContentSnapshot{Reference: "ref", Files: map[string]string{}},
		},
		Cache:  store,
		Logger: testLogger(),
	})

	_, err := analyzer.Analyze(context.Background(), "ref")
	require.NoError(t, err)
	assert.Contains(t, store.entries, "ref")
}
