package domain

import "context"

// Acquirer turns a repository reference into a content snapshot.
//
// Acquire returns a cleanup function that releases any temporary workspace
// the acquisition created. The cleanup function is non-nil and safe to call
// on every path that created state, including failures after partial work.
type Acquirer interface {
	// Supports reports whether this acquirer can handle the reference.
	Supports(reference string) bool

	// Acquire fetches the repository content. The snapshot is read-only
	// once returned.
	Acquire(ctx context.Context, reference string) (*ContentSnapshot, func(), error)
}

// ExtractResult carries whatever one extractor found. Exactly one category
// slice is populated per extractor; warnings record per-file degradations.
type ExtractResult struct {
	Concepts     []Concept
	SetupSteps   []SetupStep
	CodeExamples []CodeExample
	Dependencies []Dependency
	Warnings     []Warning
}

// Extractor produces typed facts from a content snapshot. Implementations
// must be pure and deterministic: same snapshot, same result. A malformed
// file never aborts extraction; it is recorded as a warning.
type Extractor interface {
	// Name identifies the extractor in logs and warnings.
	Name() string

	// Category names the fact category this extractor populates.
	Category() Category

	// Extract scans the snapshot. The snapshot must not be mutated.
	Extract(snapshot *ContentSnapshot) (ExtractResult, error)
}

// Generator renders one document kind from an analysis. Implementations must
// be deterministic: identical analysis input yields byte-identical markdown.
type Generator interface {
	// Kind names the document this generator produces.
	Kind() DocumentKind

	// Generate renders the document as markdown.
	Generate(analysis *RepositoryAnalysis) (string, error)
}
