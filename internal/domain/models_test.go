package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "overview", NormalizeName("  Overview "))
	assert.Equal(t, "data pipeline", NormalizeName("Data Pipeline"))
}

func TestDependencyKey(t *testing.T) {
	a := Dependency{Name: "Express", Type: DepRuntime}
	b := Dependency{Name: "express ", Type: DepRuntime}
	c := Dependency{Name: "express", Type: DepDev}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestSnapshotPaths(t *testing.T) {
	s := &ContentSnapshot{Files: map[string]string{
		"b.md":      "",
		"a.go":      "",
		"docs/c.md": "",
	}}

	assert.Equal(t, []string{"a.go", "b.md", "docs/c.md"}, s.Paths())
	assert.Equal(t, []string{"b.md", "docs/c.md"}, s.MarkdownPaths())
}

func TestMarkdownPathsExtensions(t *testing.T) {
	s := &ContentSnapshot{Files: map[string]string{
		"a.md":       "",
		"b.MARKDOWN": "",
		"c.mdx":      "",
		"d.mdown":    "",
		"e.txt":      "",
	}}

	assert.Equal(t, []string{"a.md", "b.MARKDOWN", "c.mdx", "d.mdown"}, s.MarkdownPaths())
}

func TestCategoryFailed(t *testing.T) {
	a := &RepositoryAnalysis{FailedCategories: []Category{CategoryConcepts}}

	assert.True(t, a.CategoryFailed(CategoryConcepts))
	assert.False(t, a.CategoryFailed(CategoryDependencies))
}

func TestConceptByName(t *testing.T) {
	a := &RepositoryAnalysis{Concepts: []Concept{{Name: "Data Pipeline", Importance: 7}}}

	got, ok := a.ConceptByName("data pipeline")
	assert.True(t, ok)
	assert.Equal(t, "Data Pipeline", got.Name)

	_, ok = a.ConceptByName("missing")
	assert.False(t, ok)
}

func TestParseDocumentKind(t *testing.T) {
	tests := []struct {
		input string
		want  DocumentKind
		ok    bool
	}{
		{"tasks", KindTasks, true},
		{" FAQ ", KindFaq, true},
		{"Quickstart", KindQuickstart, true},
		{"poster", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDocumentKind(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}
