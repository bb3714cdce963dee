package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

func TestBuildQuickstartDocument(t *testing.T) {
	a := sampleAnalysis()
	a.SetupSteps[0].Prerequisites = []string{"Node.js 18+"}

	doc := BuildQuickstartDocument(a)

	assert.Equal(t, []string{"Node.js 18+"}, doc.Prerequisites)
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, "Install dependencies", doc.Steps[0].Title)
	assert.Equal(t, []string{"npm start", "npm test"}, doc.BasicUsage)
	assert.NotEmpty(t, doc.NextSteps)
}

func TestFormatQuickstartMarkdown(t *testing.T) {
	doc := BuildQuickstartDocument(sampleAnalysis())
	markdown, err := FormatQuickstartMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, markdown, "# Quick Start: app")
	assert.Contains(t, markdown, "## Setup")
	assert.Contains(t, markdown, "1. **Install dependencies**")
	assert.Contains(t, markdown, "```bash\nnpm install\n```")
	assert.Contains(t, markdown, "## Basic Usage")
	assert.Contains(t, markdown, "## Next Steps")
}

func TestFormatQuickstartMarkdownFallbackTemplate(t *testing.T) {
	markdown, err := FormatQuickstartMarkdown(&domain.QuickstartDocument{RepoName: "bare"})
	require.NoError(t, err)
	assert.Contains(t, markdown, "No setup steps were found")
	assert.Contains(t, markdown, "## Setup")
}

func TestFormatQuickstartMarkdownRejectsEmptyStepTitle(t *testing.T) {
	_, err := FormatQuickstartMarkdown(&domain.QuickstartDocument{
		Steps: []domain.QuickstartStep{{Title: ""}},
	})
	require.Error(t, err)

	var renderErr *domain.RenderError
	assert.ErrorAs(t, err, &renderErr)
	assert.Equal(t, domain.KindQuickstart, renderErr.Document)
}

func TestServiceGenerateAll(t *testing.T) {
	service := NewService(ServiceOptions{})
	documents, failures := service.GenerateAll(sampleAnalysis())

	assert.Empty(t, failures)
	require.Len(t, documents, 3)
	for _, kind := range domain.DocumentKinds() {
		assert.NotEmpty(t, documents[kind])
	}
}

func TestServiceGenerateUnknownKind(t *testing.T) {
	service := NewService(ServiceOptions{})
	_, err := service.Generate(domain.DocumentKind("poster"), sampleAnalysis())
	require.Error(t, err)
}

func TestServiceGenerateDeterministic(t *testing.T) {
	service := NewService(ServiceOptions{})
	for _, kind := range domain.DocumentKinds() {
		first, err := service.Generate(kind, sampleAnalysis())
		require.NoError(t, err)
		second, err := service.Generate(kind, sampleAnalysis())
		require.NoError(t, err)
		assert.Equal(t, first, second, string(kind))
	}
}
