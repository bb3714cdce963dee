package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

func sampleAnalysis() *domain.RepositoryAnalysis {
	return &domain.RepositoryAnalysis{
		Reference: "https://github.com/acme/app",
		RepoName:  "app",
		Concepts: []domain.Concept{
			{Name: "Pipeline", Importance: 8, Description: "The processing pipeline.", Prerequisites: []string{"Overview"}, RelatedFiles: []string{"docs/pipeline.md"}},
			{Name: "Overview", Importance: 9, Description: "What the project does."},
		},
		SetupSteps: []domain.SetupStep{
			{Title: "Install dependencies", Description: "Get the packages.", Commands: []string{"npm install"}, Order: 1},
			{Title: "Run the app", Order: 2},
		},
		CodeExamples: []domain.CodeExample{
			{Title: "Usage", Code: "npm start\nnpm test", Language: "bash", FilePath: "README.md"},
		},
		Dependencies: []domain.Dependency{
			{Name: "express", Version: "^4.18.0", Type: domain.DepRuntime},
		},
	}
}

func TestBuildTaskDocumentOrderingAndNumbering(t *testing.T) {
	doc := BuildTaskDocument(sampleAnalysis())
	require.Len(t, doc.Tasks, 4)

	// Setup tasks first, in step order; then concepts in prerequisite order.
	assert.Equal(t, "Install dependencies", doc.Tasks[0].Title)
	assert.Equal(t, "Run the app", doc.Tasks[1].Title)
	assert.Equal(t, "Understand Overview", doc.Tasks[2].Title)
	assert.Equal(t, "Understand Pipeline", doc.Tasks[3].Title)

	for i, task := range doc.Tasks {
		assert.Equal(t, i+1, task.Number)
		assert.NotEmpty(t, task.AcceptanceCriteria)
	}

	assert.Equal(t, []string{"Understand Overview"}, doc.Tasks[3].Prerequisites)
}

func TestFormatTasksMarkdownEmptyPlaceholder(t *testing.T) {
	markdown, err := FormatTasksMarkdown(&domain.TaskDocument{RepoName: "app"})
	require.NoError(t, err)
	assert.NotEmpty(t, markdown)
	assert.Contains(t, markdown, "No onboarding tasks were identified")
}

func TestFormatTasksMarkdownRejectsMalformedTask(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
	}{
		{"zero number", domain.Task{Title: "Do it", Number: 0}},
		{"empty title", domain.Task{Title: "  ", Number: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormatTasksMarkdown(&domain.TaskDocument{Tasks: []domain.Task{tt.task}})
			require.Error(t, err)

			var renderErr *domain.RenderError
			assert.ErrorAs(t, err, &renderErr)
			assert.Equal(t, domain.KindTasks, renderErr.Document)
		})
	}
}

func TestTaskGeneratorDeterministic(t *testing.T) {
	g := NewTaskGenerator()
	first, err := g.Generate(sampleAnalysis())
	require.NoError(t, err)
	second, err := g.Generate(sampleAnalysis())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.True(t, strings.HasPrefix(first, "# Onboarding Tasks: app\n"))
	assert.Contains(t, first, "## Task 1: Install dependencies")
	assert.Contains(t, first, "- [ ]")
	assert.NotContains(t, first, "Generated at", "no timestamp unless explicitly set")
}
