package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeExampleExtractor(t *testing.T) {
	readme := "## Usage\n\n" +
		"Create a client:\n\n" +
		"```python\n" +
		"import acme\n" +
		"client = acme.Client()\n" +
		"```\n\n" +
		"```\n" +
		"def main():\n" +
		"    import os\n" +
		"```\n"

	extractor := NewCodeExampleExtractor()
	result, err := extractor.Extract(snapshotWith(map[string]string{"README.md": readme}))
	require.NoError(t, err)
	require.Len(t, result.CodeExamples, 2)

	first := result.CodeExamples[0]
	assert.Equal(t, "Usage", first.Title)
	assert.Equal(t, "python", first.Language)
	assert.Equal(t, "Create a client:", first.Description)
	assert.Equal(t, "import acme\nclient = acme.Client()", first.Code)
	assert.Equal(t, "README.md", first.FilePath)

	// The unlabeled fence falls back to content detection.
	second := result.CodeExamples[1]
	assert.Equal(t, "python", second.Language)
}

func TestCodeExampleExtractorSkipsEmptyFences(t *testing.T) {
	extractor := NewCodeExampleExtractor()
	result, err := extractor.Extract(snapshotWith(map[string]string{
		"doc.md": "```\n\n```\n",
	}))
	require.NoError(t, err)
	assert.Empty(t, result.CodeExamples)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"python", "def main():\n    import os", "python"},
		{"go", "package main\n\nfunc main() {}", "go"},
		{"javascript", "const x = 1;\nfunction f() {}", "javascript"},
		{"c", "#include <stdio.h>\nint main() {}", "c"},
		{"shell command", "pip install requests", "bash"},
		{"prose", "just some words here", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.code))
		})
	}
}
