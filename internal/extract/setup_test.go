package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupStepExtractorNumberedList(t *testing.T) {
	readme := "## Installation\n\n" +
		"1. Clone the repository with `git clone https://github.com/acme/app.git`\n" +
		"2. Install dependencies with `pip install -r requirements.txt`\n"

	extractor := NewSetupStepExtractor()
	result, err := extractor.Extract(snapshotWith(map[string]string{"README.md": readme}))
	require.NoError(t, err)
	require.Len(t, result.SetupSteps, 2)

	first := result.SetupSteps[0]
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, []string{"git clone https://github.com/acme/app.git"}, first.Commands)

	second := result.SetupSteps[1]
	assert.Equal(t, 2, second.Order)
	assert.Equal(t, []string{"pip install -r requirements.txt"}, second.Commands)
}

func TestSetupStepExtractorPhaseOrdering(t *testing.T) {
	readme := "## Running\n\n" +
		"- Run the server with `python server.py`\n" +
		"\n" +
		"## Install\n\n" +
		"- Install packages with `npm install`\n"

	extractor := NewSetupStepExtractor()
	result, err := extractor.Extract(snapshotWith(map[string]string{"README.md": readme}))
	require.NoError(t, err)
	require.Len(t, result.SetupSteps, 2)

	// Installation comes before running regardless of document order.
	assert.Contains(t, result.SetupSteps[0].Title, "Install packages")
	assert.Equal(t, 1, result.SetupSteps[0].Order)
	assert.Contains(t, result.SetupSteps[1].Title, "Run the server")
	assert.Equal(t, 2, result.SetupSteps[1].Order)
}

func TestSetupStepExtractorCommandFence(t *testing.T) {
	readme := "## Setup\n\n" +
		"Get everything ready.\n\n" +
		"```bash\n" +
		"git clone https://github.com/acme/app.git\n" +
		"cd app\n" +
		"make build\n" +
		"```\n"

	extractor := NewSetupStepExtractor()
	result, err := extractor.Extract(snapshotWith(map[string]string{"README.md": readme}))
	require.NoError(t, err)
	require.Len(t, result.SetupSteps, 1)

	step := result.SetupSteps[0]
	assert.Equal(t, "Setup", step.Title)
	assert.Equal(t, "Get everything ready.", step.Description)
	assert.Equal(t, []string{
		"git clone https://github.com/acme/app.git",
		"cd app",
		"make build",
	}, step.Commands)
}

func TestSetupStepExtractorStepHeadings(t *testing.T) {
	readme := "## Step 1: Download the installer\n\n" +
		"Grab the latest release.\n\n" +
		"## Step 2: Run it\n\n" +
		"Execute the binary.\n"

	extractor := NewSetupStepExtractor()
	result, err := extractor.Extract(snapshotWith(map[string]string{"guide.md": readme}))
	require.NoError(t, err)
	require.Len(t, result.SetupSteps, 2)
	assert.Equal(t, "Download the installer", result.SetupSteps[0].Title)
	assert.Equal(t, "Run it", result.SetupSteps[1].Title)
}

func TestSetupStepExtractorIgnoresUnrelatedSections(t *testing.T) {
	extractor := NewSetupStepExtractor()
	result, err := extractor.Extract(snapshotWith(map[string]string{
		"doc.md": "## History\n\n- Founded in 2019\n- Rewritten in 2021\n",
	}))
	require.NoError(t, err)
	assert.Empty(t, result.SetupSteps)
}

func TestLooksLikeCommand(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"pip install requests", true},
		{"$ npm install", true},
		{"docker compose up", true},
		{"This sentence explains installation.", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LooksLikeCommand(tt.line), tt.line)
	}
}
