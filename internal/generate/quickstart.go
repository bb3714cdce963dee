package generate

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

const maxBasicUsageCommands = 5

// QuickstartGenerator renders the quick start guide.
type QuickstartGenerator struct{}

// NewQuickstartGenerator creates a QuickstartGenerator.
func NewQuickstartGenerator() *QuickstartGenerator {
	return &QuickstartGenerator{}
}

func (g *QuickstartGenerator) Kind() domain.DocumentKind { return domain.KindQuickstart }

// Generate builds and renders the quick start document.
func (g *QuickstartGenerator) Generate(a *domain.RepositoryAnalysis) (string, error) {
	doc := BuildQuickstartDocument(a)
	return FormatQuickstartMarkdown(doc)
}

// BuildQuickstartDocument derives the Prerequisites / Setup / Basic Usage /
// Next Steps sections from an analysis.
func BuildQuickstartDocument(a *domain.RepositoryAnalysis) *domain.QuickstartDocument {
	doc := &domain.QuickstartDocument{RepoName: a.RepoName}

	seen := make(map[string]bool)
	for _, step := range a.SetupSteps {
		for _, prereq := range step.Prerequisites {
			key := domain.NormalizeName(prereq)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			doc.Prerequisites = append(doc.Prerequisites, prereq)
		}
	}

	for _, step := range a.SetupSteps {
		doc.Steps = append(doc.Steps, domain.QuickstartStep{
			Title:       step.Title,
			Description: step.Description,
			Commands:    step.Commands,
		})
	}

	doc.BasicUsage = usageCommands(a)

	for _, concept := range topConcepts(a.Concepts, 3) {
		doc.NextSteps = append(doc.NextSteps, fmt.Sprintf("Learn about %s", concept.Name))
	}
	if files := documentationFiles(a); len(files) > 0 {
		doc.NextSteps = append(doc.NextSteps, fmt.Sprintf("Read the documentation in %s", strings.Join(files, ", ")))
	}

	return doc
}

// usageCommands picks runnable shell commands from extracted code examples.
func usageCommands(a *domain.RepositoryAnalysis) []string {
	var commands []string
	seen := make(map[string]bool)

	for _, example := range a.CodeExamples {
		if example.Language != "bash" && example.Language != "sh" && example.Language != "shell" {
			continue
		}
		for _, line := range strings.Split(example.Code, "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "$ "))
			if line == "" || strings.HasPrefix(line, "#") || seen[line] {
				continue
			}
			seen[line] = true
			commands = append(commands, line)
			if len(commands) >= maxBasicUsageCommands {
				return commands
			}
		}
	}

	return commands
}

func topConcepts(concepts []domain.Concept, n int) []domain.Concept {
	if len(concepts) < n {
		n = len(concepts)
	}
	return concepts[:n]
}

func documentationFiles(a *domain.RepositoryAnalysis) []string {
	seen := make(map[string]bool)
	var files []string
	for _, concept := range a.Concepts {
		for _, file := range concept.RelatedFiles {
			if seen[file] {
				continue
			}
			seen[file] = true
			files = append(files, file)
		}
	}
	if len(files) > 3 {
		files = files[:3]
	}
	return files
}

// FormatQuickstartMarkdown renders the quick start guide. When no setup
// steps exist, the Setup section falls back to a generic template.
func FormatQuickstartMarkdown(doc *domain.QuickstartDocument) (string, error) {
	var b strings.Builder

	writeTitle(&b, "Quick Start", doc.RepoName)
	writeGeneratedAt(&b, doc.GeneratedAt)

	if len(doc.Prerequisites) > 0 {
		b.WriteString("## Prerequisites\n\n")
		for _, prereq := range doc.Prerequisites {
			fmt.Fprintf(&b, "- %s\n", prereq)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Setup\n\n")
	if len(doc.Steps) == 0 {
		b.WriteString("No setup steps were found in the repository documentation.\n")
		b.WriteString("Clone the repository and check its README for instructions.\n\n")
	}
	for i, step := range doc.Steps {
		if strings.TrimSpace(step.Title) == "" {
			return "", domain.NewRenderError(domain.KindQuickstart, fmt.Sprintf("step %d", i+1), "step title is empty")
		}
		fmt.Fprintf(&b, "%d. **%s**\n\n", i+1, step.Title)
		if step.Description != "" && step.Description != step.Title {
			fmt.Fprintf(&b, "   %s\n\n", step.Description)
		}
		writeCommandBlock(&b, step.Commands)
	}

	if len(doc.BasicUsage) > 0 {
		b.WriteString("## Basic Usage\n\n")
		writeCommandBlock(&b, doc.BasicUsage)
	}

	if len(doc.NextSteps) > 0 {
		b.WriteString("## Next Steps\n\n")
		for _, next := range doc.NextSteps {
			fmt.Fprintf(&b, "- %s\n", next)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}
