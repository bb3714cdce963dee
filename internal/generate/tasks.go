package generate

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/onboarddocs-go/internal/analysis"
	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// TaskGenerator renders the onboarding task list.
type TaskGenerator struct{}

// NewTaskGenerator creates a TaskGenerator.
func NewTaskGenerator() *TaskGenerator {
	return &TaskGenerator{}
}

func (g *TaskGenerator) Kind() domain.DocumentKind { return domain.KindTasks }

// Generate builds and renders the task document.
func (g *TaskGenerator) Generate(a *domain.RepositoryAnalysis) (string, error) {
	doc := BuildTaskDocument(a)
	return FormatTasksMarkdown(doc)
}

// BuildTaskDocument derives ordered tasks from an analysis: setup steps
// first, in step order, then concept tasks in a stable topological walk of
// the prerequisite graph. Numbers are contiguous starting at 1.
func BuildTaskDocument(a *domain.RepositoryAnalysis) *domain.TaskDocument {
	doc := &domain.TaskDocument{RepoName: a.RepoName}

	for _, step := range a.SetupSteps {
		task := domain.Task{
			Title:         step.Title,
			Description:   step.Description,
			Prerequisites: step.Prerequisites,
		}
		if len(step.Commands) > 0 {
			task.AcceptanceCriteria = []string{
				fmt.Sprintf("The following commands run without errors: %s", strings.Join(step.Commands, "; ")),
			}
		} else {
			task.AcceptanceCriteria = []string{
				fmt.Sprintf("%q is completed", step.Title),
			}
		}
		doc.Tasks = append(doc.Tasks, task)
	}

	// Concept tasks come out in prerequisite order so a task never appears
	// before the tasks it depends on.
	graph, _ := analysis.BuildConceptGraph(a.Concepts)
	byName := make(map[string]domain.Concept, len(a.Concepts))
	for _, c := range a.Concepts {
		byName[c.NormalizedName()] = c
	}

	for _, name := range graph.TopoOrder() {
		concept, ok := byName[name]
		if !ok {
			continue
		}
		task := domain.Task{
			Title:       fmt.Sprintf("Understand %s", concept.Name),
			Description: concept.Description,
			AcceptanceCriteria: []string{
				fmt.Sprintf("Can explain %s and how it fits into the project", concept.Name),
			},
		}
		for _, prereq := range concept.Prerequisites {
			task.Prerequisites = append(task.Prerequisites, fmt.Sprintf("Understand %s", prereq))
		}
		if len(concept.RelatedFiles) > 0 {
			task.Description = strings.TrimSpace(task.Description + "\n\nSee: " + strings.Join(concept.RelatedFiles, ", "))
		}
		doc.Tasks = append(doc.Tasks, task)
	}

	for i := range doc.Tasks {
		doc.Tasks[i].Number = i + 1
	}

	return doc
}

// FormatTasksMarkdown renders a task document as markdown. An empty task
// list yields a non-empty placeholder document. Malformed tasks fail with a
// RenderError.
func FormatTasksMarkdown(doc *domain.TaskDocument) (string, error) {
	var b strings.Builder

	writeTitle(&b, "Onboarding Tasks", doc.RepoName)
	writeGeneratedAt(&b, doc.GeneratedAt)

	if len(doc.Tasks) == 0 {
		b.WriteString("No onboarding tasks were identified for this repository.\n")
		return b.String(), nil
	}

	for _, task := range doc.Tasks {
		if task.Number <= 0 {
			return "", domain.NewRenderError(domain.KindTasks, task.Title, "task number must be positive")
		}
		if strings.TrimSpace(task.Title) == "" {
			return "", domain.NewRenderError(domain.KindTasks, fmt.Sprintf("task %d", task.Number), "task title is empty")
		}

		fmt.Fprintf(&b, "## Task %d: %s\n\n", task.Number, task.Title)
		if task.Description != "" {
			b.WriteString(task.Description + "\n\n")
		}
		if len(task.Prerequisites) > 0 {
			b.WriteString("**Prerequisites:**\n\n")
			for _, prereq := range task.Prerequisites {
				fmt.Fprintf(&b, "- %s\n", prereq)
			}
			b.WriteString("\n")
		}
		b.WriteString("**Acceptance criteria:**\n\n")
		for _, criterion := range task.AcceptanceCriteria {
			fmt.Fprintf(&b, "- [ ] %s\n", criterion)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}
