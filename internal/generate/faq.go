package generate

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// FAQ category slugs in render order.
const (
	FaqCategoryGettingStarted  = "getting-started"
	FaqCategorySetup           = "setup"
	FaqCategoryUsage           = "usage"
	FaqCategoryDevelopment     = "development"
	FaqCategoryTroubleshooting = "troubleshooting"
	FaqCategoryGeneral         = "general"
)

// faqCategoryOrder fixes the order categories appear in the document.
var faqCategoryOrder = []string{
	FaqCategoryGettingStarted,
	FaqCategorySetup,
	FaqCategoryUsage,
	FaqCategoryDevelopment,
	FaqCategoryTroubleshooting,
	FaqCategoryGeneral,
}

// FaqGenerator renders the FAQ document.
type FaqGenerator struct{}

// NewFaqGenerator creates a FaqGenerator.
func NewFaqGenerator() *FaqGenerator {
	return &FaqGenerator{}
}

func (g *FaqGenerator) Kind() domain.DocumentKind { return domain.KindFaq }

// Generate builds and renders the FAQ document.
func (g *FaqGenerator) Generate(a *domain.RepositoryAnalysis) (string, error) {
	doc := BuildFaqDocument(a)
	return FormatFaqMarkdown(doc)
}

// BuildFaqDocument derives question/answer pairs from concepts, setup steps
// and dependencies.
func BuildFaqDocument(a *domain.RepositoryAnalysis) *domain.FaqDocument {
	doc := &domain.FaqDocument{RepoName: a.RepoName}

	for _, concept := range a.Concepts {
		answer := concept.Description
		if answer == "" {
			answer = fmt.Sprintf("See the documentation in %s.", strings.Join(concept.RelatedFiles, ", "))
		}
		doc.Entries = append(doc.Entries, domain.FaqEntry{
			Question:    fmt.Sprintf("What is %s?", concept.Name),
			Answer:      answer,
			Category:    conceptFaqCategory(concept),
			SourceFiles: concept.RelatedFiles,
		})
	}

	for _, step := range a.SetupSteps {
		answer := step.Description
		if len(step.Commands) > 0 {
			answer = strings.TrimSpace(answer + "\n\nRun: `" + strings.Join(step.Commands, "` then `") + "`")
		}
		if answer == "" {
			continue
		}
		doc.Entries = append(doc.Entries, domain.FaqEntry{
			Question: fmt.Sprintf("How do I complete the step %q?", step.Title),
			Answer:   answer,
			Category: FaqCategorySetup,
		})
	}

	for _, dep := range a.Dependencies {
		answer := dep.Description
		if answer == "" {
			if dep.Version != "" {
				answer = fmt.Sprintf("%s is a %s dependency of this project (version %s).", dep.Name, dep.Type, dep.Version)
			} else {
				answer = fmt.Sprintf("%s is a %s dependency of this project.", dep.Name, dep.Type)
			}
		}
		doc.Entries = append(doc.Entries, domain.FaqEntry{
			Question: fmt.Sprintf("Why does the project depend on %s?", dep.Name),
			Answer:   answer,
			Category: FaqCategoryDevelopment,
		})
	}

	return doc
}

// conceptFaqCategory maps a concept to an FAQ category from its name.
func conceptFaqCategory(concept domain.Concept) string {
	lower := strings.ToLower(concept.Name)
	switch {
	case strings.Contains(lower, "getting started"), strings.Contains(lower, "introduction"),
		strings.Contains(lower, "overview"), strings.Contains(lower, "what is"):
		return FaqCategoryGettingStarted
	case strings.Contains(lower, "install"), strings.Contains(lower, "setup"),
		strings.Contains(lower, "configur"):
		return FaqCategorySetup
	case strings.Contains(lower, "usage"), strings.Contains(lower, "using"),
		strings.Contains(lower, "example"):
		return FaqCategoryUsage
	case strings.Contains(lower, "troubleshoot"), strings.Contains(lower, "debug"),
		strings.Contains(lower, "faq"):
		return FaqCategoryTroubleshooting
	case strings.Contains(lower, "architecture"), strings.Contains(lower, "design"),
		strings.Contains(lower, "develop"), strings.Contains(lower, "contribut"):
		return FaqCategoryDevelopment
	}
	return FaqCategoryGeneral
}

// FormatFaqMarkdown renders the FAQ grouped by category, in the fixed
// category order, preserving entry order within a category.
func FormatFaqMarkdown(doc *domain.FaqDocument) (string, error) {
	var b strings.Builder

	writeTitle(&b, "Frequently Asked Questions", doc.RepoName)
	writeGeneratedAt(&b, doc.GeneratedAt)

	if len(doc.Entries) == 0 {
		b.WriteString("No FAQ entries could be generated for this repository yet.\n")
		b.WriteString("Check the repository README for getting-started information.\n")
		return b.String(), nil
	}

	grouped := make(map[string][]domain.FaqEntry)
	for _, entry := range doc.Entries {
		if strings.TrimSpace(entry.Question) == "" {
			return "", domain.NewRenderError(domain.KindFaq, entry.Answer, "question is empty")
		}
		category := entry.Category
		if !isKnownFaqCategory(category) {
			category = FaqCategoryGeneral
		}
		grouped[category] = append(grouped[category], entry)
	}

	for _, category := range faqCategoryOrder {
		entries := grouped[category]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", categoryHeading(category))
		for _, entry := range entries {
			fmt.Fprintf(&b, "### %s\n\n", entry.Question)
			b.WriteString(entry.Answer + "\n\n")
			if len(entry.SourceFiles) > 0 {
				fmt.Fprintf(&b, "Sources: %s\n\n", strings.Join(entry.SourceFiles, ", "))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func isKnownFaqCategory(category string) bool {
	for _, c := range faqCategoryOrder {
		if c == category {
			return true
		}
	}
	return false
}
