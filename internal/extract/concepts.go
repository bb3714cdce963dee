package extract

import (
	"regexp"
	"strings"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// conceptKeywords mark headings that introduce a concept.
var conceptKeywords = []string{
	"overview", "architecture", "design", "concept", "introduction",
	"about", "what is", "how it works", "core", "getting started",
}

// importanceBoostTerms raise the importance of a concept heading.
var importanceBoostTerms = []string{
	"architecture", "overview", "getting started", "introduction",
}

const (
	maxImportance        = 10
	descriptionMaxLength = 200
	longSectionThreshold = 500
)

var prerequisitePattern = regexp.MustCompile(`(?i)^(?:prerequisites?|requires?|depends on)\s*[:\-]\s*(.+)$`)

// ConceptExtractor finds key concepts in markdown headings.
type ConceptExtractor struct{}

// NewConceptExtractor creates a ConceptExtractor.
func NewConceptExtractor() *ConceptExtractor {
	return &ConceptExtractor{}
}

func (e *ConceptExtractor) Name() string { return "concepts" }

func (e *ConceptExtractor) Category() domain.Category { return domain.CategoryConcepts }

// Extract scans markdown sections for concept headings.
func (e *ConceptExtractor) Extract(snapshot *domain.ContentSnapshot) (domain.ExtractResult, error) {
	var result domain.ExtractResult

	for _, path := range snapshot.MarkdownPaths() {
		for _, section := range SplitSections(path, snapshot.Files[path]) {
			if !isConceptHeading(section.Title) {
				continue
			}

			concept := domain.Concept{
				Name:          StripMarkup(section.Title),
				Description:   Truncate(StripMarkup(FirstParagraph(section.Content)), descriptionMaxLength),
				Importance:    conceptImportance(section),
				RelatedFiles:  []string{path},
				Prerequisites: extractPrerequisites(section.Content),
			}
			if concept.Name == "" {
				continue
			}

			result.Concepts = append(result.Concepts, concept)
		}
	}

	return result, nil
}

func isConceptHeading(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range conceptKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// conceptImportance scores a concept from its heading level, key terms and
// section length.
func conceptImportance(section Section) int {
	importance := 7 - section.Level
	if importance < 1 {
		importance = 1
	}

	lower := strings.ToLower(section.Title)
	for _, term := range importanceBoostTerms {
		if strings.Contains(lower, term) {
			importance += 2
			break
		}
	}

	if len(section.Content) > longSectionThreshold {
		importance++
	}

	if importance > maxImportance {
		importance = maxImportance
	}
	return importance
}

// extractPrerequisites parses "Prerequisites: a, b and c" phrasing from a
// section body.
func extractPrerequisites(content string) []string {
	var prereqs []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		m := prerequisitePattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		for _, part := range splitNameList(m[1]) {
			key := domain.NormalizeName(part)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			prereqs = append(prereqs, part)
		}
	}

	return prereqs
}

func splitNameList(s string) []string {
	s = StripMarkup(s)
	s = strings.ReplaceAll(s, " and ", ",")
	var names []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
