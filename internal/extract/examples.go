package extract

import (
	"strings"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// languageSignals maps content markers to a language for unlabeled fences.
var languageSignals = []struct {
	language string
	markers  []string
}{
	{"python", []string{"def ", "import ", "print("}},
	{"go", []string{"package ", "func ", ":="}},
	{"javascript", []string{"function ", "const ", "let ", "=>"}},
	{"java", []string{"public class ", "private ", "System.out"}},
	{"c", []string{"#include", "int main"}},
	{"sql", []string{"select ", "insert into ", "create table "}},
	{"bash", []string{"echo ", "cd ", "ls ", "export ", "#!/bin"}},
}

// CodeExampleExtractor collects fenced code blocks from markdown.
type CodeExampleExtractor struct{}

// NewCodeExampleExtractor creates a CodeExampleExtractor.
func NewCodeExampleExtractor() *CodeExampleExtractor {
	return &CodeExampleExtractor{}
}

func (e *CodeExampleExtractor) Name() string { return "code_examples" }

func (e *CodeExampleExtractor) Category() domain.Category { return domain.CategoryCodeExamples }

// Extract scans markdown files for fenced code blocks.
func (e *CodeExampleExtractor) Extract(snapshot *domain.ContentSnapshot) (domain.ExtractResult, error) {
	var result domain.ExtractResult

	for _, path := range snapshot.MarkdownPaths() {
		for _, fence := range ScanFences(path, snapshot.Files[path]) {
			code := strings.TrimRight(fence.Code, "\n")
			if strings.TrimSpace(code) == "" {
				continue
			}

			example := domain.CodeExample{
				Title:       exampleTitle(fence),
				Code:        code,
				Language:    fenceLanguage(fence),
				Description: exampleDescription(fence),
				FilePath:    path,
			}
			result.CodeExamples = append(result.CodeExamples, example)
		}
	}

	return result, nil
}

func exampleTitle(fence CodeFence) string {
	if fence.Heading != "" {
		return StripMarkup(fence.Heading)
	}
	return "Code example"
}

func exampleDescription(fence CodeFence) string {
	desc := StripMarkup(fence.Preceding)
	// Long prose before a fence is context, not a caption.
	if len(desc) > descriptionMaxLength {
		return ""
	}
	return desc
}

func fenceLanguage(fence CodeFence) string {
	if fence.Language != "" {
		// Tags like "python title=..." carry extra attributes.
		return strings.Fields(fence.Language)[0]
	}
	return DetectLanguage(fence.Code)
}

// DetectLanguage guesses the language of an unlabeled code block from its
// content. Returns "text" when nothing matches.
func DetectLanguage(code string) string {
	lower := strings.ToLower(code)
	for _, sig := range languageSignals {
		matches := 0
		for _, marker := range sig.markers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				matches++
			}
		}
		if matches >= 2 || (matches == 1 && len(sig.markers) <= 2) {
			return sig.language
		}
	}
	if LooksLikeCommand(strings.Split(strings.TrimSpace(code), "\n")[0]) {
		return "bash"
	}
	return "text"
}
