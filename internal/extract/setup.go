package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// setupKeywords mark headings that describe installation or setup.
var setupKeywords = []string{
	"install", "setup", "set up", "getting started", "quick start",
	"quickstart", "configuration", "configure", "prerequisites",
	"requirements", "dependencies", "building", "running",
}

// stepPriority orders setup phases so installation comes before
// configuration and running before testing.
var stepPriority = []struct {
	keyword  string
	priority int
}{
	{"install", 1},
	{"download", 2},
	{"clone", 2},
	{"setup", 3},
	{"set up", 3},
	{"configur", 4},
	{"run", 5},
	{"start", 5},
	{"test", 6},
	{"verify", 6},
}

const defaultStepPriority = 4

var (
	numberedItemPattern = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.+)$`)
	bulletItemPattern   = regexp.MustCompile(`^\s*[-*+]\s+(.+)$`)
	stepHeadingPattern  = regexp.MustCompile(`(?i)^step\s+(\d+)[:.\s]\s*(.+)$`)
)

// SetupStepExtractor finds installation and setup steps in markdown.
type SetupStepExtractor struct{}

// NewSetupStepExtractor creates a SetupStepExtractor.
func NewSetupStepExtractor() *SetupStepExtractor {
	return &SetupStepExtractor{}
}

func (e *SetupStepExtractor) Name() string { return "setup_steps" }

func (e *SetupStepExtractor) Category() domain.Category { return domain.CategorySetupSteps }

type rankedStep struct {
	step     domain.SetupStep
	priority int
	seq      int
}

// Extract scans setup sections for numbered, bulleted and "Step N" items.
func (e *SetupStepExtractor) Extract(snapshot *domain.ContentSnapshot) (domain.ExtractResult, error) {
	var result domain.ExtractResult
	var ranked []rankedStep
	seq := 0

	for _, path := range snapshot.MarkdownPaths() {
		for _, section := range SplitSections(path, snapshot.Files[path]) {
			if m := stepHeadingPattern.FindStringSubmatch(section.Title); m != nil {
				ranked = append(ranked, rankedStep{
					step: domain.SetupStep{
						Title:       StripMarkup(m[2]),
						Description: Truncate(StripMarkup(FirstParagraph(section.Content)), descriptionMaxLength),
						Commands:    sectionCommands(section.Content),
					},
					priority: phasePriority(section.Title),
					seq:      seq,
				})
				seq++
				continue
			}

			if !isSetupHeading(section.Title) {
				continue
			}

			items := listItems(section.Content)
			if len(items) == 0 {
				// A setup section with commands but no list is one step.
				commands := sectionCommands(section.Content)
				if len(commands) == 0 {
					continue
				}
				ranked = append(ranked, rankedStep{
					step: domain.SetupStep{
						Title:       StripMarkup(section.Title),
						Description: Truncate(StripMarkup(FirstParagraph(section.Content)), descriptionMaxLength),
						Commands:    commands,
					},
					priority: phasePriority(section.Title),
					seq:      seq,
				})
				seq++
				continue
			}

			for _, item := range items {
				ranked = append(ranked, rankedStep{
					step: domain.SetupStep{
						Title:       stepTitle(item),
						Description: StripMarkup(item),
						Commands:    inlineCommands(item),
					},
					priority: phasePriority(section.Title + " " + item),
					seq:      seq,
				})
				seq++
			}
		}
	}

	// Stable sort by phase priority, then assign contiguous order values.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].priority != ranked[j].priority {
			return ranked[i].priority < ranked[j].priority
		}
		return ranked[i].seq < ranked[j].seq
	})

	for i, r := range ranked {
		step := r.step
		step.Order = i + 1
		if step.Title == "" {
			continue
		}
		result.SetupSteps = append(result.SetupSteps, step)
	}

	return result, nil
}

func isSetupHeading(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range setupKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func phasePriority(text string) int {
	lower := strings.ToLower(text)
	for _, p := range stepPriority {
		if strings.Contains(lower, p.keyword) {
			return p.priority
		}
	}
	return defaultStepPriority
}

// listItems returns numbered and bulleted list items from a section body,
// skipping fenced code.
func listItems(content string) []string {
	var items []string
	inFence := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := numberedItemPattern.FindStringSubmatch(line); m != nil {
			items = append(items, m[2])
			continue
		}
		if m := bulletItemPattern.FindStringSubmatch(line); m != nil {
			items = append(items, m[1])
		}
	}

	return items
}

// stepTitle derives a short title from a list item.
func stepTitle(item string) string {
	title := StripMarkup(item)
	if idx := strings.IndexAny(title, ".:;"); idx > 0 && idx < 80 {
		title = title[:idx]
	}
	return strings.TrimSpace(Truncate(title, 80))
}

// inlineCommands harvests command-looking code spans from a list item.
func inlineCommands(item string) []string {
	var commands []string
	for _, m := range codeSpanPattern.FindAllStringSubmatch(item, -1) {
		if LooksLikeCommand(m[1]) {
			commands = append(commands, NormalizeCommand(m[1]))
		}
	}
	return commands
}

// sectionCommands harvests commands from shell code fences and prompt lines
// in a section body.
func sectionCommands(content string) []string {
	var commands []string
	inFence := false
	fenceIsShell := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			if !inFence {
				lang := strings.TrimSpace(strings.ToLower(strings.TrimLeft(trimmed, "`~")))
				fenceIsShell = lang == "" || lang == "bash" || lang == "sh" ||
					lang == "shell" || lang == "console" || lang == "zsh"
			}
			inFence = !inFence
			continue
		}
		if inFence {
			if fenceIsShell && LooksLikeCommand(trimmed) {
				commands = append(commands, NormalizeCommand(trimmed))
			}
			continue
		}
		if strings.HasPrefix(trimmed, "$ ") && LooksLikeCommand(trimmed) {
			commands = append(commands, NormalizeCommand(trimmed))
		}
	}

	return commands
}
