package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is one heading-delimited region of a markdown file.
type Section struct {
	Title   string
	Level   int
	Content string // body text up to the next heading
	Path    string // source file path
}

// CodeFence is one fenced code block with its surrounding context.
type CodeFence struct {
	Language  string // tag on the opening fence, may be empty
	Code      string
	Heading   string // nearest preceding heading title
	Preceding string // last non-empty text line before the fence
	Path      string
}

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)

// SplitSections splits markdown content into heading-delimited sections.
// Headings inside fenced code blocks are ignored. Text before the first
// heading is dropped.
func SplitSections(path, content string) []Section {
	var sections []Section
	var current *Section
	var body []string
	inFence := false

	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(strings.Join(body, "\n"))
			sections = append(sections, *current)
		}
		body = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}

		if !inFence {
			if m := headingPattern.FindStringSubmatch(line); m != nil {
				flush()
				current = &Section{
					Title: strings.TrimSpace(m[2]),
					Level: len(m[1]),
					Path:  path,
				}
				continue
			}
		}

		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// ScanFences extracts fenced code blocks from markdown content along with
// the nearest preceding heading and text line.
func ScanFences(path, content string) []CodeFence {
	var fences []CodeFence
	var fence *CodeFence
	var code []string
	heading := ""
	lastText := ""
	fenceMarker := ""

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if fence != nil {
			if strings.HasPrefix(trimmed, fenceMarker) {
				fence.Code = strings.Join(code, "\n")
				fences = append(fences, *fence)
				fence = nil
				code = nil
				continue
			}
			code = append(code, line)
			continue
		}

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenceMarker = trimmed[:3]
			fence = &CodeFence{
				Language:  strings.ToLower(strings.TrimSpace(strings.TrimLeft(trimmed, "`~"))),
				Heading:   heading,
				Preceding: lastText,
				Path:      path,
			}
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			heading = strings.TrimSpace(m[2])
			lastText = ""
			continue
		}

		if trimmed != "" {
			lastText = trimmed
		}
	}

	return fences
}

// FirstParagraph returns the first non-empty paragraph of a section body,
// skipping code fences and list items.
func FirstParagraph(content string) string {
	var lines []string
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
		if trimmed == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, ">") || headingPattern.MatchString(line) {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, trimmed)
	}

	return strings.Join(lines, " ")
}

var (
	linkPattern     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imagePattern    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	emphasisPattern = regexp.MustCompile(`(\*\*|__|\*|_)`)
	codeSpanPattern = regexp.MustCompile("`([^`]*)`")
)

// StripMarkup removes inline markdown formatting, keeping the visible text.
func StripMarkup(s string) string {
	s = imagePattern.ReplaceAllString(s, "")
	s = linkPattern.ReplaceAllString(s, "$1")
	s = codeSpanPattern.ReplaceAllString(s, "$1")
	s = emphasisPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Truncate shortens s to at most max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := strings.TrimRight(string(runes[:max]), " ")
	return cut + "..."
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// TitleCase upper-cases the first letter of each word, leaving existing
// capitalization intact.
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// commandPrefixes mark shell lines that look like runnable commands.
var commandPrefixes = []string{
	"pip install", "pip3 install", "npm install", "npm run", "npm ci",
	"yarn ", "pnpm ", "git clone", "git ", "cd ", "mkdir ", "python ",
	"python3 ", "docker ", "docker-compose ", "brew install", "apt-get ",
	"apt ", "make", "go run", "go build", "go install", "go test",
	"cargo ", "bundle ", "composer ", "mvn ", "gradle ", "./", "sh ",
	"bash ", "curl ", "wget ", "export ", "source ", "echo ",
}

// LooksLikeCommand reports whether a line of text is plausibly a shell
// command.
func LooksLikeCommand(line string) bool {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "$ ")
	line = strings.TrimPrefix(line, "> ")
	if line == "" || strings.Contains(line, "\n") {
		return false
	}
	lower := strings.ToLower(line)
	for _, prefix := range commandPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// NormalizeCommand strips shell prompt markers from a command line.
func NormalizeCommand(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "$ ")
	line = strings.TrimPrefix(line, "> ")
	return strings.TrimSpace(line)
}
