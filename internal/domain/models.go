package domain

import (
	"sort"
	"strings"
	"time"
)

// DependencyType classifies what a dependency is needed for.
// It is a semantic classification, never an ecosystem or language tag.
type DependencyType string

const (
	DepRuntime DependencyType = "runtime"
	DepBuild   DependencyType = "build"
	DepDev     DependencyType = "dev"
	DepTest    DependencyType = "test"
	DepOther   DependencyType = "other"
)

// Concept is a key idea identified in repository content. Concepts form the
// nodes of a directed prerequisite graph which must stay acyclic.
type Concept struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Importance    int      `json:"importance"` // 1..10
	RelatedFiles  []string `json:"related_files,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"` // other concept names
}

// NormalizedName returns the case-normalized identity used for deduplication
// and prerequisite resolution.
func (c Concept) NormalizedName() string {
	return NormalizeName(c.Name)
}

// NormalizeName lower-cases and trims a concept or step name for use as a
// map key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SetupStep is a single setup or installation step.
type SetupStep struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Commands      []string `json:"commands,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Order         int      `json:"order"`
}

// CodeExample is a runnable snippet found in documentation.
type CodeExample struct {
	Title       string `json:"title"`
	Code        string `json:"code"`
	Language    string `json:"language"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
}

// Dependency is a project dependency. Version is empty when the manifest did
// not pin one.
type Dependency struct {
	Name        string         `json:"name"`
	Version     string         `json:"version,omitempty"`
	Type        DependencyType `json:"type"`
	Description string         `json:"description,omitempty"`
}

// DependencyKey is the uniqueness key for dependencies within one analysis.
type DependencyKey struct {
	Name string
	Type DependencyType
}

// Key returns the (name, type) identity of the dependency.
func (d Dependency) Key() DependencyKey {
	return DependencyKey{Name: strings.ToLower(strings.TrimSpace(d.Name)), Type: d.Type}
}

// Category identifies one of the four fact categories an analysis produces.
type Category string

const (
	CategoryConcepts     Category = "concepts"
	CategorySetupSteps   Category = "setup_steps"
	CategoryCodeExamples Category = "code_examples"
	CategoryDependencies Category = "dependencies"
)

// Categories lists all fact categories in canonical order.
func Categories() []Category {
	return []Category{CategoryConcepts, CategorySetupSteps, CategoryCodeExamples, CategoryDependencies}
}

// Warning is a non-fatal anomaly recorded during analysis.
type Warning struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// RepositoryAnalysis is the assembled result of one analysis run. It is
// created once per run and treated as immutable afterwards; generators only
// read it.
type RepositoryAnalysis struct {
	Reference    string        `json:"reference"`
	RepoName     string        `json:"repo_name"`
	Concepts     []Concept     `json:"concepts"`
	SetupSteps   []SetupStep   `json:"setup_steps"`
	CodeExamples []CodeExample `json:"code_examples"`
	Dependencies []Dependency  `json:"dependencies"`

	// Warnings records dangling references, skipped files, dropped cycle
	// edges and other degradations that did not abort the run.
	Warnings []Warning `json:"warnings,omitempty"`

	// FailedCategories names categories whose extractor failed outright, as
	// opposed to genuinely finding nothing. A failed category is always
	// empty in the result.
	FailedCategories []Category `json:"failed_categories,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// CategoryFailed reports whether the extractor for the given category failed
// rather than producing an empty result.
func (a *RepositoryAnalysis) CategoryFailed(cat Category) bool {
	for _, c := range a.FailedCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// ConceptByName looks up a concept by its normalized name.
func (a *RepositoryAnalysis) ConceptByName(name string) (Concept, bool) {
	key := NormalizeName(name)
	for _, c := range a.Concepts {
		if c.NormalizedName() == key {
			return c, true
		}
	}
	return Concept{}, false
}

// ContentSnapshot is the acquired, read-only view of a repository's files.
type ContentSnapshot struct {
	Reference       string
	Files           map[string]string // relative path -> text content
	FileCount       int               // all files seen, including skipped binaries
	PrimaryLanguage string
}

// Paths returns the snapshot's file paths in sorted order so iteration is
// deterministic.
func (s *ContentSnapshot) Paths() []string {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// MarkdownPaths returns the sorted paths of markdown files in the snapshot.
func (s *ContentSnapshot) MarkdownPaths() []string {
	var paths []string
	for _, p := range s.Paths() {
		lower := strings.ToLower(p)
		if strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown") ||
			strings.HasSuffix(lower, ".mdx") || strings.HasSuffix(lower, ".mdown") {
			paths = append(paths, p)
		}
	}
	return paths
}

// Task is a numbered onboarding task derived from an analysis.
type Task struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Number             int      `json:"number"` // 1-based, contiguous
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Prerequisites      []string `json:"prerequisites,omitempty"`
}

// TaskDocument wraps the ordered task list plus document metadata.
type TaskDocument struct {
	RepoName    string    `json:"repo_name"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
	Tasks       []Task    `json:"tasks"`
}

// FaqEntry is one question/answer pair.
type FaqEntry struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Category    string   `json:"category"`
	SourceFiles []string `json:"source_files,omitempty"`
}

// FaqDocument wraps the ordered FAQ entries plus document metadata.
type FaqDocument struct {
	RepoName    string     `json:"repo_name"`
	GeneratedAt time.Time  `json:"generated_at,omitzero"`
	Entries     []FaqEntry `json:"entries"`
}

// QuickstartStep is one install/run step in the quickstart guide.
type QuickstartStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Commands    []string `json:"commands,omitempty"`
}

// QuickstartDocument wraps the ordered quickstart sections.
type QuickstartDocument struct {
	RepoName      string           `json:"repo_name"`
	GeneratedAt   time.Time        `json:"generated_at,omitzero"`
	Prerequisites []string         `json:"prerequisites,omitempty"`
	Steps         []QuickstartStep `json:"steps"`
	BasicUsage    []string         `json:"basic_usage,omitempty"`
	NextSteps     []string         `json:"next_steps,omitempty"`
}

// DocumentKind selects which document a generator produces.
type DocumentKind string

const (
	KindTasks      DocumentKind = "tasks"
	KindFaq        DocumentKind = "faq"
	KindQuickstart DocumentKind = "quickstart"
)

// DocumentKinds lists all supported kinds in canonical order.
func DocumentKinds() []DocumentKind {
	return []DocumentKind{KindTasks, KindFaq, KindQuickstart}
}

// ParseDocumentKind validates a user-supplied kind string.
func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch DocumentKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindTasks:
		return KindTasks, true
	case KindFaq:
		return KindFaq, true
	case KindQuickstart:
		return KindQuickstart, true
	}
	return "", false
}
