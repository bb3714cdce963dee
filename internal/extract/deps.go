package extract

import (
	"encoding/json"
	"path"
	"regexp"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// manifestParser parses one manifest format into dependencies.
type manifestParser func(path, content string) ([]domain.Dependency, error)

// manifestParsers maps manifest file names to their parsers.
var manifestParsers = map[string]manifestParser{
	"package.json":     parsePackageJSON,
	"go.mod":           parseGoMod,
	"requirements.txt": parseRequirementsTxt,
	"setup.py":         parseSetupPy,
	"pyproject.toml":   parsePyprojectToml,
	"pipfile":          parsePipfile,
	"cargo.toml":       parseCargoToml,
	"gemfile":          parseGemfile,
	"composer.json":    parseComposerJSON,
	"pubspec.yaml":     parsePubspecYaml,
	"environment.yml":  parseEnvironmentYml,
	"environment.yaml": parseEnvironmentYml,
}

// DependencyExtractor finds project dependencies in manifests and in
// install commands mentioned in markdown.
type DependencyExtractor struct{}

// NewDependencyExtractor creates a DependencyExtractor.
func NewDependencyExtractor() *DependencyExtractor {
	return &DependencyExtractor{}
}

func (e *DependencyExtractor) Name() string { return "dependencies" }

func (e *DependencyExtractor) Category() domain.Category { return domain.CategoryDependencies }

// Extract parses every recognized manifest in the snapshot. One unparseable
// manifest skips only itself and is recorded as a warning.
func (e *DependencyExtractor) Extract(snapshot *domain.ContentSnapshot) (domain.ExtractResult, error) {
	var result domain.ExtractResult

	for _, filePath := range snapshot.Paths() {
		parser, ok := manifestParsers[strings.ToLower(path.Base(filePath))]
		if !ok {
			continue
		}

		deps, err := parser(filePath, snapshot.Files[filePath])
		if err != nil {
			result.Warnings = append(result.Warnings, domain.Warning{
				Category: domain.CategoryDependencies,
				Message:  domain.NewParseError(filePath, err).Error(),
			})
			continue
		}
		result.Dependencies = append(result.Dependencies, deps...)
	}

	for _, filePath := range snapshot.MarkdownPaths() {
		result.Dependencies = append(result.Dependencies,
			markdownInstallDeps(snapshot.Files[filePath])...)
	}

	return result, nil
}

// versionSplitPattern separates a requirement name from its constraint.
var versionSplitPattern = regexp.MustCompile(`(==|>=|<=|~=|!=|>|<|=|@)`)

// splitRequirement splits "name>=1.0" style requirement strings.
func splitRequirement(req string) (name, version string) {
	req = strings.TrimSpace(req)
	if idx := strings.IndexAny(req, ";#"); idx >= 0 {
		req = strings.TrimSpace(req[:idx])
	}
	loc := versionSplitPattern.FindStringIndex(req)
	if loc == nil {
		return req, ""
	}
	return strings.TrimSpace(req[:loc[0]]), strings.TrimSpace(req[loc[0]:])
}

func parsePackageJSON(_, content string) ([]domain.Dependency, error) {
	var manifest struct {
		Dependencies     map[string]string `json:"dependencies"`
		DevDependencies  map[string]string `json:"devDependencies"`
		PeerDependencies map[string]string `json:"peerDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	deps = append(deps, depsFromMap(manifest.Dependencies, domain.DepRuntime)...)
	deps = append(deps, depsFromMap(manifest.DevDependencies, domain.DepDev)...)
	deps = append(deps, depsFromMap(manifest.PeerDependencies, domain.DepRuntime)...)
	return deps, nil
}

func parseGoMod(path, content string) ([]domain.Dependency, error) {
	file, err := modfile.Parse(path, []byte(content), nil)
	if err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	for _, req := range file.Require {
		if req.Indirect {
			continue
		}
		deps = append(deps, domain.Dependency{
			Name:    req.Mod.Path,
			Version: req.Mod.Version,
			Type:    domain.DepRuntime,
		})
	}
	return deps, nil
}

func parseRequirementsTxt(_, content string) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		deps = append(deps, domain.Dependency{Name: name, Version: version, Type: domain.DepRuntime})
	}
	return deps, nil
}

var installRequiresPattern = regexp.MustCompile(`(?s)install_requires\s*=\s*\[(.*?)\]`)
var quotedStringPattern = regexp.MustCompile(`["']([^"']+)["']`)

func parseSetupPy(_, content string) ([]domain.Dependency, error) {
	m := installRequiresPattern.FindStringSubmatch(content)
	if m == nil {
		return nil, nil
	}

	var deps []domain.Dependency
	for _, q := range quotedStringPattern.FindAllStringSubmatch(m[1], -1) {
		name, version := splitRequirement(q[1])
		if name == "" {
			continue
		}
		deps = append(deps, domain.Dependency{Name: name, Version: version, Type: domain.DepRuntime})
	}
	return deps, nil
}

func parsePyprojectToml(_, content string) ([]domain.Dependency, error) {
	var manifest struct {
		Project struct {
			Dependencies         []string            `toml:"dependencies"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies    map[string]any `toml:"dependencies"`
				DevDependencies map[string]any `toml:"dev-dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	for _, req := range manifest.Project.Dependencies {
		name, version := splitRequirement(req)
		if name == "" {
			continue
		}
		deps = append(deps, domain.Dependency{Name: name, Version: version, Type: domain.DepRuntime})
	}
	groups := make([]string, 0, len(manifest.Project.OptionalDependencies))
	for group := range manifest.Project.OptionalDependencies {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for _, group := range groups {
		depType := domain.DepDev
		if strings.Contains(strings.ToLower(group), "test") {
			depType = domain.DepTest
		}
		for _, req := range manifest.Project.OptionalDependencies[group] {
			name, version := splitRequirement(req)
			if name == "" {
				continue
			}
			deps = append(deps, domain.Dependency{Name: name, Version: version, Type: depType})
		}
	}
	deps = append(deps, depsFromAnyMap(manifest.Tool.Poetry.Dependencies, domain.DepRuntime)...)
	deps = append(deps, depsFromAnyMap(manifest.Tool.Poetry.DevDependencies, domain.DepDev)...)
	return deps, nil
}

func parsePipfile(_, content string) ([]domain.Dependency, error) {
	var manifest struct {
		Packages    map[string]any `toml:"packages"`
		DevPackages map[string]any `toml:"dev-packages"`
	}
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	deps = append(deps, depsFromAnyMap(manifest.Packages, domain.DepRuntime)...)
	deps = append(deps, depsFromAnyMap(manifest.DevPackages, domain.DepDev)...)
	return deps, nil
}

func parseCargoToml(_, content string) ([]domain.Dependency, error) {
	var manifest struct {
		Dependencies      map[string]any `toml:"dependencies"`
		DevDependencies   map[string]any `toml:"dev-dependencies"`
		BuildDependencies map[string]any `toml:"build-dependencies"`
	}
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	deps = append(deps, depsFromAnyMap(manifest.Dependencies, domain.DepRuntime)...)
	deps = append(deps, depsFromAnyMap(manifest.DevDependencies, domain.DepDev)...)
	deps = append(deps, depsFromAnyMap(manifest.BuildDependencies, domain.DepBuild)...)
	return deps, nil
}

var gemPattern = regexp.MustCompile(`(?m)^\s*gem\s+["']([^"']+)["'](?:\s*,\s*["']([^"']+)["'])?`)

func parseGemfile(_, content string) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	for _, m := range gemPattern.FindAllStringSubmatch(content, -1) {
		deps = append(deps, domain.Dependency{
			Name:    m[1],
			Version: m[2],
			Type:    domain.DepRuntime,
		})
	}
	return deps, nil
}

func parseComposerJSON(_, content string) ([]domain.Dependency, error) {
	var manifest struct {
		Require    map[string]string `json:"require"`
		RequireDev map[string]string `json:"require-dev"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	for name, version := range manifest.Require {
		// The php entry pins the platform, not a package.
		if name == "php" {
			continue
		}
		deps = append(deps, domain.Dependency{Name: name, Version: version, Type: domain.DepRuntime})
	}
	deps = append(deps, depsFromMap(manifest.RequireDev, domain.DepDev)...)
	return sortDeps(deps), nil
}

func parsePubspecYaml(_, content string) ([]domain.Dependency, error) {
	var manifest struct {
		Dependencies    map[string]any `yaml:"dependencies"`
		DevDependencies map[string]any `yaml:"dev_dependencies"`
	}
	if err := yaml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	deps = append(deps, depsFromAnyMap(manifest.Dependencies, domain.DepRuntime)...)
	deps = append(deps, depsFromAnyMap(manifest.DevDependencies, domain.DepDev)...)
	return deps, nil
}

func parseEnvironmentYml(_, content string) ([]domain.Dependency, error) {
	var manifest struct {
		Dependencies []any `yaml:"dependencies"`
	}
	if err := yaml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, err
	}

	var deps []domain.Dependency
	for _, entry := range manifest.Dependencies {
		switch v := entry.(type) {
		case string:
			name, version := splitCondaRequirement(v)
			if name == "" {
				continue
			}
			deps = append(deps, domain.Dependency{Name: name, Version: version, Type: domain.DepRuntime})
		case map[string]any:
			// Nested pip section
			if pipList, ok := v["pip"].([]any); ok {
				for _, pipEntry := range pipList {
					req, ok := pipEntry.(string)
					if !ok {
						continue
					}
					name, version := splitRequirement(req)
					if name == "" {
						continue
					}
					deps = append(deps, domain.Dependency{Name: name, Version: version, Type: domain.DepRuntime})
				}
			}
		}
	}
	return deps, nil
}

// splitCondaRequirement handles conda's "name=version=build" form.
func splitCondaRequirement(req string) (name, version string) {
	parts := strings.SplitN(strings.TrimSpace(req), "=", 3)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		version = strings.TrimSpace(parts[1])
	}
	return name, version
}

// installCommandPatterns match install commands mentioned in markdown prose.
var installCommandPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)pip3?\s+install\s+([a-zA-Z0-9_\-\[\].]+)`),
	regexp.MustCompile(`(?m)npm\s+install\s+(?:-g\s+)?([a-zA-Z0-9_\-@/.]+)`),
	regexp.MustCompile(`(?m)yarn\s+add\s+([a-zA-Z0-9_\-@/.]+)`),
	regexp.MustCompile(`(?m)gem\s+install\s+([a-zA-Z0-9_\-.]+)`),
	regexp.MustCompile(`(?m)apt-get\s+install\s+(?:-y\s+)?([a-zA-Z0-9_\-.]+)`),
	regexp.MustCompile(`(?m)brew\s+install\s+([a-zA-Z0-9_\-.]+)`),
	regexp.MustCompile(`(?m)cargo\s+add\s+([a-zA-Z0-9_\-.]+)`),
	regexp.MustCompile(`(?m)go\s+install\s+([a-zA-Z0-9_\-./@]+)`),
}

// markdownInstallDeps finds dependencies named by install commands in
// markdown content.
func markdownInstallDeps(content string) []domain.Dependency {
	var deps []domain.Dependency
	seen := make(map[string]bool)

	for _, pattern := range installCommandPatterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			name := strings.TrimSpace(m[1])
			// Flags and placeholders are not package names.
			if name == "" || strings.HasPrefix(name, "-") || strings.HasPrefix(name, "<") {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			deps = append(deps, domain.Dependency{Name: name, Type: domain.DepRuntime})
		}
	}

	return deps
}

func depsFromMap(m map[string]string, depType domain.DependencyType) []domain.Dependency {
	var deps []domain.Dependency
	for name, version := range m {
		deps = append(deps, domain.Dependency{Name: name, Version: version, Type: depType})
	}
	return sortDeps(deps)
}

func depsFromAnyMap(m map[string]any, depType domain.DependencyType) []domain.Dependency {
	var deps []domain.Dependency
	for name, spec := range m {
		if strings.EqualFold(name, "python") || strings.EqualFold(name, "sdk") {
			continue
		}
		version := ""
		switch v := spec.(type) {
		case string:
			version = v
		case map[string]any:
			if ver, ok := v["version"].(string); ok {
				version = ver
			}
		}
		if version == "*" {
			version = ""
		}
		deps = append(deps, domain.Dependency{Name: name, Version: version, Type: depType})
	}
	return sortDeps(deps)
}

// sortDeps orders map-derived dependencies by name so extraction stays
// deterministic.
func sortDeps(deps []domain.Dependency) []domain.Dependency {
	sort.SliceStable(deps, func(i, j int) bool {
		return deps[i].Name < deps[j].Name
	})
	return deps
}
