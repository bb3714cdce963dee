package analysis

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// MergeConcepts deduplicates concepts by case-normalized name. The first
// occurrence keeps its position; a later duplicate replaces it only when its
// importance is strictly greater, otherwise the duplicate is dropped with a
// warning.
func MergeConcepts(concepts []domain.Concept) ([]domain.Concept, []domain.Warning) {
	var merged []domain.Concept
	var warnings []domain.Warning
	index := make(map[string]int)

	for _, c := range concepts {
		key := c.NormalizedName()
		if key == "" {
			continue
		}
		pos, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, c)
			continue
		}

		if c.Importance > merged[pos].Importance {
			existing := merged[pos]
			// Union the provenance and prerequisites of both duplicates.
			c.RelatedFiles = unionStrings(existing.RelatedFiles, c.RelatedFiles)
			c.Prerequisites = unionStrings(existing.Prerequisites, c.Prerequisites)
			merged[pos] = c
		} else {
			warnings = append(warnings, domain.Warning{
				Category: domain.CategoryConcepts,
				Message:  fmt.Sprintf("dropped duplicate concept %q (importance %d <= %d)", c.Name, c.Importance, merged[pos].Importance),
			})
		}
	}

	return merged, warnings
}

// MergeDependencies deduplicates dependencies by (name, type) in first-seen
// order. When duplicates disagree on version, a non-empty version wins over
// an empty one; two non-empty versions are compared as semver when possible,
// keeping the greater, and lexically otherwise.
func MergeDependencies(deps []domain.Dependency) []domain.Dependency {
	var merged []domain.Dependency
	index := make(map[domain.DependencyKey]int)

	for _, d := range deps {
		if d.Name == "" {
			continue
		}
		if d.Type == "" {
			d.Type = domain.DepOther
		}
		key := d.Key()
		pos, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, d)
			continue
		}

		existing := merged[pos]
		if preferVersion(d.Version, existing.Version) {
			existing.Version = d.Version
		}
		if existing.Description == "" {
			existing.Description = d.Description
		}
		merged[pos] = existing
	}

	return merged
}

// preferVersion reports whether candidate should replace current.
func preferVersion(candidate, current string) bool {
	if candidate == "" {
		return false
	}
	if current == "" {
		return true
	}

	cand, errCand := semver.NewVersion(trimConstraint(candidate))
	curr, errCurr := semver.NewVersion(trimConstraint(current))
	if errCand == nil && errCurr == nil {
		return cand.GreaterThan(curr)
	}

	return false
}

// trimConstraint strips leading constraint operators so pinned and ranged
// versions compare on their numeric core.
func trimConstraint(version string) string {
	for _, prefix := range []string{"==", ">=", "<=", "~>", "~=", "^", "~", ">", "<", "=", "v"} {
		if len(version) > len(prefix) && version[:len(prefix)] == prefix {
			return version[len(prefix):]
		}
	}
	return version
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
