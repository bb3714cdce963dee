package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

func TestMergeConceptsKeepsFirstPosition(t *testing.T) {
	merged, warnings := MergeConcepts([]domain.Concept{
		{Name: "Pipeline", Importance: 5, RelatedFiles: []string{"a.md"}},
		{Name: "Storage", Importance: 4},
		{Name: "pipeline", Importance: 8, RelatedFiles: []string{"b.md"}},
	})

	require.Len(t, merged, 2)
	assert.Empty(t, warnings)

	// The higher-importance duplicate wins but keeps the first position
	// and unions the provenance.
	assert.Equal(t, "pipeline", merged[0].Name)
	assert.Equal(t, 8, merged[0].Importance)
	assert.Equal(t, []string{"a.md", "b.md"}, merged[0].RelatedFiles)
	assert.Equal(t, "Storage", merged[1].Name)
}

func TestMergeConceptsDropsEqualOrLowerImportance(t *testing.T) {
	merged, warnings := MergeConcepts([]domain.Concept{
		{Name: "Pipeline", Importance: 5, Description: "first"},
		{Name: "Pipeline", Importance: 5, Description: "second"},
		{Name: "PIPELINE", Importance: 3, Description: "third"},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "first", merged[0].Description)
	assert.Len(t, warnings, 2)
}

func TestMergeDependenciesKeyedByNameAndType(t *testing.T) {
	merged := MergeDependencies([]domain.Dependency{
		{Name: "requests", Type: domain.DepRuntime},
		{Name: "requests", Type: domain.DepDev},
		{Name: "Requests", Type: domain.DepRuntime, Version: "2.28"},
	})

	// Same name with a different type is a different dependency.
	require.Len(t, merged, 2)
	assert.Equal(t, domain.DepRuntime, merged[0].Type)
	assert.Equal(t, "2.28", merged[0].Version)
	assert.Equal(t, domain.DepDev, merged[1].Type)
}

func TestMergeDependenciesVersionPreference(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
	}{
		{"non-empty wins over empty", []string{"", "1.2.0"}, "1.2.0"},
		{"empty never overwrites", []string{"1.2.0", ""}, "1.2.0"},
		{"greater semver wins", []string{"1.2.0", "1.10.0"}, "1.10.0"},
		{"lesser semver is ignored", []string{"2.0.0", "1.9.9"}, "2.0.0"},
		{"constraint prefixes compare on the core", []string{">=1.2.0", "^1.5.0"}, "^1.5.0"},
		{"non-semver keeps first", []string{"latest", "stable"}, "latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deps []domain.Dependency
			for _, v := range tt.versions {
				deps = append(deps, domain.Dependency{Name: "pkg", Type: domain.DepRuntime, Version: v})
			}
			merged := MergeDependencies(deps)
			require.Len(t, merged, 1)
			assert.Equal(t, tt.want, merged[0].Version)
		})
	}
}

func TestMergeDependenciesDefaultsUnknownType(t *testing.T) {
	merged := MergeDependencies([]domain.Dependency{{Name: "mystery"}})
	require.Len(t, merged, 1)
	assert.Equal(t, domain.DepOther, merged[0].Type)
}
