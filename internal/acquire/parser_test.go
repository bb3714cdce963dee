package acquire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserParse(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		ok        bool
		platform  Platform
		owner     string
		repo      string
		branch    string
		subPath   string
	}{
		{
			name:      "github https",
			reference: "https://github.com/acme/widget",
			ok:        true,
			platform:  PlatformGitHub,
			owner:     "acme",
			repo:      "widget",
		},
		{
			name:      "github with .git suffix",
			reference: "https://github.com/acme/widget.git",
			ok:        true,
			platform:  PlatformGitHub,
			owner:     "acme",
			repo:      "widget",
		},
		{
			name:      "github tree with subpath",
			reference: "https://github.com/acme/widget/tree/main/docs/guide",
			ok:        true,
			platform:  PlatformGitHub,
			owner:     "acme",
			repo:      "widget",
			branch:    "main",
			subPath:   "docs/guide",
		},
		{
			name:      "gitlab tree",
			reference: "https://gitlab.com/acme/widget/-/tree/develop",
			ok:        true,
			platform:  PlatformGitLab,
			owner:     "acme",
			repo:      "widget",
			branch:    "develop",
		},
		{
			name:      "bitbucket src",
			reference: "https://bitbucket.org/acme/widget/src/master/lib",
			ok:        true,
			platform:  PlatformBitbucket,
			owner:     "acme",
			repo:      "widget",
			branch:    "master",
			subPath:   "lib",
		},
		{
			name:      "ssh reference",
			reference: "git@github.com:acme/widget.git",
			ok:        true,
			platform:  PlatformGitHub,
			owner:     "acme",
			repo:      "widget",
		},
		{
			name:      "generic git url",
			reference: "https://git.example.com/acme/widget.git",
			ok:        true,
			platform:  PlatformGeneric,
			repo:      "widget",
		},
		{
			name:      "ftp is unsupported",
			reference: "ftp://example.com/repo",
			ok:        false,
		},
		{
			name:      "bare hostname is unsupported",
			reference: "example.com/acme/widget",
			ok:        false,
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := parser.Parse(tt.reference)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			require.NotNil(t, info)
			assert.Equal(t, tt.platform, info.Platform)
			if tt.owner != "" {
				assert.Equal(t, tt.owner, info.Owner)
			}
			assert.Equal(t, tt.repo, info.Repo)
			assert.Equal(t, tt.branch, info.Branch)
			assert.Equal(t, tt.subPath, info.SubPath)
		})
	}
}

func TestIsGitReference(t *testing.T) {
	assert.True(t, IsGitReference("https://github.com/acme/widget"))
	assert.True(t, IsGitReference("git@gitlab.com:acme/widget.git"))
	assert.False(t, IsGitReference("ftp://example.com/repo"))
	assert.False(t, IsGitReference("/tmp/some/dir"))
}

func TestIsLocalReference(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, IsLocalReference(dir))
	assert.False(t, IsLocalReference(dir+"/does-not-exist"))
	assert.False(t, IsLocalReference("https://github.com/acme/widget"))
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		reference string
		want      string
	}{
		{"https://github.com/acme/widget", "widget"},
		{"git@github.com:acme/widget.git", "widget"},
		{"/home/dev/projects/myapp", "myapp"},
		{"/home/dev/projects/myapp/", "myapp"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RepoName(tt.reference), tt.reference)
	}
}
