package acquire

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Platform represents a git hosting platform
type Platform string

const (
	PlatformGitHub    Platform = "github"
	PlatformGitLab    Platform = "gitlab"
	PlatformBitbucket Platform = "bitbucket"
	PlatformGeneric   Platform = "generic"
)

// RefInfo contains parsed repository reference information
type RefInfo struct {
	RepoURL  string // clean repository URL, without /tree/... suffix
	Platform Platform
	Owner    string
	Repo     string
	Branch   string // branch from URL, empty if not specified
	SubPath  string // subdirectory path, empty if root
}

type platformPattern struct {
	platform    Platform
	repoPattern *regexp.Regexp
	treePattern *regexp.Regexp
}

// Parser parses hosted git references
type Parser struct {
	patterns []platformPattern
}

// NewParser creates a reference parser for the supported platforms
func NewParser() *Parser {
	return &Parser{
		patterns: []platformPattern{
			{
				platform:    PlatformGitHub,
				repoPattern: regexp.MustCompile(`^(https?://github\.com/([^/]+)/([^/]+?))(\.git)?(/|$)`),
				treePattern: regexp.MustCompile(`/tree/([^/]+)(?:/(.+))?$`),
			},
			{
				platform:    PlatformGitLab,
				repoPattern: regexp.MustCompile(`^(https?://gitlab\.com/([^/]+)/([^/]+?))(\.git)?(/|$)`),
				treePattern: regexp.MustCompile(`/-/tree/([^/]+)(?:/(.+))?$`),
			},
			{
				platform:    PlatformBitbucket,
				repoPattern: regexp.MustCompile(`^(https?://bitbucket\.org/([^/]+)/([^/]+?))(\.git)?(/|$)`),
				treePattern: regexp.MustCompile(`/src/([^/]+)(?:/(.+))?$`),
			},
		},
	}
}

var sshRefPattern = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(\.git)?$`)

// Parse extracts platform, owner, repo and optional branch/subpath from a
// hosted git reference.
func (p *Parser) Parse(reference string) (*RefInfo, bool) {
	if matches := sshRefPattern.FindStringSubmatch(reference); len(matches) >= 4 {
		return &RefInfo{
			RepoURL:  reference,
			Platform: platformForHost(matches[1]),
			Owner:    matches[2],
			Repo:     strings.TrimSuffix(matches[3], ".git"),
		}, true
	}

	lower := strings.ToLower(reference)
	for _, pat := range p.patterns {
		if !strings.Contains(lower, string(pat.platform)) {
			continue
		}

		repoMatches := pat.repoPattern.FindStringSubmatch(reference)
		if len(repoMatches) < 4 {
			continue
		}

		info := &RefInfo{
			Platform: pat.platform,
			RepoURL:  repoMatches[1],
			Owner:    repoMatches[2],
			Repo:     strings.TrimSuffix(repoMatches[3], ".git"),
		}

		treeMatches := pat.treePattern.FindStringSubmatch(reference)
		if len(treeMatches) >= 2 {
			info.Branch = treeMatches[1]
			if len(treeMatches) >= 3 && treeMatches[2] != "" {
				info.SubPath = normalizeSubPath(treeMatches[2])
			}
		}

		return info, true
	}

	// Any http(s) URL ending in .git is treated as a generic git remote.
	if (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) &&
		strings.HasSuffix(strings.TrimSuffix(lower, "/"), ".git") {
		repo := strings.TrimSuffix(filepath.Base(strings.TrimSuffix(reference, "/")), ".git")
		return &RefInfo{
			RepoURL:  reference,
			Platform: PlatformGeneric,
			Repo:     repo,
		}, true
	}

	return nil, false
}

func platformForHost(host string) Platform {
	switch {
	case strings.Contains(host, "github"):
		return PlatformGitHub
	case strings.Contains(host, "gitlab"):
		return PlatformGitLab
	case strings.Contains(host, "bitbucket"):
		return PlatformBitbucket
	}
	return PlatformGeneric
}

func normalizeSubPath(path string) string {
	decoded, err := url.PathUnescape(path)
	if err == nil {
		path = decoded
	}

	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.Trim(path, "/")
	return filepath.Clean(path)
}

// IsGitReference reports whether the reference names a hosted git repository.
func IsGitReference(reference string) bool {
	_, ok := NewParser().Parse(reference)
	return ok
}

// IsLocalReference reports whether the reference names an existing local
// directory.
func IsLocalReference(reference string) bool {
	path := reference
	if strings.HasPrefix(path, "file://") {
		path = strings.TrimPrefix(path, "file://")
	} else if strings.Contains(path, "://") {
		return false
	}
	info, err := os.Stat(expandRef(path))
	return err == nil && info.IsDir()
}

func expandRef(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
