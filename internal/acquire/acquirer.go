package acquire

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

// Options contains options for creating a ContentAcquirer
type Options struct {
	Logger       *utils.Logger
	MaxFileSize  int64
	MaxRetries   int
	ShowProgress bool
}

// ContentAcquirer acquires repository content from hosted git URLs and local
// directories. It implements domain.Acquirer.
type ContentAcquirer struct {
	parser       *Parser
	cloner       *cloner
	retrier      *Retrier
	logger       *utils.Logger
	maxFileSize  int64
	showProgress bool
}

// New creates a ContentAcquirer with the given options
func New(opts Options) *ContentAcquirer {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	logger = logger.WithComponent("acquire")

	retrierOpts := DefaultRetrierOptions()
	if opts.MaxRetries > 0 {
		retrierOpts.MaxRetries = opts.MaxRetries
	}

	return &ContentAcquirer{
		parser:       NewParser(),
		cloner:       newCloner(logger, opts.ShowProgress),
		retrier:      NewRetrier(retrierOpts),
		logger:       logger,
		maxFileSize:  opts.MaxFileSize,
		showProgress: opts.ShowProgress,
	}
}

// Supports reports whether the reference names a hosted git repository or an
// existing local directory.
func (a *ContentAcquirer) Supports(reference string) bool {
	if _, ok := a.parser.Parse(reference); ok {
		return true
	}
	return IsLocalReference(reference)
}

// Acquire fetches repository content into a snapshot. The returned cleanup
// function removes any temporary workspace and is returned on every path
// that created one, including failures after partial work.
func (a *ContentAcquirer) Acquire(ctx context.Context, reference string) (*domain.ContentSnapshot, func(), error) {
	noop := func() {}

	if info, ok := a.parser.Parse(reference); ok {
		return a.acquireGit(ctx, reference, info)
	}

	if IsLocalReference(reference) {
		return a.acquireLocal(reference)
	}

	return nil, noop, domain.NewUnsupportedSourceError(reference)
}

func (a *ContentAcquirer) acquireGit(ctx context.Context, reference string, info *RefInfo) (*domain.ContentSnapshot, func(), error) {
	workDir := filepath.Join(os.TempDir(), "onboarddocs-"+uuid.NewString())
	cleanup := func() { _ = os.RemoveAll(workDir) }

	snapshot, err := RetryWithValue(ctx, a.retrier, func() (*domain.ContentSnapshot, error) {
		// A failed attempt can leave a partial clone behind
		_ = os.RemoveAll(workDir)
		if err := a.cloner.clone(ctx, info, workDir); err != nil {
			return nil, err
		}

		root := workDir
		if info.SubPath != "" {
			root = filepath.Join(workDir, filepath.FromSlash(info.SubPath))
			if stat, statErr := os.Stat(root); statErr != nil || !stat.IsDir() {
				return nil, domain.NewFetchError(reference, domain.ErrNotFound)
			}
		}

		return a.buildSnapshot(reference, root)
	})
	if err != nil {
		return nil, cleanup, err
	}

	a.logger.Debug().
		Str("reference", reference).
		Int("files", snapshot.FileCount).
		Msg("Acquired repository content")

	return snapshot, cleanup, nil
}

func (a *ContentAcquirer) acquireLocal(reference string) (*domain.ContentSnapshot, func(), error) {
	noop := func() {}

	path := strings.TrimPrefix(reference, "file://")
	path = expandRef(path)

	snapshot, err := a.buildSnapshot(reference, path)
	if err != nil {
		return nil, noop, err
	}

	return snapshot, noop, nil
}

func (a *ContentAcquirer) buildSnapshot(reference, root string) (*domain.ContentSnapshot, error) {
	return BuildSnapshot(reference, root, SnapshotOptions{
		MaxFileSize:  a.maxFileSize,
		ShowProgress: a.showProgress,
		Logger:       a.logger,
	})
}

// RepoName derives a human-readable repository name from a reference.
func RepoName(reference string) string {
	if info, ok := NewParser().Parse(reference); ok && info.Repo != "" {
		return info.Repo
	}
	path := strings.TrimPrefix(reference, "file://")
	path = strings.TrimRight(expandRef(path), "/\\")
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "repository"
	}
	return name
}
