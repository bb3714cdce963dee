package acquire

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

// cloner performs shallow clones of hosted git repositories
type cloner struct {
	logger       *utils.Logger
	showProgress bool
}

func newCloner(logger *utils.Logger, showProgress bool) *cloner {
	return &cloner{logger: logger, showProgress: showProgress}
}

// clone performs a depth-1 clone of the repository into destDir. Failures are
// classified so the retrier only retries transient ones.
func (c *cloner) clone(ctx context.Context, info *RefInfo, destDir string) error {
	if c.logger != nil {
		c.logger.Info().Str("repo", info.RepoURL).Msg("Cloning repository")
	}

	cloneOpts := &git.CloneOptions{
		URL:   info.RepoURL,
		Depth: 1,
	}

	if c.showProgress {
		cloneOpts.Progress = utils.NewProgressBar(-1, utils.DescCloning)
	}

	if info.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(info.Branch)
		cloneOpts.SingleBranch = true
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" && info.Platform == PlatformGitHub {
		cloneOpts.Auth = &githttp.BasicAuth{
			Username: "token",
			Password: token,
		}
	}

	_, err := git.PlainCloneContext(ctx, destDir, false, cloneOpts)
	if err != nil {
		return classifyCloneError(info.RepoURL, err)
	}

	return nil
}

// classifyCloneError wraps a go-git failure into a FetchError, marking it
// transient only when a retry could plausibly succeed.
func classifyCloneError(reference string, err error) error {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrInvalidAuthMethod),
		errors.Is(err, plumbing.ErrReferenceNotFound):
		return domain.NewFetchError(reference, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.NewFetchError(reference, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not found") || strings.Contains(msg, "access denied") {
		return domain.NewFetchError(reference, err)
	}

	return domain.NewTransientFetchError(reference, err)
}
