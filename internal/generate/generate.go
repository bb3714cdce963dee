package generate

import (
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

// Service dispatches document generation by kind.
type Service struct {
	generators map[domain.DocumentKind]domain.Generator
	logger     *utils.Logger
}

// ServiceOptions contains options for creating a Service
type ServiceOptions struct {
	Logger *utils.Logger
}

// NewService creates a Service with the built-in generators.
func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	generators := make(map[domain.DocumentKind]domain.Generator)
	for _, g := range []domain.Generator{
		NewTaskGenerator(),
		NewFaqGenerator(),
		NewQuickstartGenerator(),
	} {
		generators[g.Kind()] = g
	}

	return &Service{
		generators: generators,
		logger:     logger.WithComponent("generate"),
	}
}

// Generate renders one document kind from an analysis.
func (s *Service) Generate(kind domain.DocumentKind, a *domain.RepositoryAnalysis) (string, error) {
	generator, ok := s.generators[kind]
	if !ok {
		return "", fmt.Errorf("unknown document kind: %s", kind)
	}
	return generator.Generate(a)
}

// GenerateAll renders every document kind concurrently. One failing
// document never affects the others: successful documents are returned
// alongside the per-kind errors.
func (s *Service) GenerateAll(a *domain.RepositoryAnalysis) (map[domain.DocumentKind]string, map[domain.DocumentKind]error) {
	documents := make(map[domain.DocumentKind]string)
	failures := make(map[domain.DocumentKind]error)
	var mu sync.Mutex

	var wg conc.WaitGroup
	for _, kind := range domain.DocumentKinds() {
		kind := kind
		wg.Go(func() {
			markdown, err := s.Generate(kind, a)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn().Str("kind", string(kind)).Err(err).Msg("Document generation failed")
				failures[kind] = err
				return
			}
			documents[kind] = markdown
		})
	}
	wg.Wait()

	return documents, failures
}
