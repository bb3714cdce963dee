package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

// Writer handles writing generated documents to the filesystem
type Writer struct {
	baseDir string
	force   bool
	dryRun  bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir string
	Force   bool
	DryRun  bool
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = "./onboarding"
	}

	return &Writer{
		baseDir: utils.ExpandPath(opts.BaseDir),
		force:   opts.Force,
		dryRun:  opts.DryRun,
	}
}

// Write saves one document to the output directory. Existing files are left
// alone unless force is set.
func (w *Writer) Write(kind domain.DocumentKind, markdown string) error {
	path := w.GetPath(kind)

	if !w.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if w.dryRun {
		return nil
	}

	if err := utils.EnsureDir(path); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(markdown), 0644)
}

// WriteAll writes every document in the map, continuing past individual
// failures and returning them all.
func (w *Writer) WriteAll(documents map[domain.DocumentKind]string) map[domain.DocumentKind]error {
	failures := make(map[domain.DocumentKind]error)
	for _, kind := range domain.DocumentKinds() {
		markdown, ok := documents[kind]
		if !ok {
			continue
		}
		if err := w.Write(kind, markdown); err != nil {
			failures[kind] = err
		}
	}
	return failures
}

// GetPath returns the output path for a document kind
func (w *Writer) GetPath(kind domain.DocumentKind) string {
	return filepath.Join(w.baseDir, utils.DocumentFilename(string(kind)))
}

// EnsureBaseDir creates the base directory if it doesn't exist
func (w *Writer) EnsureBaseDir() error {
	return os.MkdirAll(w.baseDir, 0755)
}
