package acquire

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
)

// IgnoreDirs are directories to skip during file discovery
var IgnoreDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
	".nuxt":        true,
}

// languageByExtension maps source file extensions to language names for
// primary-language detection.
var languageByExtension = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".rb":    "ruby",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".php":   "php",
	".dart":  "dart",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cs":    "csharp",
	".swift": "swift",
	".sh":    "shell",
}

// SnapshotOptions controls snapshot building
type SnapshotOptions struct {
	MaxFileSize  int64
	ShowProgress bool
	Logger       *utils.Logger
}

// BuildSnapshot walks root and collects text file contents into a snapshot.
// Unreadable or oversized files are skipped individually; the walk never
// aborts because of one file.
func BuildSnapshot(reference, root string, opts SnapshotOptions) (*domain.ContentSnapshot, error) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 1024 * 1024
	}

	snapshot := &domain.ContentSnapshot{
		Reference: reference,
		Files:     make(map[string]string),
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn().Str("path", path).Err(err).Msg("Skipping unreadable entry")
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if IgnoreDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, domain.NewFetchError(reference, err)
	}

	var bar interface{ Add(int) error }
	if opts.ShowProgress {
		bar = utils.NewProgressBar(len(paths), utils.DescScanning)
	}

	langCounts := make(map[string]int)
	for _, path := range paths {
		if bar != nil {
			_ = bar.Add(1)
		}
		snapshot.FileCount++

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		if lang, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]; ok {
			langCounts[lang]++
		}

		info, statErr := os.Stat(path)
		if statErr != nil || info.Size() > opts.MaxFileSize {
			continue
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			if opts.Logger != nil {
				opts.Logger.Warn().Str("path", rel).Err(readErr).Msg("Skipping unreadable file")
			}
			continue
		}

		if isBinary(data) {
			continue
		}

		snapshot.Files[rel] = string(data)
	}

	snapshot.PrimaryLanguage = dominantLanguage(langCounts)

	return snapshot, nil
}

// isBinary applies a null-byte plus UTF-8 validity heuristic.
func isBinary(data []byte) bool {
	head := data
	if len(head) > 8000 {
		head = head[:8000]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}

// dominantLanguage picks the most frequent language, breaking ties
// alphabetically so the result is deterministic.
func dominantLanguage(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	best := langs[0]
	for _, lang := range langs[1:] {
		if counts[lang] > counts[best] {
			best = lang
		}
	}
	return best
}
