package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/onboarddocs-go/internal/extract"
)

// writeTitle writes the top-level document heading. Output is deterministic:
// same inputs, same bytes.
func writeTitle(b *strings.Builder, title, repoName string) {
	if repoName != "" {
		fmt.Fprintf(b, "# %s: %s\n\n", title, repoName)
		return
	}
	fmt.Fprintf(b, "# %s\n\n", title)
}

// writeGeneratedAt writes a timestamp line only when one was explicitly set,
// always in RFC 3339 UTC.
func writeGeneratedAt(b *strings.Builder, t time.Time) {
	if t.IsZero() {
		return
	}
	fmt.Fprintf(b, "Generated at %s\n\n", t.UTC().Format(time.RFC3339))
}

// writeCommandBlock writes commands as a shell code fence.
func writeCommandBlock(b *strings.Builder, commands []string) {
	if len(commands) == 0 {
		return
	}
	b.WriteString("```bash\n")
	for _, cmd := range commands {
		b.WriteString(cmd + "\n")
	}
	b.WriteString("```\n\n")
}

// categoryHeading turns a category slug into a section heading.
func categoryHeading(category string) string {
	return extract.TitleCase(strings.ReplaceAll(category, "-", " "))
}
