package utils

import "github.com/schollz/progressbar/v3"

// Standard progress bar descriptions
const (
	DescCloning  = "Cloning"
	DescScanning = "Scanning"
)

// NewProgressBar creates a consistently styled progress bar. Use total of -1
// for unknown totals (spinner mode).
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
