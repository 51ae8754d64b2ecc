package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// DescBuilding is the progress bar description for a build
const DescBuilding = "Building"

// NewProgressBar creates a consistently styled progress bar on stderr.
//
// Parameters:
//   - total: Total number of items. Use -1 for unknown totals (indeterminate/spinner mode).
//   - description: Text description to show before the progress bar (e.g., DescBuilding).
//
// Example:
//
//	bar := utils.NewProgressBar(len(assets), utils.DescBuilding)
//	defer bar.Finish()
//
//	for _, asset := range assets {
//	    // Convert asset
//	    bar.Add(1)
//	}
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	return NewProgressBarTo(os.Stderr, total, description)
}

// NewProgressBarTo creates a progress bar rendering to w
func NewProgressBarTo(w io.Writer, total int, description string) *progressbar.ProgressBar {
	// Build common options
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	// Add options based on whether total is known
	if total < 0 {
		// Unknown total: use spinner mode
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		// Known total: show iterations/second
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
