package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/leonardotrapani/whisptube/internal/models/whisper"
)

// newDownloadProgress reports model download progress on w: a progress bar
// on a terminal, a line every 10% otherwise.
func newDownloadProgress(w io.Writer, description string) whisper.ProgressFunc {
	var (
		mu          sync.Mutex
		bar         *progressbar.ProgressBar
		lastPercent = -10
	)
	tty := isTerminal(w)

	return func(downloaded, total int64) {
		mu.Lock()
		defer mu.Unlock()

		if tty {
			if bar == nil {
				bar = progressbar.NewOptions64(total,
					progressbar.OptionSetWriter(w),
					progressbar.OptionSetDescription(description),
					progressbar.OptionShowBytes(true),
					progressbar.OptionSetWidth(30),
					progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
				)
			}
			_ = bar.Set64(downloaded)
			return
		}

		if total <= 0 {
			return
		}
		percent := int(downloaded * 100 / total)
		if percent == lastPercent || (percent < lastPercent+10 && downloaded < total) {
			return
		}
		lastPercent = percent
		fmt.Fprintf(w, "%s: %d%% (%s / %s)\n", description, percent,
			humanize.Bytes(uint64(downloaded)), humanize.Bytes(uint64(total)))
	}
}
