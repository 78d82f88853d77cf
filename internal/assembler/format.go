package assembler

import (
	"fmt"
	"math"
	"strings"

	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

// Transcript holds the three renderings kept for every media file.
type Transcript struct {
	Timestamped string // "[HH:MM:SS] text" per segment
	Plain       string // the recogniser's full text, verbatim
	Segmented   string // one trimmed segment per line
}

// FormatTimestamp renders seconds as HH:MM:SS. Hours are not wrapped at 24
// and grow past two digits when needed.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	hours := int64(math.Floor(seconds / 3600))
	minutes := int64(math.Floor(math.Mod(seconds, 3600) / 60))
	secs := int64(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// Render derives the three transcript variants from a recognition result.
func Render(result *transcriber.Result) Transcript {
	if result == nil {
		return Transcript{}
	}

	var timestamped, segmented strings.Builder
	for _, seg := range result.Segments {
		text := strings.TrimSpace(seg.Text)
		fmt.Fprintf(&timestamped, "[%s] %s\n", FormatTimestamp(seg.Start), text)
		segmented.WriteString(text)
		segmented.WriteString("\n")
	}

	return Transcript{
		Timestamped: timestamped.String(),
		Plain:       result.Text,
		Segmented:   segmented.String(),
	}
}
