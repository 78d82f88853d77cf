package playlist

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseManifest decodes a newline-delimited JSON manifest as produced by
// `yt-dlp --dump-json --flat-playlist`. Blank lines are ignored; any line that
// is not a JSON object with an id fails the whole manifest.
func ParseManifest(output string) ([]Item, error) {
	var items []Item

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", lineNo, err)
		}
		if item.ID == "" {
			return nil, fmt.Errorf("manifest line %d: missing id", lineNo)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return items, nil
}
