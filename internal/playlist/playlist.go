// Package playlist talks to the external media downloader: it lists the
// items of a playlist, resolves the file name an item would be written to
// and downloads single items.
package playlist

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultOutputTemplate names downloaded media after the item title.
	DefaultOutputTemplate = "%(title)s.%(ext)s"

	// DefaultFormat prefers mp4 video + m4a audio, then a single mp4, then anything.
	DefaultFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

	// DefaultMergeFormat is the container separate streams are merged into.
	DefaultMergeFormat = "mp4"

	videoURLTemplate = "https://www.youtube.com/watch?v=%s"
	playlistParam    = "list"
)

// Item is one entry of a playlist manifest.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// VideoURL returns the watch URL used for per-item downloader calls.
func (i Item) VideoURL() string {
	return fmt.Sprintf(videoURLTemplate, i.ID)
}

// Label is the human readable name used in progress output.
func (i Item) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.ID
}

// Source is the downloader capability the materializer depends on.
type Source interface {
	// Manifest returns the flat list of items in a playlist, in playlist order.
	Manifest(ctx context.Context, ref string) ([]Item, error)

	// ResolveFilename resolves the output template for item without downloading.
	ResolveFilename(ctx context.Context, item Item, template string) (string, error)

	// Download fetches item and writes it according to template.
	Download(ctx context.Context, item Item, template string) error
}

// PlaylistID extracts the list id from a playlist URL. A bare id is returned as is.
func PlaylistID(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if !strings.Contains(ref, "://") && !strings.Contains(ref, "=") {
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return u.Query().Get(playlistParam)
}

const (
	ManifestYTDLP  = "yt-dlp"
	ManifestNative = "native"
)

// NewSource builds the Source for a manifest backend name.
func NewSource(manifest string, config Config) (Source, error) {
	downloader := NewYTDLPSource(config)
	switch manifest {
	case "", ManifestYTDLP:
		return downloader, nil
	case ManifestNative:
		return NewNativeSource(downloader), nil
	default:
		return nil, fmt.Errorf("unknown manifest source %q (must be %s or %s)", manifest, ManifestYTDLP, ManifestNative)
	}
}
