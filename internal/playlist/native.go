package playlist

import (
	"context"
	"fmt"
	"time"

	nativeytdlp "github.com/ytget/ytdlp/v2"
)

const defaultNativeTimeout = 60 * time.Second

// NativeSource lists playlists with the pure Go ytdlp client, so a manifest
// can be fetched without a yt-dlp binary. Filename resolution and downloads
// still go through yt-dlp.
type NativeSource struct {
	*YTDLPSource
	timeout time.Duration
}

func NewNativeSource(downloader *YTDLPSource) *NativeSource {
	return &NativeSource{
		YTDLPSource: downloader,
		timeout:     defaultNativeTimeout,
	}
}

func (s *NativeSource) Manifest(ctx context.Context, ref string) ([]Item, error) {
	id := PlaylistID(ref)
	if id == "" {
		return nil, fmt.Errorf("could not extract playlist id from %q", ref)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	entries, err := nativeytdlp.New().GetPlaylistItemsAll(ctx, id, 0)
	if err != nil {
		return nil, fmt.Errorf("native manifest for %s: %w", id, err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		if entry.VideoID == "" {
			continue
		}
		items = append(items, Item{ID: entry.VideoID, Title: entry.Title})
	}
	return items, nil
}
