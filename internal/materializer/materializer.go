// Package materializer turns a playlist reference into media files on disk,
// downloading only the items that are not already present.
package materializer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/leonardotrapani/whisptube/internal/logging"
	"github.com/leonardotrapani/whisptube/internal/playlist"
)

type Options struct {
	// Template is the downloader output template, relative to the destination.
	Template string
	// Extensions are the media extensions accepted by the id lookup.
	Extensions []string
}

type Materializer struct {
	source playlist.Source
	log    logging.Logger
	opts   Options
}

func New(source playlist.Source, log logging.Logger, opts Options) *Materializer {
	if opts.Template == "" {
		opts.Template = playlist.DefaultOutputTemplate
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	return &Materializer{
		source: source,
		log:    logging.OrDiscard(log),
		opts:   opts,
	}
}

// Materialize makes sure every item of the playlist exists under dir and
// returns the media paths in manifest order. Failures never abort the run:
// a manifest failure yields an empty result, an item failure skips the item.
func (m *Materializer) Materialize(ctx context.Context, ref, dir string) []string {
	if err := os.MkdirAll(dir, 0755); err != nil {
		m.log.Errorf("create output directory %s: %v", dir, err)
		return nil
	}

	m.log.Infof("Getting playlist info for: %s", ref)
	items, err := m.source.Manifest(ctx, ref)
	if err != nil {
		m.log.Errorf("%v", &ManifestError{Ref: ref, Err: err})
		return nil
	}
	m.log.Infof("Found %d videos in playlist", len(items))

	template := filepath.Join(dir, m.opts.Template)

	var paths []string
	for i, item := range items {
		if ctx.Err() != nil {
			m.log.Warnf("download stage interrupted after %d/%d videos", i, len(items))
			break
		}

		path, err := m.materializeItem(ctx, dir, template, item, i+1, len(items))
		if err != nil {
			m.log.Errorf("%v", err)
			continue
		}
		if path == "" {
			m.log.Warnf("downloaded %s but could not locate the produced file", item.ID)
			continue
		}
		paths = append(paths, path)
	}

	return paths
}

func (m *Materializer) materializeItem(ctx context.Context, dir, template string, item playlist.Item, pos, total int) (string, error) {
	expected, err := m.source.ResolveFilename(ctx, item, template)
	if err != nil {
		// fall through to the id lookup
		m.log.Warnf("could not resolve filename for %s: %v", item.ID, err)
		expected = ""
	}

	if path := m.locate(dir, expected, item.ID); path != "" {
		m.log.Infof("Skipping video %d/%d: %s (already downloaded)", pos, total, item.Label())
		return path, nil
	}

	m.log.Infof("Downloading video %d/%d: %s", pos, total, item.Label())
	if err := m.source.Download(ctx, item, template); err != nil {
		return "", &DownloadError{ItemID: item.ID, Err: err}
	}
	m.log.Infof("Downloaded %s", item.Label())

	return m.locate(dir, expected, item.ID), nil
}

// locate prefers the resolved filename and falls back to an id match.
func (m *Materializer) locate(dir, expected, id string) string {
	if fileExists(expected) {
		return expected
	}
	return findByID(dir, id, m.opts.Extensions)
}
