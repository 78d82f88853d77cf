package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/leonardotrapani/whisptube/internal/playlist"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

// NewLogger returns a silent logger and a hook recording every entry.
func NewLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// CountLevel counts the entries logged at level.
func CountLevel(hook *test.Hook, level logrus.Level) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MessagesAt returns the messages of the entries logged at level, in order.
func MessagesAt(hook *test.Hook, level logrus.Level) []string {
	var msgs []string
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// WriteFile creates path (and its parents) with content.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// FakeSource is a playlist.Source that serves a canned manifest and
// "downloads" by writing a small file named after the item title.
type FakeSource struct {
	mu sync.Mutex

	Items       []playlist.Item
	ManifestErr error

	// DownloadErr fails the download of the given item ids.
	DownloadErr map[string]error
	// ResolveErr fails filename resolution for the given item ids.
	ResolveErr map[string]error
	// NameWithID makes downloads write "<title> [<id>].mp4" instead of
	// the resolved name, like a template change between runs would.
	NameWithID bool

	Downloads []string
	Resolves  []string
}

func (f *FakeSource) Manifest(ctx context.Context, ref string) ([]playlist.Item, error) {
	if f.ManifestErr != nil {
		return nil, f.ManifestErr
	}
	return append([]playlist.Item(nil), f.Items...), nil
}

func (f *FakeSource) ResolveFilename(ctx context.Context, item playlist.Item, template string) (string, error) {
	f.mu.Lock()
	f.Resolves = append(f.Resolves, item.ID)
	f.mu.Unlock()

	if err := f.ResolveErr[item.ID]; err != nil {
		return "", err
	}
	return expand(template, item), nil
}

func (f *FakeSource) Download(ctx context.Context, item playlist.Item, template string) error {
	f.mu.Lock()
	f.Downloads = append(f.Downloads, item.ID)
	f.mu.Unlock()

	if err := f.DownloadErr[item.ID]; err != nil {
		return err
	}

	path := expand(template, item)
	if f.NameWithID {
		path = filepath.Join(filepath.Dir(template), fmt.Sprintf("%s [%s].mp4", item.Title, item.ID))
	}
	return os.WriteFile(path, []byte("media:"+item.ID), 0644)
}

// DownloadCount returns how many downloads were attempted.
func (f *FakeSource) DownloadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Downloads)
}

func expand(template string, item playlist.Item) string {
	r := strings.NewReplacer("%(title)s", item.Title, "%(id)s", item.ID, "%(ext)s", "mp4")
	return r.Replace(template)
}

// FakeTranscriber returns canned results keyed by media base name.
type FakeTranscriber struct {
	mu sync.Mutex

	Results map[string]*transcriber.Result
	Errors  map[string]error
	Calls   []string
}

func (f *FakeTranscriber) Transcribe(ctx context.Context, mediaPath string) (*transcriber.Result, error) {
	name := filepath.Base(mediaPath)

	f.mu.Lock()
	f.Calls = append(f.Calls, name)
	f.mu.Unlock()

	if err := f.Errors[name]; err != nil {
		return nil, err
	}
	if r, ok := f.Results[name]; ok {
		return r, nil
	}
	return nil, errors.New("no canned result for " + name)
}

// CallCount returns how many files were sent to recognition.
func (f *FakeTranscriber) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// FakeLoader hands out a fixed Transcriber, or fails.
type FakeLoader struct {
	Transcriber transcriber.Transcriber
	Err         error
	Loaded      []string
}

func (f *FakeLoader) Load(ctx context.Context, model string) (transcriber.Transcriber, error) {
	f.Loaded = append(f.Loaded, model)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Transcriber, nil
}

// Result builds a recognition result whose full text joins the segment texts.
func Result(segments ...transcriber.Segment) *transcriber.Result {
	var text strings.Builder
	for _, s := range segments {
		text.WriteString(s.Text)
	}
	return &transcriber.Result{Text: text.String(), Segments: segments}
}
