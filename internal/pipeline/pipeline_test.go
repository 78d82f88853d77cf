package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardotrapani/whisptube/internal/assembler"
	"github.com/leonardotrapani/whisptube/internal/materializer"
	"github.com/leonardotrapani/whisptube/internal/playlist"
	"github.com/leonardotrapani/whisptube/internal/testutil"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

type recordingNotifier struct {
	mu       sync.Mutex
	notified []string
	errors   []string
}

func (r *recordingNotifier) Notify(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = append(r.notified, message)
}

func (r *recordingNotifier) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

type fixture struct {
	source   *testutil.FakeSource
	fake     *testutil.FakeTranscriber
	loader   *testutil.FakeLoader
	notifier *recordingNotifier
	statuses []Status
	deps     Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		source: &testutil.FakeSource{Items: []playlist.Item{
			{ID: "a1", Title: "Alpha"},
			{ID: "b2", Title: "Beta"},
		}},
		fake: &testutil.FakeTranscriber{Results: map[string]*transcriber.Result{
			"Alpha.mp4": testutil.Result(transcriber.Segment{Start: 0, Text: " alpha"}),
			"Beta.mp4":  testutil.Result(transcriber.Segment{Start: 5, Text: " beta"}),
		}},
		notifier: &recordingNotifier{},
	}
	f.loader = &testutil.FakeLoader{Transcriber: f.fake}
	logger, _ := testutil.NewLogger()
	f.deps = Deps{
		Materializer: materializer.New(f.source, logger, materializer.Options{}),
		Assembler:    assembler.New(f.loader, logger),
		Notifier:     f.notifier,
		Log:          logger,
		OnStatus:     func(s Status) { f.statuses = append(f.statuses, s) },
	}
	return f
}

func TestRun_DownloadsThenTranscribes(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(t.TempDir(), "out")

	summary, err := Run(context.Background(), f.deps, Options{PlaylistRef: "PL1", OutputDir: dir, Model: "tiny"})
	require.NoError(t, err)

	assert.Len(t, summary.Downloaded, 2)
	assert.Len(t, summary.MediaFiles, 2)
	assert.Len(t, summary.Transcripts, 2)
	assert.False(t, summary.NothingPending)
	assert.NoError(t, summary.ItemErrors)
	assert.Equal(t, []string{"tiny"}, f.loader.Loaded)

	tdir := filepath.Join(dir, "transcriptions")
	assert.Equal(t, filepath.Join(tdir, "combined_transcription.txt"), summary.CombinedPlain)
	assert.Equal(t, " alpha\n\n beta\n\n", testutil.ReadFile(t, summary.CombinedPlain))
	assert.FileExists(t, summary.CombinedTimestamped)
	assert.FileExists(t, summary.CombinedSegmented)

	assert.Equal(t, []Status{Downloading, Transcribing, Done, Idle}, f.statuses)
	assert.Equal(t, []string{"Transcribed 2 videos"}, f.notifier.notified)
}

func TestRun_SecondRunDoesNoWork(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	opts := Options{PlaylistRef: "PL1", OutputDir: dir, Model: "base"}

	_, err := Run(context.Background(), f.deps, opts)
	require.NoError(t, err)
	first := testutil.ReadFile(t, filepath.Join(dir, "transcriptions", "combined_transcription_with_timestamps.txt"))

	_, err = Run(context.Background(), f.deps, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, f.source.DownloadCount())
	assert.Equal(t, 2, f.fake.CallCount())
	second := testutil.ReadFile(t, filepath.Join(dir, "transcriptions", "combined_transcription_with_timestamps.txt"))
	assert.Equal(t, first, second)
}

func TestRun_SkipDownloadUsesExistingFiles(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "Alpha.mp4"), "media")

	summary, err := Run(context.Background(), f.deps, Options{OutputDir: dir, Model: "base", SkipDownload: true})
	require.NoError(t, err)

	assert.Empty(t, f.source.Downloads)
	assert.Nil(t, summary.Downloaded)
	assert.Equal(t, []string{filepath.Join(dir, "Alpha.mp4")}, summary.MediaFiles)
	assert.Equal(t, []string{"Alpha.mp4"}, f.fake.Calls)
}

func TestRun_SkipTranscribe(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	summary, err := Run(context.Background(), f.deps, Options{PlaylistRef: "PL1", OutputDir: dir, SkipTranscribe: true})
	require.NoError(t, err)

	assert.True(t, summary.NothingPending)
	assert.Len(t, summary.MediaFiles, 2)
	assert.Empty(t, f.loader.Loaded, "model must not load when transcription is skipped")
	assert.NoDirExists(t, filepath.Join(dir, "transcriptions"))
}

func TestRun_NoMediaNothingPending(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(t.TempDir(), "missing")

	summary, err := Run(context.Background(), f.deps, Options{OutputDir: dir, SkipDownload: true})
	require.NoError(t, err)

	assert.True(t, summary.NothingPending)
	assert.Empty(t, summary.MediaFiles)
	assert.Empty(t, f.loader.Loaded)
	assert.Equal(t, []Status{Done, Idle}, f.statuses)
}

func TestRun_ManifestFailureStillTranscribesExisting(t *testing.T) {
	f := newFixture(t)
	f.source.ManifestErr = errors.New("network down")
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "Beta.mp4"), "media")

	summary, err := Run(context.Background(), f.deps, Options{PlaylistRef: "PL1", OutputDir: dir, Model: "base"})
	require.NoError(t, err)

	assert.Empty(t, summary.Downloaded)
	assert.Equal(t, []string{"Beta.mp4"}, f.fake.Calls)
}

func TestRun_ModelLoadErrorIsReturned(t *testing.T) {
	f := newFixture(t)
	f.loader.Err = errors.New("model file corrupt")
	dir := t.TempDir()

	_, err := Run(context.Background(), f.deps, Options{PlaylistRef: "PL1", OutputDir: dir, Model: "medium"})

	require.Error(t, err)
	assert.True(t, transcriber.IsModelLoadError(err))
	assert.Len(t, f.notifier.errors, 1)
	assert.Empty(t, f.notifier.notified)
}

func TestRun_MissingArtifactIsItemError(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "Alpha.mp4"), "media")
	testutil.WriteFile(t, filepath.Join(dir, "transcriptions", "Alpha.txt"), "[00:00:00] alpha\n")
	testutil.WriteFile(t, filepath.Join(dir, "transcriptions", "Alpha_segmented.txt"), "alpha\n")

	summary, err := Run(context.Background(), f.deps, Options{OutputDir: dir, Model: "base", SkipDownload: true})
	require.NoError(t, err)

	assert.True(t, assembler.IsMissingArtifactError(summary.ItemErrors))
	assert.Empty(t, summary.Transcripts)
	assert.FileExists(t, summary.CombinedPlain)
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, f.deps, Options{PlaylistRef: "PL1", OutputDir: t.TempDir()})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.source.Downloads)
	assert.Empty(t, f.loader.Loaded)
}

func TestIsItemError(t *testing.T) {
	missing := &assembler.MissingArtifactError{Path: "x"}
	assert.True(t, isItemError(missing))
	assert.True(t, isItemError(errors.Join(missing, &assembler.MissingArtifactError{Path: "y"})))
	assert.False(t, isItemError(errors.Join(missing, errors.New("disk full"))))
	assert.False(t, isItemError(errors.New("disk full")))
}
