// Package pipeline runs the download stage and the transcription stage one
// after the other over a single output directory.
package pipeline

import (
	"context"
	"fmt"

	"github.com/leonardotrapani/whisptube/internal/assembler"
	"github.com/leonardotrapani/whisptube/internal/logging"
	"github.com/leonardotrapani/whisptube/internal/materializer"
	"github.com/leonardotrapani/whisptube/internal/notify"
)

type Status string

const (
	Idle         Status = "idle"
	Downloading  Status = "downloading"
	Transcribing Status = "transcribing"
	Done         Status = "done"
)

type Materializer interface {
	Materialize(ctx context.Context, ref, dir string) []string
}

type Assembler interface {
	Assemble(ctx context.Context, files []string, dir, model string) ([]string, error)
}

// Deps are the stage implementations a run is wired with.
type Deps struct {
	Materializer Materializer
	Assembler    Assembler
	Notifier     notify.Notifier
	Log          logging.Logger

	// OnStatus is called on every stage change; optional.
	OnStatus func(Status)
}

type Options struct {
	PlaylistRef     string
	OutputDir       string
	Model           string
	SkipDownload    bool
	SkipTranscribe  bool
	MediaExtensions []string
}

type Summary struct {
	// Downloaded holds the media paths the download stage reported.
	Downloaded []string
	// MediaFiles is every media file found in the output directory.
	MediaFiles []string
	// Transcripts are the timestamped transcript paths, in media file order.
	Transcripts []string

	CombinedTimestamped string
	CombinedPlain       string
	CombinedSegmented   string

	// NothingPending is set when the transcription stage did not run.
	NothingPending bool
	// ItemErrors collects per-item failures that did not stop the run.
	ItemErrors error
}

var (
	_ Materializer = (*materializer.Materializer)(nil)
	_ Assembler    = (*assembler.Assembler)(nil)
)

// Run executes the enabled stages. The returned error is only set for
// failures that abort a stage: an unusable output directory, a model that
// cannot be loaded, or cancellation.
func Run(ctx context.Context, deps Deps, opts Options) (*Summary, error) {
	log := logging.OrDiscard(deps.Log)
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}
	setStatus := func(s Status) {
		if deps.OnStatus != nil {
			deps.OnStatus(s)
		}
	}
	defer setStatus(Idle)

	summary := &Summary{}

	if !opts.SkipDownload {
		setStatus(Downloading)
		summary.Downloaded = deps.Materializer.Materialize(ctx, opts.PlaylistRef, opts.OutputDir)
		if err := ctx.Err(); err != nil {
			return summary, err
		}
	}

	files, err := materializer.ListMediaFiles(opts.OutputDir, opts.MediaExtensions)
	if err != nil {
		err = fmt.Errorf("list media files in %s: %w", opts.OutputDir, err)
		notifier.Error(err.Error())
		return summary, err
	}
	summary.MediaFiles = files
	log.Infof("Found %d existing videos", len(files))

	if len(files) == 0 || opts.SkipTranscribe {
		summary.NothingPending = true
		log.Infof("No pending transcriptions")
		setStatus(Done)
		return summary, nil
	}

	setStatus(Transcribing)
	paths, err := deps.Assembler.Assemble(ctx, files, opts.OutputDir, opts.Model)
	summary.Transcripts = paths
	if err != nil {
		if ctx.Err() != nil || !isItemError(err) {
			notifier.Error(err.Error())
			return summary, err
		}
		log.Warnf("Some transcriptions could not be loaded: %v", err)
		summary.ItemErrors = err
	}

	summary.CombinedTimestamped, summary.CombinedPlain, summary.CombinedSegmented =
		assembler.CombinedPaths(assembler.TranscriptDir(opts.OutputDir))

	log.Infof("Transcribed %d videos", len(paths))
	notifier.Notify("Whisptube", fmt.Sprintf("Transcribed %d videos", len(paths)))
	setStatus(Done)

	return summary, nil
}

// isItemError reports whether every error joined into err is a per-item
// cache inconsistency.
func isItemError(err error) bool {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !assembler.IsMissingArtifactError(e) {
				return false
			}
		}
		return true
	}
	return assembler.IsMissingArtifactError(err)
}
