// Package assembler produces per-file and combined transcripts for a set of
// media files, reusing transcripts already on disk.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leonardotrapani/whisptube/internal/logging"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

type Assembler struct {
	loader transcriber.ModelLoader
	log    logging.Logger
}

func New(loader transcriber.ModelLoader, log logging.Logger) *Assembler {
	return &Assembler{loader: loader, log: logging.OrDiscard(log)}
}

// TranscriptDir returns where Assemble writes for an output directory.
func TranscriptDir(outputDir string) string {
	return filepath.Join(outputDir, DirName)
}

// Assemble transcribes files in order and rebuilds the combined outputs.
//
// It returns the timestamped transcript path of every file that was
// transcribed or loaded from disk. Recognition failures are logged and the
// file is left out. A model load failure aborts before any file is touched.
// Inconsistent cached transcript sets are reported through the returned
// error, joined, after the combined files have been written.
func (a *Assembler) Assemble(ctx context.Context, files []string, outputDir, model string) ([]string, error) {
	transcriptDir := TranscriptDir(outputDir)
	if err := os.MkdirAll(transcriptDir, 0755); err != nil {
		return nil, fmt.Errorf("create transcription directory: %w", err)
	}

	a.log.Infof("Loading Whisper model: %s", model)
	t, err := a.loader.Load(ctx, model)
	if err != nil {
		if !transcriber.IsModelLoadError(err) {
			err = &transcriber.ModelLoadError{Model: model, Err: err}
		}
		return nil, err
	}

	var (
		paths   []string
		out     combined
		itemErr []error
	)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		art := ArtifactsFor(transcriptDir, file)

		if art.Complete() {
			a.log.Infof("Skipping already transcribed video: %s", art.Name)
			cached, err := art.Load()
			if err != nil {
				a.log.Errorf("Error loading transcription of %s: %v", art.Name, err)
				itemErr = append(itemErr, err)
				continue
			}
			out.add(cached)
			paths = append(paths, art.Timestamped)
			continue
		}

		a.log.Infof("Transcribing %d/%d: %s", i+1, len(files), art.Name)
		result, err := t.Transcribe(ctx, file)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.log.Errorf("Error transcribing video: %+v", &transcriber.TranscriptionError{Path: file, Err: err})
			continue
		}

		rendered := Render(result)
		if err := art.Write(rendered); err != nil {
			a.log.Errorf("Error saving transcription of %s: %v", art.Name, err)
			continue
		}

		out.add(rendered)
		paths = append(paths, art.Timestamped)
	}

	if err := out.write(transcriptDir); err != nil {
		return paths, errors.Join(append(itemErr, fmt.Errorf("write combined transcriptions: %w", err))...)
	}

	return paths, errors.Join(itemErr...)
}
