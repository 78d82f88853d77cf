package transcriber

import (
	"errors"
	"fmt"
)

// ModelLoadError means the recognition model could not be made available.
// It is fatal to the transcription stage.
type ModelLoadError struct {
	Model string
	Err   error
}

func (e *ModelLoadError) Error() string {
	if e == nil || e.Err == nil {
		return "model load error"
	}
	return fmt.Sprintf("load model %s: %v", e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TranscriptionError is a recognition failure for a single media file.
type TranscriptionError struct {
	Path string
	Err  error
}

func (e *TranscriptionError) Error() string {
	if e == nil || e.Err == nil {
		return "transcription error"
	}
	return fmt.Sprintf("transcribe %s: %v", e.Path, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsModelLoadError(err error) bool {
	var target *ModelLoadError
	return errors.As(err, &target)
}

func IsTranscriptionError(err error) bool {
	var target *TranscriptionError
	return errors.As(err, &target)
}
