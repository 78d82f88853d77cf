package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/leonardotrapani/whisptube/internal/logging"
)

type WhisperCppOptions struct {
	ModelPath  string // full path to the ggml model file
	Language   string // whisper language code, empty = auto
	Threads    int    // 0 = whisper-cli default
	Executable string // whisper-cli
	FFmpeg     string
}

// WhisperCppAdapter transcribes media files with a local whisper.cpp build.
type WhisperCppAdapter struct {
	opts WhisperCppOptions
	log  logging.Logger
}

func NewWhisperCppAdapter(opts WhisperCppOptions, log logging.Logger) *WhisperCppAdapter {
	if opts.Executable == "" {
		opts.Executable = "whisper-cli"
	}
	if opts.FFmpeg == "" {
		opts.FFmpeg = "ffmpeg"
	}
	return &WhisperCppAdapter{opts: opts, log: logging.OrDiscard(log)}
}

// whisperCppOutput is the subset of whisper-cli's JSON output we read.
type whisperCppOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (a *WhisperCppAdapter) Transcribe(ctx context.Context, mediaPath string) (*Result, error) {
	if _, err := os.Stat(a.opts.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", a.opts.ModelPath)
	}
	if _, err := os.Stat(mediaPath); err != nil {
		return nil, fmt.Errorf("media file: %w", err)
	}

	workDir, err := os.MkdirTemp("", "whisptube-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "audio.wav")
	if err := runFFmpeg(ctx, a.opts.FFmpeg, extractWAVArgs(mediaPath, wavPath)); err != nil {
		return nil, err
	}

	outBase := filepath.Join(workDir, "transcript")
	cmd := exec.CommandContext(ctx, a.opts.Executable, a.args(wavPath, outBase)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.log.Debugf("whisper-cpp: command failed after %v: %v\nstderr: %s", duration, err, stderr.String())
		return nil, fmt.Errorf("whisper-cli failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(outBase + ".json")
	if err != nil {
		return nil, fmt.Errorf("read whisper-cli output: %w", err)
	}
	result, err := parseWhisperCppJSON(data)
	if err != nil {
		return nil, err
	}

	a.log.Debugf("whisper-cpp: transcribed %s in %v (%d segments)", filepath.Base(mediaPath), duration, len(result.Segments))
	return result, nil
}

func (a *WhisperCppAdapter) args(wavPath, outBase string) []string {
	lang := a.opts.Language
	if lang == "" {
		lang = "auto"
	}

	args := []string{
		"-m", a.opts.ModelPath,
		"-l", lang,
		"-f", wavPath,
		"-ojf", // full JSON, includes token level timestamps
		"-of", outBase,
		"-np",
	}
	if a.opts.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(a.opts.Threads))
	}
	return args
}

func parseWhisperCppJSON(data []byte) (*Result, error) {
	var out whisperCppOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode whisper-cli output: %w", err)
	}

	result := &Result{
		Language: out.Result.Language,
		Segments: make([]Segment, 0, len(out.Transcription)),
	}

	var text strings.Builder
	for _, seg := range out.Transcription {
		text.WriteString(seg.Text)
		result.Segments = append(result.Segments, Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  seg.Text,
		})
	}
	result.Text = text.String()

	return result, nil
}
