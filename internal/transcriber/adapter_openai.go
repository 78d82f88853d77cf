package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leonardotrapani/whisptube/internal/logging"
	"github.com/sashabaranov/go-openai"
)

// audioTranscriber is the slice of the go-openai client this adapter uses.
type audioTranscriber interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// OpenAIAdapter transcribes media files with the hosted Whisper API.
type OpenAIAdapter struct {
	client   audioTranscriber
	model    string
	language string
	ffmpeg   string
	log      logging.Logger
}

func NewOpenAIAdapter(apiKey, model, language, ffmpeg string, log logging.Logger) *OpenAIAdapter {
	return &OpenAIAdapter{
		client:   openai.NewClient(apiKey),
		model:    model,
		language: language,
		ffmpeg:   ffmpeg,
		log:      logging.OrDiscard(log),
	}
}

func (a *OpenAIAdapter) Transcribe(ctx context.Context, mediaPath string) (*Result, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return nil, fmt.Errorf("media file: %w", err)
	}

	workDir, err := os.MkdirTemp("", "whisptube-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	audioPath := filepath.Join(workDir, "audio.mp3")
	if err := runFFmpeg(ctx, a.ffmpeg, extractMP3Args(mediaPath, audioPath)); err != nil {
		return nil, err
	}

	req := openai.AudioRequest{
		Model:    a.model,
		FilePath: audioPath,
		Language: a.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		},
	}

	start := time.Now()
	resp, err := a.client.CreateTranscription(ctx, req)
	duration := time.Since(start)
	if err != nil {
		a.log.Debugf("openai-adapter: API call failed after %v: %v", duration, err)
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	a.log.Debugf("openai-adapter: transcribed %s in %v", filepath.Base(mediaPath), duration)
	return resultFromOpenAI(resp), nil
}

func resultFromOpenAI(resp openai.AudioResponse) *Result {
	result := &Result{
		Text:     resp.Text,
		Language: resp.Language,
		Segments: make([]Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return result
}
