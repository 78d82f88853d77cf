package transcriber

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/leonardotrapani/whisptube/internal/logging"
	"github.com/leonardotrapani/whisptube/internal/models/whisper"
)

const (
	ProviderWhisperCpp = "whisper-cpp"
	ProviderOpenAI     = "openai"

	openAIDefaultModel = "whisper-1"
)

// Segment is a time-aligned stretch of recognised speech.
type Segment struct {
	Start float64 // seconds
	End   float64 // seconds
	Text  string
}

// Result is the output of one recognition run.
type Result struct {
	Text     string
	Segments []Segment
	Language string
}

// Transcriber turns a media file into a transcript with time-aligned segments.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (*Result, error)
}

// ModelLoader provides a ready Transcriber for a model name.
type ModelLoader interface {
	Load(ctx context.Context, model string) (Transcriber, error)
}

// Configuration for the transcriber
type Config struct {
	Provider       string
	APIKey         string
	Language       string
	Threads        int
	FFmpegPath     string
	WhisperCliPath string

	// OnModelProgress reports lazy model downloads; optional.
	OnModelProgress whisper.ProgressFunc
}

// Loader is the ModelLoader backed by the configured provider.
type Loader struct {
	config Config
	log    logging.Logger
}

func NewLoader(config Config, log logging.Logger) *Loader {
	return &Loader{config: config, log: logging.OrDiscard(log)}
}

func (l *Loader) Load(ctx context.Context, model string) (Transcriber, error) {
	switch l.config.Provider {
	case ProviderWhisperCpp, "":
		return l.loadWhisperCpp(ctx, model)

	case ProviderOpenAI:
		if l.config.APIKey == "" {
			return nil, &ModelLoadError{Model: model, Err: fmt.Errorf("OpenAI API key required")}
		}
		ffmpeg, err := lookTool(l.config.FFmpegPath, "ffmpeg")
		if err != nil {
			return nil, &ModelLoadError{Model: model, Err: err}
		}
		return NewOpenAIAdapter(l.config.APIKey, openAIModel(model), l.config.Language, ffmpeg, l.log), nil

	default:
		return nil, &ModelLoadError{Model: model, Err: fmt.Errorf("unsupported provider: %s", l.config.Provider)}
	}
}

func (l *Loader) loadWhisperCpp(ctx context.Context, model string) (Transcriber, error) {
	info := whisper.GetModel(model)
	if info == nil {
		return nil, &ModelLoadError{Model: model, Err: fmt.Errorf("unknown whisper model")}
	}

	whisperCli, err := lookTool(l.config.WhisperCliPath, "whisper-cli")
	if err != nil {
		return nil, &ModelLoadError{Model: model, Err: fmt.Errorf("%w: install whisper.cpp first", err)}
	}
	ffmpeg, err := lookTool(l.config.FFmpegPath, "ffmpeg")
	if err != nil {
		return nil, &ModelLoadError{Model: model, Err: err}
	}

	if !whisper.IsInstalled(info.ID) {
		l.log.Infof("Downloading whisper model %s (%s)", info.ID, info.Size)
	}
	modelPath, err := whisper.Ensure(ctx, info.ID, l.config.OnModelProgress)
	if err != nil {
		return nil, &ModelLoadError{Model: model, Err: err}
	}

	return NewWhisperCppAdapter(WhisperCppOptions{
		ModelPath:  modelPath,
		Language:   l.config.Language,
		Threads:    l.config.Threads,
		Executable: whisperCli,
		FFmpeg:     ffmpeg,
	}, l.log), nil
}

// openAIModel maps local model sizes to the hosted model; explicit
// hosted model names pass through.
func openAIModel(model string) string {
	if model == "" || whisper.GetModel(model) != nil {
		return openAIDefaultModel
	}
	return model
}

func lookTool(configured, name string) (string, error) {
	if p := strings.TrimSpace(configured); p != "" {
		name = p
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", name, err)
	}
	return path, nil
}
