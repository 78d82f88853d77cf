package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/leonardotrapani/whisptube/internal/models/whisper"
	"github.com/leonardotrapani/whisptube/internal/playlist"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

func (c *Config) Validate() error {
	if c.General.OutputDir == "" {
		return fmt.Errorf("invalid general.output_dir: empty")
	}

	switch c.Download.ManifestSource {
	case playlist.ManifestYTDLP, playlist.ManifestNative:
	default:
		return fmt.Errorf("invalid download.manifest_source: %s (must be yt-dlp or native)", c.Download.ManifestSource)
	}
	if c.Download.OutputTemplate == "" {
		return fmt.Errorf("invalid download.output_template: empty")
	}
	if len(c.Download.MediaExtensions) == 0 {
		return fmt.Errorf("invalid download.media_extensions: empty (must have at least one extension)")
	}
	for _, ext := range c.Download.MediaExtensions {
		if strings.Trim(ext, ". ") == "" {
			return fmt.Errorf("invalid download.media_extensions: %q", ext)
		}
	}

	if c.Transcription.Language != "" && !isValidLanguageCode(c.Transcription.Language) {
		return fmt.Errorf("invalid transcription.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'en', 'es', 'fr')", c.Transcription.Language)
	}
	if c.Transcription.Model == "" {
		return fmt.Errorf("invalid transcription.model: empty")
	}
	if c.Transcription.Threads < 0 {
		return fmt.Errorf("invalid transcription.threads: %d", c.Transcription.Threads)
	}

	switch c.Transcription.Provider {
	case transcriber.ProviderWhisperCpp:
		// whisper-cpp is local, no API key required
		if whisper.GetModel(c.Transcription.Model) == nil {
			return fmt.Errorf("invalid model for whisper-cpp: %s (must be one of %s)", c.Transcription.Model, strings.Join(whisper.Names(), ", "))
		}

	case transcriber.ProviderOpenAI:
		if c.ResolveAPIKey(transcriber.ProviderOpenAI) == "" {
			return fmt.Errorf("OpenAI API key required: not found in config (providers.openai.api_key) or environment variable (OPENAI_API_KEY)")
		}

	default:
		return fmt.Errorf("unsupported transcription.provider: %s (must be whisper-cpp or openai)", c.Transcription.Provider)
	}

	validTypes := map[string]bool{"desktop": true, "log": true, "none": true}
	if !validTypes[c.Notifications.Type] {
		return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
	}

	return nil
}

// isValidLanguageCode accepts canonical two-letter ISO-639-1 codes.
func isValidLanguageCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return false
	}
	return base.String() == code
}
