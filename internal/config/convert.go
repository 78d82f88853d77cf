package config

import (
	"os"

	"github.com/leonardotrapani/whisptube/internal/materializer"
	"github.com/leonardotrapani/whisptube/internal/playlist"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

// envVars maps providers to the environment variable holding their API key.
var envVars = map[string]string{
	transcriber.ProviderOpenAI: "OPENAI_API_KEY",
}

func (c *Config) ToPlaylistConfig() playlist.Config {
	return playlist.Config{
		Executable:  c.Download.YTDLPPath,
		Format:      c.Download.Format,
		MergeFormat: c.Download.MergeOutputFormat,
	}
}

func (c *Config) ToMaterializerOptions() materializer.Options {
	return materializer.Options{
		Template:   c.Download.OutputTemplate,
		Extensions: c.Download.MediaExtensions,
	}
}

func (c *Config) ToTranscriberConfig() transcriber.Config {
	return transcriber.Config{
		Provider:       c.Transcription.Provider,
		APIKey:         c.ResolveAPIKey(c.Transcription.Provider),
		Language:       c.Transcription.Language,
		Threads:        c.Transcription.Threads,
		FFmpegPath:     c.Transcription.FFmpegPath,
		WhisperCliPath: c.Transcription.WhisperCliPath,
	}
}

// ResolveAPIKey returns the API key for a provider, from the providers
// table first and the provider's environment variable second.
func (c *Config) ResolveAPIKey(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := envVars[providerName]; envVar != "" {
		return os.Getenv(envVar)
	}

	return ""
}
