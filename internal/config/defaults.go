package config

import (
	"github.com/leonardotrapani/whisptube/internal/materializer"
	"github.com/leonardotrapani/whisptube/internal/playlist"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

const (
	DefaultOutputDir = "youtube_downloads"
	DefaultModel     = "base"
)

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			OutputDir: DefaultOutputDir,
		},
		Download: DownloadConfig{
			ManifestSource:    playlist.ManifestYTDLP,
			Format:            playlist.DefaultFormat,
			MergeOutputFormat: playlist.DefaultMergeFormat,
			OutputTemplate:    playlist.DefaultOutputTemplate,
			MediaExtensions:   append([]string(nil), materializer.DefaultExtensions...),
			AutoInstall:       true,
		},
		Transcription: TranscriptionConfig{
			Provider: transcriber.ProviderWhisperCpp,
			Model:    DefaultModel,
			Language: "",
			Threads:  0,
		},
		Notifications: NotificationsConfig{
			Enabled: false,
			Type:    "desktop",
		},
		Providers: make(map[string]ProviderConfig),
	}
}
