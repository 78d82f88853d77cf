package config

// GeneralConfig holds global settings that apply across the application
type GeneralConfig struct {
	OutputDir string `toml:"output_dir"`
	Verbose   bool   `toml:"verbose"`
}

type Config struct {
	General       GeneralConfig             `toml:"general"`
	Download      DownloadConfig            `toml:"download"`
	Transcription TranscriptionConfig       `toml:"transcription"`
	Notifications NotificationsConfig       `toml:"notifications"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

type DownloadConfig struct {
	ManifestSource    string   `toml:"manifest_source"` // "yt-dlp" or "native"
	Format            string   `toml:"format"`
	MergeOutputFormat string   `toml:"merge_output_format"`
	OutputTemplate    string   `toml:"output_template"`
	MediaExtensions   []string `toml:"media_extensions"`
	YTDLPPath         string   `toml:"ytdlp_path"`   // empty = PATH, then the go-ytdlp cache
	AutoInstall       bool     `toml:"auto_install"` // fetch yt-dlp when it is not installed
}

type TranscriptionConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`
	Threads        int    `toml:"threads"` // CPU threads for local transcription (0 = auto: NumCPU-1)
	FFmpegPath     string `toml:"ffmpeg_path"`
	WhisperCliPath string `toml:"whisper_cli_path"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}
