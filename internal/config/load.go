package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(configDir, "whisptube", "config.toml"), nil
}

// Load reads the user config file, creating it with defaults first if it
// does not exist yet.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at configPath. Keys missing from the file keep
// their default values.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := writeDefaultConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	meta, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in config file %s: %s", configPath, strings.Join(keys, ", "))
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}

	config.applyThreadsDefault()

	return config, nil
}

// applyThreadsDefault sets default threads for local transcription if not explicitly set
func (c *Config) applyThreadsDefault() {
	if c.Transcription.Threads == 0 {
		threads := runtime.NumCPU() - 1
		if threads < 1 {
			threads = 1
		}
		c.Transcription.Threads = threads
	}
}

// SaveDefaultConfig writes the commented default config to the user config path.
func SaveDefaultConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return writeDefaultConfig(configPath)
}

// Save writes config to the user config path, replacing the file.
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(configPath, config)
}

func SaveTo(configPath string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString("# Whisptube Configuration\n\n"); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func writeDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	return nil
}

const defaultConfigContent = `# Whisptube Configuration
# This file is automatically generated with defaults.
# Command line flags override the values below.

[general]
  output_dir = "youtube_downloads"   # Where videos and the transcriptions/ folder are written
  verbose = false                    # Debug logging

# Playlist download
[download]
  manifest_source = "yt-dlp"         # "yt-dlp" or "native" (list playlists without the yt-dlp binary)
  format = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
  merge_output_format = "mp4"
  output_template = "%(title)s.%(ext)s"
  media_extensions = [".mp4"]        # Files picked up for transcription
  ytdlp_path = ""                    # Empty = look in PATH
  auto_install = true                # Download yt-dlp when it is missing

# Speech transcription
[transcription]
  provider = "whisper-cpp"           # "whisper-cpp" (local) or "openai"
  model = "base"                     # tiny, base, small, medium, large (+ .en variants, large-v3)
  language = ""                      # Empty for auto-detect, or "en", "it", "es", "fr", etc.
  threads = 0                        # CPU threads for whisper-cpp (0 = NumCPU-1)
  ffmpeg_path = ""
  whisper_cli_path = ""

# Provider API keys (OPENAI_API_KEY is used when empty)
[providers.openai]
  api_key = ""

# Completion notifications
[notifications]
  enabled = false
  type = "desktop"                   # "desktop", "log", "none"
`
