package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// createTestConfig returns a valid configuration for testing
func createTestConfig() *Config {
	c := DefaultConfig()
	c.Transcription.Threads = 2
	return c
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whisptube", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(c *Config) {}},
		{
			name:    "empty output dir",
			modify:  func(c *Config) { c.General.OutputDir = "" },
			wantErr: "general.output_dir",
		},
		{
			name:    "unknown manifest source",
			modify:  func(c *Config) { c.Download.ManifestSource = "scraper" },
			wantErr: "download.manifest_source",
		},
		{
			name:   "native manifest source",
			modify: func(c *Config) { c.Download.ManifestSource = "native" },
		},
		{
			name:    "empty output template",
			modify:  func(c *Config) { c.Download.OutputTemplate = "" },
			wantErr: "download.output_template",
		},
		{
			name:    "no media extensions",
			modify:  func(c *Config) { c.Download.MediaExtensions = nil },
			wantErr: "download.media_extensions",
		},
		{
			name:    "blank media extension",
			modify:  func(c *Config) { c.Download.MediaExtensions = []string{".mp4", "."} },
			wantErr: "download.media_extensions",
		},
		{
			name:    "unknown whisper model",
			modify:  func(c *Config) { c.Transcription.Model = "huge" },
			wantErr: "invalid model for whisper-cpp",
		},
		{
			name:   "large alias",
			modify: func(c *Config) { c.Transcription.Model = "large" },
		},
		{
			name:    "empty model",
			modify:  func(c *Config) { c.Transcription.Model = "" },
			wantErr: "transcription.model",
		},
		{
			name:   "valid language",
			modify: func(c *Config) { c.Transcription.Language = "it" },
		},
		{
			name:    "invalid language",
			modify:  func(c *Config) { c.Transcription.Language = "xx" },
			wantErr: "transcription.language",
		},
		{
			name:    "three letter language",
			modify:  func(c *Config) { c.Transcription.Language = "eng" },
			wantErr: "transcription.language",
		},
		{
			name:    "negative threads",
			modify:  func(c *Config) { c.Transcription.Threads = -1 },
			wantErr: "transcription.threads",
		},
		{
			name:    "unsupported provider",
			modify:  func(c *Config) { c.Transcription.Provider = "groq" },
			wantErr: "unsupported transcription.provider",
		},
		{
			name: "openai with key",
			modify: func(c *Config) {
				c.Transcription.Provider = "openai"
				c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
			},
		},
		{
			name:    "invalid notifications type",
			modify:  func(c *Config) { c.Notifications.Type = "email" },
			wantErr: "notifications.type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createTestConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_OpenAI_WithoutAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := createTestConfig()
	c.Transcription.Provider = "openai"

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "OpenAI API key required") {
		t.Errorf("Validate() error = %v, want missing key error", err)
	}
}

func TestConfig_Validate_OpenAI_WithEnvVarAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	c := createTestConfig()
	c.Transcription.Provider = "openai"

	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Load_CreatesDefault(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Loaded config is invalid: %v", err)
	}

	configPath := filepath.Join(tempDir, "whisptube", "config.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Load() did not create config file")
	}

	want := DefaultConfig()
	if config.General.OutputDir != want.General.OutputDir {
		t.Errorf("OutputDir = %q, want %q", config.General.OutputDir, want.General.OutputDir)
	}
	if config.Download.Format != want.Download.Format {
		t.Errorf("Format = %q, want %q", config.Download.Format, want.Download.Format)
	}
	if config.Download.OutputTemplate != want.Download.OutputTemplate {
		t.Errorf("OutputTemplate = %q, want %q", config.Download.OutputTemplate, want.Download.OutputTemplate)
	}
	if config.Transcription.Model != "base" || config.Transcription.Provider != "whisper-cpp" {
		t.Errorf("Transcription = %+v", config.Transcription)
	}
}

func TestConfig_LoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `[general]
output_dir = "/data/talks"

[transcription]
model = "small.en"
language = "en"
threads = 3
`)

	config, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if config.General.OutputDir != "/data/talks" {
		t.Errorf("OutputDir = %q", config.General.OutputDir)
	}
	if config.Transcription.Model != "small.en" || config.Transcription.Language != "en" {
		t.Errorf("Transcription = %+v", config.Transcription)
	}
	if config.Transcription.Threads != 3 {
		t.Errorf("Threads = %d, want 3", config.Transcription.Threads)
	}
	if config.Transcription.Provider != "whisper-cpp" {
		t.Errorf("Provider = %q, want default", config.Transcription.Provider)
	}
	if len(config.Download.MediaExtensions) != 1 || config.Download.MediaExtensions[0] != ".mp4" {
		t.Errorf("MediaExtensions = %v, want default", config.Download.MediaExtensions)
	}
	if config.Providers == nil {
		t.Error("Providers map should be initialised")
	}
}

func TestConfig_LoadFrom_ThreadsDefault(t *testing.T) {
	path := writeConfig(t, "[transcription]\nthreads = 0\n")

	config, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	want := runtime.NumCPU() - 1
	if want < 1 {
		want = 1
	}
	if config.Transcription.Threads != want {
		t.Errorf("Threads = %d, want %d", config.Transcription.Threads, want)
	}
}

func TestConfig_LoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[general\noutput_dir = ")

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on invalid TOML")
	}
}

func TestConfig_LoadFrom_UnknownKeys(t *testing.T) {
	path := writeConfig(t, "[recording]\nsample_rate = 16000\n")

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "recording.sample_rate") {
		t.Errorf("LoadFrom() error = %v, want unknown key error", err)
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	config := createTestConfig()
	config.General.OutputDir = "/tmp/out"
	config.Transcription.Provider = "openai"
	config.Transcription.Model = "whisper-1"
	config.Providers["openai"] = ProviderConfig{APIKey: "sk-saved"}
	config.Notifications = NotificationsConfig{Enabled: true, Type: "log"}

	if err := Save(config); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.General.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", loaded.General.OutputDir)
	}
	if loaded.ResolveAPIKey("openai") != "sk-saved" {
		t.Errorf("api key not persisted")
	}
	if !loaded.Notifications.Enabled || loaded.Notifications.Type != "log" {
		t.Errorf("Notifications = %+v", loaded.Notifications)
	}
}

func TestConfig_SaveDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	if err := SaveDefaultConfig(); err != nil {
		t.Fatalf("SaveDefaultConfig() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(tempDir, "whisptube", "config.toml"))
	if err != nil {
		t.Fatalf("Failed to read created config file: %v", err)
	}
	if !strings.Contains(string(content), "%(title)s.%(ext)s") {
		t.Error("default config should carry the output template")
	}
}

func TestGetConfigPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if path != filepath.Join(tempDir, "whisptube", "config.toml") {
		t.Errorf("GetConfigPath() = %s", path)
	}
}

func TestConfig_ConversionMethods(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	c := createTestConfig()
	c.Download.YTDLPPath = "/opt/yt-dlp"
	c.Download.MediaExtensions = []string{".mp4", ".webm"}
	c.Transcription.Provider = "openai"
	c.Transcription.Language = "de"
	c.Transcription.FFmpegPath = "/usr/bin/ffmpeg"

	pc := c.ToPlaylistConfig()
	if pc.Executable != "/opt/yt-dlp" || pc.Format != c.Download.Format || pc.MergeFormat != "mp4" {
		t.Errorf("ToPlaylistConfig() = %+v", pc)
	}

	mo := c.ToMaterializerOptions()
	if mo.Template != c.Download.OutputTemplate || len(mo.Extensions) != 2 {
		t.Errorf("ToMaterializerOptions() = %+v", mo)
	}

	tc := c.ToTranscriberConfig()
	if tc.Provider != "openai" || tc.Language != "de" || tc.Threads != 2 || tc.FFmpegPath != "/usr/bin/ffmpeg" {
		t.Errorf("ToTranscriberConfig() = %+v", tc)
	}
	if tc.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want env fallback", tc.APIKey)
	}
}

func TestConfig_ProvidersMapBeatsEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	c := createTestConfig()
	c.Providers["openai"] = ProviderConfig{APIKey: "sk-config"}

	if got := c.ResolveAPIKey("openai"); got != "sk-config" {
		t.Errorf("ResolveAPIKey() = %q, want sk-config", got)
	}
	if got := c.ResolveAPIKey("whisper-cpp"); got != "" {
		t.Errorf("ResolveAPIKey(whisper-cpp) = %q, want empty", got)
	}
}

func TestIsValidLanguageCode(t *testing.T) {
	for _, code := range []string{"en", "it", "es", "fr", "zh", "ja"} {
		if !isValidLanguageCode(code) {
			t.Errorf("%s should be valid", code)
		}
	}
	for _, code := range []string{"", "EN", "english", "e", "zz"} {
		if isValidLanguageCode(code) {
			t.Errorf("%q should be invalid", code)
		}
	}
}
