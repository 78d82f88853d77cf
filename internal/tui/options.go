package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/leonardotrapani/whisptube/internal/models/whisper"
	"github.com/leonardotrapani/whisptube/internal/playlist"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

// languageCodes are offered in the language picker, most common first.
var languageCodes = []string{
	"en", "es", "fr", "de", "it", "pt", "nl", "ru", "uk", "pl",
	"sv", "da", "fi", "no", "cs", "tr", "el", "he", "ar", "hi",
	"ja", "ko", "zh", "vi", "id",
}

// languageName returns the English name of an ISO-639-1 code.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

func withCurrent(label string, current bool) string {
	if current {
		return label + " (current)"
	}
	return label
}

func languageOptions(current string) []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption(withCurrent("Auto-detect (recommended)", current == ""), ""),
	}
	for _, code := range languageCodes {
		label := fmt.Sprintf("%s (%s)", languageName(code), code)
		options = append(options, huh.NewOption(withCurrent(label, code == current), code))
	}
	return options
}

func providerOptions(current string) []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(withCurrent("whisper.cpp (local, offline)", current == transcriber.ProviderWhisperCpp), transcriber.ProviderWhisperCpp),
		huh.NewOption(withCurrent("OpenAI Whisper API", current == transcriber.ProviderOpenAI), transcriber.ProviderOpenAI),
	}
}

// modelOptions lists the models a provider accepts. Local models show their
// download size and whether they are already installed.
func modelOptions(provider, current string) []huh.Option[string] {
	if provider == transcriber.ProviderOpenAI {
		return []huh.Option[string]{
			huh.NewOption(withCurrent("whisper-1", current == "whisper-1"), "whisper-1"),
		}
	}

	var options []huh.Option[string]
	for _, name := range whisper.Names() {
		info := whisper.GetModel(name)
		if info == nil {
			continue
		}
		label := fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(info.SizeBytes)))
		if !info.Multilingual {
			label += " [english only]"
		}
		if whisper.IsInstalled(name) {
			label += " [installed]"
		}
		options = append(options, huh.NewOption(withCurrent(label, name == current), name))
	}
	return options
}

func manifestOptions(current string) []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(withCurrent("yt-dlp (binary)", current == playlist.ManifestYTDLP), playlist.ManifestYTDLP),
		huh.NewOption(withCurrent("native (pure Go listing)", current == playlist.ManifestNative), playlist.ManifestNative),
	}
}

func notificationTypeOptions(current string) []huh.Option[string] {
	var options []huh.Option[string]
	for _, kind := range []string{"desktop", "log", "none"} {
		options = append(options, huh.NewOption(withCurrent(kind, kind == current), kind))
	}
	return options
}

// parseExtensions splits a comma separated list into normalized extensions.
func parseExtensions(s string) []string {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		part = strings.TrimPrefix(part, ".")
		if part == "" {
			continue
		}
		exts = append(exts, "."+part)
	}
	return exts
}

func validateExtensions(s string) error {
	if len(parseExtensions(s)) == 0 {
		return fmt.Errorf("at least one extension is required")
	}
	return nil
}

func validateThreads(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("threads must be a non-negative number")
	}
	return nil
}

func validateNotEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// maskAPIKey returns a masked version of an API key for display
func maskAPIKey(key string) string {
	if key == "" {
		return "not set"
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}
