package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/leonardotrapani/whisptube/internal/config"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
)

func editGeneral(cfg *config.Config) error {
	outputDir := cfg.General.OutputDir
	verbose := cfg.General.Verbose

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output Directory").
				Description("Videos are saved here, transcripts under transcriptions/").
				Value(&outputDir).
				Validate(validateNotEmpty("output directory")),
			huh.NewConfirm().
				Title("Verbose logging?").
				Value(&verbose),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.OutputDir = strings.TrimSpace(outputDir)
	cfg.General.Verbose = verbose
	return nil
}

func editDownload(cfg *config.Config) error {
	manifest := cfg.Download.ManifestSource
	template := cfg.Download.OutputTemplate
	extensions := strings.Join(cfg.Download.MediaExtensions, ", ")
	ytdlpPath := cfg.Download.YTDLPPath
	autoInstall := cfg.Download.AutoInstall

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Playlist Listing").
				Description("How the list of videos is fetched").
				Options(manifestOptions(manifest)...).
				Value(&manifest),
			huh.NewInput().
				Title("Output Template").
				Description("yt-dlp template, relative to the output directory").
				Value(&template).
				Validate(validateNotEmpty("output template")),
			huh.NewInput().
				Title("Media Extensions").
				Description("Comma separated, e.g. .mp4, .webm").
				Value(&extensions).
				Validate(validateExtensions),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("yt-dlp Path").
				Description("Leave empty to look it up in PATH").
				Value(&ytdlpPath),
			huh.NewConfirm().
				Title("Download yt-dlp automatically when missing?").
				Value(&autoInstall),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Download.ManifestSource = manifest
	cfg.Download.OutputTemplate = strings.TrimSpace(template)
	cfg.Download.MediaExtensions = parseExtensions(extensions)
	cfg.Download.YTDLPPath = strings.TrimSpace(ytdlpPath)
	cfg.Download.AutoInstall = autoInstall
	return nil
}

func editTranscription(cfg *config.Config) error {
	provider := cfg.Transcription.Provider
	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription Provider").
				Description(fmt.Sprintf("Currently: %s/%s", cfg.Transcription.Provider, cfg.Transcription.Model)).
				Options(providerOptions(provider)...).
				Value(&provider),
		),
	).WithTheme(getTheme())
	if err := providerForm.Run(); err != nil {
		return err
	}

	model := cfg.Transcription.Model
	if provider != cfg.Transcription.Provider {
		model = ""
	}
	options := modelOptions(provider, model)
	if model == "" && len(options) > 0 {
		model = options[0].Value
	}
	lang := cfg.Transcription.Language
	threads := strconv.Itoa(cfg.Transcription.Threads)

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Model").
			Options(options...).
			Value(&model),
		huh.NewSelect[string]().
			Title("Language").
			Description("Spoken language of the videos").
			Options(languageOptions(lang)...).
			Value(&lang),
	}
	if provider == transcriber.ProviderWhisperCpp {
		fields = append(fields, huh.NewInput().
			Title("CPU Threads").
			Description("0 = number of CPUs minus one").
			Value(&threads).
			Validate(validateThreads))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(getTheme())
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Transcription.Provider = provider
	cfg.Transcription.Model = model
	cfg.Transcription.Language = lang
	if n, err := strconv.Atoi(strings.TrimSpace(threads)); err == nil {
		cfg.Transcription.Threads = n
	}

	if provider == transcriber.ProviderOpenAI && cfg.ResolveAPIKey(transcriber.ProviderOpenAI) == "" {
		return editProviders(cfg)
	}
	return nil
}

func editProviders(cfg *config.Config) error {
	apiKey := cfg.Providers[transcriber.ProviderOpenAI].APIKey

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API Key").
				Description(fmt.Sprintf("Currently: %s (OPENAI_API_KEY is used when empty)", maskAPIKey(apiKey))).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		delete(cfg.Providers, transcriber.ProviderOpenAI)
		return nil
	}
	cfg.Providers[transcriber.ProviderOpenAI] = config.ProviderConfig{APIKey: apiKey}
	return nil
}

func editNotifications(cfg *config.Config) error {
	enabled := cfg.Notifications.Enabled
	kind := cfg.Notifications.Type

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Notify when a run finishes?").
				Value(&enabled),
			huh.NewSelect[string]().
				Title("Notification Type").
				Options(notificationTypeOptions(kind)...).
				Value(&kind),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Notifications.Enabled = enabled
	cfg.Notifications.Type = kind
	return nil
}

// summaryLines renders the settings shown before saving.
func summaryLines(cfg *config.Config) []string {
	lang := "auto-detect"
	if cfg.Transcription.Language != "" {
		lang = languageName(cfg.Transcription.Language)
	}
	notifications := "disabled"
	if cfg.Notifications.Enabled {
		notifications = cfg.Notifications.Type
	}

	return []string{
		fmt.Sprintf("%s %s", StyleLabel.Render("Output:"), cfg.General.OutputDir),
		fmt.Sprintf("%s %s, template %s", StyleLabel.Render("Download:"), cfg.Download.ManifestSource, cfg.Download.OutputTemplate),
		fmt.Sprintf("%s %s", StyleLabel.Render("Extensions:"), strings.Join(cfg.Download.MediaExtensions, ", ")),
		fmt.Sprintf("%s %s (%s)", StyleLabel.Render("Transcription:"), cfg.Transcription.Provider, cfg.Transcription.Model),
		fmt.Sprintf("%s %s", StyleLabel.Render("Language:"), lang),
		fmt.Sprintf("%s %s", StyleLabel.Render("OpenAI key:"), StyleMuted.Render(maskAPIKey(cfg.Providers[transcriber.ProviderOpenAI].APIKey))),
		fmt.Sprintf("%s %s", StyleLabel.Render("Notifications:"), notifications),
	}
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println(StyleBox.Render(strings.Join(summaryLines(cfg), "\n")))
	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
