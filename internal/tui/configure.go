package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/leonardotrapani/whisptube/internal/config"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// ConfigSection represents a configuration section
type ConfigSection string

const (
	SectionGeneral       ConfigSection = "general"
	SectionDownload      ConfigSection = "download"
	SectionTranscription ConfigSection = "transcription"
	SectionProviders     ConfigSection = "providers"
	SectionNotifications ConfigSection = "notifications"
	SectionSaveExit      ConfigSection = "save_exit"
	SectionDiscardExit   ConfigSection = "discard_exit"
)

// Run starts the menu driven configuration editor on a copy of cfg.
func Run(cfg *config.Config) (*ConfigureResult, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	working := cloneConfig(cfg)

	for {
		clearScreen()
		fmt.Println(Logo())
		fmt.Println()

		section, err := selectSection(working)
		if err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}

		switch section {
		case SectionSaveExit:
			if err := working.Validate(); err != nil {
				fmt.Println(StyleError.Render("Invalid configuration: " + err.Error()))
				if !confirm("Go back and fix it?") {
					return &ConfigureResult{Cancelled: true}, nil
				}
				continue
			}
			confirmed, err := showSummary(working)
			if err != nil {
				return &ConfigureResult{Cancelled: true}, nil
			}
			if confirmed {
				return &ConfigureResult{Config: working, Cancelled: false}, nil
			}

		case SectionDiscardExit:
			return &ConfigureResult{Cancelled: true}, nil

		case SectionGeneral:
			_ = editGeneral(working)

		case SectionDownload:
			_ = editDownload(working)

		case SectionTranscription:
			_ = editTranscription(working)

		case SectionProviders:
			_ = editProviders(working)

		case SectionNotifications:
			_ = editNotifications(working)
		}
	}
}

func selectSection(cfg *config.Config) (ConfigSection, error) {
	var selected ConfigSection
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ConfigSection]().
				Title("Configuration Menu").
				Description("↑/↓ navigate • enter select • esc cancel").
				Options(sectionOptions(cfg)...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}

	return selected, nil
}

func sectionOptions(cfg *config.Config) []huh.Option[ConfigSection] {
	return []huh.Option[ConfigSection]{
		huh.NewOption(fmt.Sprintf("General (%s)", cfg.General.OutputDir), SectionGeneral),
		huh.NewOption(fmt.Sprintf("Download (%s)", cfg.Download.ManifestSource), SectionDownload),
		huh.NewOption(fmt.Sprintf("Transcription (%s/%s)", cfg.Transcription.Provider, cfg.Transcription.Model), SectionTranscription),
		huh.NewOption("Providers", SectionProviders),
		huh.NewOption(formatNotificationsLabel(cfg), SectionNotifications),
		huh.NewOption("Save & Exit", SectionSaveExit),
		huh.NewOption("Discard & Exit", SectionDiscardExit),
	}
}

func formatNotificationsLabel(cfg *config.Config) string {
	if !cfg.Notifications.Enabled {
		return "Notifications (off)"
	}
	return fmt.Sprintf("Notifications (%s)", cfg.Notifications.Type)
}

func confirm(title string) bool {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(huh.NewConfirm().Title(title).Value(&ok)),
	).WithTheme(getTheme())
	if err := form.Run(); err != nil {
		return false
	}
	return ok
}

// clearScreen clears the terminal screen
func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}

func getTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(ColorPrimary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(ColorSubtle)

	return t
}

func cloneConfig(cfg *config.Config) *config.Config {
	c := *cfg
	c.Download.MediaExtensions = append([]string(nil), cfg.Download.MediaExtensions...)
	c.Providers = make(map[string]config.ProviderConfig, len(cfg.Providers))
	for k, v := range cfg.Providers {
		c.Providers[k] = v
	}
	return &c
}
