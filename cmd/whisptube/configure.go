package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leonardotrapani/whisptube/internal/config"
	"github.com/leonardotrapani/whisptube/internal/tui"
)

func configureCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration editor for whisptube.
This will guide you through setting up:
- Output directory and download options
- Transcription provider, model and language
- The OpenAI API key
- Completion notifications`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, flags)
		},
	}
}

func runConfigure(cmd *cobra.Command, flags *runFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	out := cmd.OutOrStdout()
	if result.Cancelled {
		fmt.Fprintln(out, "Configuration cancelled.")
		return nil
	}

	configPath := flags.configPath
	if configPath == "" {
		if configPath, err = config.GetConfigPath(); err != nil {
			return err
		}
	}
	if err := config.SaveTo(configPath, result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, tui.StyleSuccess.Render("Configuration saved successfully!"))
	fmt.Fprintf(out, "Config file location: %s\n", configPath)
	fmt.Fprintln(out, "Next: whisptube doctor, then whisptube <playlist-url>")
	return nil
}
