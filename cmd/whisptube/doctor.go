package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leonardotrapani/whisptube/internal/config"
	"github.com/leonardotrapani/whisptube/internal/deps"
	"github.com/leonardotrapani/whisptube/internal/models/whisper"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
	"github.com/leonardotrapani/whisptube/internal/tui"
)

func doctorCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the external tools and models a run needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !runDoctor(cmd.Context(), cmd.OutOrStdout(), cfg) {
				return fmt.Errorf("some required tools are missing")
			}
			return nil
		},
	}
}

// runDoctor prints the tool report and returns false when something the
// configured provider needs is missing.
func runDoctor(ctx context.Context, w io.Writer, cfg *config.Config) bool {
	configured := map[string]string{
		deps.YTDLP.Name:      cfg.Download.YTDLPPath,
		deps.FFmpeg.Name:     cfg.Transcription.FFmpegPath,
		deps.WhisperCli.Name: cfg.Transcription.WhisperCliPath,
	}

	healthy := true
	var rows [][]string
	for _, tool := range deps.Tools() {
		status := deps.Check(ctx, tool, configured[tool.Name])
		required := toolRequired(tool, cfg)

		state := tui.StyleSuccess.Render("ok")
		switch {
		case !status.Installed && required:
			state = tui.StyleError.Render("missing")
			healthy = false
		case !status.Installed:
			state = tui.StyleSubtle.Render("not needed")
		}
		rows = append(rows, []string{tool.Name, state, status.Version, tool.Purpose})
	}

	fmt.Fprintln(w, renderTable([]string{"Tool", "Status", "Version", "Used for"}, rows, nil))

	if cfg.Transcription.Provider == transcriber.ProviderWhisperCpp {
		model := cfg.Transcription.Model
		if whisper.IsInstalled(model) {
			fmt.Fprintf(w, "Model %s: %s\n", model, whisper.GetModelPath(model))
		} else {
			fmt.Fprintf(w, "Model %s: %s\n", model, tui.StyleMuted.Render("not downloaded yet, fetched on first run"))
		}
	}

	if installed := whisper.ListInstalled(); len(installed) > 0 {
		fmt.Fprintf(w, "Installed models: %s\n", strings.Join(installed, ", "))
	}

	return healthy
}

func toolRequired(tool deps.Tool, cfg *config.Config) bool {
	switch tool.Name {
	case deps.YTDLP.Name:
		// auto install covers a missing binary
		return !cfg.Download.AutoInstall
	case deps.WhisperCli.Name:
		return cfg.Transcription.Provider == transcriber.ProviderWhisperCpp
	default:
		return true
	}
}
