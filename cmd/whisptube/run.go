package main

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leonardotrapani/whisptube/internal/assembler"
	"github.com/leonardotrapani/whisptube/internal/config"
	"github.com/leonardotrapani/whisptube/internal/logging"
	"github.com/leonardotrapani/whisptube/internal/materializer"
	"github.com/leonardotrapani/whisptube/internal/notify"
	"github.com/leonardotrapani/whisptube/internal/pipeline"
	"github.com/leonardotrapani/whisptube/internal/playlist"
	"github.com/leonardotrapani/whisptube/internal/transcriber"
	"github.com/leonardotrapani/whisptube/internal/tui"
)

type runFlags struct {
	configPath     string
	output         string
	model          string
	provider       string
	language       string
	manifest       string
	skipDownload   bool
	skipTranscribe bool
	verbose        bool
}

func loadConfig(flags *runFlags) (*config.Config, error) {
	if flags.configPath != "" {
		return config.LoadFrom(flags.configPath)
	}
	return config.Load()
}

// applyFlags lets explicitly set command line flags override the config file.
func applyFlags(cmd *cobra.Command, flags *runFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.General.OutputDir = flags.output
	}
	if changed("verbose") {
		cfg.General.Verbose = flags.verbose
	}
	if changed("provider") {
		cfg.Transcription.Provider = flags.provider
		if !changed("model") && flags.provider == transcriber.ProviderOpenAI {
			cfg.Transcription.Model = "whisper-1"
		}
	}
	if changed("model") {
		cfg.Transcription.Model = flags.model
	}
	if changed("language") {
		cfg.Transcription.Language = flags.language
	}
	if changed("manifest") {
		cfg.Download.ManifestSource = flags.manifest
	}
}

func runPipeline(cmd *cobra.Command, ref string, flags *runFlags) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.General.Verbose, cmd.ErrOrStderr())
	log := logging.ForRun(logger)
	log.Debugf("Output directory: %s", cfg.General.OutputDir)

	pc := cfg.ToPlaylistConfig()
	if !flags.skipDownload {
		pc.Executable, err = resolveYTDLP(ctx, pc.Executable, cfg.Download.AutoInstall, log)
		if err != nil {
			return err
		}
	}
	source, err := playlist.NewSource(cfg.Download.ManifestSource, pc)
	if err != nil {
		return err
	}

	tc := cfg.ToTranscriberConfig()
	tc.OnModelProgress = newDownloadProgress(cmd.ErrOrStderr(), "Downloading model")

	summary, err := pipeline.Run(ctx, pipeline.Deps{
		Materializer: materializer.New(source, log, cfg.ToMaterializerOptions()),
		Assembler:    assembler.New(transcriber.NewLoader(tc, log), log),
		Notifier:     notify.New(cfg.Notifications.Enabled, cfg.Notifications.Type, log),
		Log:          log,
	}, pipeline.Options{
		PlaylistRef:     ref,
		OutputDir:       cfg.General.OutputDir,
		Model:           cfg.Transcription.Model,
		SkipDownload:    flags.skipDownload,
		SkipTranscribe:  flags.skipTranscribe,
		MediaExtensions: cfg.Download.MediaExtensions,
	})
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// resolveYTDLP returns the yt-dlp executable to use. An empty result lets
// go-ytdlp resolve the binary itself.
func resolveYTDLP(ctx context.Context, configured string, autoInstall bool, log logging.Logger) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if _, err := exec.LookPath("yt-dlp"); err == nil {
		return "", nil
	}
	if !autoInstall {
		return "", fmt.Errorf("yt-dlp not found in PATH (install it or set download.auto_install = true)")
	}

	log.Infof("yt-dlp not found, installing it")
	path, err := playlist.Install(ctx)
	if err != nil {
		return "", err
	}
	log.Infof("Using yt-dlp at %s", path)
	return path, nil
}

func printSummary(w io.Writer, s *pipeline.Summary) {
	if s.NothingPending {
		fmt.Fprintf(w, "Found %d existing videos\n", len(s.MediaFiles))
		fmt.Fprintln(w, "No pending transcriptions")
		return
	}

	fmt.Fprintf(w, "Transcribed %d videos\n", len(s.Transcripts))
	fmt.Fprintln(w, "Combined transcription files saved to the transcriptions directory:")
	fmt.Fprintln(w, renderTable(
		[]string{"Variant", "File"},
		[][]string{
			{"With timestamps", filepath.Base(s.CombinedTimestamped)},
			{"Without timestamps (paragraph)", filepath.Base(s.CombinedPlain)},
			{"Segmented (no timestamps)", filepath.Base(s.CombinedSegmented)},
		},
		nil,
	))
	if s.ItemErrors != nil {
		fmt.Fprintln(w, tui.StyleWarning.Render(fmt.Sprintf("Some transcripts were skipped: %v", s.ItemErrors)))
	}
}
