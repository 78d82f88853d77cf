package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leonardotrapani/whisptube/internal/models/whisper"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line and maps its outcome to an exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	code := exitCode(ctx, err)
	switch code {
	case exitInterrupted:
		fmt.Fprintln(stderr, "Interrupted")
	case exitFailure:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return code
}

func exitCode(ctx context.Context, err error) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	if err != nil {
		return exitFailure
	}
	return exitOK
}

func newRootCmd() *cobra.Command {
	flags := &runFlags{}

	root := &cobra.Command{
		Use:   "whisptube <playlist-url>",
		Short: "Download a YouTube playlist and transcribe its videos",
		Long: `Download every video of a playlist and transcribe it with Whisper.

Videos already on disk are not downloaded again and videos with existing
transcripts are not transcribed again. Per-video transcripts and three
combined files are written to <output>/transcriptions.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args[0], flags)
		},
	}

	f := root.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output directory for videos and transcriptions (default \"youtube_downloads\")")
	f.StringVarP(&flags.model, "model", "m", "", modelFlagUsage())
	f.StringVar(&flags.provider, "provider", "", "transcription provider: whisper-cpp or openai")
	f.StringVarP(&flags.language, "language", "l", "", "spoken language hint, e.g. en (default auto-detect)")
	f.StringVar(&flags.manifest, "manifest", "", "playlist listing backend: yt-dlp or native")
	f.BoolVar(&flags.skipDownload, "skip-download", false, "skip downloading videos and only transcribe existing ones")
	f.BoolVar(&flags.skipTranscribe, "skip-transcribe", false, "skip transcribing and only download missing videos")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/whisptube/config.toml)")

	root.AddCommand(
		modelCmd(),
		doctorCmd(flags),
		configureCmd(flags),
	)

	return root
}

func modelFlagUsage() string {
	return fmt.Sprintf("Whisper model to use (%s; whisper-1 with --provider openai)",
		strings.Join(whisper.Names(), ", "))
}
