package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// extractWAVArgs decodes the audio track to 16kHz mono PCM, the only input whisper-cli accepts.
func extractWAVArgs(input, output string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", input,
		"-vn", "-ac", "1", "-ar", "16000",
		"-c:a", "pcm_s16le",
		output,
	}
}

// extractMP3Args produces a small speech-quality mp3 for upload APIs with size limits.
func extractMP3Args(input, output string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", input,
		"-vn", "-ac", "1", "-ar", "16000",
		"-b:a", "48k",
		output,
	}
}

func runFFmpeg(ctx context.Context, ffmpeg string, args []string) error {
	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("ffmpeg audio extraction: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg audio extraction: %w", err)
	}
	return nil
}
