package deps

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Status represents the installation status of a dependency
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// Tool is an external program the pipeline shells out to.
type Tool struct {
	Name       string
	VersionArg string
	// Purpose tells the user which stage needs the tool.
	Purpose string
}

var (
	YTDLP      = Tool{Name: "yt-dlp", VersionArg: "--version", Purpose: "playlist listing and downloads"}
	FFmpeg     = Tool{Name: "ffmpeg", VersionArg: "-version", Purpose: "audio extraction and stream merging"}
	WhisperCli = Tool{Name: "whisper-cli", VersionArg: "--version", Purpose: "local whisper-cpp transcription"}
)

// Tools lists every tool in the order `doctor` reports them.
func Tools() []Tool {
	return []Tool{YTDLP, FFmpeg, WhisperCli}
}

const versionTimeout = 5 * time.Second

// Check looks tool up, preferring an explicitly configured path, and
// reads the first line of its version output.
func Check(ctx context.Context, tool Tool, configured string) Status {
	name := tool.Name
	if configured != "" {
		name = configured
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, tool.VersionArg).Output()
	if err == nil {
		status.Version = firstLine(string(output))
	}

	return status
}

// CheckWhisperCli checks if whisper-cli is installed and returns its status
func CheckWhisperCli() Status {
	return Check(context.Background(), WhisperCli, "")
}

// CheckFFmpeg checks if ffmpeg is installed and returns its status
func CheckFFmpeg() Status {
	return Check(context.Background(), FFmpeg, "")
}

// CheckYTDLP checks if yt-dlp is installed and returns its status
func CheckYTDLP() Status {
	return Check(context.Background(), YTDLP, "")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
