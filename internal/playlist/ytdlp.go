package playlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// Config controls how yt-dlp is invoked.
type Config struct {
	Executable  string // empty = resolve from PATH / go-ytdlp cache
	Format      string
	MergeFormat string
}

// YTDLPSource implements Source on top of the yt-dlp binary.
type YTDLPSource struct {
	config Config
}

func NewYTDLPSource(config Config) *YTDLPSource {
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	if config.MergeFormat == "" {
		config.MergeFormat = DefaultMergeFormat
	}
	return &YTDLPSource{config: config}
}

// Install makes sure a yt-dlp binary is available, downloading it into the
// go-ytdlp cache when it is missing from PATH, and returns its path.
func Install(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("install yt-dlp: %w", err)
	}
	return resolved.Executable, nil
}

func (s *YTDLPSource) command() *ytdlp.Command {
	cmd := ytdlp.New()
	if s.config.Executable != "" {
		cmd = cmd.SetExecutable(s.config.Executable)
	}
	return cmd
}

func (s *YTDLPSource) Manifest(ctx context.Context, ref string) ([]Item, error) {
	res, err := s.command().
		DumpJSON().
		FlatPlaylist().
		Run(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp manifest: %w%s", err, stderrOf(res))
	}
	return ParseManifest(res.Stdout)
}

// ResolveFilename asks yt-dlp for the path Download would write. The format
// selection has to match Download, since it decides the extension.
func (s *YTDLPSource) ResolveFilename(ctx context.Context, item Item, template string) (string, error) {
	res, err := s.command().
		Format(s.config.Format).
		MergeOutputFormat(s.config.MergeFormat).
		Print("filename").
		Output(template).
		SkipDownload().
		Run(ctx, item.VideoURL())
	if err != nil {
		return "", fmt.Errorf("yt-dlp resolve filename for %s: %w%s", item.ID, err, stderrOf(res))
	}

	name := strings.TrimSpace(res.Stdout)
	if name == "" {
		return "", fmt.Errorf("yt-dlp resolved an empty filename for %s", item.ID)
	}
	return name, nil
}

func (s *YTDLPSource) Download(ctx context.Context, item Item, template string) error {
	res, err := s.command().
		Format(s.config.Format).
		MergeOutputFormat(s.config.MergeFormat).
		Output(template).
		NoPlaylist().
		Run(ctx, item.VideoURL())
	if err != nil {
		return fmt.Errorf("yt-dlp download %s: %w%s", item.ID, err, stderrOf(res))
	}
	return nil
}

func stderrOf(res *ytdlp.Result) string {
	if res == nil {
		return ""
	}
	stderr := strings.TrimSpace(res.Stderr)
	if stderr == "" {
		return ""
	}
	return "\nstderr: " + stderr
}
