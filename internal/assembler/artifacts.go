package assembler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirName is the transcript directory created inside the output directory.
	DirName = "transcriptions"

	CombinedTimestampedName = "combined_transcription_with_timestamps.txt"
	CombinedPlainName       = "combined_transcription.txt"
	CombinedSegmentedName   = "combined_transcription_segmented.txt"

	plainSuffix     = "_no_timestamps"
	segmentedSuffix = "_segmented"
	textExt         = ".txt"

	// entrySeparator follows every transcript in the combined files.
	entrySeparator = "\n\n"
)

// Artifacts are the per-media transcript files, keyed by the media stem.
type Artifacts struct {
	Name        string
	Timestamped string
	Plain       string
	Segmented   string
}

// ArtifactsFor lays out the transcript files of mediaPath inside transcriptDir.
func ArtifactsFor(transcriptDir, mediaPath string) Artifacts {
	base := filepath.Base(mediaPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return Artifacts{
		Name:        name,
		Timestamped: filepath.Join(transcriptDir, name+textExt),
		Plain:       filepath.Join(transcriptDir, name+plainSuffix+textExt),
		Segmented:   filepath.Join(transcriptDir, name+segmentedSuffix+textExt),
	}
}

// Complete reports whether the item was already transcribed. Only the
// timestamped and segmented files are checked.
func (a Artifacts) Complete() bool {
	return exists(a.Timestamped) && exists(a.Segmented)
}

// Load reads a previously written transcript set.
func (a Artifacts) Load() (Transcript, error) {
	var t Transcript
	var err error

	if t.Timestamped, err = readArtifact(a.Timestamped); err != nil {
		return Transcript{}, err
	}
	if t.Plain, err = readArtifact(a.Plain); err != nil {
		return Transcript{}, err
	}
	if t.Segmented, err = readArtifact(a.Segmented); err != nil {
		return Transcript{}, err
	}
	return t, nil
}

// Write stores the three variants, overwriting existing files.
func (a Artifacts) Write(t Transcript) error {
	files := []struct {
		path string
		text string
	}{
		{a.Timestamped, t.Timestamped},
		{a.Plain, t.Plain},
		{a.Segmented, t.Segmented},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.text), 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
	}
	return nil
}

// CombinedPaths returns the three combined output files of transcriptDir.
func CombinedPaths(transcriptDir string) (timestamped, plain, segmented string) {
	return filepath.Join(transcriptDir, CombinedTimestampedName),
		filepath.Join(transcriptDir, CombinedPlainName),
		filepath.Join(transcriptDir, CombinedSegmentedName)
}

// combined accumulates every transcript of a run, in input order.
type combined struct {
	timestamped strings.Builder
	plain       strings.Builder
	segmented   strings.Builder
}

func (c *combined) add(t Transcript) {
	c.timestamped.WriteString(t.Timestamped + entrySeparator)
	c.plain.WriteString(t.Plain + entrySeparator)
	c.segmented.WriteString(t.Segmented + entrySeparator)
}

func (c *combined) write(transcriptDir string) error {
	timestamped, plain, segmented := CombinedPaths(transcriptDir)
	return Artifacts{Timestamped: timestamped, Plain: plain, Segmented: segmented}.Write(Transcript{
		Timestamped: c.timestamped.String(),
		Plain:       c.plain.String(),
		Segmented:   c.segmented.String(),
	})
}

func readArtifact(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingArtifactError{Path: path, Err: err}
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
