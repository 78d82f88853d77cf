package materializer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the media extensions recognised when nothing else is configured.
var DefaultExtensions = []string{".mp4"}

// ListMediaFiles returns the media files directly inside dir, in directory
// listing order. A missing directory yields an empty list.
func ListMediaFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if hasExtension(entry.Name(), exts) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// findByID returns the first media file in dir whose name contains id.
func findByID(dir, id string, exts []string) string {
	if id == "" {
		return ""
	}
	files, err := ListMediaFiles(dir, exts)
	if err != nil {
		return ""
	}
	for _, file := range files {
		if strings.Contains(filepath.Base(file), id) {
			return file
		}
	}
	return ""
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == normalizeExt(want) {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
