package whisper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressFunc is called during download with bytes downloaded and total
type ProgressFunc func(downloaded, total int64)

// IsInstalled returns true if the model is downloaded and available
func IsInstalled(modelID string) bool {
	path := GetModelPath(modelID)
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// ListInstalled returns IDs of all installed models
func ListInstalled() []string {
	var installed []string
	for _, m := range models {
		if IsInstalled(m.ID) {
			installed = append(installed, m.ID)
		}
	}
	return installed
}

// Ensure returns the path of an installed model, downloading it first when
// it is missing.
func Ensure(ctx context.Context, modelID string, onProgress ProgressFunc) (string, error) {
	if GetModel(modelID) == nil {
		return "", fmt.Errorf("unknown model: %s", modelID)
	}
	if !IsInstalled(modelID) {
		if err := Download(ctx, modelID, onProgress); err != nil {
			return "", err
		}
	}
	return GetModelPath(modelID), nil
}

// Download fetches a model from huggingface into the models directory.
// The file only appears under its final name once complete.
func Download(ctx context.Context, modelID string, onProgress ProgressFunc) error {
	info := GetModel(modelID)
	if info == nil {
		return fmt.Errorf("unknown model: %s", modelID)
	}

	dir, err := GetModelsDir()
	if err != nil {
		return fmt.Errorf("failed to get models directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}

	destPath := filepath.Join(dir, info.Filename)
	tempPath := destPath + ".downloading"

	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		out.Close()
		os.Remove(tempPath)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GetDownloadURL(modelID), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s", resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = info.SizeBytes
	}

	var body io.Reader = resp.Body
	if onProgress != nil {
		body = &progressReader{r: resp.Body, total: total, onProgress: onProgress}
	}
	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		return fmt.Errorf("failed to finalize download: %w", err)
	}

	return nil
}

// Remove deletes a downloaded model
func Remove(modelID string) error {
	if GetModel(modelID) == nil {
		return fmt.Errorf("unknown model: %s", modelID)
	}
	if !IsInstalled(modelID) {
		return fmt.Errorf("model not installed: %s", modelID)
	}
	if err := os.Remove(GetModelPath(modelID)); err != nil {
		return fmt.Errorf("failed to remove model: %w", err)
	}
	return nil
}

type progressReader struct {
	r          io.Reader
	downloaded int64
	total      int64
	onProgress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.downloaded += int64(n)
		p.onProgress(p.downloaded, p.total)
	}
	return n, err
}
