package whisper

import (
	"os"
	"path/filepath"
	"strings"
)

// ModelInfo holds metadata for a whisper.cpp model
type ModelInfo struct {
	ID           string // model identifier (e.g., "base")
	Filename     string // ggml file name
	Size         string // human readable size
	SizeBytes    int64  // expected size, used when the server sends no length
	Multilingual bool
}

// ggml conversions published at huggingface.co/ggerganov/whisper.cpp
var models = []ModelInfo{
	{ID: "tiny", Filename: "ggml-tiny.bin", Size: "75MB", SizeBytes: 77_691_713, Multilingual: true},
	{ID: "base", Filename: "ggml-base.bin", Size: "142MB", SizeBytes: 147_951_465, Multilingual: true},
	{ID: "small", Filename: "ggml-small.bin", Size: "466MB", SizeBytes: 487_601_967, Multilingual: true},
	{ID: "medium", Filename: "ggml-medium.bin", Size: "1.5GB", SizeBytes: 1_533_763_059, Multilingual: true},
	{ID: "large-v3", Filename: "ggml-large-v3.bin", Size: "3.1GB", SizeBytes: 3_095_033_483, Multilingual: true},

	{ID: "tiny.en", Filename: "ggml-tiny.en.bin", Size: "75MB", SizeBytes: 77_704_715},
	{ID: "base.en", Filename: "ggml-base.en.bin", Size: "142MB", SizeBytes: 147_964_211},
	{ID: "small.en", Filename: "ggml-small.en.bin", Size: "466MB", SizeBytes: 487_614_201},
	{ID: "medium.en", Filename: "ggml-medium.en.bin", Size: "1.5GB", SizeBytes: 1_533_774_781},
}

// aliases accepted on the command line
var aliases = map[string]string{
	"large": "large-v3",
}

var modelByID = func() map[string]ModelInfo {
	m := make(map[string]ModelInfo, len(models))
	for _, model := range models {
		m[model.ID] = model
	}
	return m
}()

// ModelsDirEnv overrides the model directory.
const ModelsDirEnv = "WHISPTUBE_MODELS_DIR"

// baseDownloadURL is a variable so tests can point it at a local server.
var baseDownloadURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Names lists the identifiers accepted by --model, aliases included.
func Names() []string {
	names := []string{"tiny", "base", "small", "medium", "large"}
	for _, m := range models {
		if m.ID != aliases["large"] && !m.Multilingual {
			names = append(names, m.ID)
		}
	}
	return append(names, aliases["large"])
}

// Canonical resolves aliases; unknown ids are returned unchanged.
func Canonical(modelID string) string {
	modelID = strings.TrimSpace(modelID)
	if target, ok := aliases[modelID]; ok {
		return target
	}
	return modelID
}

// GetModelsDir returns the directory where whisper models are stored.
func GetModelsDir() (string, error) {
	if dir := os.Getenv(ModelsDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "whisptube", "models", "whisper"), nil
}

// GetModelPath returns the full path to a model file.
// Returns empty string if model ID is unknown.
func GetModelPath(modelID string) string {
	info := GetModel(modelID)
	if info == nil {
		return ""
	}
	dir, err := GetModelsDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, info.Filename)
}

// GetDownloadURL returns the full download URL for a model.
func GetDownloadURL(modelID string) string {
	info := GetModel(modelID)
	if info == nil {
		return ""
	}
	return baseDownloadURL + "/" + info.Filename
}

// GetModel returns info for a model by ID or alias, nil if unknown.
func GetModel(modelID string) *ModelInfo {
	info, ok := modelByID[Canonical(modelID)]
	if !ok {
		return nil
	}
	return &info
}

// ListModels returns all available whisper models
func ListModels() []ModelInfo {
	result := make([]ModelInfo, len(models))
	copy(result, models)
	return result
}
