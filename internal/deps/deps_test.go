package deps

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckWhisperCli(t *testing.T) {
	status := CheckWhisperCli()

	// behavior depends on system - just verify no panic and correct structure
	if status.Installed {
		if status.Path == "" {
			t.Error("installed but path empty")
		}
	} else {
		if status.Path != "" {
			t.Error("not installed but path non-empty")
		}
	}
}

func TestCheckFFmpeg_Installed(t *testing.T) {
	_, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}
	status := CheckFFmpeg()
	if !status.Installed {
		t.Error("ffmpeg in PATH but Installed=false")
	}
	if status.Version == "" {
		t.Error("expected ffmpeg version line")
	}
}

func TestCheckYTDLP_NotInstalled(t *testing.T) {
	if _, err := exec.LookPath("yt-dlp"); err == nil {
		t.Skip("yt-dlp is installed, can't test not-installed case")
	}
	status := CheckYTDLP()
	if status.Installed || status.Path != "" {
		t.Errorf("expected empty status, got %+v", status)
	}
}

func TestCheck_ConfiguredPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	script := filepath.Join(t.TempDir(), "fake-tool")
	content := "#!/bin/sh\necho \"fake-tool 1.2.3\"\necho \"second line\"\n"
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}

	status := Check(context.Background(), YTDLP, script)
	if !status.Installed {
		t.Fatal("configured tool not found")
	}
	if status.Path != script {
		t.Errorf("Path = %q, want %q", status.Path, script)
	}
	if status.Version != "fake-tool 1.2.3" {
		t.Errorf("Version = %q, want first line only", status.Version)
	}
}

func TestCheck_ConfiguredPathMissing(t *testing.T) {
	status := Check(context.Background(), FFmpeg, filepath.Join(t.TempDir(), "nope"))
	if status.Installed {
		t.Error("missing configured path reported as installed")
	}
}

func TestTools(t *testing.T) {
	tools := Tools()
	want := []string{"yt-dlp", "ffmpeg", "whisper-cli"}
	if len(tools) != len(want) {
		t.Fatalf("got %d tools, want %d", len(tools), len(want))
	}
	for i, tool := range tools {
		if tool.Name != want[i] {
			t.Errorf("tool %d = %s, want %s", i, tool.Name, want[i])
		}
		if tool.Purpose == "" {
			t.Errorf("tool %s has no purpose", tool.Name)
		}
	}
}
