//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupExtractEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	env := setupCLITestEnv(t)

	stub := filepath.Join(env.baseDir, "bin", "ffmpeg")
	if err := os.MkdirAll(filepath.Dir(stub), 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}

	contents := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[player]
socket_path = %q

[extract]
ffmpeg_binary = %q
`,
		filepath.Join(env.baseDir, "data"),
		filepath.Join(env.baseDir, "logs"),
		filepath.Join(env.baseDir, "mpv.sock"),
		stub)
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	return env
}

func TestExtractFramesEndToEnd(t *testing.T) {
	env := setupExtractEnv(t)

	env.mustRunCLI(t, "--media", env.mediaPath, "mark", "-t", "95.5", "rally")
	out := env.mustRunCLI(t, "--media", env.mediaPath, "extract", "frames", "1")
	if !strings.Contains(out, "Launched ffmpeg (frames) for Point0001") {
		t.Fatalf("unexpected extract output:\n%s", out)
	}

	runDir := filepath.Join(env.baseDir, "data", "run")
	lastCommand, err := os.ReadFile(filepath.Join(runDir, "lastcommand.txt"))
	if err != nil {
		t.Fatalf("read lastcommand.txt: %v", err)
	}
	recorded := string(lastCommand)
	if !strings.Contains(recorded, "-ss 93.500") || !strings.Contains(recorded, "fps=5,scale=320:240") {
		t.Fatalf("unexpected recorded command:\n%s", recorded)
	}

	outputDir := strings.TrimSuffix(env.mediaPath, ".mp4") + "_extracted_frames"
	if _, err := os.Stat(filepath.Join(outputDir, "Point0001")); err != nil {
		t.Fatalf("expected frame output directory: %v", err)
	}
}

func TestExtractRecordsHistory(t *testing.T) {
	env := setupExtractEnv(t)

	env.mustRunCLI(t, "--media", env.mediaPath, "mark", "-t", "30")
	env.mustRunCLI(t, "--media", env.mediaPath, "extract", "clip", "1")

	out := env.mustRunCLI(t, "history")
	if !strings.Contains(out, "lossless") || !strings.Contains(out, "Point0001") {
		t.Fatalf("expected journaled run in history output:\n%s", out)
	}

	env.mustRunCLI(t, "history", "clear")
	out = env.mustRunCLI(t, "history")
	if !strings.Contains(out, "No extraction runs recorded") {
		t.Fatalf("expected empty history after clear:\n%s", out)
	}
}

func TestExtractMissingFFmpeg(t *testing.T) {
	env := setupExtractEnv(t)

	env.mustRunCLI(t, "--media", env.mediaPath, "mark", "-t", "30")
	if err := os.Remove(filepath.Join(env.baseDir, "bin", "ffmpeg")); err != nil {
		t.Fatalf("remove stub: %v", err)
	}

	if _, err := env.runCLI(t, "--media", env.mediaPath, "extract", "frames", "1"); err == nil {
		t.Fatal("expected error when ffmpeg is missing")
	}
}

func TestExtractWindowOverride(t *testing.T) {
	env := setupExtractEnv(t)

	env.mustRunCLI(t, "--media", env.mediaPath, "mark", "-t", "100")
	env.mustRunCLI(t, "--media", env.mediaPath, "extract", "frames", "1", "--before", "0", "--after", "0")

	runDir := filepath.Join(env.baseDir, "data", "run")
	lastCommand, err := os.ReadFile(filepath.Join(runDir, "lastcommand.txt"))
	if err != nil {
		t.Fatalf("read lastcommand.txt: %v", err)
	}
	recorded := string(lastCommand)
	if !strings.Contains(recorded, "-frames:v 1") {
		t.Fatalf("expected single-frame command for zero window:\n%s", recorded)
	}
}
