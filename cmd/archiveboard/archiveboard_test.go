package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(
		"database_url = %q\nimage_dir = %q\nlog_dir = %q\nlog_format = \"console\"\nmigration_lock_path = %q\n",
		filepath.Join(base, "catalog.sqlite3"),
		filepath.Join(base, "images"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "migrate.lock"),
	)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func samplePNGFile(t *testing.T, dir string, fill color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	path := filepath.Join(dir, "sample.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestArchiveShowRoundTrip(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	imgPath := samplePNGFile(t, base, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	out, err := runCLI(t, configPath, "archive", imgPath, "--tags", "Cat cute")
	if err != nil {
		t.Fatalf("archive: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Fingerprint:") {
		t.Fatalf("output = %q, want fingerprint line", out)
	}
	if !strings.Contains(out, "Cat") || !strings.Contains(out, "cute") {
		t.Fatalf("output = %q, want tags split on whitespace with casing preserved", out)
	}

	fp := extractFingerprint(t, out)
	out, err = runCLI(t, configPath, "show", fp)
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	if !strings.Contains(out, fp) {
		t.Fatalf("show output = %q, want fingerprint %s", out, fp)
	}
}

func TestArchiveThenQueryByTag(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	imgPath := samplePNGFile(t, base, color.RGBA{R: 200, G: 5, B: 5, A: 255})

	if out, err := runCLI(t, configPath, "archive", imgPath, "--tags", "dog"); err != nil {
		t.Fatalf("archive: %v\n%s", err, out)
	}

	out, err := runCLI(t, configPath, "query", "dog")
	if err != nil {
		t.Fatalf("query: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Fingerprint") {
		t.Fatalf("query output = %q, want a results table", out)
	}

	out, err = runCLI(t, configPath, "query", "cat")
	if err != nil {
		t.Fatalf("query: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No matching assets") {
		t.Fatalf("query output = %q, want no matches", out)
	}
}

func TestArchiveThenRemove(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	imgPath := samplePNGFile(t, base, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	out, err := runCLI(t, configPath, "archive", imgPath)
	if err != nil {
		t.Fatalf("archive: %v\n%s", err, out)
	}
	fp := extractFingerprint(t, out)

	if out, err := runCLI(t, configPath, "remove", fp); err != nil {
		t.Fatalf("remove: %v\n%s", err, out)
	}

	if _, err := runCLI(t, configPath, "show", fp); err == nil {
		t.Fatal("expected show to fail after remove")
	}
}

func TestConfigInitThenValidate(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base) // sample config's ~/.local/share paths must stay inside TempDir
	target := filepath.Join(base, "nested", "config.toml")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v\n%s", err, out.String())
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}

	cmd = newRootCommand()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected config init to refuse to overwrite without --overwrite")
	}

	cmd = newRootCommand()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", target, "config", "validate"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config validate: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Configuration valid") {
		t.Fatalf("validate output = %q, want confirmation", out.String())
	}
}

func extractFingerprint(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Fingerprint:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Fingerprint:"))
		}
	}
	t.Fatalf("no Fingerprint line in output %q", out)
	return ""
}
