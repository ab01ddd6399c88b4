package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDir   string
		wantSizes []int
		wantErr   bool
	}{
		{name: "defaults", args: []string{"img"}, wantDir: "./resized", wantSizes: []int{1280, 640}},
		{name: "short flags", args: []string{"-d", "out", "-s", "80", "-s", "40", "img"}, wantDir: "out", wantSizes: []int{80, 40}},
		{name: "long flags", args: []string{"img", "--directory=out", "--sizes=300,150"}, wantDir: "out", wantSizes: []int{300, 150}},
		{name: "missing target", args: []string{"-s", "80"}, wantErr: true},
		{name: "two targets", args: []string{"a", "b"}, wantErr: true},
		{name: "malformed size", args: []string{"-s", "big", "img"}, wantErr: true},
		{name: "unknown flag", args: []string{"--quality", "90", "img"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			opts, err := parseArgs(tt.args, &stderr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "img", opts.target)
			assert.Equal(t, tt.wantDir, opts.directory)
			assert.Equal(t, tt.wantSizes, opts.sizes)
		})
	}
}

func TestRunExitCodes(t *testing.T) {
	src := t.TempDir()
	writeTestPNG(t, filepath.Join(src, "a.png"), 100, 50)

	notDir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notDir, nil, 0o644))

	corrupt := filepath.Join(t.TempDir(), "bad.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("garbage"), 0o644))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"success", []string{"-d", filepath.Join(t.TempDir(), "out"), "-s", "80,40", src}, exitOK},
		{"help", []string{"--help"}, exitOK},
		{"version", []string{"--version"}, exitOK},
		{"usage error", []string{}, exitUsage},
		{"missing target", []string{filepath.Join(src, "missing")}, exitFailure},
		{"output not a directory", []string{"-d", notDir, src}, exitFailure},
		{"non-positive size", []string{"-s", "0", src}, exitFailure},
		{"corrupt image", []string{"-d", t.TempDir(), corrupt}, exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, run(tt.args, &stdout, &stderr))
		})
	}
}

func TestRunPrintsResizedLines(t *testing.T) {
	src := t.TempDir()
	writeTestPNG(t, filepath.Join(src, "a.png"), 100, 50)
	out := filepath.Join(t.TempDir(), "out")

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-d", out, "-s", "80", "-s", "40", src}, &stdout, &stderr))

	assert.Equal(t, "Resized \"a_80.jpg\"\nResized \"a_40.jpg\"\n", stdout.String())
	assert.FileExists(t, filepath.Join(out, "a_80.jpg"))
	assert.FileExists(t, filepath.Join(out, "a_40.jpg"))
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-V"}, &stdout, &stderr))
	assert.Equal(t, "thumbs dev\n", stdout.String())
}

func TestRunDiagnosticIsOneLine(t *testing.T) {
	corrupt := filepath.Join(t.TempDir(), "bad.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("garbage"), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitFailure, run([]string{"-d", t.TempDir(), corrupt}, &stdout, &stderr))

	msg := stderr.String()
	assert.Equal(t, 1, strings.Count(msg, "\n"), msg)
	assert.Contains(t, msg, "Failed to resize image")
	assert.Contains(t, msg, "bad.jpg")
	assert.Contains(t, msg, `"error": "`, "the cause is logged as an error field")
	assert.Empty(t, stdout.String())
}
