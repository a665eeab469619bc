package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *Logger) { l.FileConverted("a.md", "b.md") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *Logger) { l.RepoUnavailable(errors.New("no remote")) },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *Logger) { l.RepoUnavailable(errors.New("no remote")) },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(New(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestFieldsInOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel)

	l.Skipped("notes/draft.txt", "not a file")

	out := buf.String()
	for _, want := range []string{"skipping", "notes/draft.txt", "not a file"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestOpenWithLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ztoq.log")

	var buf bytes.Buffer
	l, cleanup, err := Open(&buf, path, log.InfoLevel)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	l.FileConverted("in.md", "out.md")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "out.md") {
		t.Errorf("log file missing entry: %q", data)
	}
	if !strings.Contains(buf.String(), "out.md") {
		t.Errorf("writer missing entry: %q", buf.String())
	}
}

func TestOpenWithoutLogFile(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup, err := Open(&buf, "", log.InfoLevel)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer cleanup()

	l.Info("hello")
	if buf.Len() == 0 {
		t.Error("expected output on writer")
	}
}
