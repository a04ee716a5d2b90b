package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintfWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.Printf("game %s finished\n", "abc")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["message"] != "game abc finished" || entry["level"] != "info" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("missing timestamp: %v", entry)
	}
}

func TestNewCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Zerolog().Warn().Int("players", 9).Msg("table")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".shxl", "logs", "shxl.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"players":9`) {
		t.Fatalf("missing field: %s", data)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Printf("nothing")
	l.Zerolog().Info().Msg("nothing")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}
