package session

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func TestGenerateSessionID(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

	id := generateSessionID(now, "data/urls.csv", "URL", "Traffic")
	if !regexp.MustCompile(`^2026-10-17T09-30-[0-9a-f]{12}$`).MatchString(id) {
		t.Errorf("generateSessionID() = %q, unexpected format", id)
	}

	if again := generateSessionID(now, "./data/urls.csv", "URL", "Traffic"); again != id {
		t.Errorf("cleaned path gave %q, want %q", again, id)
	}
	if other := generateSessionID(now, "data/urls.csv", "Link", "Traffic"); other == id {
		t.Error("different columns produced the same ID")
	}
}

func TestUpdateRunIndex(t *testing.T) {
	dir := t.TempDir()

	older := RunInfo{SessionID: "2026-10-16T08-00-aaaaaaaaaaaa", TotalRows: 3}
	newer := RunInfo{SessionID: "2026-10-17T08-00-bbbbbbbbbbbb", TotalRows: 5}

	for _, info := range []RunInfo{older, newer} {
		if err := UpdateRunIndex(dir, info); err != nil {
			t.Fatalf("UpdateRunIndex() error = %v", err)
		}
	}

	// Re-running updates in place
	older.TotalRows = 4
	if err := UpdateRunIndex(dir, older); err != nil {
		t.Fatalf("UpdateRunIndex() error = %v", err)
	}

	index, err := ReadRunIndex(dir)
	if err != nil {
		t.Fatalf("ReadRunIndex() error = %v", err)
	}
	if len(index.Runs) != 2 {
		t.Fatalf("len(Runs) = %d, want 2", len(index.Runs))
	}
	if index.Runs[0].SessionID != newer.SessionID {
		t.Errorf("Runs[0] = %q, want newest first", index.Runs[0].SessionID)
	}
	if index.Runs[1].TotalRows != 4 {
		t.Errorf("Runs[1].TotalRows = %d, want 4", index.Runs[1].TotalRows)
	}
}

func TestReadRunIndex_Missing(t *testing.T) {
	index, err := ReadRunIndex(t.TempDir())
	if err != nil {
		t.Fatalf("ReadRunIndex() error = %v", err)
	}
	if len(index.Runs) != 0 {
		t.Errorf("len(Runs) = %d, want 0", len(index.Runs))
	}
}

func TestRunExists(t *testing.T) {
	dir := t.TempDir()
	id := "2026-10-17T08-00-bbbbbbbbbbbb"
	if RunExists(dir, id) {
		t.Fatal("RunExists() = true before the directory exists")
	}
	if err := os.MkdirAll(GetRunDir(dir, id), 0755); err != nil {
		t.Fatal(err)
	}
	if !RunExists(dir, id) {
		t.Error("RunExists() = false after the directory exists")
	}
}

func TestNextSessionID(t *testing.T) {
	dir := t.TempDir()
	id := "2026-10-17T08-00-bbbbbbbbbbbb"

	tests := []struct {
		name string
		want string
	}{
		{"free", id},
		{"taken once", id + "-2"},
		{"taken twice", id + "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSessionID(dir, id)
			if got != tt.want {
				t.Fatalf("NextSessionID() = %q, want %q", got, tt.want)
			}
			if err := os.Mkdir(filepath.Join(dir, got), 0755); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGenerateFieldsReference_NoOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "FIELDS.yaml")
	if err := os.WriteFile(path, []byte("custom"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := GenerateFieldsReference(dir); err != nil {
		t.Fatalf("GenerateFieldsReference() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "custom" {
		t.Errorf("FIELDS.yaml overwritten: %q", data)
	}
}

func TestPreview(t *testing.T) {
	if got := Preview([]string{"a", "b", "c", "d"}, 3); len(got) != 3 {
		t.Errorf("Preview() len = %d, want 3", len(got))
	}
	if got := Preview([]string{"a"}, 3); len(got) != 1 {
		t.Errorf("Preview() len = %d, want 1", len(got))
	}
}
