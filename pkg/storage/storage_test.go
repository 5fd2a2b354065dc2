package storage

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
)

func TestStorage_RunDirAndFiles(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "output"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	dir, err := s.RunDir("2026-10-17T09-30-abcdef")
	if err != nil {
		t.Fatalf("RunDir() error = %v", err)
	}

	path := filepath.Join(dir, "by_section.csv")
	if s.HasFile(path) {
		t.Fatal("HasFile() = true before write")
	}

	err = s.WriteWith(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "section,Total_Traffic\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteWith() error = %v", err)
	}

	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "section,Total_Traffic\n" {
		t.Errorf("ReadFile() = %q", data)
	}
}

func TestStorage_RunDirExclusive(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := s.RunDir("2026-10-17T09-30-abcdef"); err != nil {
		t.Fatalf("RunDir() error = %v", err)
	}
	if _, err := s.RunDir("2026-10-17T09-30-abcdef"); !errors.Is(err, ErrRunDirExists) {
		t.Errorf("second RunDir() error = %v, want ErrRunDirExists", err)
	}
}

func TestStorage_WriteWithError(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	boom := errors.New("boom")
	err = s.WriteWith(filepath.Join(s.BaseDir, "x.csv"), func(io.Writer) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("WriteWith() error = %v, want wrapped boom", err)
	}
}
