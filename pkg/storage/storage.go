package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage writes run artifacts under a base output directory.
type Storage struct {
	BaseDir string
}

// New creates the base directory if it does not exist.
func New(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Storage{BaseDir: baseDir}, nil
}

// ErrRunDirExists is returned when a run directory is already taken.
var ErrRunDirExists = errors.New("run directory already exists")

// RunDir creates the directory for one run. It fails with ErrRunDirExists
// rather than reuse a directory, so runs never overwrite each other.
func (s *Storage) RunDir(runID string) (string, error) {
	dir := filepath.Join(s.BaseDir, runID)
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create run directory %s: %w", dir, ErrRunDirExists)
		}
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	err := os.WriteFile(filePath, content, 0644)
	if err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	return nil
}

// WriteWith creates filePath and hands it to write. The file is closed
// before WriteWith returns; a close error is reported if write succeeded.
func (s *Storage) WriteWith(filePath string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing file: %w", cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("error writing %s: %w", filepath.Base(filePath), err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(fn string) bool {
	return fileExists(fn)
}
