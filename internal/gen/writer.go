package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes files into outputDir, creating it when missing, and
// returns how many were written. A file whose content on disk already matches
// is skipped so its modification time stays put.
func WriteFiles(files []GeneratedFile, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	written := 0

	for _, file := range files {
		target := filepath.Join(outputDir, file.Filename)

		if current, err := os.ReadFile(target); err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err := replaceFile(target, file.Content); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written++
	}

	return written, nil
}

// replaceFile writes content next to path and renames it into place, so
// readers never observe a partially written file.
func replaceFile(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
