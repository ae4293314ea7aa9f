package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created documents.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename, so a failed save leaves the original untouched.
// A zero mode keeps the mode of an existing file, or DefaultFileMode for a
// new one. It returns a snapshot of the written file.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
		if stat, err := os.Stat(path); err == nil {
			mode = stat.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return nil, classifyWrite(path, "create temp file", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return nil, fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, classifyWrite(path, "rename temp file", err)
	}
	success = true

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return snapshot(path, stat, content), nil
}

func classifyWrite(path, op string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %s: %w", ErrNotFound, op, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %s: %w", ErrPermissionDenied, op, path, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
