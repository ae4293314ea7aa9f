package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Target is a resolved command-line path.
type Target struct {
	// Path is the path as given.
	Path string

	// IsDir is true in directory mode.
	IsDir bool

	// Files are the Markdown files to check, in processing order.
	Files []string
}

// Resolve classifies path and, for a directory, discovers its Markdown files.
// A missing path yields an error matching ErrNotFound.
func Resolve(ctx context.Context, path string) (*Target, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &FileError{Path: path, Op: "stat", Err: err}
	}

	switch {
	case info.IsDir():
		files, err := Discover(ctx, path)
		if err != nil {
			return nil, err
		}
		return &Target{Path: path, IsDir: true, Files: files}, nil
	case info.Mode().IsRegular():
		return &Target{Path: path, Files: []string{path}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
}

// Discover lists the regular files with the .md extension directly inside
// dir. Subdirectories are not entered. Order is directory enumeration order.
func Discover(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileError{Path: dir, Op: "read directory", Err: err}
	}

	var files []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		if filepath.Ext(entry.Name()) != MarkdownExtension {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if isRegularFile(path, entry) {
			files = append(files, path)
		}
	}
	return files, nil
}

// isRegularFile follows symlinks so that links to Markdown files are checked.
func isRegularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
