package tool

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultHeadLines = 10

// FileHeadTool returns the first N lines of a file. Input is the file path,
// optionally followed by a line count: "example.txt 10".
type FileHeadTool struct {
	// AllowedDir, when set, restricts reads to paths under this directory.
	AllowedDir string
}

func (t *FileHeadTool) Name() string { return "file_head" }

func (t *FileHeadTool) Description() string {
	return "Read the first lines of a text file. Input: a file path, optionally followed by the number of lines."
}

func (t *FileHeadTool) Invoke(_ context.Context, input string) (string, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", fmt.Errorf("file_head: a file path is required")
	}

	path := fields[0]
	n := defaultHeadLines
	if len(fields) > 1 {
		parsed, err := strconv.Atoi(fields[1])
		if err != nil || parsed <= 0 {
			return "", fmt.Errorf("file_head: invalid line count %q", fields[1])
		}
		n = parsed
	}

	// Relative paths resolve against the allowed directory when one is set.
	if t.AllowedDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(t.AllowedDir, path)
	}
	abs, err := checkPath(path, t.AllowedDir)
	if err != nil {
		return "", fmt.Errorf("file_head: %w", err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("file_head: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for len(lines) < n && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("file_head: read %s: %w", path, err)
	}
	return strings.Join(lines, "\n"), nil
}

// checkPath validates that path is under allowedDir (if set).
func checkPath(path, allowedDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if allowedDir != "" {
		allowed, _ := filepath.Abs(allowedDir)
		if !strings.HasPrefix(abs, allowed+string(filepath.Separator)) && abs != allowed {
			return "", fmt.Errorf("path %q is outside allowed directory %q", abs, allowed)
		}
	}
	return abs, nil
}
