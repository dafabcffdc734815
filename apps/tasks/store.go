// Copyright © 2026 Inkwire contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/tasks/store.go
// Summary: Task list backends: a markdown checklist file and a SQLite table.
// Usage: The tasks tile loads entries on every payload and toggles on touch.
// Notes: Entry indexes are positions in the loaded list; touch tokens carry them.

package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrNotATask   = errors.New("tasks: entry is not a task")
	ErrOutOfRange = errors.New("tasks: entry index out of range")
)

// Entry is one line of the list. Non-task entries are shown as plain text.
type Entry struct {
	Text   string
	IsTask bool
	Done   bool
}

// Store loads the list and flips the done state of one entry.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Toggle(ctx context.Context, index int) error
}

var taskLine = regexp.MustCompile(`^(\s*- \[)([ xX])(\] )(.+)$`)

// MarkdownStore reads a checklist in "- [ ] name" / "- [x] name" form.
type MarkdownStore struct {
	path string
}

func NewMarkdownStore(path string) *MarkdownStore {
	return &MarkdownStore{path: path}
}

func (s *MarkdownStore) Path() string {
	return s.path
}

func (s *MarkdownStore) lines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

func (s *MarkdownStore) Load(ctx context.Context) ([]Entry, error) {
	lines, err := s.lines()
	if err != nil {
		return nil, err
	}
	// A trailing newline is not an extra entry.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if m := taskLine.FindStringSubmatch(line); m != nil {
			entries[i] = Entry{Text: m[4], IsTask: true, Done: m[2] != " "}
			continue
		}
		entries[i] = Entry{Text: line}
	}
	return entries, nil
}

// Toggle rewrites only the marker of the selected line; the rest of the file
// is kept byte for byte.
func (s *MarkdownStore) Toggle(ctx context.Context, index int) error {
	lines, err := s.lines()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(lines) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	m := taskLine.FindStringSubmatchIndex(strings.TrimRight(lines[index], "\r"))
	if m == nil {
		return fmt.Errorf("%w: line %d", ErrNotATask, index)
	}
	line := []byte(lines[index])
	if line[m[4]] == ' ' {
		line[m[4]] = 'x'
	} else {
		line[m[4]] = ' '
	}
	lines[index] = string(line)
	return writeAtomic(s.path, []byte(strings.Join(lines, "\n")))
}

func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tasks-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
