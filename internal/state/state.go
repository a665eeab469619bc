// Package state tracks source files between conversions so watch mode only
// reconverts when content actually changed.
package state

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileState represents the last converted version of a single file
type FileState struct {
	MTime int64
	Hash  string
}

// State holds the per-file fingerprints. It is not safe for concurrent use.
type State struct {
	Files map[string]*FileState
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged checks if a file has changed since it was last recorded
// Uses hybrid mtime + hash approach
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	fileState, exists := s.Files[path]
	if !exists {
		return true, nil
	}

	// Fast path: check mtime first
	if info.ModTime().UnixNano() == fileState.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	if hash == fileState.Hash {
		// touched without edits; remember the new mtime
		fileState.MTime = info.ModTime().UnixNano()
		return false, nil
	}
	return true, nil
}

// Update records the current fingerprint of path
func (s *State) Update(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Files[path] = &FileState{
		MTime: info.ModTime().UnixNano(),
		Hash:  hash,
	}

	return nil
}

// Forget drops path from the state
func (s *State) Forget(path string) {
	delete(s.Files, path)
}
