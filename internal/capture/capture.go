// Package capture models the screen-capture collaborator. The capture
// mechanics themselves live in the UI process; it drops PNG artifacts into a
// shared directory, and this package reads the freshest one and cleans up
// stale ones.
package capture

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Provider supplies a base64-encoded PNG of the pet's surroundings, or ""
// when nothing is available. Callers treat "" as "send text only".
type Provider interface {
	Capture() (string, error)
}

// DirProvider serves the newest PNG artifact from a directory.
type DirProvider struct {
	Dir string
}

// Capture returns the newest .png in the directory, base64-encoded.
// An empty or missing directory yields "" with no error.
func (p *DirProvider) Capture() (string, error) {
	newest, err := newestPNG(p.Dir)
	if err != nil || newest == "" {
		return "", err
	}

	data, err := os.ReadFile(newest)
	if err != nil {
		return "", fmt.Errorf("read capture %s: %w", newest, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func newestPNG(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read capture dir: %w", err)
	}

	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
		}
	}
	return newest, nil
}

// Purge deletes PNG artifacts older than the retention window, measured from
// now. It returns how many files were removed.
func Purge(dir string, retention time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read capture dir: %w", err)
	}

	cutoff := now.Add(-retention)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return removed, fmt.Errorf("remove %s: %w", e.Name(), err)
			}
			removed++
		}
	}
	return removed, nil
}
