// Package exporter writes full backups of a store to the filesystem.
//
// A backup is the store's bundle as indented JSON plus a sidecar file
// "<backup>.sha256" in sha256sum format, which the importer verifies.
package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/service"
)

// ErrDegraded is returned when the store could not be read. Writing the
// empty snapshot would produce a backup that restores to nothing.
var ErrDegraded = errors.New("storage unavailable, backup not written")

// ChecksumSuffix is appended to a backup path to name its checksum file.
const ChecksumSuffix = ".sha256"

// Options configures an export operation.
type Options struct {
	Force bool // Overwrite existing files
}

// Result contains the outcome of an export operation.
type Result struct {
	Path      string `json:"path"`
	Checksum  string `json:"checksum"`
	Documents int    `json:"documents"`
	Tags      int    `json:"tags"`
	Settings  int    `json:"settings"`
}

// BackupName returns the file name used when exporting into a directory,
// e.g. anondocs-backup-2026-03-01T09-00-00-000Z.json.
func BackupName(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("anondocs-backup-%s-%03dZ.json", t.Format("2006-01-02T15-04-05"), t.Nanosecond()/int(time.Millisecond))
}

// Run exports the store to dst. If dst is an existing directory the backup
// is written inside it under BackupName.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	res, err := svc.Export(ctx)
	if err != nil {
		return result, err
	}
	if res.Degraded {
		return result, fmt.Errorf("%w: %w", ErrDegraded, res.Cause)
	}

	data, err := json.MarshalIndent(res.Value, "", "  ")
	if err != nil {
		return result, fmt.Errorf("encode backup: %w", err)
	}

	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, BackupName(svc.Now()))
	}
	dir, name := filepath.Dir(dst), filepath.Base(dst)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return result, fmt.Errorf("creating directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return result, fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	sum := crypto.Hash(data)
	if err := writeFileInRoot(root, name, data, opts.Force); err != nil {
		return result, err
	}
	line := []byte(sum + "  " + name + "\n")
	if err := writeFileInRoot(root, name+ChecksumSuffix, line, true); err != nil {
		return result, err
	}

	result = Result{
		Path:      dst,
		Checksum:  sum,
		Documents: len(res.Value.Documents),
		Tags:      len(res.Value.Tags),
		Settings:  len(res.Value.Settings),
	}
	fmt.Fprintf(w, "Exported %d documents -> %s\n", result.Documents, dst)
	return result, nil
}

// writeFileInRoot writes content to a file within an os.Root, safely
// preventing path traversal. Backups hold ciphertext and private notes,
// so they are readable by the owner only.
func writeFileInRoot(root *os.Root, name string, content []byte, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}
