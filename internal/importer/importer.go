// Package importer restores backups written by the exporter.
//
// Import replaces the whole store. When a "<backup>.sha256" file sits next
// to the backup its checksum must match before anything is touched.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/exporter"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
)

// ErrChecksumMismatch is returned when a backup does not match its sidecar.
var ErrChecksumMismatch = errors.New("backup checksum mismatch")

// Options configures an import operation.
type Options struct {
	NoVerify bool // Skip the checksum check
	DryRun   bool // Show what would be imported without importing
}

// Result contains the outcome of an import operation.
type Result struct {
	Documents int  `json:"documents"`
	Tags      int  `json:"tags"`
	Settings  int  `json:"settings"`
	Verified  bool `json:"verified"` // checksum file present and matched
	DryRun    bool `json:"dry_run,omitempty"`
}

// Run reads the backup at src and replaces the store's contents with it.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result

	data, err := os.ReadFile(src)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", src, err)
	}

	if !opts.NoVerify {
		ok, err := verify(src, data)
		if err != nil {
			return result, err
		}
		result.Verified = ok
		if !ok {
			fmt.Fprintf(w, "No checksum file for %s, skipping verification\n", src)
		}
	}

	b, err := Decode(data)
	if err != nil {
		return result, err
	}
	result.Documents = len(b.Documents)
	result.Tags = len(b.Tags)
	result.Settings = len(b.Settings)

	if opts.DryRun {
		result.DryRun = true
		fmt.Fprintf(w, "Would import %d documents, %d tags, %d settings from %s\n",
			result.Documents, result.Tags, result.Settings, src)
		return result, nil
	}

	if err := svc.Import(ctx, b); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "Imported %d documents from %s\n", result.Documents, src)
	return result, nil
}

// Decode parses a backup bundle.
func Decode(data []byte) (store.Bundle, error) {
	var b store.Bundle
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&b); err != nil {
		return store.Bundle{}, fmt.Errorf("decode backup: %w", err)
	}
	return b, nil
}

// verify checks data against the sidecar checksum. It reports false when
// there is no sidecar.
func verify(src string, data []byte) (bool, error) {
	line, err := os.ReadFile(src + exporter.ChecksumSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading checksum: %w", err)
	}
	fields := strings.Fields(string(line))
	if len(fields) == 0 || !crypto.VerifyIntegrity(data, fields[0]) {
		return false, fmt.Errorf("%w: %s", ErrChecksumMismatch, src)
	}
	return true, nil
}
