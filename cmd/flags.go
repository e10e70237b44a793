/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// the variables, so they never couple to cobra internals.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output        string
	author        string
	db            string
	dir           string
	passwordStdin bool
)

// out is the output writer for commands. Defaults to os.Stdout.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the configured author name, used for audit attribution.
func Author() string { return author }

// DB returns the resolved database name.
// Priority: --db flag > ANONDOCS_DB env var > empty (default).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv("ANONDOCS_DB")
}

// Dir returns the explicit project directory if set.
// Priority: --dir flag > ANONDOCS_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv("ANONDOCS_DIR")
}

// PasswordStdin reports whether the password is read from stdin.
func PasswordStdin() bool { return passwordStdin }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// UserError rewrites err for display. Crypto failures become "incorrect
// password" and storage write failures "failed to save"; the audit log
// keeps the detail.
func UserError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, crypto.ErrDecryptionFailed) ||
		errors.Is(err, crypto.ErrInvalidEnvelope) ||
		errors.Is(err, crypto.ErrCrypto) {
		return errors.New(crypto.UserMessage(err))
	}
	var se *document.SaveError
	if errors.As(err, &se) {
		return se
	}
	return err
}

// Fail logs err against the audit builder and returns it ready for cobra:
// rewritten by UserError and printed as JSON when requested.
func Fail(b *log.Builder, err error) error {
	b.Write(err)
	return PrintJSONError(UserError(err))
}

// detectAuthor resolves the author for audit attribution.
// Returns empty string when config is missing or has no author set.
func detectAuthor() string {
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database name (e.g., work for anondocs-work.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Project directory (skip discovery, use explicit path)")
	rootCmd.PersistentFlags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from the first line of stdin")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
