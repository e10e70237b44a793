/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// password.go resolves document passwords for commands.
//
// Sources, in order: the first line of stdin (--password-stdin), the
// ANONDOCS_PASSWORD environment variable, then an interactive prompt on
// the terminal. Passwords never come from flags: they would land in shell
// history and the process list.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// PasswordEnv names the environment variable holding a password.
const PasswordEnv = "ANONDOCS_PASSWORD"

var (
	// ErrNoPassword is returned when a password is needed and no source has one.
	ErrNoPassword = errors.New("password required (use --password-stdin, " + PasswordEnv + " or a terminal)")
	// ErrPasswordMismatch is returned when the confirmation prompt differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

var (
	stdinOnce   sync.Once
	stdinReader *bufio.Reader

	pwOnce sync.Once
	pwLine string
	pwErr  error
)

// Stdin returns the shared stdin reader. With --password-stdin the
// password line has already been consumed when a password was asked for,
// so content reads see only what follows it.
func Stdin() io.Reader {
	stdinOnce.Do(func() { stdinReader = bufio.NewReader(os.Stdin) })
	return stdinReader
}

// StdinIsTerminal reports whether stdin is interactive.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Password returns a password for an existing document.
func Password(prompt string) (string, error) {
	if pw, ok, err := nonInteractivePassword(); ok || err != nil {
		return pw, err
	}
	if !StdinIsTerminal() {
		return "", ErrNoPassword
	}
	return readTerminal(prompt)
}

// NewPassword returns a password for encrypting. On a terminal it asks
// twice and the entries must match.
func NewPassword() (string, error) {
	if pw, ok, err := nonInteractivePassword(); ok || err != nil {
		return pw, err
	}
	if !StdinIsTerminal() {
		return "", ErrNoPassword
	}
	pw, err := readTerminal("New password: ")
	if err != nil {
		return "", err
	}
	confirm, err := readTerminal("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", ErrPasswordMismatch
	}
	return pw, nil
}

func nonInteractivePassword() (string, bool, error) {
	if passwordStdin {
		pwOnce.Do(func() {
			Stdin()
			line, err := stdinReader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				pwErr = fmt.Errorf("read password: %w", err)
				return
			}
			pwLine = strings.TrimRight(line, "\r\n")
			if pwLine == "" {
				pwErr = ErrNoPassword
			}
		})
		return pwLine, true, pwErr
	}
	if pw, ok := os.LookupEnv(PasswordEnv); ok && pw != "" {
		return pw, true, nil
	}
	return "", false, nil
}

// readTerminal prompts on stderr so stdout stays clean for pipes.
func readTerminal(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(b) == 0 {
		return "", ErrNoPassword
	}
	return string(b), nil
}
