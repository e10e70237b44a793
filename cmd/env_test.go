// The cmd package is tested end to end: each test builds the binary once
// and runs it against a fresh store in a temp directory, exercising command
// parsing, the service layer and SQLite together.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the anondocs binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "anondocs-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "anondocs"
		if os.PathSeparator == '\\' {
			binaryName = "anondocs.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		projectRoot := filepath.Dir(mustGetwd())
		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testPassword satisfies the minimum password length.
const testPassword = "correct horse"

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a temporary directory with an initialised store. HOME
// points at a second temp directory so global config and the audit log
// stay out of the real one.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
	env.run("init")
	return env
}

func (e *testEnv) command(extraEnv []string, input *string, args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, PasswordEnv+"=")
	cmd.Env = append(cmd.Env, extraEnv...)
	if input != nil {
		cmd.Stdin = strings.NewReader(*input)
	}
	return cmd
}

// run executes anondocs and returns combined output, failing on error.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("anondocs %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes anondocs and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(nil, nil, args...).CombinedOutput()
	return string(out), err
}

// runStdin executes anondocs with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("anondocs %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes anondocs with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(nil, &input, args...).CombinedOutput()
	return string(out), err
}

// runPw executes anondocs with the password supplied through the
// environment.
func (e *testEnv) runPw(password, input string, args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command([]string{PasswordEnv + "=" + password}, &input, args...).CombinedOutput()
	return string(out), err
}

// stdout executes anondocs and returns stdout only.
func (e *testEnv) stdout(args ...string) string {
	e.t.Helper()
	out, err := e.command(nil, nil, args...).Output()
	if err != nil {
		e.t.Fatalf("anondocs %v failed: %v", args, err)
	}
	return string(out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// testGuideContent returns guide/guide.md as realistic document content.
func testGuideContent() string {
	content, err := os.ReadFile(filepath.Join(filepath.Dir(mustGetwd()), "guide", "guide.md"))
	if err != nil {
		panic("failed to read guide/guide.md for tests: " + err.Error())
	}
	return string(content)
}
