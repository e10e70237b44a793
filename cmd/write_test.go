package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.runStdin("# Hello", "write", "notes", "--title", "Notes")
		env.contains(out, "Wrote notes")

		env.equals(env.run("cat", "notes"), "# Hello")
	})

	t.Run("generated id", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.runStdin("content", "write", "-o", "json")

		var res struct {
			ID      string `json:"id"`
			Created bool   `json:"created"`
		}
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("Write(json) output %q: %v", out, err)
		}
		if res.ID == "" || !res.Created {
			t.Errorf("Write() = %+v, want new id", res)
		}
		env.equals(env.run("cat", res.ID), "content")
	})

	t.Run("update keeps title", func(t *testing.T) {
		env := newTestEnv(t)
		env.runStdin("v1", "write", "notes", "--title", "Notes")
		env.runStdin("v2", "write", "notes")

		env.equals(env.run("cat", "notes"), "v2")
		env.contains(env.run("ls"), "Notes")
	})

	t.Run("from file", func(t *testing.T) {
		env := newTestEnv(t)
		path := filepath.Join(env.dir, "in.md")
		if err := os.WriteFile(path, []byte(testGuideContent()), 0o644); err != nil {
			t.Fatal(err)
		}
		env.run("write", "guide", "-f", path)
		env.contains(env.run("cat", "guide", "--raw"), "# anondocs")
	})

	t.Run("tags replace and clear", func(t *testing.T) {
		env := newTestEnv(t)
		env.runStdin("x", "write", "notes", "--tag", "a,b")
		env.contains(env.run("ls", "-l"), "[a, b]")

		env.runStdin("x", "write", "notes", "--tag", "")
		if strings.Contains(env.run("ls", "-l"), "[a") {
			t.Error("Write(--tag '') tags still present, want cleared")
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.runStdinErr("x", "write", "bad/id"); err == nil {
			t.Error("Write(bad/id) error = nil, want error")
		}
	})
}

func TestWrite_Encrypted(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.runPw(testPassword, "secret body", "write", "diary", "--encrypt"); err != nil {
		t.Fatalf("Write(--encrypt) failed: %v", err)
	}

	t.Run("ls shows lock", func(t *testing.T) {
		env.contains(env.run("ls"), "[locked]")
	})

	t.Run("search ignores content", func(t *testing.T) {
		out := env.run("search", "secret")
		if strings.Contains(out, "diary") {
			t.Error("Search() matched encrypted content")
		}
	})

	t.Run("update needs password", func(t *testing.T) {
		if _, err := env.runStdinErr("new", "write", "diary"); err == nil {
			t.Error("Write(encrypted, no password) error = nil, want error")
		}
		out, err := env.runPw("wrong password", "new", "write", "diary")
		if err == nil {
			t.Error("Write(encrypted, wrong password) error = nil, want error")
		}
		env.contains(out, "incorrect password")
	})

	t.Run("password from stdin", func(t *testing.T) {
		env.runStdin(testPassword+"\nupdated body", "write", "diary", "--password-stdin")
		out, err := env.runPw(testPassword, "", "cat", "diary")
		if err != nil {
			t.Fatalf("Cat(diary) failed: %v\n%s", err, out)
		}
		env.equals(out, "updated body")
	})

	t.Run("weak password", func(t *testing.T) {
		if _, err := env.runPw("short", "x", "write", "weak", "--encrypt"); err == nil {
			t.Error("Write(weak password) error = nil, want error")
		}
	})
}
