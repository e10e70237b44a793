package cmd

import (
	"strings"
	"testing"
)

func TestTag(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		env := newTestEnv(t)
		env.runStdin("content", "write", "readme")

		out := env.run("tag", "add", "readme", "important", "v1")
		env.contains(out, "important")

		out = env.run("tag", "ls")
		env.contains(out, "important")
		env.contains(out, "v1")
	})

	t.Run("add duplicate is idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		env.runStdin("content", "write", "readme")
		env.run("tag", "add", "readme", "v1")
		env.run("tag", "add", "readme", "v1")

		out := env.run("tag", "ls")
		env.contains(out, "1  v1")
	})

	t.Run("invalid", func(t *testing.T) {
		env := newTestEnv(t)
		env.runStdin("content", "write", "readme")
		if _, err := env.runErr("tag", "add", "readme", "a,b"); err == nil {
			t.Error("Tag(a,b) error = nil, want error")
		}
	})
}

func TestTag_Remove(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin("content", "write", "readme")
	env.run("tag", "add", "readme", "draft", "wip")

	out := env.run("tag", "rm", "readme", "draft", "-o", "json")
	env.contains(out, `"action":"remove"`)
	if strings.Contains(out, `"draft"`) {
		t.Error("Tag(rm) draft still present, want removed")
	}

	// The tag stays in the index with no documents.
	out = env.run("tag", "ls")
	env.contains(out, "0  draft")
	env.contains(out, "1  wip")
}

func TestTag_CountsFollowDelete(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin("a", "write", "d1", "--tag", "shared")
	env.runStdin("b", "write", "d2", "--tag", "shared")
	env.contains(env.run("tag", "ls"), "2  shared")

	env.run("rm", "d1")
	env.contains(env.run("tag", "ls"), "1  shared")
}
