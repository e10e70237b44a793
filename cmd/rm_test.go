package cmd

import (
	"strings"
	"testing"
)

func TestRm(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin("a", "write", "d1")
	env.runStdin("b", "write", "d2")

	out := env.run("rm", "d1", "d2")
	env.contains(out, "Deleted d1")
	env.contains(out, "Deleted d2")

	if strings.TrimSpace(env.run("ls")) != "" {
		t.Error("Ls(after rm) not empty")
	}
	if _, err := env.runErr("rm", "d1"); err == nil {
		t.Error("Rm(missing) error = nil, want error")
	}
}
