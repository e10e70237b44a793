package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin("plain", "write", "a", "--tag", "keep")
	if _, err := env.runPw(testPassword, "secret", "write", "b", "--encrypt"); err != nil {
		t.Fatal(err)
	}

	backup := filepath.Join(env.dir, "backup.json")
	out := env.run("export", backup)
	env.contains(out, "Exported 2 documents")
	if _, err := os.Stat(backup + ".sha256"); err != nil {
		t.Fatalf("Export() checksum missing: %v", err)
	}

	t.Run("no overwrite", func(t *testing.T) {
		if _, err := env.runErr("export", backup); err == nil {
			t.Error("Export(existing) error = nil, want error")
		}
		env.run("export", backup, "--force")
	})

	env.run("rm", "a", "b")

	t.Run("dry run", func(t *testing.T) {
		env.contains(env.run("import", backup, "--dry-run"), "Would import 2 documents")
		env.equals(env.run("ls"), "")
	})

	t.Run("restore", func(t *testing.T) {
		env.contains(env.run("import", backup), "Imported 2 documents")
		env.equals(env.run("cat", "a"), "plain")
		env.contains(env.run("ls", "--tag", "keep"), "a")

		out, err := env.runPw(testPassword, "", "cat", "b")
		if err != nil {
			t.Fatalf("Cat(imported encrypted) failed: %v\n%s", err, out)
		}
		env.equals(out, "secret")
	})

	t.Run("tampered", func(t *testing.T) {
		if err := os.WriteFile(backup, []byte(`{"documents":[],"tags":[],"settings":[]}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := env.runErr("import", backup); err == nil {
			t.Error("Import(tampered) error = nil, want checksum error")
		}
	})
}

func TestExport_Directory(t *testing.T) {
	env := newTestEnv(t)
	env.runStdin("x", "write", "a")

	dir := filepath.Join(env.dir, "backups")
	if err := os.Mkdir(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	env.run("export", dir)

	matches, err := filepath.Glob(filepath.Join(dir, "anondocs-backup-*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("Export(dir) files = %v, %v; want one backup", matches, err)
	}
}
