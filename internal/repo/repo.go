// Package repo provides store initialisation and discovery for anondocs.
//
// A store is a .anondocs directory containing one or more SQLite databases.
// This package handles:
//   - Initialising new stores (creating .anondocs/ and the database)
//   - Discovering existing stores by walking up the directory tree
//   - Managing multiple named databases (anondocs.db, anondocs-work.db, etc.)
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .anondocs directory containing the target
// database is found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/share"
	"github.com/jpl-au/anondocs/internal/store"
)

const (
	// Dir is the directory name for the store.
	Dir = config.Dir
	// DBFile is the default database filename.
	DBFile = "anondocs.db"
)

// gitignore keeps every file in the store directory out of version
// control: databases hold private documents and live share tokens.
const gitignore = `# anondocs - documents and share tokens are private
*
`

// DBFileName returns the database filename for a given name.
// Empty name returns the default "anondocs.db".
// A name like "work" returns "anondocs-work.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "anondocs-" + name + ".db"
}

// ErrNotInitialised is returned when no store is found.
var ErrNotInitialised = errors.New("anondocs not initialised (run 'anondocs init')")

// Init creates a new database with the document and share schemas.
//
// Parameters:
//   - force: reinitialise an existing database (its contents are lost)
//   - db: database name (empty for default "anondocs.db")
//   - dir: target directory (empty for current directory)
func Init(force bool, db string, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	storeDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(storeDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return "", fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(storeDir, 0700); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}
	if err := share.New(s.DB()).Init(); err != nil {
		return "", fmt.Errorf("init shares: %w", err)
	}

	ignore := filepath.Join(storeDir, ".gitignore")
	if _, err := os.Stat(ignore); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(ignore, []byte(gitignore), 0644); err != nil {
			return "", fmt.Errorf("write gitignore: %w", err)
		}
	}

	return dbPath, nil
}

// Discover walks up the directory tree looking for a database.
// The db parameter specifies which database to find (empty for default).
// Returns the full path to the database if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the store directory, walking up the tree.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		storeDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(storeDir); err == nil && info.IsDir() {
			return storeDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name string `json:"name"` // Short name (empty for default, "work" for anondocs-work.db)
	File string `json:"file"`
	Path string `json:"path"`
}

// ListDBs returns all databases in the store directory.
// If dir is empty, discovers the directory from the working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover %s directory: %w", Dir, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s directory: %w", Dir, err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}

		var name string
		switch {
		case e.Name() == DBFile:
		case strings.HasPrefix(e.Name(), "anondocs-"):
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), "anondocs-"), ".db")
		default:
			continue
		}
		dbs = append(dbs, DBInfo{Name: name, File: e.Name(), Path: filepath.Join(dir, e.Name())})
	}
	return dbs, nil
}
