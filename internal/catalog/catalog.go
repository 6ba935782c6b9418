// Package catalog implements the multi-database registry:
// a name -> base-filename mapping persisted as a single file, plus the
// create/delete/rename/use/backup/restore/export/import operations that
// manage the companion file pairs each entry points at.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/katalvlaran/graphdb/internal/lockfile"
	"github.com/katalvlaran/graphdb/internal/storage"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidName reports whether s is a legal database or attribute name at the
// catalog boundary.
func ValidName(s string) bool { return nameRe.MatchString(s) }

// Catalog owns the registry file and the directory its companion files
// live in.
type Catalog struct {
	dataDir      string
	registryPath string
	entries      map[string]string // name -> base filename

	active       string
	activeEngine *storage.Engine
}

// Open loads (or initializes empty) the registry at dataDir/registryFile,
// pruning entries whose companion files are missing or unparseable. The
// pruned registry is rewritten immediately.
func Open(dataDir, registryFile string) (*Catalog, error) {
	c := &Catalog{
		dataDir:      dataDir,
		registryPath: filepath.Join(dataDir, registryFile),
		entries:      make(map[string]string),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	c.prune()
	if err := c.saveRegistry(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) load() error {
	data, err := os.ReadFile(c.registryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return gerrors.IO("read registry", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Printf("graphdb: catalog: registry file is unparseable, starting from an empty registry: %v", err)
		c.entries = make(map[string]string)
	}
	return nil
}

func (c *Catalog) prune() {
	for name, base := range c.entries {
		nodes, indexes := companionPaths(c.dataDir, base)
		_, nodesErr := os.Stat(nodes)
		_, indexesErr := os.Stat(indexes)
		if os.IsNotExist(nodesErr) && os.IsNotExist(indexesErr) {
			log.Printf("graphdb: catalog: dropping registry entry %q, no companion files found", name)
			delete(c.entries, name)
			continue
		}
		if _, err := loadEngineValidated(c.dataDir, base); err != nil {
			log.Printf("graphdb: catalog: dropping registry entry %q, companion files failed to load: %v", name, err)
			delete(c.entries, name)
		}
	}
}

func (c *Catalog) saveRegistry() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return gerrors.IO("marshal registry", err)
	}
	return storage.WriteAtomicFile(c.registryPath, data)
}

func companionPaths(dataDir, base string) (nodes, indexes string) {
	trimmed := base
	if filepath.Ext(trimmed) == ".json" {
		trimmed = trimmed[:len(trimmed)-len(".json")]
	}
	return filepath.Join(dataDir, trimmed+"_nodes.json"), filepath.Join(dataDir, trimmed+"_indexes.json")
}

func loadEngineValidated(dataDir, base string) (*storage.Engine, error) {
	nodes, indexes := companionPaths(dataDir, base)
	return storage.OpenValidated(nodes, indexes)
}

// withLock acquires the registry's advisory lock for the duration of fn,
// surfacing lockfile.ErrLockBusy as a gerrors.StateError. Only
// CreateDatabase, DeleteDatabase and RenameDatabase run under it.
func (c *Catalog) withLock(fn func() error) error {
	lockPath := c.registryPath + ".lock"
	lk, err := lockfile.Acquire(lockPath)
	if err != nil {
		return err
	}
	defer lk.Release()
	return fn()
}

// CreateDatabase registers a new, empty database named name.
func (c *Catalog) CreateDatabase(name string) error {
	if !ValidName(name) {
		return gerrors.Validation("invalid database name %q", name)
	}
	return c.withLock(func() error {
		if _, exists := c.entries[name]; exists {
			return gerrors.Validation("database %q already exists", name)
		}
		base := name + ".json"
		c.entries[name] = base
		nodes, indexes := companionPaths(c.dataDir, base)
		e := storage.Open(nodes, indexes)
		if err := e.Flush(); err != nil {
			return err
		}
		return c.saveRegistry()
	})
}

// DeleteDatabase removes name's registry entry and its companion files.
func (c *Catalog) DeleteDatabase(name string) error {
	return c.withLock(func() error {
		base, ok := c.entries[name]
		if !ok {
			return gerrors.NotFound("unknown database %q", name)
		}
		nodes, indexes := companionPaths(c.dataDir, base)
		_ = os.Remove(nodes)
		_ = os.Remove(indexes)
		delete(c.entries, name)
		if c.active == name {
			c.active = ""
			c.activeEngine = nil
		}
		return c.saveRegistry()
	})
}

// RenameDatabase renames old to newName: both companion files, the
// registry entry, and the active selection if it pointed at old.
func (c *Catalog) RenameDatabase(old, newName string) error {
	if !ValidName(newName) {
		return gerrors.Validation("invalid database name %q", newName)
	}
	return c.withLock(func() error {
		base, ok := c.entries[old]
		if !ok {
			return gerrors.NotFound("unknown database %q", old)
		}
		if _, exists := c.entries[newName]; exists {
			return gerrors.Validation("database %q already exists", newName)
		}
		oldNodes, oldIndexes := companionPaths(c.dataDir, base)
		newBase := newName + ".json"
		newNodes, newIndexes := companionPaths(c.dataDir, newBase)
		if err := renameIfExists(oldNodes, newNodes); err != nil {
			return err
		}
		if err := renameIfExists(oldIndexes, newIndexes); err != nil {
			return err
		}
		delete(c.entries, old)
		c.entries[newName] = newBase
		if c.active == old {
			c.active = newName
		}
		return c.saveRegistry()
	})
}

func renameIfExists(oldPath, newPath string) error {
	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		return nil
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return gerrors.IO("rename companion file", err)
	}
	return nil
}

// ListDatabases returns every registered database name, in no particular
// order.
func (c *Catalog) ListDatabases() []string {
	out := make([]string, 0, len(c.entries))
	for name := range c.entries {
		out = append(out, name)
	}
	return out
}

// UseDatabase sets the active selection and opens (or reuses) its engine.
func (c *Catalog) UseDatabase(name string) (*storage.Engine, error) {
	base, ok := c.entries[name]
	if !ok {
		return nil, gerrors.NotFound("unknown database %q", name)
	}
	if c.active == name && c.activeEngine != nil {
		return c.activeEngine, nil
	}
	nodes, indexes := companionPaths(c.dataDir, base)
	e := storage.Open(nodes, indexes)
	c.active = name
	c.activeEngine = e
	return e, nil
}

// ActiveDatabase returns the currently selected database's name, or "" if
// none is selected.
func (c *Catalog) ActiveDatabase() string { return c.active }

// BackupDatabase copies name's companion files to dest (a base path
// without the `_nodes.json`/`_indexes.json` suffixes).
func (c *Catalog) BackupDatabase(name, dest string) error {
	base, ok := c.entries[name]
	if !ok {
		return gerrors.NotFound("unknown database %q", name)
	}
	srcNodes, srcIndexes := companionPaths(c.dataDir, base)
	dstNodes, dstIndexes := companionPaths("", dest)
	if err := copyFile(srcNodes, dstNodes); err != nil {
		return err
	}
	return copyFile(srcIndexes, dstIndexes)
}

// RestoreDatabase validates src's companion files as parseable, then
// overwrites name's companion files with them.
func (c *Catalog) RestoreDatabase(name, src string) error {
	base, ok := c.entries[name]
	if !ok {
		return gerrors.NotFound("unknown database %q", name)
	}
	srcNodes, srcIndexes := companionPaths("", src)
	if _, err := storage.OpenValidated(srcNodes, srcIndexes); err != nil {
		return fmt.Errorf("restore: source files do not validate: %w", err)
	}
	dstNodes, dstIndexes := companionPaths(c.dataDir, base)
	if err := copyFile(srcNodes, dstNodes); err != nil {
		return err
	}
	if err := copyFile(srcIndexes, dstIndexes); err != nil {
		return err
	}
	if c.active == name {
		c.activeEngine = nil
	}
	return nil
}

// ExportDatabase is an alias for BackupDatabase: both operate on the raw
// file pair.
func (c *Catalog) ExportDatabase(name, dest string) error {
	return c.BackupDatabase(name, dest)
}

// ImportDatabase imports src's companion files into name, either
// replacing its content (overwrite) or merging into it.
func (c *Catalog) ImportDatabase(name, src string, merge bool) error {
	base, ok := c.entries[name]
	if !ok {
		return gerrors.NotFound("unknown database %q", name)
	}
	srcNodes, srcIndexes := companionPaths("", src)
	dstNodes, dstIndexes := companionPaths(c.dataDir, base)
	e := storage.Open(dstNodes, dstIndexes)
	var err error
	if merge {
		err = e.ImportMerge(srcNodes, srcIndexes)
	} else {
		err = e.ImportOverwrite(srcNodes, srcIndexes)
	}
	if err != nil {
		return err
	}
	if c.active == name {
		c.activeEngine = e
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return gerrors.IO("read "+src, err)
	}
	if err := storage.WriteAtomicFile(dst, data); err != nil {
		return err
	}
	return nil
}
