package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lockstep/internal/introspect"
)

// Conventional directory names searched under the project root when no
// explicit path is given.
var conventionalDirs = []string{"xml", "XML"}

// DirError reports a document directory that could not be used.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("cannot read introspection directory %s: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// Locate picks the introspection XML directory. override wins over explicit,
// which wins over the xml/ or XML/ convention under root. The override is an
// explicit value threaded in by the caller; this package never reads the
// process environment itself.
func Locate(root, explicit, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if explicit != "" {
		return explicit, nil
	}
	for _, name := range conventionalDirs {
		dir := filepath.Join(root, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no introspection directory found: tried %s and %s under %s",
		conventionalDirs[0], conventionalDirs[1], root)
}

// LoadDir parses every .xml file in dir into a document set. Files are
// visited in lexical order so resolution over the set is deterministic. A
// malformed document fails the whole load, naming the offending file.
func LoadDir(dir string) (*introspect.Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirError{Dir: dir, Err: err}
	}

	set := introspect.NewSet()
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		set.Add(doc)
	}
	return set, nil
}

// LoadFile parses a single introspection document, using the path as its
// identity.
func LoadFile(path string) (*introspect.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DirError{Dir: filepath.Dir(path), Err: err}
	}
	defer f.Close()
	return introspect.Parse(f, path)
}
