// File path: internal/corpus/loader.go
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wreslscan/internal/common"
)

// Extension identifies WRESL model files during study traversal.
const Extension = ".wresl"

// ErrStudyNotFound indicates the study directory does not exist.
var ErrStudyNotFound = errors.New("study directory not found")

// Corpus holds the full text of every model file in a study, keyed by path
// relative to the study root. It is built once per run and read-only
// afterwards.
type Corpus struct {
	Root  string
	files map[string]string
}

// Load recursively discovers every model file under root and reads it into
// memory. All I/O happens here; analysis afterwards is pure text work.
func Load(root string) (*Corpus, error) {
	logger := common.Logger()
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrStudyNotFound, root)
	}
	c := &Corpus{Root: root, files: make(map[string]string)}
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), Extension) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read model file %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		c.files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan study %s: %w", root, walkErr)
	}
	logger.Debug("corpus: study loaded", "root", root, "files", len(c.files))
	return c, nil
}

// Files returns the corpus paths in sorted order so repeated runs enumerate
// the study identically.
func (c *Corpus) Files() []string {
	if c == nil {
		return nil
	}
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Content returns the raw text of the model file at path.
func (c *Corpus) Content(path string) string {
	if c == nil {
		return ""
	}
	return c.files[path]
}

// Len reports the number of model files loaded.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.files)
}
