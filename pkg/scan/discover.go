package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/kzmshx/php-graph/pkg/errors"
)

// DefaultExtension is the source file suffix scanned when none is configured.
const DefaultExtension = ".php"

// DiscoverOptions controls which files [Discover] returns.
type DiscoverOptions struct {
	// Extensions are file name suffixes to include. Empty means
	// DefaultExtension only.
	Extensions []string

	// Exclude holds gitignore-style patterns matched against paths relative
	// to each root, e.g. "vendor/" or "*.blade.php".
	Exclude []string
}

// Discover returns every matching file under each root, recursing without
// a depth limit. Files are returned in lexical order per root, with roots in
// argument order. A root may also be a single file, which is included if its
// name matches.
//
// A root that does not exist is an INVALID_PATH error.
func Discover(roots []string, opts DiscoverOptions) ([]string, error) {
	m := opts.matcher()

	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan root %s", root)
		}
		if !info.IsDir() {
			if m.source(info.Name()) {
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}
			if d.IsDir() {
				if m.excluded(root, path, true) {
					return filepath.SkipDir
				}
				return nil
			}
			if m.source(d.Name()) && !m.excluded(root, path, false) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileRead, err, "walk %s", root)
		}
	}
	return files, nil
}

// matcher applies DiscoverOptions to individual paths.
type matcher struct {
	exts []string
	excl *ignore.GitIgnore
}

func (o DiscoverOptions) matcher() matcher {
	m := matcher{exts: o.Extensions}
	if len(m.exts) == 0 {
		m.exts = []string{DefaultExtension}
	}
	if len(o.Exclude) > 0 {
		m.excl = ignore.CompileIgnoreLines(o.Exclude...)
	}
	return m
}

// source reports whether name has one of the configured extensions.
func (m matcher) source(name string) bool {
	for _, ext := range m.exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// excluded matches path, taken relative to root, against the exclude
// patterns. Directories are matched with a trailing slash so that
// patterns like "vendor/" apply.
func (m matcher) excluded(root, path string, dir bool) bool {
	if m.excl == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if dir {
		rel += "/"
	}
	return m.excl.MatchesPath(rel)
}
