package fs

import (
	"bufio"
	"bytes"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/h2wp"
	"github.com/go-enry/go-enry/v2"
	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the name of the per-tree ignore file. It uses
// .gitignore syntax and is read from the scan root only.
const IgnoreFileName = ".h2wpignore"

// Ensure Scanner implements h2wp.Scanner at compile time.
var _ h2wp.Scanner = (*Scanner)(nil)

// Scanner discovers HTML files below a directory.
//
// Anything matched by the root's ignore file is skipped. Dot-files and
// dot-directories such as .well-known/ are scanned unless SkipHidden is set.
type Scanner struct {
	// SkipHidden skips dot-files and dot-directories.
	SkipHidden bool


	// SkipVendored also skips paths that look like third-party code, such
	// as node_modules/ or vendor/ directories.
	SkipVendored bool
}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Scan(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, h2wp.Errorf(h2wp.EINVALID, "invalid source directory %s", root)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, h2wp.Errorf(h2wp.EINVALID, "source directory not found: %s", root)
	}

	ignore, err := loadIgnore(abs)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d iofs.DirEntry, err error) error {
		if path == abs {
			return err
		}
		if err != nil {
			// Unreadable subtrees are skipped rather than failing the scan.
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.skip(rel+"/", ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !h2wp.IsHTMLFile(d.Name()) {
			return nil
		}
		if s.skip(rel, ignore) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, h2wp.Errorf(h2wp.EINVALID, "failed to scan %s: %v", root, err)
	}

	slices.Sort(files)
	return files, nil
}

// skip reports whether the slash-separated relative path is excluded.
// Directory paths carry a trailing slash.
func (s *Scanner) skip(rel string, ignore *gitignore.GitIgnore) bool {
	if s.SkipHidden && enry.IsDotFile(rel) {
		return true
	}
	if s.SkipVendored && enry.IsVendor(rel) {
		return true
	}
	return ignore != nil && ignore.MatchesPath(rel)
}

// loadIgnore compiles the ignore file at the scan root, if any.
func loadIgnore(root string) (*gitignore.GitIgnore, error) {
	data, err := os.ReadFile(filepath.Join(root, IgnoreFileName))
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, h2wp.Errorf(h2wp.EINVALID, "failed to read %s: %v", IgnoreFileName, err)
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return gitignore.CompileIgnoreLines(lines...), nil
}
