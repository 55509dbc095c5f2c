package jpeg

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the extension fragments searched for by default.
var DefaultExtensions = []string{"jpeg", "jpg", "JPEG", "JPG"}

// FindFiles walks root recursively and returns the absolute paths of all
// regular files whose extension contains one of exts. Unreadable entries
// below root are skipped.
func FindFiles(root string, exts []string) ([]string, error) {
	files, _, err := ScanDir(root, exts)
	return files, err
}

// ScanDir is FindFiles that also returns the errors of the entries it had to
// skip. Only a missing or non-directory root is fatal.
func ScanDir(root string, exts []string) (files []string, skipped []error, err error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, &InvalidPathError{Path: root, Err: err}
	}

	fi, err := os.Stat(absRoot)
	if err != nil {
		return nil, nil, &InvalidPathError{Path: root, Err: err}
	}
	if !fi.IsDir() {
		return nil, nil, &InvalidPathError{Path: root}
	}

	// A trailing separator makes WalkDir follow a symlinked root, paths keep the link prefix
	walkRoot := absRoot
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		walkRoot += string(filepath.Separator)
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return &InvalidPathError{Path: root, Err: err}
			}
			skipped = append(skipped, &FileAccessError{Op: "scan", Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		// Symlinks and devices are left alone, the commit step would replace a link with a file
		if !d.Type().IsRegular() {
			return nil
		}

		if MatchesExtension(d.Name(), exts) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, skipped, err
	}

	return files, skipped, nil
}

// MatchesExtension reports whether the extension of name contains any of exts.
// The match is a substring test, so "photo.jpegx" matches "jpeg".
func MatchesExtension(name string, exts []string) bool {
	ext := Extension(name)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.Contains(ext, e) {
			return true
		}
	}
	return false
}

// Extension returns the extension of the base name of path, including the dot.
// Leading dots are part of the name, so ".jpg" has no extension.
func Extension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	if strings.Trim(name[:i], ".") == "" {
		return ""
	}
	return name[i:]
}
