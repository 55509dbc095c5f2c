package jpeg

import (
	"fmt"
	"os"
)

const (
	kb = 1024
	mb = 1024 * kb
	gb = 1024 * mb
)

// FileSize returns the current size of path in bytes
func FileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, &FileAccessError{Op: "stat", Path: path, Err: err}
	}
	return fi.Size(), nil
}

// MeasureFiles stats every path. Paths that cannot be measured get -1 in
// sizes and an entry in errs.
func MeasureFiles(paths []string) (sizes []int64, errs []error) {
	sizes = make([]int64, len(paths))
	for i, path := range paths {
		size, err := FileSize(path)
		if err != nil {
			sizes[i] = -1
			errs = append(errs, err)
			continue
		}
		sizes[i] = size
	}
	return sizes, errs
}

// TotalSize sums the sizes of paths. Paths that cannot be measured are
// skipped and reported in errs; measured counts the ones that were summed.
func TotalSize(paths []string) (total int64, measured int, errs []error) {
	sizes, errs := MeasureFiles(paths)
	for _, size := range sizes {
		if size < 0 {
			continue
		}
		total += size
		measured++
	}
	return total, measured, errs
}

// PrettySize formats bytes with 1024-based units, e.g. 1536 -> "1.50KB".
func PrettySize(bytes int64) string {
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2fGB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2fMB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2fKB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
