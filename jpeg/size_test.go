package jpeg

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestPrettySize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0B"},
		{500, "500B"},
		{1023, "1023B"},
		{1024, "1.00KB"},
		{1536, "1.50KB"},
		{61440, "60.00KB"},
		{1048576, "1.00MB"},
		{104857600, "100.00MB"},
		{1073741824, "1.00GB"},
		{5 * 1073741824, "5.00GB"},
		{-2048, "-2048B"},
	}

	for _, tt := range tests {
		if got := PrettySize(tt.bytes); got != tt.want {
			t.Errorf("PrettySize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFileSize(t *testing.T) {
	path := sizedFile(t, filepath.Join(t.TempDir(), "a.jpg"), 1234)

	size, err := FileSize(path)
	if err != nil {
		t.Fatalf("FileSize() error = %v", err)
	}
	if size != 1234 {
		t.Errorf("Expected size 1234, got %d", size)
	}
}

func TestFileSize_Missing(t *testing.T) {
	_, err := FileSize(filepath.Join(t.TempDir(), "missing.jpg"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !IsFileAccess(err) {
		t.Errorf("Expected FileAccessError, got %T", err)
	}
}

func TestTotalSize_SkipsMissing(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		sizedFile(t, filepath.Join(dir, "a.jpg"), 100),
		filepath.Join(dir, "gone.jpg"),
		sizedFile(t, filepath.Join(dir, "b.jpg"), 200),
	}

	total, measured, errs := TotalSize(paths)
	if total != 300 {
		t.Errorf("Expected total 300, got %d", total)
	}
	if measured != 2 {
		t.Errorf("Expected 2 measured files, got %d", measured)
	}
	if len(errs) != 1 {
		t.Errorf("Expected 1 error, got %d", len(errs))
	}
}

func TestMeasureFiles(t *testing.T) {
	dir := t.TempDir()
	a := sizedFile(t, filepath.Join(dir, "a.jpg"), 10)
	missing := filepath.Join(dir, "missing.jpg")
	b := sizedFile(t, filepath.Join(dir, "b.jpg"), 0)

	sizes, errs := MeasureFiles([]string{a, missing, b})

	if want := []int64{10, -1, 0}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("MeasureFiles() sizes = %v, want %v", sizes, want)
	}
	if len(errs) != 1 || !IsFileAccess(errs[0]) {
		t.Errorf("Expected one FileAccessError, got %v", errs)
	}
}
