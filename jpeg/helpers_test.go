package jpeg

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// requireExecutable skips the test when name is not on PATH
func requireExecutable(t *testing.T, name string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("encoder stand-ins need a POSIX userland")
	}
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func sizedFile(t *testing.T, path string, size int) string {
	t.Helper()
	return writeFile(t, path, bytes.Repeat([]byte{0xFF}, size))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
