package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ValidateEncoder checks that the JPEG encoder executable is available in PATH
// and returns its resolved location.
func ValidateEncoder(executable string) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH. %s", executable, getInstallationInstructions())
	}
	return path, nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install mozjpeg"
	case "linux":
		return "Install with: apt-get install libjpeg-turbo-progs (Ubuntu/Debian) or build mozjpeg from https://github.com/mozilla/mozjpeg"
	case "windows":
		return "Download from https://github.com/mozilla/mozjpeg/releases and add to PATH"
	default:
		return "Download from https://github.com/mozilla/mozjpeg"
	}
}
