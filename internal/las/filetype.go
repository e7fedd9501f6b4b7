package las

import (
	"os"
	"path/filepath"
	"strings"
)

// IsCompressed reports whether path names a .laz file by extension, case
// insensitively. The header's own "LASF" signature is checked separately
// during Open regardless of extension.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".laz")
}

// GetFileType sniffs a path's format by extension plus a magic-byte check,
// returning "LAS", "LAZ", or "UNKNOWN".
func GetFileType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".las" && ext != ".laz" {
		return "UNKNOWN"
	}

	f, err := os.Open(path)
	if err != nil {
		return "UNKNOWN"
	}
	defer f.Close()

	sig := make([]byte, 4)
	if n, err := f.Read(sig); err != nil || n != 4 || string(sig) != "LASF" {
		return "UNKNOWN"
	}

	if ext == ".laz" {
		return "LAZ"
	}
	return "LAS"
}
