// Package filex classifies file names for preview and thumbnail handling and
// resolves local cache directories.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PreviewType describes how a file can be previewed in a listing.
type PreviewType string

const (
	PreviewImage PreviewType = "image"
	PreviewVideo PreviewType = "video"
	PreviewAudio PreviewType = "audio"
	PreviewCode  PreviewType = "code"
	PreviewText  PreviewType = "text"
	PreviewPDF   PreviewType = "pdf"
	PreviewDoc   PreviewType = "doc"
	PreviewNone  PreviewType = "none"
)

var previewByExt = map[string]PreviewType{}

func register(t PreviewType, exts ...string) {
	for _, e := range exts {
		previewByExt[e] = t
	}
}

func init() {
	register(PreviewImage, "jpeg", "jpg", "png", "gif", "svg", "webp", "heic", "heif")
	register(PreviewAudio, "mp3", "mp2", "wav", "ogg", "m4a", "aac", "flac",
		"midi", "xmf", "rtx", "ota", "mpa", "aif", "rtttl", "wma")
	register(PreviewVideo, "mp4", "webm", "mkv", "flv", "mov", "ogv", "3gp", "avi", "hevc")
	register(PreviewCode, "json", "swift", "m", "js", "md", "php", "css", "c",
		"perl", "html", "jsx", "yml", "xml", "sql", "java", "csharp", "py",
		"cc", "cpp", "log", "conf", "cxx", "ini", "lock", "bat", "sh",
		"properties", "cfg", "ahk", "ts", "tsx")
	register(PreviewText, "txt", "rtf")
	register(PreviewPDF, "pdf")
	register(PreviewDoc, "docx", "doc", "odt", "xls", "xlsx", "ods", "ppt", "pptx", "csv")
}

// Ext returns the lowercased extension of name without the leading dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// PreviewTypeOf maps a lowercased extension to its preview type.
// Unknown extensions map to PreviewNone.
func PreviewTypeOf(ext string) PreviewType {
	if t, ok := previewByExt[strings.ToLower(ext)]; ok {
		return t
	}
	return PreviewNone
}

// IsVideo reports whether the file name carries a video extension.
func IsVideo(name string) bool {
	return PreviewTypeOf(Ext(name)) == PreviewVideo
}

// CanCompressThumbnail reports whether a thumbnail can be generated locally
// for the given extension.
func CanCompressThumbnail(ext string) bool {
	switch strings.ToLower(ext) {
	case "jpeg", "jpg", "png", "gif", "heif", "heic", "mp4", "webm", "webp":
		return true
	default:
		return false
	}
}

// EnsureSubDir creates (if needed) and returns a subdirectory of the current
// working directory.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ThumbnailCacheDir returns the directory holding generated thumbnails,
// keyed by item UUID.
func ThumbnailCacheDir() (string, error) {
	return EnsureSubDir("thumbnailCache")
}
