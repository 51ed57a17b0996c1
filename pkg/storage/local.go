package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
)

// Media namespaces. Each one maps to a fixed subdirectory under the storage
// root so asset kinds never mix.
const (
	NamespaceProfilePhotos    = "profile_photos"
	NamespaceVocabularyVideos = "vocabulary_videos"
	NamespaceInfoImages       = "info_images"
)

// URLPrefix is the public path the router serves the storage root from.
const URLPrefix = "/static"

var (
	// ImageExtensions is the allow-list for uploaded images.
	ImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}
	// VideoExtensions is the allow-list for uploaded demonstration videos.
	VideoExtensions = []string{".mp4", ".avi", ".mov", ".mkv"}
)

// MediaStorage defines the contract for persisting uploaded media files.
type MediaStorage interface {
	// Save validates the file extension against allowedExts, writes the file
	// under the namespace directory and returns the URL it is served from.
	Save(ctx context.Context, namespace, key, fileName string, allowedExts []string, r io.Reader) (string, error)
	// Delete removes a previously saved file by its URL. The URL is resolved
	// back to a path strictly confined under the namespace directory.
	Delete(ctx context.Context, namespace, fileURL string) error
}

type localStorage struct {
	root string
}

// NewLocalStorage creates a disk-backed MediaStorage rooted at root,
// creating the directory if absent.
func NewLocalStorage(root string) (MediaStorage, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}

	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &localStorage{root: absRoot}, nil
}

func (s *localStorage) Save(ctx context.Context, namespace, key, fileName string, allowedExts []string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !extensionAllowed(ext, allowedExts) {
		return "", fmt.Errorf("%w: file extension %q is not allowed", apperror.ErrInvalidInput, ext)
	}

	dir := filepath.Join(s.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	// key + timestamp + sanitized original name keeps generated names unique
	// and free of traversal sequences from the client-supplied file name.
	generated := fmt.Sprintf("%s_%d_%s", key, time.Now().Unix(), SanitizeFileName(fileName))
	dst := filepath.Join(dir, generated)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", URLPrefix, namespace, generated), nil
}

func (s *localStorage) Delete(ctx context.Context, namespace, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	path, err := s.resolve(namespace, fileURL)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete media file: %w", err)
	}

	return nil
}

// resolve maps a served URL back to a disk path, rejecting anything that
// would escape the namespace directory.
func (s *localStorage) resolve(namespace, fileURL string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", URLPrefix, namespace)
	if !strings.HasPrefix(fileURL, prefix) {
		return "", fmt.Errorf("url %q does not belong to namespace %q", fileURL, namespace)
	}

	name := strings.TrimPrefix(fileURL, prefix)
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return "", fmt.Errorf("invalid media file name in url %q", fileURL)
	}

	dir := filepath.Join(s.root, namespace)
	path := filepath.Clean(filepath.Join(dir, name))
	if !strings.HasPrefix(path, dir+string(filepath.Separator)) {
		return "", fmt.Errorf("resolved path escapes namespace %q", namespace)
	}

	return path, nil
}

// SanitizeFileName strips path components and replaces anything outside a
// conservative character set.
func SanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimLeft(name, ".")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

func extensionAllowed(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

