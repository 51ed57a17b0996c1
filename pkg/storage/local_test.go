package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SyaefulEffendi/bahasaku-server/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStorage(t *testing.T) (storage.MediaStorage, string) {
	root := t.TempDir()
	media, err := storage.NewLocalStorage(root)
	require.NoError(t, err)
	return media, root
}

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	media, root := setupStorage(t)

	url, err := media.Save(context.Background(), storage.NamespaceProfilePhotos, "42", "avatar.png", storage.ImageExtensions, strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/static/profile_photos/42_"))
	assert.True(t, strings.HasSuffix(url, "_avatar.png"))

	name := strings.TrimPrefix(url, "/static/profile_photos/")
	content, err := os.ReadFile(filepath.Join(root, storage.NamespaceProfilePhotos, name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(content))
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	media, _ := setupStorage(t)

	_, err := media.Save(context.Background(), storage.NamespaceProfilePhotos, "1", "payload.exe", storage.ImageExtensions, strings.NewReader("x"))
	assert.Error(t, err)

	_, err = media.Save(context.Background(), storage.NamespaceVocabularyVideos, "1", "clip.png", storage.VideoExtensions, strings.NewReader("x"))
	assert.Error(t, err)

	_, err = media.Save(context.Background(), storage.NamespaceProfilePhotos, "1", "noextension", storage.ImageExtensions, strings.NewReader("x"))
	assert.Error(t, err)
}

func TestSaveSanitizesTraversalFileName(t *testing.T) {
	media, root := setupStorage(t)

	url, err := media.Save(context.Background(), storage.NamespaceInfoImages, "7", "../../etc/cover.jpg", storage.ImageExtensions, strings.NewReader("x"))
	require.NoError(t, err)

	// The file must land inside the namespace directory regardless of the
	// client-supplied name.
	name := strings.TrimPrefix(url, "/static/info_images/")
	assert.NotContains(t, name, "/")
	_, err = os.Stat(filepath.Join(root, storage.NamespaceInfoImages, name))
	assert.NoError(t, err)
}

func TestDeleteRemovesSavedFile(t *testing.T) {
	media, root := setupStorage(t)

	url, err := media.Save(context.Background(), storage.NamespaceVocabularyVideos, "abc", "halo.mp4", storage.VideoExtensions, strings.NewReader("video"))
	require.NoError(t, err)

	require.NoError(t, media.Delete(context.Background(), storage.NamespaceVocabularyVideos, url))

	name := strings.TrimPrefix(url, "/static/vocabulary_videos/")
	_, err = os.Stat(filepath.Join(root, storage.NamespaceVocabularyVideos, name))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteIgnoresMissingFile(t *testing.T) {
	media, _ := setupStorage(t)

	err := media.Delete(context.Background(), storage.NamespaceProfilePhotos, "/static/profile_photos/never_existed.png")
	assert.NoError(t, err)
}

func TestDeleteRejectsForeignURL(t *testing.T) {
	media, _ := setupStorage(t)

	err := media.Delete(context.Background(), storage.NamespaceProfilePhotos, "/static/vocabulary_videos/other.mp4")
	assert.Error(t, err)

	err = media.Delete(context.Background(), storage.NamespaceProfilePhotos, "/static/profile_photos/../secrets.txt")
	assert.Error(t, err)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "avatar.png", storage.SanitizeFileName("avatar.png"))
	assert.Equal(t, "cover.jpg", storage.SanitizeFileName("../../etc/cover.jpg"))
	assert.Equal(t, "my_photo__1_.png", storage.SanitizeFileName("my photo (1).png"))
	assert.Equal(t, "env", storage.SanitizeFileName(".env"))
	assert.Equal(t, "file", storage.SanitizeFileName(""))
}
