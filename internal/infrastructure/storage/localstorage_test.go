package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/logger"
)

// pngHeader is enough for content sniffing.
var pngHeader = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func upload(name string, content []byte) Upload {
	return Upload{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

func newTestStorage(t *testing.T, maxFiles int) (*LocalStorage, string) {
	dir := t.TempDir()
	s := NewLocalStorage(config.UploadConfig{
		Dir:           dir,
		PublicPath:    "/uploads/",
		MaxFileSizeMB: 1,
		MaxFiles:      maxFiles,
	}, logger.NewNop())
	return s, dir
}

func TestLocalStorage_SaveImages(t *testing.T) {
	s, dir := newTestStorage(t, 3)

	urls, err := s.SaveImages([]Upload{upload("a.png", pngHeader), upload("b.png", pngHeader)})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, "/uploads/"), u)
		assert.True(t, strings.HasSuffix(u, ".png"), u)
		_, err := os.Stat(filepath.Join(dir, filepath.Base(u)))
		assert.NoError(t, err)
	}

	s.Remove(urls)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_RejectsAndRollsBack(t *testing.T) {
	s, dir := newTestStorage(t, 3)

	text := []byte(strings.Repeat("not an image ", 10))
	_, err := s.SaveImages([]Upload{upload("a.png", pngHeader), upload("evil.png", text)})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "files saved before the failure are removed")
}

func TestLocalStorage_Limits(t *testing.T) {
	s, _ := newTestStorage(t, 1)

	_, err := s.SaveImages([]Upload{upload("a.png", pngHeader), upload("b.png", pngHeader)})
	assert.ErrorIs(t, err, ErrTooManyFiles)

	big := append([]byte{}, pngHeader...)
	big = append(big, bytes.Repeat([]byte{0}, 1<<20)...)
	_, err = s.SaveImages([]Upload{upload("big.png", big)})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = s.SaveImages([]Upload{upload("tiny.png", []byte("x"))})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLocalStorage_ZeroSizeLimitIsUnlimited(t *testing.T) {
	s := NewLocalStorage(config.UploadConfig{
		Dir:        t.TempDir(),
		PublicPath: "/uploads/",
		MaxFiles:   1,
	}, logger.NewNop())

	big := append([]byte{}, pngHeader...)
	big = append(big, bytes.Repeat([]byte{0}, 2<<20)...)
	urls, err := s.SaveImages([]Upload{upload("big.png", big)})
	require.NoError(t, err)
	assert.Len(t, urls, 1)
}

func TestLocalStorage_RemoveIgnoresForeignPaths(t *testing.T) {
	s, _ := newTestStorage(t, 1)
	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	s.Remove([]string{"/uploads/../" + filepath.Base(outside), "https://cdn.example.com/x.png"})

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
