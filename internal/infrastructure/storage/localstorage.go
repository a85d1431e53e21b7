// Package storage keeps uploaded listing images on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/logger"
)

const minImageSize = 32

var (
	ErrTooManyFiles    = errors.New("too many files")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("file is empty or too small")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Upload is one incoming file.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type LocalStorage struct {
	dir        string
	publicPath string
	maxSize    int64
	maxFiles   int
	logger     logger.Interface
}

func NewLocalStorage(cfg config.UploadConfig, log logger.Interface) *LocalStorage {
	return &LocalStorage{
		dir:        cfg.Dir,
		publicPath: "/" + strings.Trim(cfg.PublicPath, "/"),
		maxSize:    cfg.MaxFileSize(),
		maxFiles:   cfg.MaxFiles,
		logger:     log,
	}
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) PublicPath() string {
	return s.publicPath
}

// SaveImages validates and stores every upload, returning public URLs in input
// order. On any failure the files already written are removed.
func (s *LocalStorage) SaveImages(uploads []Upload) ([]string, error) {
	if s.maxFiles > 0 && len(uploads) > s.maxFiles {
		return nil, fmt.Errorf("%w: at most %d images", ErrTooManyFiles, s.maxFiles)
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	urls := make([]string, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.saveImage(u)
		if err != nil {
			s.Remove(urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *LocalStorage) saveImage(u Upload) (string, error) {
	if s.maxSize > 0 && u.Size > s.maxSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, u.Filename, s.maxSize)
	}

	f, err := u.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if s.maxSize > 0 {
		r = io.LimitReader(f, s.maxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if s.maxSize > 0 && int64(len(content)) > s.maxSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, u.Filename, s.maxSize)
	}
	if len(content) < minImageSize {
		return "", fmt.Errorf("%w: %s", ErrEmptyFile, u.Filename)
	}

	detected := mimetype.Detect(content).String()
	ext, ok := allowedImageTypes[detected]
	if !ok {
		s.logger.Warnw("rejected upload with invalid MIME type", "detected_mime", detected, "filename", u.Filename)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, detected)
	}

	name := uuid.NewString() + ext
	dst, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, content, 0o640); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return path.Join(s.publicPath, name), nil
}

// Remove deletes stored files by public URL. Failures are logged only.
func (s *LocalStorage) Remove(urls []string) {
	for _, u := range urls {
		if !strings.HasPrefix(u, s.publicPath+"/") {
			continue
		}
		dst, err := s.resolve(strings.TrimPrefix(u, s.publicPath+"/"))
		if err != nil {
			s.logger.Warnw("refusing to remove file outside upload dir", "url", u)
			continue
		}
		if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnw("failed to remove uploaded file", "url", u, "error", err)
		}
	}
}

func (s *LocalStorage) resolve(name string) (string, error) {
	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	absDst, err := filepath.Abs(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination path: %w", err)
	}
	if filepath.Dir(absDst) != absDir {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return absDst, nil
}
