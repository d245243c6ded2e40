package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LocalStorage saves files below a directory served by the API under baseURL
type LocalStorage struct {
	basePath string
	baseURL  string
	log      zerolog.Logger
}

// NewLocalStorage ensures basePath exists
func NewLocalStorage(basePath, baseURL string, log zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Error().Err(err).Str("path", basePath).Msg("failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		log:      log,
	}, nil
}

// BasePath is the directory files are written to
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

func (ls *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(ls.basePath, clean), nil
}

// Save writes data to basePath/key and returns baseURL/key
func (ls *LocalStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst, err := ls.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		ls.log.Error().Err(err).Str("path", dst).Msg("failed to write file")
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	ls.log.Debug().Str("path", dst).Str("content_type", contentType).Int("bytes", len(data)).Msg("file stored")
	return ls.baseURL + "/" + strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+key)), "/"), nil
}

// Delete removes the file stored under key; a missing file is not an error
func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	dst, err := ls.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
