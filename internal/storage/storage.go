package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/pkg/logger_i"
	"github.com/google/uuid"
)

// Service owns the local uploads directory: saved uploads, temp files for
// URL and base64 submissions, and best-effort deletion.
type Service struct {
	uploadDir string
	logger    *logger_i.Logger
}

func NewService(uploadDir string) (*Service, error) {
	if uploadDir == "" {
		uploadDir = config.UploadDir
	}
	if err := os.MkdirAll(uploadDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", uploadDir, err)
	}
	return &Service{
		uploadDir: uploadDir,
		logger:    logger_i.NewLogger("Storage"),
	}, nil
}

// SaveFile writes uploaded bytes under the file id, keeping the original
// extension so the rasterizer can sniff the type from the path.
func (s *Service) SaveFile(fileId string, originalName string, data []byte) (string, error) {
	filename := fileId + filepath.Ext(originalName)
	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, data, 0640); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	s.logger.Debug("Saved upload", "path", path, "bytes", len(data))
	return path, nil
}

// SaveTempFile holds bytes that only live for one rasterization pass
// (URL downloads, decoded base64 payloads). Callers delete it afterwards.
func (s *Service) SaveTempFile(data []byte, filename string) (string, error) {
	tempDir := filepath.Join(s.uploadDir, "temp")
	if err := os.MkdirAll(tempDir, 0750); err != nil {
		return "", err
	}
	path := filepath.Join(tempDir, uuid.New().String()+"-"+filepath.Base(filename))
	if err := os.WriteFile(path, data, 0640); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return path, nil
}

// DeleteFile is best-effort: a leftover file is a log line, not an error.
func (s *Service) DeleteFile(path string) {
	if err := os.Remove(path); err != nil {
		s.logger.Warn("Failed to delete file", "path", path, "error", err)
		return
	}
	s.logger.Debug("Deleted file", "path", path)
}

func (s *Service) GetFileAsBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
