package uploads

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"osspace/internal/shared/apperrors"
	"osspace/internal/shared/config"

	"github.com/google/uuid"
)

// allowedTypes maps sniffed MIME types to the extension stored on disk.
// The client-supplied filename only contributes a sanitized stem.
var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type UploadRequest struct {
	Image    string `json:"image" binding:"required"`
	FileName string `json:"fileName" binding:"required,max=200"`
	Folder   string `json:"folder" binding:"required"`
}

type UploadResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

type Service interface {
	SaveImage(ctx context.Context, req UploadRequest) (*UploadResponse, error)
}

type service struct {
	cfg *config.UploadConfig
}

func NewService(cfg *config.UploadConfig) Service {
	return &service{cfg: cfg}
}

// SaveImage decodes a base64 image, validates its real content type by
// sniffing the bytes, and writes it under the configured upload root.
func (s *service) SaveImage(_ context.Context, req UploadRequest) (*UploadResponse, error) {
	folder, err := s.validateFolder(req.Folder)
	if err != nil {
		return nil, err
	}

	payload := req.Image
	// Accept data URLs from admin console pasted images.
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		payload = payload[idx+len(";base64,"):]
	}

	// Reject oversized payloads on encoded length before allocating the
	// decoded copy. Base64 expands 3 bytes to 4 characters.
	if int64(len(payload)) > s.cfg.MaxSize/3*4+4 {
		return nil, apperrors.Validation(fmt.Sprintf("Image exceeds %d byte limit", s.cfg.MaxSize))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperrors.Validation("Image is not valid base64")
	}
	if int64(len(data)) > s.cfg.MaxSize {
		return nil, apperrors.Validation(fmt.Sprintf("Image exceeds %d byte limit", s.cfg.MaxSize))
	}
	if len(data) == 0 {
		return nil, apperrors.Validation("Image is empty")
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, apperrors.Validation("Unsupported image type: " + contentType)
	}

	name := sanitizeFileName(req.FileName)
	if name == "" {
		name = "image"
	}
	fileName := fmt.Sprintf("%s-%s%s", name, uuid.New().String()[:8], ext)

	dir := filepath.Join(s.cfg.Path, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to store image", err)
	}

	fullPath := filepath.Join(dir, fileName)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to store image", err)
	}

	return &UploadResponse{
		Path: filepath.Join(folder, fileName),
		Size: int64(len(data)),
	}, nil
}

func (s *service) validateFolder(folder string) (string, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	for _, allowed := range s.cfg.Folders {
		if folder == allowed {
			return folder, nil
		}
	}
	return "", apperrors.Validation("Unknown upload folder")
}

// sanitizeFileName keeps a safe stem from the client filename: letters,
// digits, dashes and underscores only, no path components.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}

	out := b.String()
	if len(out) > 60 {
		out = out[:60]
	}
	return out
}
