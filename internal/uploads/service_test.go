package uploads_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"osspace/internal/shared/apperrors"
	"osspace/internal/shared/config"
	"osspace/internal/uploads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}

func newTestService(t *testing.T) (uploads.Service, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.UploadConfig{
		MaxSize: 1024,
		Path:    dir,
		Folders: []string{"classes", "events", "spaces"},
	}
	return uploads.NewService(cfg), dir
}

func TestSaveImage_PNG(t *testing.T) {
	service, dir := newTestService(t)

	result, err := service.SaveImage(context.Background(), uploads.UploadRequest{
		Image:    base64.StdEncoding.EncodeToString(pngBytes),
		FileName: "Poster Final (v2).png",
		Folder:   "events",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Path, "events/"))
	assert.True(t, strings.HasSuffix(result.Path, ".png"))
	assert.Contains(t, result.Path, "posterfinalv2")
	assert.Equal(t, int64(len(pngBytes)), result.Size)

	data, err := os.ReadFile(filepath.Join(dir, result.Path))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestSaveImage_DataURLPrefix(t *testing.T) {
	service, _ := newTestService(t)

	result, err := service.SaveImage(context.Background(), uploads.UploadRequest{
		Image:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegBytes),
		FileName: "photo.jpg",
		Folder:   "classes",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Path, ".jpg"))
}

func TestSaveImage_RejectsUnknownFolder(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.SaveImage(context.Background(), uploads.UploadRequest{
		Image:    base64.StdEncoding.EncodeToString(pngBytes),
		FileName: "a.png",
		Folder:   "../../etc",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestSaveImage_RejectsBadBase64(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.SaveImage(context.Background(), uploads.UploadRequest{
		Image:    "not valid base64!!!",
		FileName: "a.png",
		Folder:   "events",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestSaveImage_RejectsNonImageContent(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.SaveImage(context.Background(), uploads.UploadRequest{
		Image:    base64.StdEncoding.EncodeToString([]byte("#!/bin/sh\nrm -rf /\n")),
		FileName: "innocent.png",
		Folder:   "events",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestSaveImage_RejectsOversize(t *testing.T) {
	service, _ := newTestService(t)

	big := append(append([]byte{}, pngBytes...), make([]byte, 2048)...)
	_, err := service.SaveImage(context.Background(), uploads.UploadRequest{
		Image:    base64.StdEncoding.EncodeToString(big),
		FileName: "huge.png",
		Folder:   "events",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestSaveImage_RejectsOversizeBeforeDecoding(t *testing.T) {
	service, _ := newTestService(t)

	// Oversized and not even valid base64: the size gate must fire first,
	// so the reported failure is the limit, not a decode error.
	junk := strings.Repeat("!", 4096)
	_, err := service.SaveImage(context.Background(), uploads.UploadRequest{
		Image:    junk,
		FileName: "huge.png",
		Folder:   "events",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Contains(t, err.Error(), "exceeds")
}
